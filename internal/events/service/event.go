package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	eventserrors "evently/internal/events/errors"
	"evently/internal/events/repository"
	"evently/internal/events/validator"
	"evently/pkg/auth"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
	"evently/pkg/kafka"
	"evently/pkg/model"
)

// Domain event types published after successful mutations.
const (
	EventCreated = "event.created"
	EventUpdated = "event.updated"
	EventDeleted = "event.deleted"
)

type EventService interface {
	GetAll(ctx context.Context) ([]*model.EventWithCreator, error)
	GetByID(ctx context.Context, id string) (*model.EventWithCreator, error)
	Create(ctx context.Context, identity auth.Identity, input *model.EventInput) (*model.Event, error)
	Update(ctx context.Context, identity auth.Identity, id string, input *model.EventInput) (*model.Event, error)
	Delete(ctx context.Context, identity auth.Identity, id string) error
}

type eventService struct {
	repo      repository.EventRepository
	validator *validator.EventValidator
	publisher kafka.Publisher
	cfg       *config.Config
}

func NewEventService(
	repo repository.EventRepository,
	eventValidator *validator.EventValidator,
	publisher kafka.Publisher,
	cfg *config.Config,
) EventService {
	return &eventService{
		repo:      repo,
		validator: eventValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *eventService) GetAll(ctx context.Context) ([]*model.EventWithCreator, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve events", err)
	}
	return events, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*model.EventWithCreator, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Event ID cannot be empty")
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, identity auth.Identity, input *model.EventInput) (*model.Event, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.Unauthorized("Admin privileges required")
	}

	if err := s.validator.Validate(input); err != nil {
		return nil, invalidInput(err)
	}

	creatorID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid session identity")
	}

	event := &model.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		CreatedBy:   creatorID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to create event", "error", err)
		return nil, apperrors.Internal("Failed to create event", err)
	}

	s.cfg.Log.Info("Event created",
		"event_id", event.ID.Hex(),
		"title", event.Title,
		"created_by", identity.ID,
	)
	s.publish(ctx, EventCreated, event.ID.Hex(), event)
	return event, nil
}

func (s *eventService) Update(ctx context.Context, identity auth.Identity, id string, input *model.EventInput) (*model.Event, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.Unauthorized("Admin privileges required")
	}

	if err := s.validator.Validate(input); err != nil {
		return nil, invalidInput(err)
	}

	event, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Event updated", "event_id", id, "updated_by", identity.ID)
	s.publish(ctx, EventUpdated, id, event)
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, identity auth.Identity, id string) error {
	if !identity.IsAdmin() {
		return apperrors.Unauthorized("Admin privileges required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Event deleted", "event_id", id, "deleted_by", identity.ID)
	s.publish(ctx, EventDeleted, id, map[string]string{"id": id})
	return nil
}

func (s *eventService) mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, eventserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Event", id)
	case errors.Is(err, eventserrors.ErrInvalidID):
		return apperrors.NotFoundWithID("Event", id)
	default:
		return apperrors.Internal("Event operation failed", err)
	}
}

// publish is best effort: a broker outage must never fail the request.
func (s *eventService) publish(ctx context.Context, eventType, key string, payload any) {
	if err := s.publisher.Publish(ctx, eventType, key, payload); err != nil {
		s.cfg.Log.Warn("Failed to publish domain event", "event_type", eventType, "key", key, "error", err)
	}
}

func invalidInput(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]any, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details[fieldErr.Field] = fieldErr.Message
		}
		return apperrors.InvalidInput("Missing or invalid fields").WithDetails(details)
	}
	return apperrors.InvalidInput(err.Error())
}
