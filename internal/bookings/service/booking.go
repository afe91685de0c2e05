package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	bookingserrors "evently/internal/bookings/errors"
	"evently/internal/bookings/repository"
	"evently/internal/bookings/validator"
	eventserrors "evently/internal/events/errors"
	eventsrepo "evently/internal/events/repository"
	"evently/pkg/auth"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
	"evently/pkg/kafka"
	"evently/pkg/model"
)

const BookingCreated = "booking.created"

type BookingService interface {
	List(ctx context.Context, identity auth.Identity, eventID string) ([]*model.BookingExpanded, error)
	Create(ctx context.Context, identity auth.Identity, input *model.BookingInput) (*model.BookingExpanded, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	events    eventsrepo.EventRepository
	validator *validator.BookingValidator
	publisher kafka.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	events eventsrepo.EventRepository,
	bookingValidator *validator.BookingValidator,
	publisher kafka.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		events:    events,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// List returns bookings visible to the caller: admins see everything,
// everyone else only their own. eventID optionally narrows to one event.
func (s *bookingService) List(ctx context.Context, identity auth.Identity, eventID string) ([]*model.BookingExpanded, error) {
	userID, err := s.requireUser(identity)
	if err != nil {
		return nil, err
	}

	filter := repository.Filter{}
	if !identity.IsAdmin() {
		filter.UserID = &userID
	}

	if eventID != "" {
		eventObjectID, err := primitive.ObjectIDFromHex(eventID)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid eventId filter")
		}
		filter.EventID = &eventObjectID
	}

	bookings, err := s.repo.FindAllExpanded(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Create(ctx context.Context, identity auth.Identity, input *model.BookingInput) (*model.BookingExpanded, error) {
	userID, err := s.requireUser(identity)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input); err != nil {
		return nil, invalidInput(err)
	}

	// The event must exist before a booking can reference it.
	if _, err := s.events.FindByID(ctx, input.EventID); err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) || errors.Is(err, eventserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Event", input.EventID)
		}
		return nil, apperrors.Internal("Failed to look up event", err)
	}

	eventID, err := primitive.ObjectIDFromHex(input.EventID)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid event ID format")
	}

	booking := &model.Booking{
		UserID:  userID,
		EventID: eventID,
		Type:    input.Type,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicate) {
			return nil, apperrors.Conflict("You have already booked this event")
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	expanded, err := s.repo.FindExpandedByID(ctx, booking.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load created booking", err)
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID.Hex(),
		"user_id", identity.ID,
		"event_id", input.EventID,
		"type", input.Type,
	)
	s.publish(ctx, BookingCreated, booking.ID.Hex(), expanded)
	return expanded, nil
}

// requireUser rejects unauthenticated callers and parses the session user id.
func (s *bookingService) requireUser(identity auth.Identity) (primitive.ObjectID, error) {
	if identity.ID == "" {
		return primitive.NilObjectID, apperrors.Unauthorized("You must be logged in to manage bookings")
	}
	userID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthorized("Invalid session identity")
	}
	return userID, nil
}

func (s *bookingService) publish(ctx context.Context, eventType, key string, payload any) {
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
