package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	bookingserrors "evently/internal/bookings/errors"
	bookingsrepo "evently/internal/bookings/repository"
	eventserrors "evently/internal/events/errors"
	userserrors "evently/internal/users/errors"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
	"evently/pkg/logger"
	"evently/pkg/model"
)

type countingUserRepo struct {
	count int64
	err   error
}

func (r *countingUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (r *countingUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (r *countingUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (r *countingUserRepo) Count(ctx context.Context) (int64, error) { return r.count, r.err }

type countingEventRepo struct {
	count int64
	err   error
}

func (r *countingEventRepo) Create(ctx context.Context, event *model.Event) error { return nil }

func (r *countingEventRepo) FindByID(ctx context.Context, id string) (*model.EventWithCreator, error) {
	return nil, eventserrors.ErrNotFound
}

func (r *countingEventRepo) FindAll(ctx context.Context) ([]*model.EventWithCreator, error) {
	return nil, nil
}

func (r *countingEventRepo) Update(ctx context.Context, id string, input *model.EventInput) (*model.Event, error) {
	return nil, eventserrors.ErrNotFound
}

func (r *countingEventRepo) Delete(ctx context.Context, id string) error {
	return eventserrors.ErrNotFound
}

func (r *countingEventRepo) Count(ctx context.Context) (int64, error) { return r.count, r.err }

type countingBookingRepo struct {
	count int64
	err   error
}

func (r *countingBookingRepo) Create(ctx context.Context, booking *model.Booking) error { return nil }

func (r *countingBookingRepo) FindExpandedByID(ctx context.Context, id primitive.ObjectID) (*model.BookingExpanded, error) {
	return nil, bookingserrors.ErrNotFound
}

func (r *countingBookingRepo) FindAllExpanded(ctx context.Context, filter bookingsrepo.Filter) ([]*model.BookingExpanded, error) {
	return nil, nil
}

func (r *countingBookingRepo) Count(ctx context.Context) (int64, error) { return r.count, r.err }

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
	return &config.Config{Log: log}
}

func TestStatsAggregatesCounts(t *testing.T) {
	svc := NewDashboardService(
		&countingUserRepo{count: 3},
		&countingEventRepo{count: 5},
		&countingBookingRepo{count: 8},
		testConfig(),
	)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Users != 3 || stats.Events != 5 || stats.Bookings != 8 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestStatsStorageFailure(t *testing.T) {
	svc := NewDashboardService(
		&countingUserRepo{},
		&countingEventRepo{err: errors.New("connection reset")},
		&countingBookingRepo{},
		testConfig(),
	)

	_, err := svc.Stats(context.Background())
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected internal error code, got %s", appErr.Code)
	}
}
