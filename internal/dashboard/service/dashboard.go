package service

import (
	"context"

	bookingsrepo "evently/internal/bookings/repository"
	eventsrepo "evently/internal/events/repository"
	usersrepo "evently/internal/users/repository"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
)

type Stats struct {
	Users    int64 `json:"users"`
	Events   int64 `json:"events"`
	Bookings int64 `json:"bookings"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*Stats, error)
}

type dashboardService struct {
	users    usersrepo.UserRepository
	events   eventsrepo.EventRepository
	bookings bookingsrepo.BookingRepository
	cfg      *config.Config
}

func NewDashboardService(
	users usersrepo.UserRepository,
	events eventsrepo.EventRepository,
	bookings bookingsrepo.BookingRepository,
	cfg *config.Config,
) DashboardService {
	return &dashboardService{
		users:    users,
		events:   events,
		bookings: bookings,
		cfg:      cfg,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count users", err)
	}
	events, err := s.events.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count events", err)
	}
	bookings, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count bookings", err)
	}

	return &Stats{
		Users:    users,
		Events:   events,
		Bookings: bookings,
	}, nil
}
