package main

import (
	authhandler "evently/internal/auth/handler"
	authservice "evently/internal/auth/service"
	authvalidator "evently/internal/auth/validator"
	bookingshandler "evently/internal/bookings/handler"
	bookingsrepo "evently/internal/bookings/repository"
	bookingsservice "evently/internal/bookings/service"
	bookingsvalidator "evently/internal/bookings/validator"
	dashboardhandler "evently/internal/dashboard/handler"
	dashboardservice "evently/internal/dashboard/service"
	eventshandler "evently/internal/events/handler"
	eventsrepo "evently/internal/events/repository"
	eventsservice "evently/internal/events/service"
	eventsvalidator "evently/internal/events/validator"
	usersrepo "evently/internal/users/repository"
	"evently/pkg/app"
	"evently/pkg/auth"
	"evently/pkg/config"
	"evently/pkg/kafka"
	"evently/pkg/middleware"
)

const ServiceName = "evently"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.JWTSecret == "" {
		cfg.Log.Fatal("JWT secret is required, set " + config.EnvJWTSecret)
	}
	cfg.SetMongo()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	publisher := newPublisher(cfg)

	users := usersrepo.NewMongoUserRepository(cfg)
	events := eventsrepo.NewMongoEventRepository(cfg)
	bookings := bookingsrepo.NewMongoBookingRepository(cfg)

	authSvc := authservice.NewAuthService(users, tokens, authvalidator.NewAuthValidator(cfg.Log), cfg)
	eventSvc := eventsservice.NewEventService(events, eventsvalidator.NewEventValidator(cfg.Log), publisher, cfg)
	bookingSvc := bookingsservice.NewBookingService(bookings, events, bookingsvalidator.NewBookingValidator(cfg.Log), publisher, cfg)
	dashboardSvc := dashboardservice.NewDashboardService(users, events, bookings, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	gate := middleware.RequestGate(tokens, middleware.DefaultGateConfig(), cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetPublisher(publisher)
	serverApp.SetApp(gate,
		authhandler.NewAuthHandler(authSvc, cfg.Log),
		eventshandler.NewEventHandler(eventSvc, cfg.Log),
		bookingshandler.NewBookingHandler(bookingSvc, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboardSvc, cfg.Log),
	)
	serverApp.Run()
}

func newPublisher(cfg *config.Config) kafka.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, domain events disabled")
		return kafka.NoopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	return producer
}
