package main

import (
	"context"
	"errors"
	"os"
	"time"

	userserrors "evently/internal/users/errors"
	usersrepo "evently/internal/users/repository"
	"evently/pkg/auth"
	"evently/pkg/config"
	"evently/pkg/model"
)

const JobName = "seed-admin"

// Seeds the initial admin account. Registration only ever produces the
// non-privileged role, so the first admin has to come from here.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.Client.Close(ctx, cfg.Log)

	adminName := envOr("ADMIN_NAME", "Admin User")
	adminEmail := envOr("ADMIN_EMAIL", "admin@evently.com")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		cfg.Log.Fatal("ADMIN_PASSWORD must be set")
	}

	users := usersrepo.NewMongoUserRepository(cfg)

	if _, err := users.FindByEmail(ctx, adminEmail); err == nil {
		cfg.Log.Info("Admin user already exists", "email", adminEmail)
		return
	} else if !errors.Is(err, userserrors.ErrNotFound) {
		cfg.Log.Fatal("Failed to check for existing admin", "error", err)
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		cfg.Log.Fatal("Failed to hash admin password", "error", err)
	}

	admin := &model.User{
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	}

	if err := users.Create(ctx, admin); err != nil {
		cfg.Log.Fatal("Failed to create admin user", "error", err)
	}

	cfg.Log.Info("Admin user created successfully",
		"user_id", admin.ID.Hex(),
		"email", admin.Email,
	)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
