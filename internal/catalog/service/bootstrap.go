package service

import (
	"context"
	"log/slog"

	"github.com/openshelf/catalog/internal/catalog/domain"
	"github.com/openshelf/catalog/internal/catalog/store"
	"github.com/openshelf/catalog/pkg/cryptox"
	"github.com/openshelf/catalog/pkg/idx"
)

// BootstrapService seeds the initial admin account. User records are
// otherwise created out of band; the API never writes to the users table.
type BootstrapService struct {
	Store  store.Store
	Logger *slog.Logger

	// Username defaults to "admin" when empty.
	Username string

	// Password for the seeded admin. Generated (and logged once) when empty.
	Password string
}

// EnsureAdmin creates the admin user if the users table is empty. Safe to
// call on every startup.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) error {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	username := s.Username
	if username == "" {
		username = "admin"
	}

	password := s.Password
	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return err
	}

	if generated {
		// Printed exactly once, on first boot of an empty database.
		s.Logger.Warn("seeded admin account with generated password",
			slog.String("username", username),
			slog.String("password", password),
		)
	} else {
		s.Logger.Info("seeded admin account", slog.String("username", username))
	}
	return nil
}
