package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/auth"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// CreateUser creates an account with a password. Returns ErrAlreadyExists
// if the email is taken.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	if input.Role == "" {
		input.Role = domain.UserRoleUser
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.CreateUser hash password: %w", err)
	}

	now := time.Now()
	user, err := s.users.Create(ctx, domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.CreateUser: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.CreateUser: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", user.Role.String()))

	return user, nil
}

// SetPassword replaces a user's password.
func (s *Service) SetPassword(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < minPasswordLen {
		return domain.NewValidationError("password", "must be at least 8 characters")
	}
	if len(password) > maxPasswordLen {
		return domain.NewValidationError("password", "too long")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("auth.SetPassword get user: %w", err)
	}

	hash, err := auth.HashPassword(password, s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.SetPassword hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("auth.SetPassword: %w", err)
	}

	s.log.InfoContext(ctx, "password changed",
		slog.String("user_id", user.ID.String()))
	return nil
}

// ListUsers returns every account.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.ListUsers: %w", err)
	}
	return users, nil
}

// CurrentUser returns the user of the given ID.
func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("auth.CurrentUser: %w", err)
	}
	return user, nil
}
