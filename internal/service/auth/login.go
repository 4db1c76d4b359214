package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/precast-backend/internal/auth"
	"github.com/heartmarshall/precast-backend/internal/domain"
	"github.com/heartmarshall/precast-backend/pkg/ctxutil"
)

// Login authenticates a user with email + password and issues an access
// token. Returns ErrUnauthorized if the email is unknown or the password
// is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// ValidateToken validates an access token and returns the operator it was
// issued for.
func (s *Service) ValidateToken(ctx context.Context, token string) (ctxutil.Identity, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return ctxutil.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return ctxutil.Identity{UserID: userID, Role: role.String()}, nil
}
