package services

import (
	"context"
	"errors"

	"github.com/upb/dashboard-api/repositories"
	"go.uber.org/zap"
)

// TokenEncoder signs a principal into a bearer token
type TokenEncoder interface {
	Encode(id int64, role string) (string, error)
}

// AuthService issues tokens for known users
type AuthService struct {
	users   repositories.UserRepository
	encoder TokenEncoder
	logger  *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, encoder TokenEncoder, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		encoder: encoder,
		logger:  logger,
	}
}

// Login resolves email to a principal and returns a signed token for it.
// Unknown emails yield ErrUnknownPrincipal.
func (s *AuthService) Login(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", NewUnknownPrincipal(nil)
	}

	principal, err := s.users.GetPrincipalByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", NewUnknownPrincipal(err)
		}
		return "", NewStorageUnavailable(err)
	}

	tok, err := s.encoder.Encode(principal.ID, string(principal.Role))
	if err != nil {
		return "", WrapInternal("failed to issue token", err)
	}

	s.logger.Info("token issued",
		zap.Int64("user_id", principal.ID),
		zap.String("role", string(principal.Role)))
	return tok, nil
}
