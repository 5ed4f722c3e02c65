package repositories

import (
	"context"
	"errors"

	"github.com/upb/dashboard-api/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// UserRepository handles user and principal lookups
type UserRepository interface {
	// GetPrincipalByEmail returns the id and role name of the user with email.
	// Returns ErrNotFound when no user matches.
	GetPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error)

	// List returns one page of users ordered by id ascending.
	// The result is never nil; an empty page yields an empty slice.
	List(ctx context.Context, page models.PageRequest) ([]models.User, error)
}

// Repositories groups all repository implementations
type Repositories struct {
	Users UserRepository
}
