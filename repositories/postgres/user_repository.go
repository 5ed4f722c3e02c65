package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/dashboard-api/models"
	"github.com/upb/dashboard-api/repositories"
	"go.uber.org/zap"
)

const (
	principalByEmailQuery = `
		SELECT users.id, users.email, roles.name AS role
		FROM users
		JOIN roles ON users.role_id = roles.id
		WHERE users.email = $1
	`

	listUsersQuery = `
		SELECT id, name, email
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
)

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetPrincipalByEmail resolves a login email to its id and role
func (r *UserRepository) GetPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error) {
	principal := &models.Principal{}

	if err := r.db.GetContext(ctx, principal, principalByEmailQuery, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}

	r.logger.Debug("principal resolved",
		zap.Int64("id", principal.ID),
		zap.String("role", string(principal.Role)))
	return principal, nil
}

// List returns one page of users ordered by id
func (r *UserRepository) List(ctx context.Context, page models.PageRequest) ([]models.User, error) {
	users := make([]models.User, 0, page.Limit)

	if err := r.db.SelectContext(ctx, &users, listUsersQuery, page.Limit, page.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	r.logger.Debug("users listed",
		zap.Int("page", page.Page),
		zap.Int("limit", page.Limit),
		zap.Int("count", len(users)))
	return users, nil
}
