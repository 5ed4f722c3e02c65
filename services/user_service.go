package services

import (
	"context"

	"github.com/upb/dashboard-api/models"
	"github.com/upb/dashboard-api/repositories"
	"go.uber.org/zap"
)

// UserService serves the paginated user listing
type UserService struct {
	users       repositories.UserRepository
	maxPageSize int
	logger      *zap.Logger
}

// NewUserService creates a new user service. maxPageSize caps the limit parameter.
func NewUserService(users repositories.UserRepository, maxPageSize int, logger *zap.Logger) *UserService {
	return &UserService{
		users:       users,
		maxPageSize: maxPageSize,
		logger:      logger,
	}
}

// ListUsers returns one page of users ordered by id. The result is never nil.
func (s *UserService) ListUsers(ctx context.Context, page models.PageRequest) ([]models.User, error) {
	if page.Page < 1 || page.OffsetOverflows() {
		return nil, NewInvalidParameter("page", page.Page)
	}
	if !page.Valid(s.maxPageSize) {
		return nil, NewInvalidParameter("limit", page.Limit)
	}

	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, NewStorageUnavailable(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
