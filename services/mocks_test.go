package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/upb/dashboard-api/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error) {
	args := m.Called(ctx, email)
	if p := args.Get(0); p != nil {
		return p.(*models.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page models.PageRequest) ([]models.User, error) {
	args := m.Called(ctx, page)
	if u := args.Get(0); u != nil {
		return u.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTokenEncoder struct {
	mock.Mock
}

func (m *MockTokenEncoder) Encode(id int64, role string) (string, error) {
	args := m.Called(id, role)
	return args.String(0), args.Error(1)
}
