package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/dashboard-api/models"
	"go.uber.org/zap"
)

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("returns repository page", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, 1000, zap.NewNop())
		page := models.PageRequest{Page: 2, Limit: 2}
		want := []models.User{{ID: 3, Name: "C", Email: "c@example.com"}, {ID: 4, Name: "D", Email: "d@example.com"}}

		repo.On("List", ctx, page).Return(want, nil)

		got, err := svc.ListUsers(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("nil page becomes empty slice", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, 1000, zap.NewNop())

		repo.On("List", ctx, mock.Anything).Return(nil, nil)

		got, err := svc.ListUsers(ctx, models.NewPageRequest())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("invalid pages never reach storage", func(t *testing.T) {
		tests := []struct {
			name  string
			page  models.PageRequest
			param string
		}{
			{"page zero", models.PageRequest{Page: 0, Limit: 50}, "page"},
			{"negative page", models.PageRequest{Page: -1, Limit: 50}, "page"},
			{"limit zero", models.PageRequest{Page: 1, Limit: 0}, "limit"},
			{"limit over max", models.PageRequest{Page: 1, Limit: 1001}, "limit"},
			{"offset overflows", models.PageRequest{Page: 4611686018427387905, Limit: 50}, "page"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := new(MockUserRepository)
				svc := NewUserService(repo, 1000, zap.NewNop())

				_, err := svc.ListUsers(ctx, tt.page)
				assert.ErrorIs(t, err, ErrInvalidParameter)
				assert.Contains(t, GetErrorDetails(err), tt.param)
				repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, 1000, zap.NewNop())

		repo.On("List", ctx, mock.Anything).Return(nil, sql.ErrConnDone)

		_, err := svc.ListUsers(ctx, models.NewPageRequest())
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}
