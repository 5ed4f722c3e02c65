package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/upb/dashboard-api/middleware"
	"github.com/upb/dashboard-api/models"
	"github.com/upb/dashboard-api/services"
	"github.com/upb/dashboard-api/utils"
	"go.uber.org/zap"
)

// UserLister returns one page of users
type UserLister interface {
	ListUsers(ctx context.Context, page models.PageRequest) ([]models.User, error)
}

// UserHandler serves the user listing
type UserHandler struct {
	users  UserLister
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserLister, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// HandleListUsers handles GET /api/users?page=&limit=.
// The body is a bare JSON array of {"id","name","email"}.
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))

	page, err := parsePageRequest(r)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	users, err := h.users.ListUsers(r.Context(), page)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	if err := utils.WriteOK(w, users); err != nil {
		logger.Error("failed to write users response", zap.Error(err))
	}
}

// parsePageRequest reads page and limit, applying defaults for absent values
func parsePageRequest(r *http.Request) (models.PageRequest, error) {
	page := models.NewPageRequest()
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, services.NewInvalidParameter("page", v)
		}
		page.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, services.NewInvalidParameter("limit", v)
		}
		page.Limit = n
	}

	if err := utils.ValidateStruct(page); err != nil {
		return page, services.NewInvalidParameter("pagination", utils.GetValidationFields(err))
	}
	return page, nil
}
