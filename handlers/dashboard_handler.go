package handlers

import (
	"net/http"
	"time"

	"github.com/upb/dashboard-api/internal/view"
	"github.com/upb/dashboard-api/middleware"
	"github.com/upb/dashboard-api/models"
	"github.com/upb/dashboard-api/services"
	"github.com/upb/dashboard-api/utils"
	"go.uber.org/zap"
)

// Renderer executes a named HTML template
type Renderer interface {
	Render(w http.ResponseWriter, name string, data view.TemplateData) error
}

// DashboardHandler serves the admin dashboard page
type DashboardHandler struct {
	renderer Renderer
	logger   *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(renderer Renderer, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		renderer: renderer,
		logger:   logger,
	}
}

// HandleDashboard handles GET /dashboard
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	data := view.TemplateData{
		Title:        "Dashboard",
		Principal:    middleware.PrincipalFromContext(r.Context()),
		DefaultLimit: models.DefaultLimit,
		RenderedAt:   time.Now(),
	}

	if err := h.renderer.Render(w, "dashboard.html", data); err != nil {
		h.logger.Error("failed to render dashboard",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, services.MsgInternal)
	}
}
