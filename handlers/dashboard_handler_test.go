package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/dashboard-api/internal/view"
	"github.com/upb/dashboard-api/middleware"
	"github.com/upb/dashboard-api/models"
	"go.uber.org/zap"
)

type failingRenderer struct{}

func (failingRenderer) Render(http.ResponseWriter, string, view.TemplateData) error {
	return errors.New("template: boom")
}

func TestHandleDashboard(t *testing.T) {
	t.Run("renders page for principal", func(t *testing.T) {
		engine, err := view.NewEngine()
		require.NoError(t, err)
		h := NewDashboardHandler(engine, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req = req.WithContext(middleware.WithPrincipal(req.Context(), &models.Principal{ID: 600001, Role: models.RoleAdmin}))
		w := httptest.NewRecorder()

		h.HandleDashboard(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "Admin Dashboard")
		assert.Contains(t, w.Body.String(), "#600001")
	})

	t.Run("render failure is a server error", func(t *testing.T) {
		h := NewDashboardHandler(failingRenderer{}, zap.NewNop())

		w := httptest.NewRecorder()
		h.HandleDashboard(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
	})
}
