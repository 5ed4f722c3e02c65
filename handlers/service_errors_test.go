package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upb/dashboard-api/services"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"missing token", services.ErrMissingToken, http.StatusForbidden, `{"message":"Token is missing!"}`},
		{"invalid token", services.NewInvalidToken(errors.New("bad signature")), http.StatusForbidden, `{"message":"Token is invalid!"}`},
		{"permission denied", services.NewPermissionDenied("admin", "user"), http.StatusUnauthorized, `{"message":"Permission denied"}`},
		{"unknown principal", services.NewUnknownPrincipal(nil), http.StatusUnauthorized, `{"message":"Invalid user"}`},
		{"invalid parameter", services.NewInvalidParameter("page", 0), http.StatusBadRequest, `{"message":"Invalid pagination parameters"}`},
		{"storage", services.NewStorageUnavailable(errors.New("secret dsn")), http.StatusInternalServerError, `{"message":"Internal server error"}`},
		{"internal", services.WrapInternal("sign", errors.New("boom")), http.StatusInternalServerError, `{"message":"Internal server error"}`},
		{"plain error", errors.New("unexpected"), http.StatusInternalServerError, `{"message":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleServiceError(w, tt.err, zap.NewNop())

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestHandleServiceError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	HandleServiceError(w, nil, zap.NewNop())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
