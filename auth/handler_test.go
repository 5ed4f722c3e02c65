package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/dashboard-api/services"
	"go.uber.org/zap/zaptest"
)

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Login(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type loginCounter map[string]int

func (c loginCounter) RecordLogin(result string) { c[result]++ }

func postLogin(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)
	return w
}

func bodyOf(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestHandleLogin(t *testing.T) {
	t.Run("known email returns token", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		counts := loginCounter{}
		h := NewHandler(issuer, counts, zaptest.NewLogger(t))

		issuer.On("Login", mock.Anything, "parhanganteng@example.com").Return("jwt-value", nil)

		w := postLogin(t, h, `{"email":"parhanganteng@example.com"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, map[string]string{"token": "jwt-value"}, bodyOf(t, w))
		assert.Equal(t, 1, counts[ResultSuccess])
		issuer.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		counts := loginCounter{}
		h := NewHandler(issuer, counts, zaptest.NewLogger(t))

		issuer.On("Login", mock.Anything, "ghost@example.com").Return("", services.NewUnknownPrincipal(nil))

		w := postLogin(t, h, `{"email":"ghost@example.com"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid user", bodyOf(t, w)["message"])
		assert.Equal(t, 1, counts[ResultRejected])
	})

	t.Run("missing or malformed email never reaches the issuer", func(t *testing.T) {
		bodies := []string{`{}`, `{"email":""}`, `{"email":"not-an-email"}`, `{"name":"x"}`}

		for _, b := range bodies {
			t.Run(b, func(t *testing.T) {
				issuer := new(MockTokenIssuer)
				h := NewHandler(issuer, nil, zaptest.NewLogger(t))

				w := postLogin(t, h, b)

				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.Equal(t, "Invalid user", bodyOf(t, w)["message"])
				issuer.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("non json body", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		h := NewHandler(issuer, nil, zaptest.NewLogger(t))

		for _, b := range []string{"", "email=a@example.com", `{"email":42}`} {
			w := postLogin(t, h, b)
			assert.Equal(t, http.StatusBadRequest, w.Code, b)
			assert.Equal(t, "Invalid request body", bodyOf(t, w)["message"])
		}
		issuer.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("storage failure hides cause", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		counts := loginCounter{}
		h := NewHandler(issuer, counts, zaptest.NewLogger(t))

		issuer.On("Login", mock.Anything, "a@example.com").
			Return("", services.NewStorageUnavailable(errors.New("dial tcp 10.0.0.5:5432: connection refused")))

		w := postLogin(t, h, `{"email":"a@example.com"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
		assert.Equal(t, "Internal server error", bodyOf(t, w)["message"])
		assert.Equal(t, 1, counts[ResultError])
	})
}
