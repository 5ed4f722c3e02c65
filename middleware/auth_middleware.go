package middleware

import (
	"net/http"
	"strings"

	"github.com/upb/dashboard-api/config"
	"github.com/upb/dashboard-api/models"
	"github.com/upb/dashboard-api/services"
	"github.com/upb/dashboard-api/token"
	"github.com/upb/dashboard-api/utils"
	"go.uber.org/zap"
)

// TokenDecoder verifies a raw bearer token and returns its claims
type TokenDecoder interface {
	Decode(raw string) (*token.Claims, error)
}

// DecisionRecorder counts gate outcomes
type DecisionRecorder interface {
	RecordGateDecision(outcome string)
}

// Gate outcomes, used as metric labels. Rejections are labelled with their
// services.ErrorType.
const (
	OutcomeAdmitted         = "admitted"
	OutcomeMissingToken     = string(services.ErrorTypeMissingToken)
	OutcomeInvalidToken     = string(services.ErrorTypeInvalidToken)
	OutcomePermissionDenied = string(services.ErrorTypePermissionDenied)
)

// RejectionStatus maps each rejection kind to an HTTP status
type RejectionStatus struct {
	MissingToken     int
	InvalidToken     int
	PermissionDenied int
}

// StatusForMode returns the rejection statuses for a config status mode.
// Unknown modes fall back to compat.
func StatusForMode(mode string) RejectionStatus {
	if mode == config.StatusModeStrict {
		return RejectionStatus{
			MissingToken:     http.StatusUnauthorized,
			InvalidToken:     http.StatusUnauthorized,
			PermissionDenied: http.StatusForbidden,
		}
	}
	return RejectionStatus{
		MissingToken:     http.StatusForbidden,
		InvalidToken:     http.StatusForbidden,
		PermissionDenied: http.StatusUnauthorized,
	}
}

// StatusFor returns the status for a gate rejection error, or 0 when err is
// not a gate rejection.
func (s RejectionStatus) StatusFor(err error) int {
	switch {
	case services.IsMissingTokenError(err):
		return s.MissingToken
	case services.IsInvalidTokenError(err):
		return s.InvalidToken
	case services.IsPermissionDeniedError(err):
		return s.PermissionDenied
	default:
		return 0
	}
}

// AuthMiddleware is the authorization gate in front of protected routes
type AuthMiddleware struct {
	decoder  TokenDecoder
	status   RejectionStatus
	recorder DecisionRecorder
	logger   *zap.Logger
}

// Option configures an AuthMiddleware
type Option func(*AuthMiddleware)

// WithRejectionStatus overrides the rejection status codes
func WithRejectionStatus(status RejectionStatus) Option {
	return func(m *AuthMiddleware) { m.status = status }
}

// WithDecisionRecorder records every gate outcome
func WithDecisionRecorder(recorder DecisionRecorder) Option {
	return func(m *AuthMiddleware) { m.recorder = recorder }
}

// NewAuthMiddleware creates a new AuthMiddleware with compat status codes
func NewAuthMiddleware(decoder TokenDecoder, logger *zap.Logger, opts ...Option) *AuthMiddleware {
	m := &AuthMiddleware{
		decoder: decoder,
		status:  StatusForMode(config.StatusModeCompat),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RequireToken admits requests carrying a valid bearer token whose role equals role.
// An empty role admits any valid token. The admitted principal is stored in the
// request context.
func (m *AuthMiddleware) RequireToken(role models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			raw, ok := extractBearerToken(r)
			if !ok {
				m.logger.Warn("missing token",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path))
				m.reject(w, services.ErrMissingToken)
				return
			}

			claims, err := m.decoder.Decode(raw)
			if err != nil {
				m.logger.Warn("token validation failed",
					zap.String("request_id", requestID),
					zap.Error(err))
				m.reject(w, services.NewInvalidToken(err))
				return
			}

			principal := &models.Principal{ID: claims.ID, Role: models.UserRole(claims.Role)}
			if !principal.HasRole(role) {
				m.logger.Warn("insufficient permissions",
					zap.String("request_id", requestID),
					zap.Int64("user_id", principal.ID),
					zap.String("required_role", string(role)),
					zap.String("role", claims.Role))
				m.reject(w, services.NewPermissionDenied(string(role), claims.Role))
				return
			}

			m.record(OutcomeAdmitted)
			m.logger.Debug("request admitted",
				zap.String("request_id", requestID),
				zap.Int64("user_id", principal.ID),
				zap.String("role", claims.Role))

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
		})
	}
}

// RequireAdmin is RequireToken(models.RoleAdmin)
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireToken(models.RoleAdmin)(next)
}

// reject writes a gate rejection. The outcome label is the error type.
func (m *AuthMiddleware) reject(w http.ResponseWriter, err error) {
	m.record(string(services.GetErrorType(err)))

	status := m.status.StatusFor(err)
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if writeErr := utils.WriteMessage(w, status, services.GetErrorMessage(err)); writeErr != nil {
		m.logger.Error("failed to write rejection", zap.Error(writeErr))
	}
}

func (m *AuthMiddleware) record(outcome string) {
	if m.recorder != nil {
		m.recorder.RecordGateDecision(outcome)
	}
}

// extractBearerToken returns the token from "Authorization: Bearer <token>".
// Any other shape, including extra fields, counts as no token.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	return parts[1], true
}
