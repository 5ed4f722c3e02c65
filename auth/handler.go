package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upb/dashboard-api/handlers"
	"github.com/upb/dashboard-api/middleware"
	"github.com/upb/dashboard-api/services"
	"github.com/upb/dashboard-api/utils"
	"go.uber.org/zap"
)

const maxLoginBodyBytes = 1 << 16

// Login results, used as metric labels
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// TokenIssuer issues a bearer token for a login email.
type TokenIssuer interface {
	Login(ctx context.Context, email string) (string, error)
}

// LoginRecorder counts login attempts.
type LoginRecorder interface {
	RecordLogin(result string)
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// Handler handles token login.
type Handler struct {
	issuer   TokenIssuer
	recorder LoginRecorder
	logger   *zap.Logger
}

// NewHandler creates a new auth handler. recorder may be nil.
func NewHandler(issuer TokenIssuer, recorder LoginRecorder, logger *zap.Logger) *Handler {
	return &Handler{
		issuer:   issuer,
		recorder: recorder,
		logger:   logger,
	}
}

// HandleLogin handles POST /login.
// A missing, malformed or unknown email is answered with 401 {"message":"Invalid user"}.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))

	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)).Decode(&req); err != nil {
		logger.Debug("invalid login body", zap.Error(err))
		h.record(ResultRejected)
		_ = utils.WriteBadRequest(w, services.MsgInvalidBody)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		logger.Debug("login email rejected", zap.Any("fields", utils.GetValidationFields(err)))
		h.record(ResultRejected)
		_ = utils.WriteUnauthorized(w, services.MsgUnknownPrincipal)
		return
	}

	tok, err := h.issuer.Login(r.Context(), req.Email)
	if err != nil {
		if services.IsUnknownPrincipalError(err) {
			h.record(ResultRejected)
		} else {
			h.record(ResultError)
		}
		handlers.HandleServiceError(w, err, logger)
		return
	}

	h.record(ResultSuccess)
	if err := utils.WriteOK(w, utils.TokenResponse{Token: tok}); err != nil {
		logger.Error("failed to write token response", zap.Error(err))
	}
}

func (h *Handler) record(result string) {
	if h.recorder != nil {
		h.recorder.RecordLogin(result)
	}
}
