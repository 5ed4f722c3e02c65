package handlers

import (
	"net/http"

	"github.com/upb/dashboard-api/services"
	"github.com/upb/dashboard-api/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses.
// Only the domain error's client message is written; causes are logged.
// Gate rejections use the compat statuses; the gate itself applies the
// configured mode through middleware.RejectionStatus.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	var writeErr error
	switch {
	case services.IsMissingTokenError(err), services.IsInvalidTokenError(err):
		logger.Debug("token rejected", zap.Error(err))
		writeErr = utils.WriteForbidden(w, services.GetErrorMessage(err))

	case services.IsPermissionDeniedError(err):
		logger.Debug("permission denied",
			zap.Error(err),
			zap.Any("details", services.GetErrorDetails(err)))
		writeErr = utils.WriteUnauthorized(w, services.MsgPermissionDenied)

	case services.IsUnknownPrincipalError(err):
		logger.Debug("unknown principal", zap.Error(err))
		writeErr = utils.WriteUnauthorized(w, services.MsgUnknownPrincipal)

	case services.IsInvalidParameterError(err):
		logger.Debug("invalid parameter",
			zap.Error(err),
			zap.Any("details", services.GetErrorDetails(err)))
		writeErr = utils.WriteBadRequest(w, services.MsgInvalidParameter)

	case services.IsStorageUnavailableError(err):
		logger.Error("storage unavailable", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, services.MsgInternal)

	case services.IsInternalError(err):
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, services.MsgInternal)

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w, services.MsgInternal)
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}
