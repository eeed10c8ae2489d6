package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the wire format for errors
type ErrorResponse struct {
	Success bool       `json:"success"`
	Error   *ErrorBody `json:"error"`
}

// ErrorBody carries the client-facing error fields
type ErrorBody struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HTTPHandler translates errors into HTTP responses
type HTTPHandler struct {
	logger *zap.Logger
}

// NewHTTPHandler creates an error handler
func NewHTTPHandler(logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{logger: logger}
}

// Respond writes the error to the response writer with the mapped status code.
// Validation and authorization errors carry enough detail to correct the
// request; internal causes are logged but never serialized.
func (h *HTTPHandler) Respond(w http.ResponseWriter, r *http.Request, err error) {
	appErr := h.normalize(r.Context(), err)

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("type", string(appErr.Type)),
			zap.Error(err),
		)
	} else {
		h.logger.Debug("request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("type", string(appErr.Type)),
			zap.String("code", appErr.Code),
		)
	}

	body := ErrorResponse{
		Success: false,
		Error: &ErrorBody{
			Type:    appErr.Type,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	json.NewEncoder(w).Encode(body)
}

// normalize maps arbitrary errors onto the AppError taxonomy
func (h *HTTPHandler) normalize(ctx context.Context, err error) *AppError {
	if appErr := GetAppError(err); appErr != nil {
		if appErr.HTTPStatus == 0 {
			appErr.HTTPStatus = http.StatusInternalServerError
		}
		// Infrastructure detail stays server-side
		if appErr.Type == ErrorTypeDatabase || appErr.Type == ErrorTypeExternal {
			return NewInternalError("internal error")
		}
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewTimeoutError("request")
	}

	return NewInternalError("internal error")
}
