package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error      string                `json:"error"`
	Violations []apperrors.Violation `json:"violations,omitempty"`
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondServiceError maps a service error onto its HTTP status.
// fallback is the message used for unexpected failures so internals are not leaked.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		verr  *apperrors.ValidationError
		terr  *apperrors.IllegalTransitionError
		derr  *apperrors.DeliveryError
		maxer *http.MaxBytesError
	)

	switch {
	case errors.As(err, &verr):
		h.RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Violations: verr.Violations})
	case errors.Is(err, apperrors.ErrInvalidRating), errors.Is(err, apperrors.ErrUnknownStatus):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &terr):
		h.RespondError(w, http.StatusConflict, terr.Error())
	case errors.As(err, &maxer):
		h.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.As(err, &derr):
		h.Logger.Error(fallback, zap.String("request_id", middleware.GetRequestID(r.Context())), zap.Error(err))
		h.RespondError(w, http.StatusBadGateway, fallback)
	default:
		h.Logger.Error(fallback, zap.String("request_id", middleware.GetRequestID(r.Context())), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a JSON body into dst and reports malformed input as a 400
func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
