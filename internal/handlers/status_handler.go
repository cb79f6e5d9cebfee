package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// StatusHandler reports API health
type StatusHandler struct {
	BaseHandler
	checks  map[string]HealthCheck
	timeout time.Duration
}

// NewStatusHandler creates a status handler running the given named checks
func NewStatusHandler(checks map[string]HealthCheck, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		BaseHandler: BaseHandler{Logger: logger},
		checks:      checks,
		timeout:     3 * time.Second,
	}
}

// RegisterRoutes registers the status route
func (h *StatusHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.Status)
}

// StatusResponse is returned by GET /status
type StatusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Status handles GET /status
// @Summary API health
// @Description Report whether the API and its dependencies are reachable
// @Tags status
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} StatusResponse
// @Router /status [get]
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := StatusResponse{Status: "API is healthy", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.Logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = "unavailable"
			resp.Status = "API is unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	h.RespondJSON(w, status, resp)
}
