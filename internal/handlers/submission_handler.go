package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// SubmissionService is the interface that wraps the submission lifecycle operations.
type SubmissionService interface {
	// Method Create validates a raw payload and stores it as a pending submission.
	//
	// Confirmation and admin notifications are dispatched after the write; their failures are
	// returned as warnings in the result and never undo the write.
	// If the payload breaks an entry rule, a *apperrors.ValidationError listing every violation is returned.
	Create(ctx context.Context, payload *models.SubmissionPayload) (*models.SubmissionResult, error)
	// Method GetAll retrieves every submission in insertion order, regardless of review status.
	GetAll(ctx context.Context) ([]models.Submission, error)
	// Method GetByID retrieves a single submission.
	//
	// Returns apperrors.ErrNotFound if no submission has the given id.
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	// Method Rate records one star vote (1 to 5, fractional allowed) and returns the updated submission.
	//
	// Concurrent votes for the same submission are never lost.
	Rate(ctx context.Context, req *models.RateRequest) (*models.Submission, error)
	// Method Review moves a pending submission to approved or rejected.
	//
	// Terminal states reject further transitions with *apperrors.IllegalTransitionError.
	Review(ctx context.Context, req *models.ReviewRequest) (*models.SubmissionResult, error)
}

// SubmissionHandler handles HTTP requests for toolbox submissions
type SubmissionHandler struct {
	BaseHandler
	service SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(svc SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all submission routes
func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/add-entry", h.AddEntry)
	r.Get("/get-data", h.GetData)
	r.Get("/get-entry/{id}", h.GetEntry)
	r.With(httprate.LimitByIP(30, time.Minute)).Patch("/rate-toolbox", h.RateToolbox)
	r.Patch("/review-entry", h.ReviewEntry)
}

// AddEntryResponse is returned by POST /add-entry
type AddEntryResponse struct {
	Message  string             `json:"message"`
	Tool     *models.Submission `json:"tool"`
	Warnings []string           `json:"warnings"`
}

// ToolboxResponse is returned by the PATCH endpoints
type ToolboxResponse struct {
	Success  bool               `json:"success"`
	Toolbox  *models.Submission `json:"toolbox"`
	Warnings []string           `json:"warnings,omitempty"`
}

// AddEntry handles POST /add-entry
// @Summary Submit a tool
// @Description Validate and store a new toolbox submission in pending state. The submitter and the admin are notified.
// @Tags submissions
// @Accept json
// @Produce json
// @Param entry body models.SubmissionPayload true "Submission payload; tags may be an array or a comma-separated string"
// @Success 201 {object} AddEntryResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse
// @Router /add-entry [post]
func (h *SubmissionHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var payload models.SubmissionPayload
	if !h.decodeJSON(w, r, &payload) {
		return
	}

	result, err := h.service.Create(r.Context(), &payload)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to submit tool")
		return
	}

	h.RespondJSON(w, http.StatusCreated, AddEntryResponse{
		Message:  "Tool submitted successfully!",
		Tool:     result.Submission,
		Warnings: result.Warnings,
	})
}

// GetData handles GET /get-data
// @Summary List submissions
// @Description Get every submission in insertion order, regardless of review status
// @Tags submissions
// @Produce json
// @Success 200 {array} models.Submission
// @Failure 500 {object} ErrorResponse
// @Router /get-data [get]
func (h *SubmissionHandler) GetData(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.GetAll(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to get data")
		return
	}

	h.RespondJSON(w, http.StatusOK, subs)
}

// GetEntry handles GET /get-entry/{id}
// @Summary Get submission
// @Description Get a single submission by its id
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /get-entry/{id} [get]
func (h *SubmissionHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to get entry")
		return
	}

	h.RespondJSON(w, http.StatusOK, sub)
}

// RateToolbox handles PATCH /rate-toolbox
// @Summary Rate a submission
// @Description Record one vote between 1 and 5 stars and return the recomputed rating
// @Tags submissions
// @Accept json
// @Produce json
// @Param vote body models.RateRequest true "Vote"
// @Success 200 {object} ToolboxResponse
// @Failure 400 {object} ErrorResponse "Missing field or rating out of range"
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rate-toolbox [patch]
func (h *SubmissionHandler) RateToolbox(w http.ResponseWriter, r *http.Request) {
	var req models.RateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	sub, err := h.service.Rate(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to rate toolbox")
		return
	}

	h.RespondJSON(w, http.StatusOK, ToolboxResponse{Success: true, Toolbox: sub})
}

// ReviewEntry handles PATCH /review-entry
// @Summary Review a submission
// @Description Approve or reject a pending submission. The uploader is notified about the decision.
// @Tags moderation
// @Accept json
// @Produce json
// @Param review body models.ReviewRequest true "Review decision"
// @Success 200 {object} ToolboxResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Submission already reviewed"
// @Failure 500 {object} ErrorResponse
// @Router /review-entry [patch]
func (h *SubmissionHandler) ReviewEntry(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Review(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to review entry")
		return
	}

	h.RespondJSON(w, http.StatusOK, ToolboxResponse{
		Success:  true,
		Toolbox:  result.Submission,
		Warnings: result.Warnings,
	})
}
