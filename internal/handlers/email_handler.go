package handlers

import (
	"context"
	"net/http"

	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EmailService wraps the operations that only send mail.
type EmailService interface {
	// Method SendSubmissionEmails re-sends the submitter confirmation and the admin notice.
	//
	// Unlike submission creation, a delivery failure is returned as an error.
	SendSubmissionEmails(ctx context.Context, req *models.SubmitEmailRequest) error
	// Method SendContactMessage forwards a visitor message to the contact mailbox.
	SendContactMessage(ctx context.Context, req *models.ContactRequest) error
}

// EmailHandler handles the e-mail only endpoints
type EmailHandler struct {
	BaseHandler
	service EmailService
}

// NewEmailHandler creates a new e-mail handler
func NewEmailHandler(svc EmailService, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers the e-mail routes
func (h *EmailHandler) RegisterRoutes(r chi.Router) {
	r.Post("/send-email-submit", h.SendEmailSubmit)
	r.Post("/send-email-contact", h.SendEmailContact)
}

// SendEmailSubmit handles POST /send-email-submit
// @Summary Re-send submission e-mails
// @Description Queue the submission confirmation for "to" and the admin notice
// @Tags email
// @Accept json
// @Produce json
// @Param request body models.SubmitEmailRequest true "Recipient"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Delivery queue unavailable"
// @Router /send-email-submit [post]
func (h *EmailHandler) SendEmailSubmit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitEmailRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SendSubmissionEmails(r.Context(), &req); err != nil {
		h.RespondServiceError(w, r, err, "failed to send emails")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Emails sent successfully"})
}

// SendEmailContact handles POST /send-email-contact
// @Summary Send a contact message
// @Description Forward a visitor message to the contact mailbox
// @Tags email
// @Accept json
// @Produce json
// @Param request body models.ContactRequest true "Contact message"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Delivery queue unavailable"
// @Router /send-email-contact [post]
func (h *EmailHandler) SendEmailContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SendContactMessage(r.Context(), &req); err != nil {
		h.RespondServiceError(w, r, err, "failed to send message")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully"})
}
