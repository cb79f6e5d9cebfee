package models

// NotificationType identifies what a notification event is about
type NotificationType string

const (
	NotificationConfirmToSubmitter NotificationType = "confirm_to_submitter"
	NotificationNotifyAdmin        NotificationType = "notify_admin"
	NotificationStateChanged       NotificationType = "state_changed"
	NotificationContactMessage     NotificationType = "contact_message"
)

// NotificationEvent describes a message that must be delivered by the delivery worker.
// An empty To means the worker addresses the configured admin or contact mailbox.
type NotificationEvent struct {
	Type         NotificationType `json:"type"`
	To           string           `json:"to,omitempty"`
	Subject      string           `json:"subject,omitempty"`
	SubmissionID string           `json:"submissionId,omitempty"`
	Name         string           `json:"name,omitempty"`
	ReplyTo      string           `json:"replyTo,omitempty"`
	From         ReviewStatus     `json:"from,omitempty"`
	State        ReviewStatus     `json:"state,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Message      string           `json:"message,omitempty"`
}

// ContactRequest represents the body of POST /api/send-email-contact
type ContactRequest struct {
	Name      string `json:"name"`
	EmailFrom string `json:"emailFrom"`
	Message   string `json:"message"`
}

// SubmitEmailRequest represents the body of POST /api/send-email-submit
type SubmitEmailRequest struct {
	To    string `json:"to"`
	Title string `json:"title,omitempty"`
}
