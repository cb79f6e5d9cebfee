// Package notification decides which messages a store mutation must produce and
// moves them to the delivery worker. Nothing in the trigger performs I/O.
package notification

import (
	"iter"
	"slices"

	"github.com/ai-literacy/toolbox/internal/models"
)

// OnSubmissionCreated yields the confirmation for the submitter followed by the admin notice
func OnSubmissionCreated(sub *models.Submission) iter.Seq[models.NotificationEvent] {
	return SubmissionReceived(sub.ID, sub.UploaderEmail, sub.UploaderName, sub.Title)
}

// SubmissionReceived yields the two submission e-mails for an arbitrary recipient
func SubmissionReceived(submissionID, to, name, title string) iter.Seq[models.NotificationEvent] {
	return slices.Values([]models.NotificationEvent{
		{
			Type:         models.NotificationConfirmToSubmitter,
			To:           to,
			Subject:      title,
			SubmissionID: submissionID,
			Name:         name,
		},
		{
			Type:         models.NotificationNotifyAdmin,
			Subject:      title,
			SubmissionID: submissionID,
			Name:         name,
			ReplyTo:      to,
		},
	})
}

// OnStateChanged yields the single event telling the submitter about a moderation decision
func OnStateChanged(sub *models.Submission, from, to models.ReviewStatus) iter.Seq[models.NotificationEvent] {
	return slices.Values([]models.NotificationEvent{
		{
			Type:         models.NotificationStateChanged,
			To:           sub.UploaderEmail,
			Subject:      sub.Title,
			SubmissionID: sub.ID,
			Name:         sub.UploaderName,
			From:         from,
			State:        to,
			Notes:        sub.ReviewNotes,
		},
	})
}

// OnContactMessage yields the event forwarding a contact form message to the contact mailbox
func OnContactMessage(req *models.ContactRequest) iter.Seq[models.NotificationEvent] {
	return slices.Values([]models.NotificationEvent{
		{
			Type:    models.NotificationContactMessage,
			Name:    req.Name,
			ReplyTo: req.EmailFrom,
			Message: req.Message,
		},
	})
}
