package notification

import (
	"fmt"
	"strings"

	"github.com/ai-literacy/toolbox/internal/models"
)

// Addresses holds the mailboxes events without an explicit recipient are sent to
type Addresses struct {
	Admin   string
	Contact string
}

// Message is a rendered e-mail ready for the SMTP sender
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// template placeholders {{1}}..{{n}} are filled from vars in order
type template struct {
	subject string
	body    string
	vars    func(models.NotificationEvent) []string
}

var templates = map[models.NotificationType]template{
	models.NotificationConfirmToSubmitter: {
		subject: "Thank you for your submission!",
		body: "Hello {{1}},\n\nwe have received your tool submission \"{{2}}\" and will review it shortly. " +
			"Thank you for contributing!\n\nAI Literacy Toolbox",
		vars: func(e models.NotificationEvent) []string {
			return []string{e.Name, e.Subject}
		},
	},
	models.NotificationNotifyAdmin: {
		subject: "New Toolbox Submission for Review!",
		body: "A new tool \"{{1}}\" has been submitted by {{2}} <{{3}}>. " +
			"Please review it in the admin panel.\n\nSubmission ID: {{4}}",
		vars: func(e models.NotificationEvent) []string {
			return []string{e.Subject, e.Name, e.ReplyTo, e.SubmissionID}
		},
	},
	models.NotificationStateChanged: {
		subject: "Your submission \"{{2}}\" was {{3}}",
		body:    "Hello {{1}},\n\nyour submission \"{{2}}\" has been {{3}} by our moderators.{{4}}\n\nAI Literacy Toolbox",
		vars: func(e models.NotificationEvent) []string {
			notes := ""
			if e.Notes != "" {
				notes = "\n\nModerator notes:\n" + e.Notes
			}
			return []string{e.Name, e.Subject, string(e.State), notes}
		},
	},
	models.NotificationContactMessage: {
		subject: "New Contact Message from {{1}}",
		body:    "From: {{1}} <{{2}}>\n\nMessage:\n{{3}}",
		vars: func(e models.NotificationEvent) []string {
			return []string{e.Name, e.ReplyTo, e.Message}
		},
	},
}

// Render turns an event into an e-mail, resolving the recipient from addrs when the event has none
func Render(event models.NotificationEvent, addrs Addresses) (*Message, error) {
	tpl, ok := templates[event.Type]
	if !ok {
		return nil, fmt.Errorf("unknown notification type: %s", event.Type)
	}

	to := event.To
	if to == "" {
		switch event.Type {
		case models.NotificationNotifyAdmin:
			to = addrs.Admin
		case models.NotificationContactMessage:
			to = addrs.Contact
		}
	}
	if to == "" {
		return nil, fmt.Errorf("no recipient for %s notification", event.Type)
	}

	// strings.Replacer substitutes in one pass, so placeholders inside user text stay literal
	values := tpl.vars(event)
	pairs := make([]string, 0, len(values)*2)
	for i, v := range values {
		pairs = append(pairs, fmt.Sprintf("{{%d}}", i+1), v)
	}
	replacer := strings.NewReplacer(pairs...)

	return &Message{
		To:      to,
		ReplyTo: event.ReplyTo,
		Subject: replacer.Replace(tpl.subject),
		Body:    replacer.Replace(tpl.body),
	}, nil
}
