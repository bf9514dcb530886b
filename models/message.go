package models

import (
	"strings"
	"time"
)

// Message kinds
const (
	MessageSystem = "system"
	MessageAdmin  = "admin"
	MessageUser   = "user"
)

// Message visibility choices on the composer
const (
	VisibilityToApplicant = "to-applicant"
	VisibilityInternal    = "internal"
)

// CannedResponses are the quick replies offered on the composer
var CannedResponses = []string{
	"Please upload a clearer copy of your document.",
	"Your application is being reviewed. We will contact you shortly.",
	"Additional documentation is required. Please check your email.",
	"Your application has been approved. Next steps will be sent via email.",
}

// Message is one entry in an application's secure message thread
type Message struct {
	ID                 string    `json:"id"`
	ApplicationID      string    `json:"application_id"`
	Sender             string    `json:"sender"`
	Body               string    `json:"body"`
	Kind               string    `json:"kind"`
	VisibleToApplicant bool      `json:"visible_to_applicant"`
	CreatedAt          time.Time `json:"created_at"`
}

// MessageForm represents the composer input
type MessageForm struct {
	Body       string
	Visibility string
}

// Validate requires a non-blank body and a known visibility
func (f *MessageForm) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(f.Body) == "" {
		errs.add("body", "Message cannot be empty")
	} else if len(f.Body) > 4000 {
		errs.add("body", "Message must be less than 4000 characters")
	}

	switch f.Visibility {
	case VisibilityToApplicant, VisibilityInternal:
	default:
		errs.add("visibility", "Choose who can see the message")
	}

	return errs
}

// FilterMessages keeps messages matching the thread filter ("all", "to-applicant", "internal")
func FilterMessages(messages []Message, filter string) []Message {
	if filter != VisibilityToApplicant && filter != VisibilityInternal {
		return messages
	}
	out := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.VisibleToApplicant == (filter == VisibilityToApplicant) {
			out = append(out, m)
		}
	}
	return out
}
