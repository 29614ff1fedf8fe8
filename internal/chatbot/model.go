package chatbot

import (
	"context"
	"time"

	"github.com/nekogravitycat/auto-service-backend/internal/schedule"
)

// Intent classifies the purpose of a chat message.
type Intent string

const (
	IntentAppointmentQuery Intent = "appointment_query"
	IntentGreeting         Intent = "greeting"
	IntentGeneralQuestion  Intent = "general_question"
	IntentOther            Intent = "other"
)

// ValidIntent reports whether i is one of the known intents.
func ValidIntent(i Intent) bool {
	switch i {
	case IntentAppointmentQuery, IntentGreeting, IntentGeneralQuestion, IntentOther:
		return true
	}
	return false
}

// ParsedIntent is the structured result of intent extraction. The language
// model is not guaranteed to produce well-formed values: Date may be empty,
// non-ISO, or an impossible calendar date, and must be validated before use.
type ParsedIntent struct {
	Intent       Intent
	Date         string // ISO-8601 date (YYYY-MM-DD), empty when unknown
	FriendlyDate string // human-readable form, e.g. "tomorrow (Nov 12)"
}

// ReplyContext carries everything the reply composer needs to produce a
// natural-language answer. Availability is nil for non-appointment intents.
type ReplyContext struct {
	Intent       Intent
	Message      string
	FriendlyDate string
	Availability *schedule.Availability
}

// IntentExtractor turns a free-text message into a ParsedIntent. The current
// date is passed so relative terms like "tomorrow" can be resolved.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, message string, today time.Time) (ParsedIntent, error)
}

// ReplyComposer produces a natural-language reply from the given context.
type ReplyComposer interface {
	ComposeReply(ctx context.Context, rc ReplyContext) (string, error)
}
