package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntentPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ParsedIntent
	}{
		{
			name: "plain JSON",
			raw:  `{"intent": "appointment_query", "date": "2025-11-12", "friendlyDate": "Wednesday, Nov 12"}`,
			want: ParsedIntent{Intent: IntentAppointmentQuery, Date: "2025-11-12", FriendlyDate: "Wednesday, Nov 12"},
		},
		{
			name: "markdown fenced JSON",
			raw:  "```json\n{\"intent\": \"greeting\", \"date\": null, \"friendlyDate\": null}\n```",
			want: ParsedIntent{Intent: IntentGreeting},
		},
		{
			name: "JSON wrapped in prose",
			raw:  `Sure! Here is the classification: {"intent": "general_question", "date": null, "friendlyDate": null} Hope that helps.`,
			want: ParsedIntent{Intent: IntentGeneralQuestion},
		},
		{
			name: "date as the string null",
			raw:  `{"intent": "greeting", "date": "null", "friendlyDate": "null"}`,
			want: ParsedIntent{Intent: IntentGreeting},
		},
		{
			name: "not JSON at all",
			raw:  "I'm sorry, I cannot classify that message.",
			want: ParsedIntent{Intent: IntentOther},
		},
		{
			name: "truncated JSON",
			raw:  `{"intent": "appointment_query", "date": "2025-`,
			want: ParsedIntent{Intent: IntentOther},
		},
		{
			name: "unknown intent value",
			raw:  `{"intent": "book_now", "date": "2025-11-12", "friendlyDate": null}`,
			want: ParsedIntent{Intent: IntentOther},
		},
		{
			name: "empty string",
			raw:  "",
			want: ParsedIntent{Intent: IntentOther},
		},
		{
			name: "whitespace around fields",
			raw:  `{"intent": " appointment_query", "date": " 2025-11-12 ", "friendlyDate": null}`,
			want: ParsedIntent{Intent: IntentAppointmentQuery, Date: "2025-11-12"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIntentPayload(tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}
