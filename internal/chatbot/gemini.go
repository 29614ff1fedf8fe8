package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/nekogravitycat/auto-service-backend/internal/schedule"
)

// Gemini implements IntentExtractor and ReplyComposer on top of Google's
// Gemini API. A single client is constructed at startup and injected into
// the chat service.
type Gemini struct {
	client  *genai.Client
	modelID string
}

func NewGemini(ctx context.Context, apiKey, modelID string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chatbot: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("chatbot: failed to create gemini client: %w", err)
	}

	return &Gemini{client: client, modelID: modelID}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// generate runs a single-turn completion and returns the concatenated text
// parts of the first candidate.
func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelID)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("chatbot: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("chatbot: gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

const intentPromptTemplate = `You are an intent classifier for an automobile service station's chat assistant.
Today's date is %s (%s).

Classify the user's message into exactly one intent:
- "appointment_query": the user asks about appointment availability, open time slots, or booking for a date
- "greeting": a simple greeting with no question
- "general_question": a question about the service station not tied to a date
- "other": anything else

If the message refers to a date (absolute like "November 12" or relative like
"tomorrow" or "next Friday"), resolve it against today's date.

Respond with ONLY a JSON object, no markdown, no explanation:
{"intent": "<intent>", "date": "YYYY-MM-DD or null", "friendlyDate": "<short human-readable date> or null"}

User message: %s`

func (g *Gemini) ExtractIntent(ctx context.Context, message string, today time.Time) (ParsedIntent, error) {
	prompt := fmt.Sprintf(intentPromptTemplate,
		today.Format(schedule.DateLayout),
		today.Weekday().String(),
		message,
	)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return ParsedIntent{}, err
	}

	return ParseIntentPayload(raw), nil
}

// intentPayload mirrors the JSON shape the model is prompted to emit.
// Pointer fields tolerate explicit nulls.
type intentPayload struct {
	Intent       string  `json:"intent"`
	Date         *string `json:"date"`
	FriendlyDate *string `json:"friendlyDate"`
}

// ParseIntentPayload interprets the model's raw text output. The model is
// non-deterministic: output may be fenced in markdown, wrapped in prose, or
// not JSON at all. Any shape that cannot be interpreted falls back to the
// "other" intent rather than failing.
func ParseIntentPayload(raw string) ParsedIntent {
	jsonText, ok := extractJSONObject(raw)
	if !ok {
		return ParsedIntent{Intent: IntentOther}
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return ParsedIntent{Intent: IntentOther}
	}

	intent := Intent(strings.TrimSpace(payload.Intent))
	if !ValidIntent(intent) {
		return ParsedIntent{Intent: IntentOther}
	}

	parsed := ParsedIntent{Intent: intent}
	if payload.Date != nil && !strings.EqualFold(*payload.Date, "null") {
		parsed.Date = strings.TrimSpace(*payload.Date)
	}
	if payload.FriendlyDate != nil && !strings.EqualFold(*payload.FriendlyDate, "null") {
		parsed.FriendlyDate = strings.TrimSpace(*payload.FriendlyDate)
	}
	return parsed
}

// extractJSONObject pulls the first JSON object out of text that may contain
// markdown fences or surrounding prose.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

const availabilityPromptTemplate = `You are a friendly assistant for an automobile service station.
A customer asked about appointment availability. Answer in 2-3 short sentences,
in the same language as the customer's message. Do not invent time slots.

Customer message: %s
Date asked about: %s (%s)
%s`

const genericPromptTemplate = `You are a friendly assistant for an automobile service station.
The station takes appointments Monday to Friday 9 AM - 6 PM and Saturday 8 AM - 7 PM, closed Sundays.
Reply to the customer in 1-3 short sentences, in the same language as their message.
If they want to book an appointment but gave no date, ask which date they have in mind.

Customer message: %s`

func (g *Gemini) ComposeReply(ctx context.Context, rc ReplyContext) (string, error) {
	var prompt string
	if rc.Availability != nil {
		av := rc.Availability
		friendly := rc.FriendlyDate
		if friendly == "" {
			friendly = av.Date
		}

		var facts string
		if av.IsClosed {
			facts = "Facts: the station is closed that day (closed every Sunday)."
		} else {
			facts = fmt.Sprintf(
				"Facts: business hours are %s; open slots: %s; %d of %d slots are already booked.",
				av.BusinessHoursLabel,
				strings.Join(av.SlotLabels(), ", "),
				av.BookedSlots, av.TotalSlots,
			)
			if len(av.Slots) == 0 {
				facts = fmt.Sprintf("Facts: the station is fully booked that day (%d slots, all taken).", av.TotalSlots)
			}
		}

		prompt = fmt.Sprintf(availabilityPromptTemplate, rc.Message, friendly, av.DayName, facts)
	} else {
		prompt = fmt.Sprintf(genericPromptTemplate, rc.Message)
	}

	return g.generate(ctx, prompt)
}
