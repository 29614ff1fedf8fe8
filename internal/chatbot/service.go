package chatbot

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/auto-service-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/auto-service-backend/internal/schedule"
)

// Result is the orchestration output for a single chat message.
// AvailableSlots and Date are nil unless the message resolved to an
// appointment query with a valid date.
type Result struct {
	Reply          string
	Intent         Intent
	AvailableSlots []string
	Date           string
}

// AvailabilityProvider supplies live slot availability for a date.
// The appointment service satisfies this.
type AvailabilityProvider interface {
	AvailabilityForDate(ctx context.Context, date time.Time) (schedule.Availability, error)
}

type Service interface {
	HandleMessage(ctx context.Context, message string) (*Result, error)
}

type service struct {
	extractor    IntentExtractor
	composer     ReplyComposer
	availability AvailabilityProvider
	loc          *time.Location
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(extractor IntentExtractor, composer ReplyComposer, availability AvailabilityProvider, loc *time.Location, logger *zap.Logger) Service {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		extractor:    extractor,
		composer:     composer,
		availability: availability,
		loc:          loc,
		logger:       logger,
		now:          time.Now,
	}
}

// HandleMessage runs the full chat flow: extract intent, fetch availability
// when the message asks about a date, then compose a reply. The two model
// calls are sequential since each depends on the previous step's output.
func (s *service) HandleMessage(ctx context.Context, message string) (*Result, error) {
	today := s.now().In(s.loc)

	parsed, err := s.extractor.ExtractIntent(ctx, message, today)
	if err != nil {
		return nil, s.classifyOracleError("intent extraction", err)
	}

	// The model's date output is untrusted. A date that does not parse to a
	// real calendar date downgrades the whole result to "other" rather than
	// surfacing an error.
	var date time.Time
	haveDate := false
	if parsed.Intent == IntentAppointmentQuery && parsed.Date != "" {
		date, err = schedule.ParseDate(parsed.Date, s.loc)
		if err != nil {
			s.logger.Warn("chatbot: model returned unparseable date",
				zap.String("date", parsed.Date))
			parsed = ParsedIntent{Intent: IntentOther}
		} else {
			haveDate = true
		}
	}

	if parsed.Intent == IntentAppointmentQuery && haveDate {
		av, err := s.availability.AvailabilityForDate(ctx, date)
		if err != nil {
			return nil, err
		}

		reply, err := s.composer.ComposeReply(ctx, ReplyContext{
			Intent:       parsed.Intent,
			Message:      message,
			FriendlyDate: parsed.FriendlyDate,
			Availability: &av,
		})
		if err != nil {
			return nil, s.classifyOracleError("reply composition", err)
		}

		return &Result{
			Reply:          reply,
			Intent:         parsed.Intent,
			AvailableSlots: av.SlotLabels(),
			Date:           av.Date,
		}, nil
	}

	reply, err := s.composer.ComposeReply(ctx, ReplyContext{
		Intent:  parsed.Intent,
		Message: message,
	})
	if err != nil {
		return nil, s.classifyOracleError("reply composition", err)
	}

	return &Result{Reply: reply, Intent: parsed.Intent}, nil
}

// classifyOracleError logs the full model error server-side and maps it to a
// user-facing message based on the error text. No automatic retry.
func (s *service) classifyOracleError(stage string, err error) error {
	s.logger.Error("chatbot: language model call failed",
		zap.String("stage", stage),
		zap.Error(err))

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key expired") || strings.Contains(msg, "api key not valid"):
		return apperror.Wrap(err, http.StatusInternalServerError,
			"The assistant is temporarily unavailable due to a configuration issue. Please try again later.")
	case strings.Contains(msg, "quota"):
		return apperror.Wrap(err, http.StatusInternalServerError,
			"The assistant has reached its usage limit. Please try again later.")
	case strings.Contains(msg, "overloaded"):
		return apperror.Wrap(err, http.StatusInternalServerError,
			"The assistant is overloaded right now. Please try again in a moment.")
	default:
		return apperror.Wrap(err, http.StatusInternalServerError,
			"Failed to process your message. Please try again.")
	}
}
