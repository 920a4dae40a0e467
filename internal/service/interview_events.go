package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockprep-api/internal/middleware"
)

// Interview event types published after state changes.
const (
	InterviewEventStarted      = "started"
	InterviewEventAnswerScored = "answer_scored"
	InterviewEventCompleted    = "completed"
)

// InterviewEvent describes a state change of an interview session.
type InterviewEvent struct {
	Type          string    `json:"type"`
	InterviewID   uint      `json:"interview_id"`
	UserID        uint      `json:"user_id"`
	QuestionIndex *int      `json:"question_index,omitempty"`
	Score         *float64  `json:"score,omitempty"`
	ScoreSource   string    `json:"score_source,omitempty"`
	Performance   *float64  `json:"performance,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// InterviewEventPublisher delivers interview events to interested consumers.
type InterviewEventPublisher interface {
	Publish(ctx context.Context, event InterviewEvent)
}

type natsInterviewPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSInterviewPublisher publishes events on "<subject>.<type>". A nil connection yields a
// publisher that drops events.
func NewNATSInterviewPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) InterviewEventPublisher {
	if conn == nil || subject == "" {
		return noopInterviewPublisher{}
	}
	return &natsInterviewPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "interview_events").Logger(),
	}
}

func (p *natsInterviewPublisher) Publish(ctx context.Context, event InterviewEvent) {
	if event.CorrelationID == "" {
		event.CorrelationID = middleware.CorrelationIDFromContext(ctx)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to encode interview event")
		return
	}

	if err := p.conn.Publish(p.subject+"."+event.Type, payload); err != nil {
		p.logger.Warn().Err(err).Str("type", event.Type).Uint("interview_id", event.InterviewID).Msg("failed to publish interview event")
	}
}

type noopInterviewPublisher struct{}

func (noopInterviewPublisher) Publish(context.Context, InterviewEvent) {}
