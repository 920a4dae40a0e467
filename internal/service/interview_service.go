package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/mockprep-api/internal/dto"
	"github.com/noah-isme/mockprep-api/internal/models"
	"github.com/noah-isme/mockprep-api/internal/observability"
	"github.com/noah-isme/mockprep-api/internal/repository"
	"github.com/noah-isme/mockprep-api/internal/scoring"
)

const maxSubmitAttempts = 3

// Column widths of the session descriptors.
const (
	maxRoleLength    = 100
	maxLevelLength   = 50
	maxCompanyLength = 100
)

var (
	// ErrInvalidInput indicates the request is missing or carries malformed fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInterviewNotFound indicates the interview session cannot be located.
	ErrInterviewNotFound = errors.New("interview not found")
	// ErrInterviewForbidden indicates the caller does not own the interview session.
	ErrInterviewForbidden = errors.New("forbidden")
	// ErrInterviewCompleted indicates every question of the session has been answered.
	ErrInterviewCompleted = errors.New("interview already completed")
	// ErrInvalidQuestionIndex indicates the answered question does not exist in the session.
	ErrInvalidQuestionIndex = errors.New("question index out of range")
	// ErrInterviewConflict indicates concurrent submissions kept racing for the same session.
	ErrInterviewConflict = errors.New("interview was modified concurrently")
)

// InterviewService exposes interview session operations.
type InterviewService interface {
	Start(ctx context.Context, userID uint, payload dto.StartInterviewRequest) (dto.InterviewSessionResponse, error)
	SubmitAnswer(ctx context.Context, userID, interviewID uint, payload dto.SubmitAnswerRequest) (dto.AnswerResultResponse, error)
	Get(ctx context.Context, userID, interviewID uint) (dto.InterviewSessionResponse, error)
	List(ctx context.Context, userID uint, req dto.InterviewListRequest) (dto.InterviewListResponse, error)
	Resume(ctx context.Context, userID, interviewID uint) (dto.ResumeInterviewResponse, error)
}

// StatsInvalidator drops cached statistics for a user.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, userID uint)
}

// InterviewConfig describes session sizing knobs.
type InterviewConfig struct {
	DefaultQuestions int
	MaxQuestions     int
}

type interviewService struct {
	sessions  repository.InterviewSessionRepository
	coach     InterviewCoach
	events    InterviewEventPublisher
	stats     StatsInvalidator
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	config    InterviewConfig
	now       func() time.Time
}

// NewInterviewService constructs the interview session service.
func NewInterviewService(sessions repository.InterviewSessionRepository, coach InterviewCoach, events InterviewEventPublisher, stats StatsInvalidator, validate *validator.Validate, logger zerolog.Logger, cfg InterviewConfig) InterviewService {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = 20
	}
	if cfg.DefaultQuestions <= 0 || cfg.DefaultQuestions > cfg.MaxQuestions {
		cfg.DefaultQuestions = 5
	}
	if events == nil {
		events = noopInterviewPublisher{}
	}

	return &interviewService{
		sessions:  sessions,
		coach:     coach,
		events:    events,
		stats:     stats,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "interview_service").Logger(),
		config:    cfg,
		now:       time.Now,
	}
}

func (s *interviewService) Start(ctx context.Context, userID uint, payload dto.StartInterviewRequest) (dto.InterviewSessionResponse, error) {
	if userID == 0 {
		return dto.InterviewSessionResponse{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	role, err := s.clean("role", payload.Role, maxRoleLength)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}
	level, err := s.clean("experience level", payload.ExperienceLevel, maxLevelLength)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}
	company, err := s.clean("target company", payload.TargetCompany, maxCompanyLength)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	count := payload.NumQuestions
	if count == 0 {
		count = s.config.DefaultQuestions
	}
	if count > s.config.MaxQuestions {
		return dto.InterviewSessionResponse{}, fmt.Errorf("%w: at most %d questions per interview", ErrInvalidInput, s.config.MaxQuestions)
	}

	questions := s.coach.GenerateQuestions(ctx, role, level, company, count)

	session := models.InterviewSession{
		UserID:          userID,
		Role:            role,
		ExperienceLevel: level,
		TargetCompany:   company,
		Questions:       questions,
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	s.logger.Info().Uint("interview_id", session.ID).Uint("user_id", userID).Int("questions", len(questions)).Msg("interview started")
	s.events.Publish(ctx, InterviewEvent{Type: InterviewEventStarted, InterviewID: session.ID, UserID: userID})
	s.invalidateStats(ctx, userID)

	return dto.NewInterviewSessionResponse(session), nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, userID, interviewID uint, payload dto.SubmitAnswerRequest) (dto.AnswerResultResponse, error) {
	if interviewID == 0 {
		return dto.AnswerResultResponse{}, fmt.Errorf("%w: interview id is required", ErrInvalidInput)
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnswerResultResponse{}, err
	}
	answer := strings.TrimSpace(payload.Answer)
	if answer == "" {
		return dto.AnswerResultResponse{}, fmt.Errorf("%w: answer is required", ErrInvalidInput)
	}

	session, err := s.loadOwned(ctx, userID, interviewID)
	if err != nil {
		return dto.AnswerResultResponse{}, err
	}
	if session.Completed {
		return dto.AnswerResultResponse{}, ErrInterviewCompleted
	}

	index := *payload.QuestionIndex
	if index < 0 || index >= len(session.Questions) {
		return dto.AnswerResultResponse{}, ErrInvalidQuestionIndex
	}

	question := strings.TrimSpace(payload.Question)
	if question == "" {
		question = session.Questions[index]
	}

	evaluation := s.coach.EvaluateAnswer(ctx, question, answer)
	switch evaluation.Source {
	case scoring.SourceUpstreamFallback:
		s.logger.Warn().Err(evaluation.Err).
			Uint("interview_id", interviewID).
			Int("question_index", index).
			Msg("answer evaluation failed, recording provisional score")
	case scoring.SourceLengthFallback:
		s.logger.Warn().
			Uint("interview_id", interviewID).
			Int("question_index", index).
			Str("feedback_preview", truncate(evaluation.Feedback, 200)).
			Int("answer_length", utf8.RuneCountInString(answer)).
			Float64("score", evaluation.Score).
			Msg("no score found in evaluation, using answer length")
	}

	entry := models.SessionEntry{
		QuestionIndex: index,
		Question:      question,
		Answer:        answer,
		Feedback:      evaluation.Feedback,
		Score:         evaluation.Score,
		ScoreSource:   string(evaluation.Source),
		ScoreMatcher:  evaluation.Matcher,
		AnsweredAt:    s.now().UTC(),
	}

	var performance float64
	for attempt := 1; ; attempt++ {
		expected := session.Version
		performance = session.ApplyAnswer(entry)

		err = s.sessions.UpdateAnswers(ctx, &session, expected)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return dto.AnswerResultResponse{}, err
		}

		observability.SessionConflicts().Inc()
		if attempt >= maxSubmitAttempts {
			s.logger.Error().Uint("interview_id", interviewID).Int("attempts", attempt).Msg("giving up on contended interview session")
			return dto.AnswerResultResponse{}, ErrInterviewConflict
		}

		session, err = s.loadOwned(ctx, userID, interviewID)
		if err != nil {
			return dto.AnswerResultResponse{}, err
		}
		if session.Completed {
			return dto.AnswerResultResponse{}, ErrInterviewCompleted
		}
	}

	isComplete := scoring.IsComplete(index, len(session.Questions))

	score := entry.Score
	s.events.Publish(ctx, InterviewEvent{
		Type:          InterviewEventAnswerScored,
		InterviewID:   session.ID,
		UserID:        userID,
		QuestionIndex: &index,
		Score:         &score,
		ScoreSource:   entry.ScoreSource,
		Performance:   &performance,
	})
	if isComplete {
		s.events.Publish(ctx, InterviewEvent{Type: InterviewEventCompleted, InterviewID: session.ID, UserID: userID, Performance: &performance})
	}
	s.invalidateStats(ctx, userID)

	return dto.AnswerResultResponse{
		InterviewID:   session.ID,
		QuestionIndex: index,
		Feedback:      evaluation.Feedback,
		Score:         evaluation.Score,
		ScoreSource:   string(evaluation.Source),
		Performance:   performance,
		IsComplete:    isComplete,
	}, nil
}

func (s *interviewService) Get(ctx context.Context, userID, interviewID uint) (dto.InterviewSessionResponse, error) {
	session, err := s.loadOwned(ctx, userID, interviewID)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}
	return dto.NewInterviewSessionResponse(session), nil
}

func (s *interviewService) List(ctx context.Context, userID uint, req dto.InterviewListRequest) (dto.InterviewListResponse, error) {
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	sessions, total, err := s.sessions.List(ctx, repository.InterviewSessionFilter{
		UserID:   &userID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return dto.InterviewListResponse{}, err
	}

	items := make([]dto.InterviewSummaryResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, dto.NewInterviewSummaryResponse(session))
	}

	return dto.InterviewListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       req.Page,
			PageSize:   req.PageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(req.PageSize))),
		},
	}, nil
}

func (s *interviewService) Resume(ctx context.Context, userID, interviewID uint) (dto.ResumeInterviewResponse, error) {
	session, err := s.loadOwned(ctx, userID, interviewID)
	if err != nil {
		return dto.ResumeInterviewResponse{}, err
	}

	next := session.NextQuestionIndex()
	if session.Completed || next >= len(session.Questions) {
		return dto.ResumeInterviewResponse{}, ErrInterviewCompleted
	}

	answers := make([]string, 0, len(session.Entries))
	for _, entry := range session.Entries {
		answers = append(answers, entry.Answer)
	}

	return dto.ResumeInterviewResponse{
		InterviewID:       session.ID,
		Role:              session.Role,
		ExperienceLevel:   session.ExperienceLevel,
		TargetCompany:     session.TargetCompany,
		Questions:         append([]string(nil), session.Questions...),
		NextQuestionIndex: next,
		TotalQuestions:    len(session.Questions),
		CompletedAnswers:  answers,
	}, nil
}

func (s *interviewService) loadOwned(ctx context.Context, userID, interviewID uint) (models.InterviewSession, error) {
	session, err := s.sessions.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InterviewSession{}, ErrInterviewNotFound
		}
		return models.InterviewSession{}, err
	}
	if session.UserID != userID {
		return models.InterviewSession{}, ErrInterviewForbidden
	}
	return session, nil
}

// clean strips markup and decodes the entities the sanitizer leaves behind, so stored values
// and prompts carry plain text.
func (s *interviewService) clean(field, value string, limit int) (string, error) {
	cleaned := strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s must contain text", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(cleaned) > limit {
		return "", fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, limit)
	}
	return cleaned, nil
}

func (s *interviewService) invalidateStats(ctx context.Context, userID uint) {
	if s.stats != nil {
		s.stats.Invalidate(ctx, userID)
	}
}
