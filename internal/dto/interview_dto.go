package dto

import (
	"time"

	"github.com/noah-isme/mockprep-api/internal/models"
)

// StartInterviewRequest is the payload used to begin a new interview session.
type StartInterviewRequest struct {
	Role            string `json:"role" validate:"required,max=100"`
	ExperienceLevel string `json:"experience_level" validate:"required,max=50"`
	TargetCompany   string `json:"target_company" validate:"required,max=100"`
	NumQuestions    int    `json:"num_questions" validate:"omitempty,min=1"`
}

// SubmitAnswerRequest is the payload for answering one question of a session.
type SubmitAnswerRequest struct {
	QuestionIndex *int   `json:"question_index" validate:"required,min=0"`
	Question      string `json:"question" validate:"max=1000"`
	Answer        string `json:"answer" validate:"required,max=5000"`
}

// InterviewListRequest holds pagination parameters for listing sessions.
type InterviewListRequest struct {
	Page     int
	PageSize int
}

// SessionEntryResponse describes one answered question.
type SessionEntryResponse struct {
	QuestionIndex int       `json:"question_index"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Feedback      string    `json:"feedback"`
	Score         float64   `json:"score"`
	ScoreSource   string    `json:"score_source"`
	AnsweredAt    time.Time `json:"answered_at"`
}

// InterviewSessionResponse represents an interview session to API consumers.
type InterviewSessionResponse struct {
	ID                uint                   `json:"id"`
	Role              string                 `json:"role"`
	ExperienceLevel   string                 `json:"experience_level"`
	TargetCompany     string                 `json:"target_company"`
	Questions         []string               `json:"questions"`
	Entries           []SessionEntryResponse `json:"entries"`
	Performance       *float64               `json:"performance"`
	Completed         bool                   `json:"completed"`
	CompletedAt       *time.Time             `json:"completed_at"`
	NextQuestionIndex int                    `json:"next_question_index"`
	TotalQuestions    int                    `json:"total_questions"`
	CreatedAt         time.Time              `json:"created_at"`
}

// InterviewSummaryResponse is the compact list representation of a session.
type InterviewSummaryResponse struct {
	ID              uint      `json:"id"`
	Role            string    `json:"role"`
	ExperienceLevel string    `json:"experience_level"`
	TargetCompany   string    `json:"target_company"`
	Performance     *float64  `json:"performance"`
	Completed       bool      `json:"completed"`
	Answered        int       `json:"answered"`
	TotalQuestions  int       `json:"total_questions"`
	CreatedAt       time.Time `json:"created_at"`
}

// InterviewListResponse wraps a page of session summaries.
type InterviewListResponse struct {
	Items      []InterviewSummaryResponse `json:"items"`
	Pagination PaginationMeta             `json:"pagination"`
}

// ResumeInterviewResponse tells the client where to pick an unfinished session back up.
type ResumeInterviewResponse struct {
	InterviewID       uint     `json:"interview_id"`
	Role              string   `json:"role"`
	ExperienceLevel   string   `json:"experience_level"`
	TargetCompany     string   `json:"target_company"`
	Questions         []string `json:"questions"`
	NextQuestionIndex int      `json:"next_question_index"`
	TotalQuestions    int      `json:"total_questions"`
	CompletedAnswers  []string `json:"completed_answers"`
}

// AnswerResultResponse is returned after an answer has been evaluated.
type AnswerResultResponse struct {
	InterviewID   uint    `json:"interview_id"`
	QuestionIndex int     `json:"question_index"`
	Feedback      string  `json:"feedback"`
	Score         float64 `json:"score"`
	ScoreSource   string  `json:"score_source"`
	Performance   float64 `json:"performance"`
	IsComplete    bool    `json:"is_complete"`
}

// NewInterviewSessionResponse converts a session model into its API representation.
func NewInterviewSessionResponse(session models.InterviewSession) InterviewSessionResponse {
	questions := make([]string, len(session.Questions))
	copy(questions, session.Questions)

	entries := make([]SessionEntryResponse, 0, len(session.Entries))
	for _, entry := range session.Entries {
		entries = append(entries, NewSessionEntryResponse(entry))
	}

	return InterviewSessionResponse{
		ID:                session.ID,
		Role:              session.Role,
		ExperienceLevel:   session.ExperienceLevel,
		TargetCompany:     session.TargetCompany,
		Questions:         questions,
		Entries:           entries,
		Performance:       session.Performance,
		Completed:         session.Completed,
		CompletedAt:       session.CompletedAt,
		NextQuestionIndex: session.NextQuestionIndex(),
		TotalQuestions:    len(session.Questions),
		CreatedAt:         session.CreatedAt,
	}
}

// NewSessionEntryResponse converts a stored entry.
func NewSessionEntryResponse(entry models.SessionEntry) SessionEntryResponse {
	return SessionEntryResponse{
		QuestionIndex: entry.QuestionIndex,
		Question:      entry.Question,
		Answer:        entry.Answer,
		Feedback:      entry.Feedback,
		Score:         entry.Score,
		ScoreSource:   entry.ScoreSource,
		AnsweredAt:    entry.AnsweredAt,
	}
}

// NewInterviewSummaryResponse converts a session into its list representation.
func NewInterviewSummaryResponse(session models.InterviewSession) InterviewSummaryResponse {
	return InterviewSummaryResponse{
		ID:              session.ID,
		Role:            session.Role,
		ExperienceLevel: session.ExperienceLevel,
		TargetCompany:   session.TargetCompany,
		Performance:     session.Performance,
		Completed:       session.Completed,
		Answered:        session.AnsweredCount(),
		TotalQuestions:  len(session.Questions),
		CreatedAt:       session.CreatedAt,
	}
}
