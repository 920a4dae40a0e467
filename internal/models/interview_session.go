package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/mockprep-api/internal/scoring"
)

// SessionEntry is one answered question together with the evaluation it received.
type SessionEntry struct {
	QuestionIndex int       `json:"question_index"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Feedback      string    `json:"feedback"`
	Score         float64   `json:"score"`
	ScoreSource   string    `json:"score_source"`
	ScoreMatcher  string    `json:"score_matcher,omitempty"`
	AnsweredAt    time.Time `json:"answered_at"`
}

// InterviewSession is a single question-generation run owned by one user.
type InterviewSession struct {
	ID              uint                              `gorm:"primaryKey" json:"id"`
	UserID          uint                              `gorm:"not null;index" json:"user_id"`
	Role            string                            `gorm:"size:100;not null" json:"role"`
	ExperienceLevel string                            `gorm:"size:50;not null" json:"experience_level"`
	TargetCompany   string                            `gorm:"size:100;not null" json:"target_company"`
	Questions       datatypes.JSONSlice[string]       `gorm:"not null" json:"questions"`
	Entries         datatypes.JSONSlice[SessionEntry] `json:"entries"`
	Performance     *float64                          `json:"performance"`
	Completed       bool                              `gorm:"not null;default:false" json:"completed"`
	CompletedAt     *time.Time                        `json:"completed_at"`
	Version         int                               `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time                         `json:"created_at"`
	UpdatedAt       time.Time                         `json:"updated_at"`
}

// ApplyAnswer records the entry, folds its score into the session performance and marks the
// session complete once the final question has been answered. It returns the new performance.
func (s *InterviewSession) ApplyAnswer(entry SessionEntry) float64 {
	s.Entries = append(s.Entries, entry)

	performance := scoring.ApplyScore(s.Performance, entry.Score)
	s.Performance = &performance

	if !s.Completed && scoring.IsComplete(entry.QuestionIndex, len(s.Questions)) {
		completedAt := entry.AnsweredAt
		s.Completed = true
		s.CompletedAt = &completedAt
	}

	return performance
}

// NextQuestionIndex returns the index of the first question without a recorded answer.
func (s InterviewSession) NextQuestionIndex() int {
	return len(s.Entries)
}

// AnsweredCount reports how many answers have been recorded.
func (s InterviewSession) AnsweredCount() int {
	return len(s.Entries)
}
