package dto

// InterviewStatsResponse aggregates a candidate's interview practice history.
type InterviewStatsResponse struct {
	TotalSessions      int     `json:"total_sessions"`
	CompletedSessions  int     `json:"completed_sessions"`
	CompletionRate     float64 `json:"completion_rate"`
	AnsweredQuestions  int     `json:"answered_questions"`
	AveragePerformance float64 `json:"average_performance"`
	BestPerformance    float64 `json:"best_performance"`
	MonthlyImprovement float64 `json:"monthly_improvement"`
}

// ScoreSourceCount is the number of stored answers scored through one path.
type ScoreSourceCount struct {
	Source       string  `json:"source"`
	Matcher      string  `json:"matcher,omitempty"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
}

// ScoringDiagnosticsResponse summarises how answer scores were obtained across all sessions.
type ScoringDiagnosticsResponse struct {
	TotalAnswers int                `json:"total_answers"`
	Sources      []ScoreSourceCount `json:"sources"`
}
