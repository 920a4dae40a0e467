package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInterviewSessionApplyAnswerAccumulates(t *testing.T) {
	session := InterviewSession{Questions: []string{"Q1", "Q2", "Q3"}}
	now := time.Now().UTC()

	performance := session.ApplyAnswer(SessionEntry{QuestionIndex: 0, Question: "Q1", Answer: "A1", Score: 6, AnsweredAt: now})
	require.Equal(t, 6.0, performance)
	require.NotNil(t, session.Performance)
	require.False(t, session.Completed)

	performance = session.ApplyAnswer(SessionEntry{QuestionIndex: 1, Question: "Q2", Answer: "A2", Score: 8, AnsweredAt: now})
	require.InDelta(t, 6.8, performance, 0.0001)
	require.InDelta(t, 6.8, *session.Performance, 0.0001)
	require.Len(t, session.Entries, 2)
	require.Equal(t, 2, session.NextQuestionIndex())
	require.False(t, session.Completed)
	require.Nil(t, session.CompletedAt)
}

func TestInterviewSessionApplyAnswerMarksCompletion(t *testing.T) {
	session := InterviewSession{Questions: []string{"Q1", "Q2"}}
	answeredAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	session.ApplyAnswer(SessionEntry{QuestionIndex: 1, Question: "Q2", Answer: "A", Score: 3, AnsweredAt: answeredAt})
	require.True(t, session.Completed)
	require.NotNil(t, session.CompletedAt)
	require.Equal(t, answeredAt, *session.CompletedAt)
	require.Equal(t, 1, session.AnsweredCount())
}
