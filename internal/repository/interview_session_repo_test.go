package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/mockprep-api/internal/models"
	"github.com/noah-isme/mockprep-api/internal/repository"
)

func setupSessionDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InterviewSession{}))
	return db
}

func TestInterviewSessionRepositoryRoundTrip(t *testing.T) {
	db := setupSessionDB(t)
	repo := repository.NewInterviewSessionRepository(db)
	ctx := context.Background()

	session := models.InterviewSession{
		UserID:          7,
		Role:            "Backend Engineer",
		ExperienceLevel: "Senior",
		TargetCompany:   "Acme",
		Questions:       []string{"Q1", "Q2"},
	}
	require.NoError(t, repo.Create(ctx, &session))
	require.NotZero(t, session.ID)

	stored, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Q1", "Q2"}, []string(stored.Questions))
	require.Nil(t, stored.Performance)
	require.Empty(t, stored.Entries)

	stored.ApplyAnswer(models.SessionEntry{QuestionIndex: 0, Question: "Q1", Answer: "A1", Feedback: "<score>6</score>", Score: 6, ScoreSource: "pattern", AnsweredAt: time.Now().UTC()})
	require.NoError(t, repo.UpdateAnswers(ctx, &stored, 0))
	require.Equal(t, 1, stored.Version)

	reloaded, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Entries, 1)
	require.Equal(t, "A1", reloaded.Entries[0].Answer)
	require.NotNil(t, reloaded.Performance)
	require.InDelta(t, 6.0, *reloaded.Performance, 0.0001)
	require.Equal(t, 1, reloaded.Version)
}

func TestInterviewSessionRepositoryDetectsStaleVersion(t *testing.T) {
	db := setupSessionDB(t)
	repo := repository.NewInterviewSessionRepository(db)
	ctx := context.Background()

	session := models.InterviewSession{UserID: 1, Role: "QA", ExperienceLevel: "Junior", TargetCompany: "Acme", Questions: []string{"Q1", "Q2"}}
	require.NoError(t, repo.Create(ctx, &session))

	first, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)

	first.ApplyAnswer(models.SessionEntry{QuestionIndex: 0, Score: 5})
	require.NoError(t, repo.UpdateAnswers(ctx, &first, first.Version))

	second.ApplyAnswer(models.SessionEntry{QuestionIndex: 0, Score: 9})
	err = repo.UpdateAnswers(ctx, &second, second.Version)
	require.ErrorIs(t, err, repository.ErrVersionConflict)

	reloaded, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Entries, 1)
	require.InDelta(t, 5.0, *reloaded.Performance, 0.0001)
}

func TestInterviewSessionRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupSessionDB(t)
	repo := repository.NewInterviewSessionRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		session := models.InterviewSession{UserID: 1, Role: fmt.Sprintf("Role %d", i), ExperienceLevel: "Mid", TargetCompany: "Acme", Questions: []string{"Q"}, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(ctx, &session))
	}
	other := models.InterviewSession{UserID: 2, Role: "Other", ExperienceLevel: "Mid", TargetCompany: "Acme", Questions: []string{"Q"}}
	require.NoError(t, repo.Create(ctx, &other))

	userID := uint(1)
	sessions, total, err := repo.List(ctx, repository.InterviewSessionFilter{UserID: &userID, Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, sessions, 2)
	require.Equal(t, "Role 2", sessions[0].Role)

	all, total, err := repo.List(ctx, repository.InterviewSessionFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 4, total)
	require.Len(t, all, 4)
}

func TestInterviewSessionRepositoryGetMissing(t *testing.T) {
	repo := repository.NewInterviewSessionRepository(setupSessionDB(t))
	_, err := repo.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
