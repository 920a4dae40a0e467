package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/mockprep-api/internal/models"
)

// ErrVersionConflict indicates the session changed since it was read.
var ErrVersionConflict = errors.New("interview session version conflict")

// InterviewSessionFilter narrows session listing queries.
type InterviewSessionFilter struct {
	UserID   *uint
	Since    *time.Time
	Page     int
	PageSize int
}

// InterviewSessionRepository persists interview sessions.
type InterviewSessionRepository interface {
	Create(ctx context.Context, session *models.InterviewSession) error
	GetByID(ctx context.Context, id uint) (models.InterviewSession, error)
	UpdateAnswers(ctx context.Context, session *models.InterviewSession, expectedVersion int) error
	List(ctx context.Context, filter InterviewSessionFilter) ([]models.InterviewSession, int64, error)
}

type interviewSessionRepository struct {
	db *gorm.DB
}

// NewInterviewSessionRepository constructs an interview session repository.
func NewInterviewSessionRepository(db *gorm.DB) InterviewSessionRepository {
	return &interviewSessionRepository{db: db}
}

func (r *interviewSessionRepository) Create(ctx context.Context, session *models.InterviewSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *interviewSessionRepository) GetByID(ctx context.Context, id uint) (models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return models.InterviewSession{}, err
	}
	return session, nil
}

// UpdateAnswers writes the answer-derived columns only when the stored version still matches
// expectedVersion, then bumps the version on the passed session.
func (r *interviewSessionRepository) UpdateAnswers(ctx context.Context, session *models.InterviewSession, expectedVersion int) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.InterviewSession{}).
		Where("id = ? AND version = ?", session.ID, expectedVersion).
		Updates(map[string]interface{}{
			"entries":      session.Entries,
			"performance":  session.Performance,
			"completed":    session.Completed,
			"completed_at": session.CompletedAt,
			"version":      expectedVersion + 1,
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	session.Version = expectedVersion + 1
	session.UpdatedAt = now
	return nil
}

func (r *interviewSessionRepository) List(ctx context.Context, filter InterviewSessionFilter) ([]models.InterviewSession, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InterviewSession{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var sessions []models.InterviewSession
	if err := query.Order("created_at DESC").Order("id DESC").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}
