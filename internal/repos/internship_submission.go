package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

type InternshipSubmissionRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.InternshipSubmission, error)
	Lock(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type internshipSubmissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInternshipSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) InternshipSubmissionRepo {
	return &internshipSubmissionRepo{db: db, log: baseLog.With("repo", "InternshipSubmissionRepo")}
}

func (r *internshipSubmissionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.InternshipSubmission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.InternshipSubmission
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *internshipSubmissionRepo) Lock(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now().UTC()
	return transaction.WithContext(ctx).
		Model(&types.InternshipSubmission{}).
		Where("id = ? AND locked = false", id).
		Updates(map[string]interface{}{
			"locked":     true,
			"locked_at":  now,
			"updated_at": now,
		}).Error
}
