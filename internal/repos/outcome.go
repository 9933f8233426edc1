package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

type OutcomeRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Outcome, error)
	ListByLeafSkillIDs(ctx context.Context, tx *gorm.DB, leafSkillIDs []uuid.UUID) ([]types.Outcome, error)
}

type outcomeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutcomeRepo(db *gorm.DB, baseLog *logger.Logger) OutcomeRepo {
	return &outcomeRepo{db: db, log: baseLog.With("repo", "OutcomeRepo")}
}

func (r *outcomeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Outcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Outcome
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

func (r *outcomeRepo) ListByLeafSkillIDs(ctx context.Context, tx *gorm.DB, leafSkillIDs []uuid.UUID) ([]types.Outcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(leafSkillIDs) == 0 {
		return nil, nil
	}
	var rows []types.Outcome
	err := transaction.WithContext(ctx).
		Where("leaf_skill_id IN ?", leafSkillIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
