package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

// SkillNodeRepo is the taxonomy accessor: read-only access to one
// curriculum's skill forest.
type SkillNodeRepo interface {
	ListByCurriculum(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID) ([]types.SkillNode, error)
}

type skillNodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillNodeRepo(db *gorm.DB, baseLog *logger.Logger) SkillNodeRepo {
	return &skillNodeRepo{db: db, log: baseLog.With("repo", "SkillNodeRepo")}
}

func (r *skillNodeRepo) ListByCurriculum(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID) ([]types.SkillNode, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if curriculumID == uuid.Nil {
		return nil, nil
	}
	var rows []types.SkillNode
	err := transaction.WithContext(ctx).
		Where("curriculum_id = ?", curriculumID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
