package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

type RootAssessmentRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RootAssessment, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.RootAssessment, error)
	// UpsertCurriculumLevel writes the recomputed curriculum-derived level. On
	// first contact the row is created with company level zero; on update the
	// company-side fields are left exactly as they are, the overlay is an
	// independent dimension.
	UpsertCurriculumLevel(ctx context.Context, tx *gorm.DB, rootSkillID, studentID uuid.UUID, level int, breakdown datatypes.JSON) error
	SetCompanyLevel(ctx context.Context, tx *gorm.DB, id uuid.UUID, submissionID uuid.UUID, level int, comment string) error
	SetFinalLevel(ctx context.Context, tx *gorm.DB, id uuid.UUID, level int, comment string) error
	LockBySubmission(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) (int64, error)
}

type rootAssessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRootAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) RootAssessmentRepo {
	return &rootAssessmentRepo{db: db, log: baseLog.With("repo", "RootAssessmentRepo")}
}

func (r *rootAssessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RootAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.RootAssessment
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

func (r *rootAssessmentRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]types.RootAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if studentID == uuid.Nil {
		return nil, nil
	}
	var rows []types.RootAssessment
	err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *rootAssessmentRepo) UpsertCurriculumLevel(ctx context.Context, tx *gorm.DB, rootSkillID, studentID uuid.UUID, level int, breakdown datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if rootSkillID == uuid.Nil || studentID == uuid.Nil {
		return nil
	}
	row := &types.RootAssessment{
		ID:              uuid.New(),
		RootSkillID:     rootSkillID,
		StudentID:       studentID,
		CurriculumLevel: level,
		FinalLevel:      level,
		CompanyLevel:    0,
		Breakdown:       breakdown,
		UpdatedAt:       time.Now().UTC(),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "root_skill_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"curriculum_level", "final_level", "breakdown", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *rootAssessmentRepo) SetCompanyLevel(ctx context.Context, tx *gorm.DB, id uuid.UUID, submissionID uuid.UUID, level int, comment string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	updates := map[string]interface{}{
		"company_level":   level,
		"company_comment": comment,
		"updated_at":      time.Now().UTC(),
	}
	if submissionID != uuid.Nil {
		updates["submission_id"] = submissionID
	}
	return transaction.WithContext(ctx).
		Model(&types.RootAssessment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *rootAssessmentRepo) SetFinalLevel(ctx context.Context, tx *gorm.DB, id uuid.UUID, level int, comment string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.RootAssessment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"final_level":   level,
			"final_comment": comment,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *rootAssessmentRepo) LockBySubmission(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if submissionID == uuid.Nil {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Model(&types.RootAssessment{}).
		Where("submission_id = ? AND locked = false", submissionID).
		Updates(map[string]interface{}{
			"locked":     true,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
