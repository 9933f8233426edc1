package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

type StudentRepo interface {
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Student, error)
	ListByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]types.Student, error)
	ListByCurriculumYear(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID, enrollmentYear string) ([]types.Student, error)
	CreateIfMissing(ctx context.Context, tx *gorm.DB, codes []string, curriculumID uuid.UUID, branchID uuid.UUID) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (r *studentRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var row types.Student
	err := transaction.WithContext(ctx).
		Where("code = ?", code).
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

func (r *studentRepo) ListByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(codes) == 0 {
		return nil, nil
	}
	var rows []types.Student
	err := transaction.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *studentRepo) ListByCurriculumYear(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID, enrollmentYear string) ([]types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if curriculumID == uuid.Nil {
		return nil, nil
	}
	q := transaction.WithContext(ctx).Where("curriculum_id = ?", curriculumID)
	if strings.TrimSpace(enrollmentYear) != "" {
		q = q.Where("enrollment_year = ?", strings.TrimSpace(enrollmentYear))
	}
	var rows []types.Student
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateIfMissing inserts minimal student rows for unknown codes, scoped to
// the importing course's curriculum and branch. Existing codes are left
// untouched, so repeated imports are safe.
func (r *studentRepo) CreateIfMissing(ctx context.Context, tx *gorm.DB, codes []string, curriculumID uuid.UUID, branchID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	rows := make([]types.Student, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		rows = append(rows, types.Student{
			ID:           uuid.New(),
			Code:         code,
			CurriculumID: curriculumID,
			BranchID:     branchID,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}
