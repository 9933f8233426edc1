package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

type LeafObservationRepo interface {
	Get(ctx context.Context, tx *gorm.DB, studentID, outcomeID, courseID uuid.UUID) (*types.LeafObservation, error)
	Upsert(ctx context.Context, tx *gorm.DB, studentID, outcomeID, courseID uuid.UUID, gainedLevel int, passed bool) error
	// MaxLevelsByLeaf returns, per leaf skill, the highest level this student
	// has ever gained on any outcome attached to it, across courses and
	// retakes.
	MaxLevelsByLeaf(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, leafSkillIDs []uuid.UUID) (map[uuid.UUID]int, error)
	ListForStudents(ctx context.Context, tx *gorm.DB, outcomeIDs []uuid.UUID, studentIDs []uuid.UUID) ([]types.LeafObservation, error)
}

type leafObservationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeafObservationRepo(db *gorm.DB, baseLog *logger.Logger) LeafObservationRepo {
	return &leafObservationRepo{db: db, log: baseLog.With("repo", "LeafObservationRepo")}
}

func (r *leafObservationRepo) Get(ctx context.Context, tx *gorm.DB, studentID, outcomeID, courseID uuid.UUID) (*types.LeafObservation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if studentID == uuid.Nil || outcomeID == uuid.Nil || courseID == uuid.Nil {
		return nil, nil
	}
	var row types.LeafObservation
	err := transaction.WithContext(ctx).
		Where("student_id = ? AND outcome_id = ? AND course_id = ?", studentID, outcomeID, courseID).
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

func (r *leafObservationRepo) Upsert(ctx context.Context, tx *gorm.DB, studentID, outcomeID, courseID uuid.UUID, gainedLevel int, passed bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.LeafObservation{
		ID:          uuid.New(),
		StudentID:   studentID,
		OutcomeID:   outcomeID,
		CourseID:    courseID,
		GainedLevel: gainedLevel,
		Passed:      passed,
		UpdatedAt:   time.Now().UTC(),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "outcome_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gained_level", "passed", "updated_at",
			}),
		}).
		Create(row).Error
}

type leafLevelRow struct {
	LeafSkillID uuid.UUID `gorm:"column:leaf_skill_id"`
	GainedLevel int       `gorm:"column:gained_level"`
}

func (r *leafObservationRepo) MaxLevelsByLeaf(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, leafSkillIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if studentID == uuid.Nil || len(leafSkillIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}
	var rows []leafLevelRow
	err := transaction.WithContext(ctx).
		Table("leaf_observation").
		Select("outcome.leaf_skill_id AS leaf_skill_id, MAX(leaf_observation.gained_level) AS gained_level").
		Joins("JOIN outcome ON outcome.id = leaf_observation.outcome_id").
		Where("leaf_observation.student_id = ? AND outcome.leaf_skill_id IN ?", studentID, leafSkillIDs).
		Group("outcome.leaf_skill_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		out[row.LeafSkillID] = row.GainedLevel
	}
	return out, nil
}

func (r *leafObservationRepo) ListForStudents(ctx context.Context, tx *gorm.DB, outcomeIDs []uuid.UUID, studentIDs []uuid.UUID) ([]types.LeafObservation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(outcomeIDs) == 0 || len(studentIDs) == 0 {
		return nil, nil
	}
	var rows []types.LeafObservation
	err := transaction.WithContext(ctx).
		Where("outcome_id IN ? AND student_id IN ?", outcomeIDs, studentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
