package types

import (
	"time"

	"github.com/google/uuid"
)

// LeafObservation is one raw observed level for a student on an outcome in a
// specific course run. Retakes land in a different course row, so a student
// can hold several observations for the same outcome. Never soft-deleted:
// attainment history is append-and-update only.
type LeafObservation struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leaf_observation_key,unique,priority:1" json:"student_id"`
	OutcomeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leaf_observation_key,unique,priority:2" json:"outcome_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_leaf_observation_key,unique,priority:3" json:"course_id"`
	GainedLevel int       `gorm:"column:gained_level;not null" json:"gained_level"`
	Passed      bool      `gorm:"column:passed;not null;default:false" json:"passed"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (LeafObservation) TableName() string { return "leaf_observation" }
