package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is one delivered offering of a subject in a given academic year.
// Score imports always arrive against a course, never a bare subject.
type Course struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubjectID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject      *Subject       `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	CurriculumID uuid.UUID      `gorm:"type:uuid;not null;index" json:"curriculum_id"`
	BranchID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	Code         string         `gorm:"column:code;not null" json:"code"`
	AcademicYear string         `gorm:"column:academic_year;not null;default:''" json:"academic_year"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }
