package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student rows may be created on the fly by the score importer, so only the
// code and the curriculum/branch scoping are mandatory.
type Student struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code           string         `gorm:"column:code;not null;uniqueIndex" json:"code"`
	CurriculumID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"curriculum_id"`
	BranchID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	EnrollmentYear string         `gorm:"column:enrollment_year;not null;default:''" json:"enrollment_year"`
	FullName       string         `gorm:"column:full_name;not null;default:''" json:"full_name"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Student) TableName() string { return "student" }
