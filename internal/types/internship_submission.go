package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InternshipSubmission groups one employer's assessment round for a student.
// Locking it freezes the company-side fields of every root assessment tied to
// it; there is no unlock.
type InternshipSubmission struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	Student     *Student       `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	CompanyName string         `gorm:"column:company_name;not null;default:''" json:"company_name"`
	Locked      bool           `gorm:"column:locked;not null;default:false" json:"locked"`
	LockedAt    *time.Time     `gorm:"column:locked_at" json:"locked_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (InternshipSubmission) TableName() string { return "internship_submission" }
