package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RootAssessment is the externally visible attainment record for one student
// on one root skill. CurriculumLevel is only ever written by the importer's
// recomputation, CompanyLevel/CompanyComment by the employer overlay until
// locked, FinalLevel by the importer or a coordinator override. Never
// soft-deleted.
type RootAssessment struct {
	ID              uuid.UUID             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RootSkillID     uuid.UUID             `gorm:"type:uuid;not null;index:idx_root_assessment_key,unique,priority:1" json:"root_skill_id"`
	StudentID       uuid.UUID             `gorm:"type:uuid;not null;index:idx_root_assessment_key,unique,priority:2" json:"student_id"`
	SubmissionID    *uuid.UUID            `gorm:"type:uuid;index" json:"submission_id,omitempty"`
	Submission      *InternshipSubmission `gorm:"foreignKey:SubmissionID;references:ID" json:"submission,omitempty"`
	CurriculumLevel int                   `gorm:"column:curriculum_level;not null;default:0" json:"curriculum_level"`
	CompanyLevel    int                   `gorm:"column:company_level;not null;default:0" json:"company_level"`
	FinalLevel      int                   `gorm:"column:final_level;not null;default:0" json:"final_level"`
	CompanyComment  string                `gorm:"column:company_comment;not null;default:''" json:"company_comment"`
	FinalComment    string                `gorm:"column:final_comment;not null;default:''" json:"final_comment"`
	Locked          bool                  `gorm:"column:locked;not null;default:false" json:"locked"`
	// Per-level leaf count snapshot taken at the last recompute, for audit UIs.
	Breakdown datatypes.JSON `gorm:"type:jsonb;column:breakdown" json:"breakdown,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (RootAssessment) TableName() string { return "root_assessment" }
