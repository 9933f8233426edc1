package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Outcome is a course learning outcome (CLO): one statement tied to exactly
// one leaf skill, with the proficiency level students are expected to reach.
type Outcome struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubjectID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject       *Subject       `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	LeafSkillID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"leaf_skill_id"`
	LeafSkill     *SkillNode     `gorm:"foreignKey:LeafSkillID;references:ID" json:"leaf_skill,omitempty"`
	Code          string         `gorm:"column:code;not null" json:"code"`
	Description   string         `gorm:"column:description;not null;default:''" json:"description"`
	ExpectedLevel int            `gorm:"column:expected_level;not null" json:"expected_level"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Outcome) TableName() string { return "outcome" }
