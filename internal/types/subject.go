package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CurriculumID uuid.UUID      `gorm:"type:uuid;not null;index" json:"curriculum_id"`
	Curriculum   *Curriculum    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CurriculumID;references:ID" json:"curriculum,omitempty"`
	Code         string         `gorm:"column:code;not null" json:"code"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Semester     int            `gorm:"column:semester;not null;default:0" json:"semester"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Subject) TableName() string { return "subject" }
