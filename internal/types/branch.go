package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Branch struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FacultyID uuid.UUID      `gorm:"type:uuid;not null;index" json:"faculty_id"`
	Faculty   *Faculty       `gorm:"constraint:OnDelete:CASCADE;foreignKey:FacultyID;references:ID" json:"faculty,omitempty"`
	Code      string         `gorm:"column:code;not null" json:"code"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Branch) TableName() string { return "branch" }
