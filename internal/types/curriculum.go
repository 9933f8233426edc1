package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Curriculum struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BranchID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	Branch    *Branch        `gorm:"constraint:OnDelete:CASCADE;foreignKey:BranchID;references:ID" json:"branch,omitempty"`
	Code      string         `gorm:"column:code;not null" json:"code"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	StartYear int            `gorm:"column:start_year;not null;default:0" json:"start_year"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Curriculum) TableName() string { return "curriculum" }
