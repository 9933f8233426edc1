package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Faculty struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code      string         `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Faculty) TableName() string { return "faculty" }
