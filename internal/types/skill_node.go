package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkillDomain classifies a skill subtree. Cognitive and psychomotor skills
// report as "specific" (hard) skills, affective and ethics as "soft".
type SkillDomain string

const (
	SkillDomainCognitive   SkillDomain = "cognitive"
	SkillDomainPsychomotor SkillDomain = "psychomotor"
	SkillDomainAffective   SkillDomain = "affective"
	SkillDomainEthics      SkillDomain = "ethics"
)

func (d SkillDomain) Valid() bool {
	switch d {
	case SkillDomainCognitive, SkillDomainPsychomotor, SkillDomainAffective, SkillDomainEthics:
		return true
	}
	return false
}

func (d SkillDomain) Soft() bool {
	return d == SkillDomainAffective || d == SkillDomainEthics
}

// SkillNode is one row of the per-curriculum skill forest. A nil ParentID
// marks a root; a node nothing points at is a leaf. Acyclicity is not
// enforced by the schema, traversal code must guard against cycles.
type SkillNode struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CurriculumID uuid.UUID      `gorm:"type:uuid;not null;index" json:"curriculum_id"`
	ParentID     *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Domain       SkillDomain    `gorm:"column:domain;not null" json:"domain"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SkillNode) TableName() string { return "skill_node" }
