package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GenderFemale = "female"
	GenderMale   = "male"

	// RosterSize is the number of personas an initialized tenant holds, split evenly by gender.
	RosterSize = 10
)

// Persona identity (tenant, gender, slot) is fixed at creation; only Attributes change.
type Persona struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_persona_tenant_slot,priority:1" json:"tenant_id"`
	Slot       int            `gorm:"column:slot;not null;uniqueIndex:idx_persona_tenant_slot,priority:2" json:"slot"`
	Name       string         `gorm:"column:name;not null" json:"name"`
	Gender     string         `gorm:"column:gender;not null" json:"gender"`
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb" json:"attributes,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (Persona) TableName() string { return "persona" }

func (p *Persona) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
