package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SimulationRun is an append-only record of one what-if simulation and its full result.
type SimulationRun struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	CurrentPrice decimal.Decimal `gorm:"column:current_price;type:numeric(12,2);not null" json:"current_price"`
	MinPrice     float64         `gorm:"column:min_price;not null" json:"min_price"`
	MaxPrice     float64         `gorm:"column:max_price;not null" json:"max_price"`
	Steps        int             `gorm:"column:steps;not null" json:"steps"`
	OptimalPrice float64         `gorm:"column:optimal_price;not null" json:"optimal_price"`
	RecordCount  int             `gorm:"column:record_count;not null" json:"record_count"`
	Result       datatypes.JSON  `gorm:"column:result;type:jsonb" json:"result"`
	CreatedAt    time.Time       `gorm:"not null;index" json:"created_at"`
}

func (SimulationRun) TableName() string { return "simulation_run" }

func (s *SimulationRun) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
