package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRecord is one persona's score for one product, written by the scoring pipeline.
type MatchRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID        uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_product_persona,priority:1" json:"product_id"`
	PersonaID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_product_persona,priority:2;index" json:"persona_id"`
	LikeProbability float64   `gorm:"column:like_probability;not null" json:"like_probability"`
	ConfidenceScore float64   `gorm:"column:confidence_score;not null;default:0" json:"confidence_score"`
	PriceFloor      float64   `gorm:"column:price_floor;not null;default:0" json:"price_floor"`
	PriceSweetSpot  float64   `gorm:"column:price_sweet_spot;not null;default:0" json:"price_sweet_spot"`
	PriceCeiling    float64   `gorm:"column:price_ceiling;not null;default:0" json:"price_ceiling"`
	PriceElasticity float64   `gorm:"column:price_elasticity;not null;default:0" json:"price_elasticity"`
	Explanation     string    `gorm:"column:explanation" json:"explanation,omitempty"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;index" json:"updated_at"`
}

func (MatchRecord) TableName() string { return "match_record" }

func (m *MatchRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Validate checks the score bounds the scoring pipeline guarantees.
func (m *MatchRecord) Validate() error {
	switch {
	case m.ProductID == uuid.Nil:
		return fmt.Errorf("product_id is required")
	case m.PersonaID == uuid.Nil:
		return fmt.Errorf("persona_id is required")
	case !inPercent(m.LikeProbability):
		return fmt.Errorf("like_probability %v outside [0,100]", m.LikeProbability)
	case !inPercent(m.ConfidenceScore):
		return fmt.Errorf("confidence_score %v outside [0,100]", m.ConfidenceScore)
	case !finite(m.PriceFloor) || !finite(m.PriceSweetSpot) || !finite(m.PriceCeiling) || !finite(m.PriceElasticity):
		return fmt.Errorf("price bounds and elasticity must be finite")
	case m.PriceFloor < 0:
		return fmt.Errorf("price_floor %v is negative", m.PriceFloor)
	case m.PriceFloor > m.PriceSweetSpot || m.PriceSweetSpot > m.PriceCeiling:
		return fmt.Errorf("price bounds out of order: floor %v, sweet spot %v, ceiling %v", m.PriceFloor, m.PriceSweetSpot, m.PriceCeiling)
	}
	return nil
}

func inPercent(v float64) bool { return finite(v) && v >= 0 && v <= 100 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
