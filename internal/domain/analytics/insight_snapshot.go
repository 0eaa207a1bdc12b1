package analytics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SnapshotDateLayout formats InsightSnapshot.SnapshotDate (UTC calendar day).
const SnapshotDateLayout = "2006-01-02"

// InsightSnapshot holds the generated insight report for one tenant and one UTC day.
type InsightSnapshot struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_insight_tenant_day,priority:1" json:"tenant_id"`
	SnapshotDate string         `gorm:"column:snapshot_date;not null;uniqueIndex:idx_insight_tenant_day,priority:2" json:"snapshot_date"`
	Insights     datatypes.JSON `gorm:"column:insights;type:jsonb;not null" json:"insights"`
	Summary      string         `gorm:"column:summary;not null" json:"summary"`
	ProductCount int            `gorm:"column:product_count;not null" json:"product_count"`
	RecordCount  int            `gorm:"column:record_count;not null" json:"record_count"`
	GeneratedAt  time.Time      `gorm:"column:generated_at;not null" json:"generated_at"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (InsightSnapshot) TableName() string { return "insight_snapshot" }

func (s *InsightSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
