package analytics

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type InsightSnapshotRepo interface {
	// Upsert replaces the snapshot for (tenant, day).
	Upsert(dbc dbctx.Context, snap *types.InsightSnapshot) error
	// Get returns nil, nil when no snapshot exists for the day.
	Get(dbc dbctx.Context, tenantID uuid.UUID, day string) (*types.InsightSnapshot, error)
}

type insightSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsightSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) InsightSnapshotRepo {
	return &insightSnapshotRepo{db: db, log: baseLog.With("repo", "InsightSnapshotRepo")}
}

func (r *insightSnapshotRepo) Upsert(dbc dbctx.Context, snap *types.InsightSnapshot) error {
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "snapshot_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"insights",
				"summary",
				"product_count",
				"record_count",
				"generated_at",
				"updated_at",
			}),
		}).
		Create(snap).Error
}

func (r *insightSnapshotRepo) Get(dbc dbctx.Context, tenantID uuid.UUID, day string) (*types.InsightSnapshot, error) {
	var snap types.InsightSnapshot
	if err := dbc.DB(r.db).
		Where("tenant_id = ? AND snapshot_date = ?", tenantID, day).
		Limit(1).
		Find(&snap).Error; err != nil {
		return nil, err
	}
	if snap.ID == uuid.Nil {
		return nil, nil
	}
	return &snap, nil
}
