package analytics

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type SimulationRunRepo interface {
	Create(dbc dbctx.Context, run *types.SimulationRun) (*types.SimulationRun, error)
	ListByProduct(dbc dbctx.Context, tenantID, productID uuid.UUID, limit int) ([]*types.SimulationRun, error)
}

type simulationRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSimulationRunRepo(db *gorm.DB, baseLog *logger.Logger) SimulationRunRepo {
	return &simulationRunRepo{db: db, log: baseLog.With("repo", "SimulationRunRepo")}
}

func (r *simulationRunRepo) Create(dbc dbctx.Context, run *types.SimulationRun) (*types.SimulationRun, error) {
	if err := dbc.DB(r.db).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// ListByProduct returns the newest runs first.
func (r *simulationRunRepo) ListByProduct(dbc dbctx.Context, tenantID, productID uuid.UUID, limit int) ([]*types.SimulationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []*types.SimulationRun
	if err := dbc.DB(r.db).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
