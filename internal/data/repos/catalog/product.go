package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/errs"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error)
	GetByID(dbc dbctx.Context, tenantID, id uuid.UUID) (*types.Product, error)
	GetByIDs(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*types.Product, error)
	ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.Product, error)
	UpdateClassification(dbc dbctx.Context, id uuid.UUID, cluster, configVersion string, at time.Time) error
	ListTenantIDs(dbc dbctx.Context) ([]uuid.UUID, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error) {
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	if err := dbc.DB(r.db).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) GetByID(dbc dbctx.Context, tenantID, id uuid.UUID) (*types.Product, error) {
	var p types.Product
	err := dbc.DB(r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Limit(1).
		Find(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, fmt.Errorf("product %s: %w", id, errs.ErrNotFound)
	}
	return &p, nil
}

func (r *productRepo) GetByIDs(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*types.Product, error) {
	var out []*types.Product
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.Product, error) {
	var out []*types.Product
	if err := dbc.DB(r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) UpdateClassification(dbc dbctx.Context, id uuid.UUID, cluster, configVersion string, at time.Time) error {
	res := dbc.DB(r.db).
		Model(&types.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"style_cluster":        cluster,
			"style_config_version": configVersion,
			"classified_at":        at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *productRepo) ListTenantIDs(dbc dbctx.Context) ([]uuid.UUID, error) {
	var out []uuid.UUID
	if err := dbc.DB(r.db).
		Model(&types.Product{}).
		Distinct("tenant_id").
		Order("tenant_id ASC").
		Pluck("tenant_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
