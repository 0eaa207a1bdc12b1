package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/errs"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type MatchRecordRepo interface {
	// Upsert writes records keyed on (product_id, persona_id). Every record is validated first;
	// one bad record rejects the whole batch.
	Upsert(dbc dbctx.Context, records []*types.MatchRecord) (int, error)
	ListByProduct(dbc dbctx.Context, tenantID, productID uuid.UUID) ([]*types.MatchRecord, error)
	// ListByTenant returns the records of live (not soft-deleted) products.
	ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.MatchRecord, error)
}

type matchRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMatchRecordRepo(db *gorm.DB, baseLog *logger.Logger) MatchRecordRepo {
	return &matchRecordRepo{db: db, log: baseLog.With("repo", "MatchRecordRepo")}
}

func (r *matchRecordRepo) Upsert(dbc dbctx.Context, records []*types.MatchRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	for i, rec := range records {
		if rec == nil {
			return 0, fmt.Errorf("record %d is nil: %w", i, errs.ErrInvalidArgument)
		}
		if err := rec.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %v: %w", i, err, errs.ErrInvalidArgument)
		}
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "persona_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"like_probability",
				"confidence_score",
				"price_floor",
				"price_sweet_spot",
				"price_ceiling",
				"price_elasticity",
				"explanation",
				"updated_at",
			}),
		}).
		Create(&records)
	if res.Error != nil {
		return 0, res.Error
	}
	return len(records), nil
}

func (r *matchRecordRepo) ListByProduct(dbc dbctx.Context, tenantID, productID uuid.UUID) ([]*types.MatchRecord, error) {
	var out []*types.MatchRecord
	if err := dbc.DB(r.db).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("persona_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *matchRecordRepo) ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.MatchRecord, error) {
	var out []*types.MatchRecord
	if err := dbc.DB(r.db).
		Select("match_record.*").
		Joins("JOIN product ON product.id = match_record.product_id AND product.deleted_at IS NULL").
		Where("match_record.tenant_id = ?", tenantID).
		Order("match_record.product_id ASC, match_record.persona_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
