package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

// PersonaRepo is read-mostly: the roster is created once per tenant and never re-keyed.
type PersonaRepo interface {
	Create(dbc dbctx.Context, personas []*types.Persona) ([]*types.Persona, error)
	ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.Persona, error)
	GetByIDs(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*types.Persona, error)
}

type personaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
	return &personaRepo{db: db, log: baseLog.With("repo", "PersonaRepo")}
}

func (r *personaRepo) Create(dbc dbctx.Context, personas []*types.Persona) ([]*types.Persona, error) {
	if len(personas) == 0 {
		return []*types.Persona{}, nil
	}
	if err := dbc.DB(r.db).Create(&personas).Error; err != nil {
		return nil, err
	}
	return personas, nil
}

func (r *personaRepo) ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.Persona, error) {
	var out []*types.Persona
	if err := dbc.DB(r.db).
		Where("tenant_id = ?", tenantID).
		Order("slot ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *personaRepo) GetByIDs(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*types.Persona, error) {
	var out []*types.Persona
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("slot ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
