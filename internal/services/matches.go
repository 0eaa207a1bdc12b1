package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/personamatch-backend/internal/data/repos"
	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/observability"
	"github.com/yungbote/personamatch-backend/internal/platform/apierr"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/errs"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

// MatchInput is one persona score as delivered by the scoring pipeline.
type MatchInput struct {
	PersonaID       uuid.UUID `json:"persona_id"`
	LikeProbability float64   `json:"like_probability"`
	ConfidenceScore float64   `json:"confidence_score"`
	PriceFloor      float64   `json:"price_floor"`
	PriceSweetSpot  float64   `json:"price_sweet_spot"`
	PriceCeiling    float64   `json:"price_ceiling"`
	PriceElasticity float64   `json:"price_elasticity"`
	Explanation     string    `json:"explanation"`
}

type MatchService interface {
	// Ingest upserts the scores for one product. The batch is applied atomically.
	Ingest(ctx context.Context, productID uuid.UUID, inputs []MatchInput) (int, error)
}

type matchService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	personaRepo repos.PersonaRepo
	matchRepo   repos.MatchRecordRepo
}

func NewMatchService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, personaRepo repos.PersonaRepo, matchRepo repos.MatchRecordRepo) MatchService {
	return &matchService{
		db:          db,
		log:         log.With("service", "MatchService"),
		productRepo: productRepo,
		personaRepo: personaRepo,
		matchRepo:   matchRepo,
	}
}

func (s *matchService) Ingest(ctx context.Context, productID uuid.UUID, inputs []MatchInput) (int, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return 0, err
	}
	if len(inputs) == 0 {
		return 0, apierr.BadRequest(CodeInvalidArgument, fmt.Errorf("no match records supplied: %w", errs.ErrInvalidArgument))
	}
	ctx, span := observability.StartSpan(ctx, "matches.ingest", attribute.String("product_id", productID.String()), attribute.Int("records", len(inputs)))

	seen := make(map[uuid.UUID]bool, len(inputs))
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if seen[in.PersonaID] {
			err := fmt.Errorf("persona %s appears twice: %w", in.PersonaID, errs.ErrInvalidArgument)
			observability.EndSpan(span, err)
			return 0, mapError(err, true)
		}
		seen[in.PersonaID] = true
		ids = append(ids, in.PersonaID)
	}

	var n int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.productRepo.GetByID(dbc, tenantID, productID); err != nil {
			return err
		}
		personas, err := s.personaRepo.GetByIDs(dbc, tenantID, ids)
		if err != nil {
			return err
		}
		if len(personas) != len(ids) {
			known := make(map[uuid.UUID]bool, len(personas))
			for _, p := range personas {
				known[p.ID] = true
			}
			for _, id := range ids {
				if !known[id] {
					return fmt.Errorf("persona %s is not part of this tenant's roster: %w", id, errs.ErrInvalidArgument)
				}
			}
		}

		records := make([]*types.MatchRecord, 0, len(inputs))
		for _, in := range inputs {
			records = append(records, &types.MatchRecord{
				TenantID:        tenantID,
				ProductID:       productID,
				PersonaID:       in.PersonaID,
				LikeProbability: in.LikeProbability,
				ConfidenceScore: in.ConfidenceScore,
				PriceFloor:      in.PriceFloor,
				PriceSweetSpot:  in.PriceSweetSpot,
				PriceCeiling:    in.PriceCeiling,
				PriceElasticity: in.PriceElasticity,
				Explanation:     in.Explanation,
			})
		}
		n, err = s.matchRepo.Upsert(dbc, records)
		return err
	})
	observability.EndSpan(span, err)
	if err != nil {
		return 0, mapError(err, true)
	}
	s.log.Info("Match records ingested", "tenant_id", tenantID, "product_id", productID, "count", n)
	return n, nil
}
