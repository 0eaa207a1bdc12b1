package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/yungbote/personamatch-backend/internal/data/repos"
	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/engine/pricing"
	"github.com/yungbote/personamatch-backend/internal/observability"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

const (
	DefaultSimulationSteps = 5
	defaultRangeLow        = 0.5
	defaultRangeHigh       = 1.5
)

// SimulateParams leaves Min/Max nil to search 50%..150% of the listed price.
type SimulateParams struct {
	Min   *float64
	Max   *float64
	Steps int
}

type PricingService interface {
	Simulate(ctx context.Context, productID uuid.UUID, params SimulateParams) (*pricing.Simulation, error)
	History(ctx context.Context, productID uuid.UUID, limit int) ([]*types.SimulationRun, error)
}

type pricingService struct {
	log         *logger.Logger
	productRepo repos.ProductRepo
	personaRepo repos.PersonaRepo
	matchRepo   repos.MatchRecordRepo
	runRepo     repos.SimulationRunRepo
	maxSteps    int
}

func NewPricingService(
	log *logger.Logger,
	productRepo repos.ProductRepo,
	personaRepo repos.PersonaRepo,
	matchRepo repos.MatchRecordRepo,
	runRepo repos.SimulationRunRepo,
	maxSteps int,
) PricingService {
	return &pricingService{
		log:         log.With("service", "PricingService"),
		productRepo: productRepo,
		personaRepo: personaRepo,
		matchRepo:   matchRepo,
		runRepo:     runRepo,
		maxSteps:    maxSteps,
	}
}

func (s *pricingService) Simulate(ctx context.Context, productID uuid.UUID, params SimulateParams) (*pricing.Simulation, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "pricing.simulate", attribute.String("product_id", productID.String()))
	sim, err := s.simulate(ctx, tenantID, productID, params)
	observability.EndSpan(span, err)
	return sim, err
}

func (s *pricingService) simulate(ctx context.Context, tenantID, productID uuid.UUID, params SimulateParams) (*pricing.Simulation, error) {
	dbc := dbctx.Context{Ctx: ctx}

	product, err := s.productRepo.GetByID(dbc, tenantID, productID)
	if err != nil {
		return nil, mapError(err, false)
	}
	records, err := s.matchRepo.ListByProduct(dbc, tenantID, productID)
	if err != nil {
		return nil, mapError(err, false)
	}
	personaIDs := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		personaIDs = append(personaIDs, r.PersonaID)
	}
	personas, err := s.personaRepo.GetByIDs(dbc, tenantID, personaIDs)
	if err != nil {
		return nil, mapError(err, false)
	}

	current := product.Price.InexactFloat64()
	pr := pricing.PriceRange{Min: current * defaultRangeLow, Max: current * defaultRangeHigh}
	if params.Min != nil {
		pr.Min = *params.Min
	}
	if params.Max != nil {
		pr.Max = *params.Max
	}
	steps := params.Steps
	if steps == 0 {
		steps = DefaultSimulationSteps
	}
	if err := checkSteps(steps, s.maxSteps); err != nil {
		return nil, mapError(err, true)
	}

	sim, err := pricing.Simulate(toPricingProduct(product), toPricingRecords(records, personaNames(personas)), pr, steps)
	if err != nil {
		return nil, mapError(err, true)
	}

	s.persist(dbc, product, pr, steps, len(records), sim)
	return sim, nil
}

// persist records the run for history. A failed write is logged; the caller still gets the result.
func (s *pricingService) persist(dbc dbctx.Context, product *types.Product, pr pricing.PriceRange, steps, recordCount int, sim *pricing.Simulation) {
	raw, err := json.Marshal(sim)
	if err != nil {
		s.log.Warn("Could not encode simulation result", "product_id", product.ID, "error", err)
		return
	}
	_, err = s.runRepo.Create(dbc, &types.SimulationRun{
		TenantID:     product.TenantID,
		ProductID:    product.ID,
		CurrentPrice: product.Price,
		MinPrice:     pr.Min,
		MaxPrice:     pr.Max,
		Steps:        steps,
		OptimalPrice: sim.Optimal.Price,
		RecordCount:  recordCount,
		Result:       datatypes.JSON(raw),
	})
	if err != nil {
		s.log.Warn("Could not persist simulation run", "product_id", product.ID, "tenant_id", product.TenantID, "error", err)
	}
}

func (s *pricingService) History(ctx context.Context, productID uuid.UUID, limit int) ([]*types.SimulationRun, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.productRepo.GetByID(dbc, tenantID, productID); err != nil {
		return nil, mapError(err, false)
	}
	runs, err := s.runRepo.ListByProduct(dbc, tenantID, productID, limit)
	if err != nil {
		return nil, mapError(err, false)
	}
	return runs, nil
}
