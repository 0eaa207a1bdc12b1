package services

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/personamatch-backend/internal/engine/insights"
	"github.com/yungbote/personamatch-backend/internal/engine/pricing"
	"github.com/yungbote/personamatch-backend/internal/engine/style"
	"github.com/yungbote/personamatch-backend/internal/observability"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

// EngineService exposes the four computations over caller-supplied data. Nothing is read from
// or written to storage.
type EngineService interface {
	Simulate(ctx context.Context, product pricing.Product, records []pricing.MatchRecord, pr pricing.PriceRange, steps int) (*pricing.Simulation, error)
	Classify(ctx context.Context, products []style.Product) []style.Classification
	Aggregate(ctx context.Context, products []style.Product, records []style.MatchRecord, sortBy string) ([]style.ClusterSummary, error)
	Generate(ctx context.Context, products []insights.Product, personas []insights.Persona, records []insights.MatchRecord) (*insights.Report, error)
}

const (
	SortByScore    = "score"
	SortByDeclared = "declared"
)

type engineService struct {
	log      *logger.Logger
	styles   *style.Config
	maxSteps int
}

func NewEngineService(log *logger.Logger, styles *style.Config, maxSteps int) EngineService {
	return &engineService{
		log:      log.With("service", "EngineService"),
		styles:   styles,
		maxSteps: maxSteps,
	}
}

func (s *engineService) Simulate(ctx context.Context, product pricing.Product, records []pricing.MatchRecord, pr pricing.PriceRange, steps int) (*pricing.Simulation, error) {
	_, span := observability.StartSpan(ctx, "engine.simulate", attribute.Int("steps", steps), attribute.Int("records", len(records)))
	if err := checkSteps(steps, s.maxSteps); err != nil {
		observability.EndSpan(span, err)
		return nil, mapError(err, true)
	}
	sim, err := pricing.Simulate(product, records, pr, steps)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, mapError(err, true)
	}
	return sim, nil
}

func (s *engineService) Classify(ctx context.Context, products []style.Product) []style.Classification {
	_, span := observability.StartSpan(ctx, "engine.classify", attribute.Int("products", len(products)))
	defer span.End()
	out := make([]style.Classification, 0, len(products))
	for _, p := range products {
		out = append(out, s.styles.Explain(p))
	}
	return out
}

func (s *engineService) Aggregate(ctx context.Context, products []style.Product, records []style.MatchRecord, sortBy string) ([]style.ClusterSummary, error) {
	_, span := observability.StartSpan(ctx, "engine.aggregate", attribute.Int("products", len(products)), attribute.Int("records", len(records)))
	sums, err := s.styles.Aggregate(products, records)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, mapError(err, true)
	}
	return sortSummaries(sums, s.styles, sortBy), nil
}

func (s *engineService) Generate(ctx context.Context, products []insights.Product, personas []insights.Persona, records []insights.MatchRecord) (*insights.Report, error) {
	_, span := observability.StartSpan(ctx, "engine.generate", attribute.Int("products", len(products)), attribute.Int("records", len(records)))
	report, err := insights.Generate(products, personas, records)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, mapError(err, true)
	}
	return report, nil
}

func sortSummaries(sums style.Summaries, cfg *style.Config, sortBy string) []style.ClusterSummary {
	if sortBy == SortByDeclared {
		return sums.InDeclarationOrder(cfg)
	}
	return sums.ByMatchScore(cfg)
}

// checkSteps bounds the candidate count; the engine itself only requires steps >= 2.
func checkSteps(steps, max int) error {
	if max > 0 && steps > max {
		return &pricing.ValidationError{Field: "steps", Reason: "must not exceed " + strconv.Itoa(max)}
	}
	return nil
}
