package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/personamatch-backend/internal/data/repos"
	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/engine/style"
	"github.com/yungbote/personamatch-backend/internal/observability"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type ProductClassification struct {
	ProductID uuid.UUID `json:"product_id"`
	style.Classification
	ClassifiedAt time.Time `json:"classified_at"`
}

type BulkClassification struct {
	ConfigVersion string `json:"config_version"`
	Total         int    `json:"total"`
	Updated       int    `json:"updated"`
	Skipped       int    `json:"skipped"`
}

type StyleService interface {
	Classify(ctx context.Context, productID uuid.UUID) (*ProductClassification, error)
	// ClassifyAll stores a cluster for every product of the tenant. Products already classified
	// under the current config version are skipped unless force is set.
	ClassifyAll(ctx context.Context, force bool) (*BulkClassification, error)
	Clusters(ctx context.Context, sortBy string) ([]style.ClusterSummary, error)
	Config() *style.Config
}

type styleService struct {
	log         *logger.Logger
	cfg         *style.Config
	productRepo repos.ProductRepo
	matchRepo   repos.MatchRecordRepo
	concurrency int
	now         func() time.Time
}

func NewStyleService(log *logger.Logger, cfg *style.Config, productRepo repos.ProductRepo, matchRepo repos.MatchRecordRepo, concurrency int) StyleService {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &styleService{
		log:         log.With("service", "StyleService"),
		cfg:         cfg,
		productRepo: productRepo,
		matchRepo:   matchRepo,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func (s *styleService) Config() *style.Config { return s.cfg }

func (s *styleService) Classify(ctx context.Context, productID uuid.UUID) (*ProductClassification, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "style.classify", attribute.String("product_id", productID.String()))
	dbc := dbctx.Context{Ctx: ctx}

	product, err := s.productRepo.GetByID(dbc, tenantID, productID)
	if err != nil {
		observability.EndSpan(span, err)
		return nil, mapError(err, false)
	}
	out, err := s.store(dbc, product)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, mapError(err, false)
	}
	return out, nil
}

func (s *styleService) store(dbc dbctx.Context, product *types.Product) (*ProductClassification, error) {
	c := s.cfg.Explain(toStyleProduct(product))
	at := s.now().UTC()
	if err := s.productRepo.UpdateClassification(dbc, product.ID, c.Cluster.Name, c.ConfigVersion, at); err != nil {
		return nil, err
	}
	if c.Fallback {
		s.log.Debug("No style keyword matched; assigned first cluster", "product_id", product.ID, "cluster", c.Cluster.Name)
	}
	return &ProductClassification{ProductID: product.ID, Classification: c, ClassifiedAt: at}, nil
}

func (s *styleService) ClassifyAll(ctx context.Context, force bool) (*BulkClassification, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "style.classify_all", attribute.Bool("force", force))

	products, err := s.productRepo.ListByTenant(dbctx.Context{Ctx: ctx}, tenantID)
	if err != nil {
		observability.EndSpan(span, err)
		return nil, mapError(err, false)
	}

	out := &BulkClassification{ConfigVersion: s.cfg.Version(), Total: len(products)}
	var pending []*types.Product
	for _, p := range products {
		if !force && p.ClassifiedAt != nil && p.StyleConfigVersion == s.cfg.Version() {
			out.Skipped++
			continue
		}
		pending = append(pending, p)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, p := range pending {
		p := p
		g.Go(func() error {
			_, err := s.store(dbctx.Context{Ctx: gctx}, p)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		observability.EndSpan(span, err)
		return nil, mapError(err, false)
	}
	out.Updated = len(pending)
	span.SetAttributes(attribute.Int("updated", out.Updated), attribute.Int("skipped", out.Skipped))
	observability.EndSpan(span, nil)

	s.log.Info("Bulk classification complete", "tenant_id", tenantID, "updated", out.Updated, "skipped", out.Skipped, "config_version", out.ConfigVersion)
	return out, nil
}

func (s *styleService) Clusters(ctx context.Context, sortBy string) ([]style.ClusterSummary, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "style.clusters")
	dbc := dbctx.Context{Ctx: ctx}

	products, err := s.productRepo.ListByTenant(dbc, tenantID)
	if err != nil {
		observability.EndSpan(span, err)
		return nil, mapError(err, false)
	}
	records, err := s.matchRepo.ListByTenant(dbc, tenantID)
	if err != nil {
		observability.EndSpan(span, err)
		return nil, mapError(err, false)
	}
	sums, err := s.cfg.Aggregate(toStyleProducts(products), toStyleRecords(records))
	observability.EndSpan(span, err)
	if err != nil {
		return nil, mapError(err, false)
	}
	return sortSummaries(sums, s.cfg, sortBy), nil
}
