package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/yungbote/personamatch-backend/internal/clients/redis"
	"github.com/yungbote/personamatch-backend/internal/data/repos"
	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/engine/insights"
	"github.com/yungbote/personamatch-backend/internal/observability"
	"github.com/yungbote/personamatch-backend/internal/platform/ctxutil"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

const (
	SourceCache     = "cache"
	SourceSnapshot  = "snapshot"
	SourceGenerated = "generated"
)

type InsightReport struct {
	*insights.Report
	SnapshotDate string    `json:"snapshot_date"`
	GeneratedAt  time.Time `json:"generated_at"`
	Source       string    `json:"source"`
}

type InsightsService interface {
	// Get returns today's (UTC) report, generating and storing it on first use. refresh skips
	// the cache and the stored snapshot.
	Get(ctx context.Context, refresh bool) (*InsightReport, error)
	// RefreshTenant regenerates today's report for tenantID outside a request scope.
	RefreshTenant(ctx context.Context, tenantID uuid.UUID) (*InsightReport, error)
}

type insightsService struct {
	log          *logger.Logger
	productRepo  repos.ProductRepo
	personaRepo  repos.PersonaRepo
	matchRepo    repos.MatchRecordRepo
	snapshotRepo repos.InsightSnapshotRepo
	cache        redis.InsightCache
	now          func() time.Time
}

func NewInsightsService(
	log *logger.Logger,
	productRepo repos.ProductRepo,
	personaRepo repos.PersonaRepo,
	matchRepo repos.MatchRecordRepo,
	snapshotRepo repos.InsightSnapshotRepo,
	cache redis.InsightCache,
) InsightsService {
	if cache == nil {
		cache = redis.NewNopInsightCache()
	}
	return &insightsService{
		log:          log.With("service", "InsightsService"),
		productRepo:  productRepo,
		personaRepo:  personaRepo,
		matchRepo:    matchRepo,
		snapshotRepo: snapshotRepo,
		cache:        cache,
		now:          time.Now,
	}
}

func (s *insightsService) Get(ctx context.Context, refresh bool) (*InsightReport, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "insights.get", attribute.Bool("refresh", refresh))
	out, err := s.get(ctx, tenantID, refresh)
	if out != nil {
		span.SetAttributes(attribute.String("source", out.Source))
	}
	observability.EndSpan(span, err)
	if err != nil {
		return nil, mapError(err, false)
	}
	return out, nil
}

func (s *insightsService) RefreshTenant(ctx context.Context, tenantID uuid.UUID) (*InsightReport, error) {
	ctx = ctxutil.WithTenant(ctx, tenantID)
	return s.Get(ctx, true)
}

func (s *insightsService) get(ctx context.Context, tenantID uuid.UUID, refresh bool) (*InsightReport, error) {
	day := s.now().UTC().Format(types.SnapshotDateLayout)
	dbc := dbctx.Context{Ctx: ctx}

	if !refresh {
		if report, ok, err := s.cache.Get(ctx, tenantID, day); err != nil {
			s.log.Warn("Insight cache read failed", "tenant_id", tenantID, "error", err)
		} else if ok {
			return &InsightReport{Report: report, SnapshotDate: day, Source: SourceCache}, nil
		}

		snap, err := s.snapshotRepo.Get(dbc, tenantID, day)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			report, err := reportFromSnapshot(snap)
			if err != nil {
				s.log.Warn("Stored insight snapshot is unreadable; regenerating", "tenant_id", tenantID, "day", day, "error", err)
			} else {
				s.cacheReport(ctx, tenantID, day, report)
				return &InsightReport{Report: report, SnapshotDate: day, GeneratedAt: snap.GeneratedAt, Source: SourceSnapshot}, nil
			}
		}
	}

	return s.generate(ctx, tenantID, day)
}

func (s *insightsService) generate(ctx context.Context, tenantID uuid.UUID, day string) (*InsightReport, error) {
	dbc := dbctx.Context{Ctx: ctx}

	products, err := s.productRepo.ListByTenant(dbc, tenantID)
	if err != nil {
		return nil, err
	}
	personas, err := s.personaRepo.ListByTenant(dbc, tenantID)
	if err != nil {
		return nil, err
	}
	records, err := s.matchRepo.ListByTenant(dbc, tenantID)
	if err != nil {
		return nil, err
	}
	if problem := rosterProblem(personas); problem != "" {
		s.log.Warn("Persona roster is not in its initialized shape", "tenant_id", tenantID, "problem", problem)
	}

	ip, ipe, ir := toInsightInputs(products, personas, records)
	report, err := insights.Generate(ip, ipe, ir)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now().UTC()
	raw, err := json.Marshal(report.Insights)
	if err != nil {
		return nil, err
	}
	if err := s.snapshotRepo.Upsert(dbc, &types.InsightSnapshot{
		TenantID:     tenantID,
		SnapshotDate: day,
		Insights:     datatypes.JSON(raw),
		Summary:      report.Summary,
		ProductCount: len(products),
		RecordCount:  len(records),
		GeneratedAt:  generatedAt,
	}); err != nil {
		return nil, err
	}
	s.cacheReport(ctx, tenantID, day, report)

	s.log.Info("Insights generated", "tenant_id", tenantID, "day", day, "insights", len(report.Insights), "products", len(products), "records", len(records))
	return &InsightReport{Report: report, SnapshotDate: day, GeneratedAt: generatedAt, Source: SourceGenerated}, nil
}

func (s *insightsService) cacheReport(ctx context.Context, tenantID uuid.UUID, day string, report *insights.Report) {
	if err := s.cache.Set(ctx, tenantID, day, report); err != nil {
		s.log.Warn("Insight cache write failed", "tenant_id", tenantID, "error", err)
	}
}

func reportFromSnapshot(snap *types.InsightSnapshot) (*insights.Report, error) {
	list := []insights.Insight{}
	if len(snap.Insights) > 0 {
		if err := json.Unmarshal(snap.Insights, &list); err != nil {
			return nil, err
		}
	}
	if list == nil {
		list = []insights.Insight{}
	}
	return &insights.Report{Insights: list, Summary: snap.Summary}, nil
}

// rosterProblem describes how personas deviate from the initialized roster (10 personas, five
// of each gender). Empty means the roster is complete or not yet created.
func rosterProblem(personas []*types.Persona) string {
	if len(personas) == 0 {
		return ""
	}
	var female, male int
	for _, p := range personas {
		switch p.Gender {
		case types.GenderFemale:
			female++
		case types.GenderMale:
			male++
		}
	}
	half := types.RosterSize / 2
	if len(personas) != types.RosterSize || female != half || male != half {
		return fmt.Sprintf("%d personas (%d female, %d male)", len(personas), female, male)
	}
	return ""
}
