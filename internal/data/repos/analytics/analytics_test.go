package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yungbote/personamatch-backend/internal/data/repos/testutil"
	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
)

func TestSimulationRunRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewSimulationRunRepo(db, testutil.Logger(t))
	tenant, product := uuid.New(), uuid.New()

	for i, optimal := range []float64{1200, 1500} {
		_, err := repo.Create(dbc, &types.SimulationRun{
			TenantID:     tenant,
			ProductID:    product,
			CurrentPrice: decimal.NewFromInt(1000),
			MinPrice:     500,
			MaxPrice:     1500,
			Steps:        3,
			OptimalPrice: optimal,
			RecordCount:  1,
			Result:       datatypes.JSON([]byte(`{"simulations":[]}`)),
			CreatedAt:    time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	runs, err := repo.ListByProduct(dbc, tenant, product, 10)
	if err != nil {
		t.Fatalf("ListByProduct: %v", err)
	}
	if len(runs) != 2 || runs[0].OptimalPrice != 1500 {
		t.Fatalf("ListByProduct: expected newest first, got %+v", runs)
	}

	runs, err = repo.ListByProduct(dbc, uuid.New(), product, 10)
	if err != nil {
		t.Fatalf("ListByProduct (other tenant): %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("ListByProduct (other tenant): expected none, got %d", len(runs))
	}
}

func TestInsightSnapshotRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewInsightSnapshotRepo(db, testutil.Logger(t))
	tenant := uuid.New()

	missing, err := repo.Get(dbc, tenant, "2024-05-01")
	if err != nil {
		t.Fatalf("Get (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("Get (missing): expected nil, got %+v", missing)
	}

	first := &types.InsightSnapshot{
		TenantID:     tenant,
		SnapshotDate: "2024-05-01",
		Insights:     datatypes.JSON([]byte(`[]`)),
		Summary:      "first",
		GeneratedAt:  time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC),
	}
	if err := repo.Upsert(dbc, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second := &types.InsightSnapshot{
		TenantID:     tenant,
		SnapshotDate: "2024-05-01",
		Insights:     datatypes.JSON([]byte(`[{"type":"trend"}]`)),
		Summary:      "second",
		ProductCount: 4,
		GeneratedAt:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.Upsert(dbc, second); err != nil {
		t.Fatalf("Upsert (replace): %v", err)
	}

	got, err := repo.Get(dbc, tenant, "2024-05-01")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Summary != "second" || got.ProductCount != 4 {
		t.Fatalf("Get: expected replaced snapshot, got %+v", got)
	}

	var count int64
	if err := tx.Model(&types.InsightSnapshot{}).Where("tenant_id = ?", tenant).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one snapshot row per tenant and day, got %d", count)
	}
}
