package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/yungbote/personamatch-backend/internal/domain"
)

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, name, category string, price int64) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     name,
		Category: category,
		Price:    decimal.NewFromInt(price),
		Currency: "INR",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

// SeedRoster creates the full persona roster for tenantID: slots 0-4 female, 5-9 male.
func SeedRoster(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) []*types.Persona {
	tb.Helper()
	out := make([]*types.Persona, 0, types.RosterSize)
	for slot := 0; slot < types.RosterSize; slot++ {
		gender := types.GenderFemale
		if slot >= types.RosterSize/2 {
			gender = types.GenderMale
		}
		p := &types.Persona{
			ID:       uuid.New(),
			TenantID: tenantID,
			Slot:     slot,
			Name:     fmt.Sprintf("Persona %d", slot+1),
			Gender:   gender,
		}
		if err := tx.WithContext(ctx).Create(p).Error; err != nil {
			tb.Fatalf("seed persona: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func SeedMatch(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID, productID, personaID uuid.UUID, like, sweetSpot, elasticity float64) *types.MatchRecord {
	tb.Helper()
	m := &types.MatchRecord{
		ID:              uuid.New(),
		TenantID:        tenantID,
		ProductID:       productID,
		PersonaID:       personaID,
		LikeProbability: like,
		ConfidenceScore: 80,
		PriceFloor:      sweetSpot * 0.8,
		PriceSweetSpot:  sweetSpot,
		PriceCeiling:    sweetSpot * 1.2,
		PriceElasticity: elasticity,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed match record: %v", err)
	}
	return m
}
