package services

import (
	"encoding/json"
	"strings"

	types "github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/engine/insights"
	"github.com/yungbote/personamatch-backend/internal/engine/pricing"
	"github.com/yungbote/personamatch-backend/internal/engine/style"
)

func personaNames(personas []*types.Persona) map[string]string {
	out := make(map[string]string, len(personas))
	for _, p := range personas {
		out[p.ID.String()] = p.Name
	}
	return out
}

func toPricingProduct(p *types.Product) pricing.Product {
	return pricing.Product{ID: p.ID.String(), Name: p.Name, Price: p.Price.InexactFloat64()}
}

func toPricingRecords(records []*types.MatchRecord, names map[string]string) []pricing.MatchRecord {
	out := make([]pricing.MatchRecord, 0, len(records))
	for _, r := range records {
		pid := r.PersonaID.String()
		out = append(out, pricing.MatchRecord{
			ProductID:       r.ProductID.String(),
			PersonaID:       pid,
			PersonaName:     names[pid],
			LikeProbability: r.LikeProbability,
			PriceElasticity: r.PriceElasticity,
		})
	}
	return out
}

// toStyleProduct tolerates a malformed extracted_features document by classifying on the
// remaining text fields.
func toStyleProduct(p *types.Product) style.Product {
	sp := style.Product{
		ID:          p.ID.String(),
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
	}
	raw := strings.TrimSpace(string(p.ExtractedFeatures))
	if raw == "" || raw == "null" {
		return sp
	}
	var f types.ExtractedFeatures
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return sp
	}
	sp.Features = &style.Features{
		Fit:      f.Fit,
		Style:    f.Style,
		Pattern:  f.Pattern,
		Fabric:   f.Fabric,
		Occasion: f.Occasion,
	}
	return sp
}

func toStyleProducts(products []*types.Product) []style.Product {
	out := make([]style.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toStyleProduct(p))
	}
	return out
}

func toStyleRecords(records []*types.MatchRecord) []style.MatchRecord {
	out := make([]style.MatchRecord, 0, len(records))
	for _, r := range records {
		out = append(out, style.MatchRecord{
			ProductID:       r.ProductID.String(),
			PersonaID:       r.PersonaID.String(),
			LikeProbability: r.LikeProbability,
		})
	}
	return out
}

func toInsightInputs(products []*types.Product, personas []*types.Persona, records []*types.MatchRecord) ([]insights.Product, []insights.Persona, []insights.MatchRecord) {
	ip := make([]insights.Product, 0, len(products))
	for _, p := range products {
		ip = append(ip, insights.Product{
			ID:       p.ID.String(),
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price.InexactFloat64(),
		})
	}
	ipe := make([]insights.Persona, 0, len(personas))
	for _, p := range personas {
		ipe = append(ipe, insights.Persona{ID: p.ID.String(), Name: p.Name})
	}
	ir := make([]insights.MatchRecord, 0, len(records))
	for _, r := range records {
		ir = append(ir, insights.MatchRecord{
			ProductID:       r.ProductID.String(),
			PersonaID:       r.PersonaID.String(),
			LikeProbability: r.LikeProbability,
			PriceSweetSpot:  r.PriceSweetSpot,
			PriceElasticity: r.PriceElasticity,
		})
	}
	return ip, ipe, ir
}
