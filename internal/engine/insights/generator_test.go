package insights

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGenerate_EmptyCorpus(t *testing.T) {
	r, err := Generate(nil, nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(r.Insights) != 0 {
		t.Fatalf("expected no insights, got %+v", r.Insights)
	}
	if r.Summary != NotEnoughDataSummary {
		t.Fatalf("summary=%q", r.Summary)
	}
	if !strings.HasPrefix(r.Summary, "Not enough data to generate meaningful insights yet") {
		t.Fatalf("summary should start with the fixed not-enough-data sentence, got %q", r.Summary)
	}
}

func TestGenerate_LowCoverageOnly(t *testing.T) {
	var products []Product
	for i := 0; i < 10; i++ {
		products = append(products, Product{ID: fmt.Sprintf("p%d", i), Category: "tshirt", Price: 800})
	}
	personas := []Persona{{ID: "a", Name: "Aisha"}}
	var records []MatchRecord
	for i := 0; i < 3; i++ {
		records = append(records, MatchRecord{ProductID: products[i].ID, PersonaID: "a", LikeProbability: 50, PriceSweetSpot: 800, PriceElasticity: -0.5})
	}

	r, err := Generate(products, personas, records)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(r.Insights) != 1 {
		t.Fatalf("expected exactly one insight, got %+v", r.Insights)
	}
	got := r.Insights[0]
	if got.Type != TypeWarning || got.Impact != ImpactHigh || got.Category != "Coverage" {
		t.Fatalf("insight=%+v", got)
	}
	if !strings.Contains(got.Description, "3 of 10 products (30%)") {
		t.Fatalf("description=%q", got.Description)
	}
	if r.Summary != "1 high-impact finding needs attention. 1 warning flagged for review." {
		t.Fatalf("summary=%q", r.Summary)
	}
}

func TestGenerate_AllRulesFireInOrder(t *testing.T) {
	personas := []Persona{{ID: "a", Name: "Aisha"}, {ID: "b", Name: "Bilal"}}
	var products []Product
	var records []MatchRecord
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("h%d", i)
		products = append(products, Product{ID: id, Name: "Hoodie " + id, Category: "hoodie", Price: 1000})
		records = append(records,
			MatchRecord{ProductID: id, PersonaID: "a", LikeProbability: 90, PriceSweetSpot: 1200, PriceElasticity: -2},
			MatchRecord{ProductID: id, PersonaID: "b", LikeProbability: 70, PriceSweetSpot: 1200, PriceElasticity: -2},
		)
	}
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("s%d", i)
		products = append(products, Product{ID: id, Category: "shorts", Price: 500})
		records = append(records,
			MatchRecord{ProductID: id, PersonaID: "a", LikeProbability: 40, PriceSweetSpot: 500, PriceElasticity: -0.4},
			MatchRecord{ProductID: id, PersonaID: "b", LikeProbability: 10, PriceSweetSpot: 500, PriceElasticity: -0.4},
		)
	}

	r, err := Generate(products, personas, records)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []struct {
		typ      Type
		impact   Impact
		category string
	}{
		{TypeTrend, ImpactLow, "Coverage"},
		{TypeOpportunity, ImpactHigh, "Pricing"},
		{TypeRecommendation, ImpactHigh, "Personas"},
		{TypeTrend, ImpactMedium, "Categories"},
		{TypeWarning, ImpactMedium, "Categories"},
		{TypeWarning, ImpactHigh, "Pricing"},
	}
	if len(r.Insights) != len(want) {
		t.Fatalf("got %d insights, want %d: %+v", len(r.Insights), len(want), r.Insights)
	}
	for i, w := range want {
		got := r.Insights[i]
		if got.Type != w.typ || got.Impact != w.impact || got.Category != w.category {
			t.Fatalf("insight[%d]=%+v, want %v/%v/%s", i, got, w.typ, w.impact, w.category)
		}
	}
	if d := r.Insights[2].Description; !strings.HasPrefix(d, "Aisha averages 65%") || !strings.Contains(d, "Bilal averages 40%") {
		t.Fatalf("persona insight=%q", d)
	}
	if r.Insights[3].Title != "hoodie is your strongest category" || r.Insights[4].Title != "shorts is underperforming" {
		t.Fatalf("category titles=%q / %q", r.Insights[3].Title, r.Insights[4].Title)
	}
	if d := r.Insights[1].Description; !strings.Contains(d, "average gap 20%") || !strings.Contains(d, "Hoodie h0 listed at 1000 against a sweet spot of 1200") {
		t.Fatalf("price gap insight=%q", d)
	}
	wantSummary := "3 high-impact findings need attention. 1 pricing opportunity identified. 2 warnings flagged for review."
	if r.Summary != wantSummary {
		t.Fatalf("summary=%q\nwant %q", r.Summary, wantSummary)
	}
}

func TestGenerate_Thresholds(t *testing.T) {
	personas := []Persona{{ID: "a"}, {ID: "b"}}

	t.Run("coverage_boundaries", func(t *testing.T) {
		products := []Product{{ID: "1"}, {ID: "2"}}
		records := []MatchRecord{{ProductID: "1", PersonaID: "a", LikeProbability: 50}}
		r, err := Generate(products, personas, records)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for _, in := range r.Insights {
			if in.Category == "Coverage" {
				t.Fatalf("50%% coverage should not fire a coverage insight: %+v", in)
			}
		}
	})

	t.Run("price_gap_medium_impact", func(t *testing.T) {
		products := []Product{{ID: "1", Category: "shirt", Price: 1000}}
		records := []MatchRecord{{ProductID: "1", PersonaID: "a", LikeProbability: 50, PriceSweetSpot: 1120}}
		r, err := Generate(products, personas, records)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		var found *Insight
		for i := range r.Insights {
			if r.Insights[i].Type == TypeOpportunity {
				found = &r.Insights[i]
			}
		}
		if found == nil || found.Impact != ImpactMedium {
			t.Fatalf("expected medium-impact opportunity, got %+v", r.Insights)
		}
	})

	t.Run("price_gap_within_ten_percent", func(t *testing.T) {
		products := []Product{{ID: "1", Price: 1000}}
		records := []MatchRecord{{ProductID: "1", PersonaID: "a", LikeProbability: 50, PriceSweetSpot: 1100}}
		r, err := Generate(products, personas, records)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for _, in := range r.Insights {
			if in.Type == TypeOpportunity {
				t.Fatalf("10%% gap should not fire: %+v", in)
			}
		}
	})

	t.Run("persona_spread_exactly_twenty", func(t *testing.T) {
		products := []Product{{ID: "1", Price: 100}}
		records := []MatchRecord{
			{ProductID: "1", PersonaID: "a", LikeProbability: 60, PriceSweetSpot: 100},
			{ProductID: "1", PersonaID: "b", LikeProbability: 40, PriceSweetSpot: 100},
		}
		r, err := Generate(products, personas, records)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for _, in := range r.Insights {
			if in.Type == TypeRecommendation {
				t.Fatalf("20-point spread should not fire: %+v", in)
			}
		}
	})

	t.Run("single_weak_category_is_not_also_bottom", func(t *testing.T) {
		products := []Product{{ID: "1", Category: "jeans", Price: 100}}
		records := []MatchRecord{{ProductID: "1", PersonaID: "a", LikeProbability: 20, PriceSweetSpot: 100}}
		r, err := Generate(products, personas, records)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for _, in := range r.Insights {
			if in.Category == "Categories" {
				t.Fatalf("a lone category has no distinct bottom: %+v", in)
			}
		}
	})

	t.Run("elasticity_share_at_thirty_percent", func(t *testing.T) {
		var products []Product
		var records []MatchRecord
		for i := 0; i < 10; i++ {
			id := fmt.Sprintf("p%d", i)
			products = append(products, Product{ID: id, Price: 100})
			e := -0.5
			if i < 3 {
				e = -1.6
			}
			records = append(records, MatchRecord{ProductID: id, PersonaID: "a", LikeProbability: 50, PriceSweetSpot: 100, PriceElasticity: e})
		}
		r, err := Generate(products, personas, records)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for _, in := range r.Insights {
			if in.Title == "Demand is highly price-elastic" {
				t.Fatalf("exactly 30%% should not fire: %+v", in)
			}
		}
	})
}

func TestGenerate_ContractViolations(t *testing.T) {
	products := []Product{{ID: "1"}}
	personas := []Persona{{ID: "a"}}
	cases := map[string][]MatchRecord{
		"unknown_persona": {{ProductID: "1", PersonaID: "ghost"}},
		"unknown_product": {{ProductID: "2", PersonaID: "a"}},
		"duplicate_pair":  {{ProductID: "1", PersonaID: "a"}, {ProductID: "1", PersonaID: "a"}},
	}
	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Generate(products, personas, records)
			var ce *ContractError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ContractError, got %v", err)
			}
		})
	}
}

func TestSummarize_LowImpactOnly(t *testing.T) {
	got := Summarize([]Insight{{Type: TypeTrend, Impact: ImpactLow}})
	if got != "1 insight generated; nothing needs urgent attention." {
		t.Fatalf("summary=%q", got)
	}
}
