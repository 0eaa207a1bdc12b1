package insights

import (
	"fmt"
	"math"
	"strings"
)

const (
	coverageLowRatio  = 0.5
	coverageHighRatio = 0.9

	priceGapRatio     = 0.10
	priceGapHighRatio = 0.15

	personaSpreadPoints = 20.0

	categoryStrongMean = 60.0
	categoryWeakMean   = 40.0

	elasticMagnitude = 1.5
	elasticShare     = 0.30
)

type rule func(c *corpus) []Insight

var rules = []rule{
	coverageRule,
	priceGapRule,
	personaVarianceRule,
	categoryPerformanceRule,
	elasticityRule,
}

type corpus struct {
	products  []Product
	personas  []Persona
	records   []MatchRecord
	byProduct map[string][]MatchRecord
	byPersona map[string][]MatchRecord
}

func newCorpus(products []Product, personas []Persona, records []MatchRecord) (*corpus, error) {
	c := &corpus{
		products:  products,
		personas:  personas,
		records:   records,
		byProduct: make(map[string][]MatchRecord, len(products)),
		byPersona: make(map[string][]MatchRecord, len(personas)),
	}
	knownProducts := make(map[string]bool, len(products))
	for _, p := range products {
		knownProducts[p.ID] = true
	}
	knownPersonas := make(map[string]bool, len(personas))
	for _, p := range personas {
		knownPersonas[p.ID] = true
	}
	seen := make(map[[2]string]bool, len(records))
	for _, r := range records {
		if !knownProducts[r.ProductID] {
			return nil, &ContractError{Reason: fmt.Sprintf("match record references unknown product %q", r.ProductID)}
		}
		if !knownPersonas[r.PersonaID] {
			return nil, &ContractError{Reason: fmt.Sprintf("match record references unknown persona %q", r.PersonaID)}
		}
		key := [2]string{r.ProductID, r.PersonaID}
		if seen[key] {
			return nil, &ContractError{Reason: fmt.Sprintf("duplicate match record for product %q persona %q", r.ProductID, r.PersonaID)}
		}
		seen[key] = true
		c.byProduct[r.ProductID] = append(c.byProduct[r.ProductID], r)
		c.byPersona[r.PersonaID] = append(c.byPersona[r.PersonaID], r)
	}
	return c, nil
}

func coverageRule(c *corpus) []Insight {
	total := len(c.products)
	if total == 0 {
		return nil
	}
	analyzed := 0
	for _, p := range c.products {
		if len(c.byProduct[p.ID]) > 0 {
			analyzed++
		}
	}
	ratio := float64(analyzed) / float64(total)
	switch {
	case ratio < coverageLowRatio:
		return []Insight{{
			Type:  TypeWarning,
			Title: "Most products are not analyzed yet",
			Description: fmt.Sprintf("Only %d of %d products (%.0f%%) have persona match scores. Run matching on the rest before relying on pricing and style trends.",
				analyzed, total, ratio*100),
			Impact:   ImpactHigh,
			Category: "Coverage",
		}}
	case ratio >= coverageHighRatio:
		return []Insight{{
			Type:        TypeTrend,
			Title:       "Catalog is well covered",
			Description: fmt.Sprintf("%d of %d products (%.0f%%) are scored against your personas.", analyzed, total, ratio*100),
			Impact:      ImpactLow,
			Category:    "Coverage",
		}}
	}
	return nil
}

func priceGapRule(c *corpus) []Insight {
	var (
		gaps     []float64
		worst    Product
		worstGap float64
		worstSS  float64
	)
	for _, p := range c.products {
		recs := c.byProduct[p.ID]
		if len(recs) == 0 || p.Price <= 0 {
			continue
		}
		sum := 0.0
		for _, r := range recs {
			sum += r.PriceSweetSpot
		}
		sweet := sum / float64(len(recs))
		if sweet <= 0 {
			continue
		}
		gap := math.Abs(sweet-p.Price) / p.Price
		if gap <= priceGapRatio {
			continue
		}
		gaps = append(gaps, gap)
		if gap > worstGap {
			worst, worstGap, worstSS = p, gap, sweet
		}
	}
	if len(gaps) == 0 {
		return nil
	}
	meanGap := mean(gaps)
	impact := ImpactMedium
	if meanGap > priceGapHighRatio {
		impact = ImpactHigh
	}
	return []Insight{{
		Type:  TypeOpportunity,
		Title: fmt.Sprintf("Price adjustment opportunity on %d %s", len(gaps), plural(len(gaps), "product", "products")),
		Description: fmt.Sprintf("Persona sweet spots sit more than 10%% away from the listed price (average gap %.0f%%). Largest gap: %s listed at %s against a sweet spot of %s.",
			meanGap*100, label(worst.Name, worst.ID), money(worst.Price), money(worstSS)),
		Impact:   impact,
		Category: "Pricing",
	}}
}

func personaVarianceRule(c *corpus) []Insight {
	type scored struct {
		persona Persona
		mean    float64
	}
	var list []scored
	for _, p := range c.personas {
		recs := c.byPersona[p.ID]
		if len(recs) == 0 {
			continue
		}
		list = append(list, scored{persona: p, mean: meanLike(recs)})
	}
	if len(list) < 2 {
		return nil
	}
	top, bottom := list[0], list[0]
	for _, s := range list[1:] {
		if s.mean > top.mean {
			top = s
		}
		if s.mean < bottom.mean {
			bottom = s
		}
	}
	spread := top.mean - bottom.mean
	if spread <= personaSpreadPoints {
		return nil
	}
	topName, bottomName := label(top.persona.Name, top.persona.ID), label(bottom.persona.Name, bottom.persona.ID)
	return []Insight{{
		Type:  TypeRecommendation,
		Title: "Persona appeal is uneven",
		Description: fmt.Sprintf("%s averages %.0f%% like-probability while %s averages %.0f%%, a %.0f-point spread. Consider products or messaging aimed at %s.",
			topName, top.mean, bottomName, bottom.mean, spread, bottomName),
		Impact:   ImpactHigh,
		Category: "Personas",
	}}
}

func categoryPerformanceRule(c *corpus) []Insight {
	type catAcc struct {
		name string
		sum  float64
		n    int
	}
	var order []*catAcc
	index := map[string]*catAcc{}
	for _, p := range c.products {
		recs := c.byProduct[p.ID]
		if len(recs) == 0 {
			continue
		}
		name := strings.TrimSpace(p.Category)
		if name == "" {
			name = "uncategorized"
		}
		acc, ok := index[name]
		if !ok {
			acc = &catAcc{name: name}
			index[name] = acc
			order = append(order, acc)
		}
		for _, r := range recs {
			acc.sum += r.LikeProbability
			acc.n++
		}
	}
	if len(order) == 0 {
		return nil
	}
	top, bottom := order[0], order[0]
	for _, a := range order[1:] {
		if a.sum/float64(a.n) > top.sum/float64(top.n) {
			top = a
		}
		if a.sum/float64(a.n) < bottom.sum/float64(bottom.n) {
			bottom = a
		}
	}
	topMean, bottomMean := top.sum/float64(top.n), bottom.sum/float64(bottom.n)

	var out []Insight
	if topMean > categoryStrongMean {
		out = append(out, Insight{
			Type:        TypeTrend,
			Title:       fmt.Sprintf("%s is your strongest category", top.name),
			Description: fmt.Sprintf("%s products average %.0f%% like-probability across personas.", top.name, topMean),
			Impact:      ImpactMedium,
			Category:    "Categories",
		})
	}
	if bottom != top && bottomMean < categoryWeakMean {
		out = append(out, Insight{
			Type:        TypeWarning,
			Title:       fmt.Sprintf("%s is underperforming", bottom.name),
			Description: fmt.Sprintf("%s products average only %.0f%% like-probability across personas.", bottom.name, bottomMean),
			Impact:      ImpactMedium,
			Category:    "Categories",
		})
	}
	return out
}

func elasticityRule(c *corpus) []Insight {
	total := len(c.records)
	if total == 0 {
		return nil
	}
	elastic := 0
	for _, r := range c.records {
		if math.Abs(r.PriceElasticity) > elasticMagnitude {
			elastic++
		}
	}
	share := float64(elastic) / float64(total)
	if share <= elasticShare {
		return nil
	}
	return []Insight{{
		Type:  TypeWarning,
		Title: "Demand is highly price-elastic",
		Description: fmt.Sprintf("%d of %d match scores (%.0f%%) have elasticity beyond ±1.5, so small price moves will swing purchase intent.",
			elastic, total, share*100),
		Impact:   ImpactHigh,
		Category: "Pricing",
	}}
}

func meanLike(recs []MatchRecord) float64 {
	sum := 0.0
	for _, r := range recs {
		sum += r.LikeProbability
	}
	return sum / float64(len(recs))
}

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func label(name, id string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return id
}

func money(v float64) string {
	return fmt.Sprintf("%.0f", math.Round(v))
}
