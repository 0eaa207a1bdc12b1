// Package pricing projects how persona purchase probability responds to price changes and
// picks a revenue-optimal price point from a tested range.
//
// ExpectedRevenue is a comparative index (price × probability / 100). It ranks candidate
// prices against each other; it is not a currency forecast.
package pricing

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultElasticity is used for records whose elasticity is zero or not a number.
	DefaultElasticity = -0.5

	discountThreshold = 0.9
	premiumThreshold  = 1.1

	highSensitivityDrop = 20.0
	lowSensitivityDrop  = 10.0
)

const (
	RecommendationAggressive = "aggressive pricing — may erode margins"
	RecommendationPremium    = "premium pricing — may reduce volume"
	RecommendationOptimal    = "optimal range"
)

type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Price float64 `json:"price"`
}

// MatchRecord is the slice of a stored product/persona score the simulator needs.
type MatchRecord struct {
	ProductID       string  `json:"product_id,omitempty"`
	PersonaID       string  `json:"persona_id"`
	PersonaName     string  `json:"persona_name,omitempty"`
	LikeProbability float64 `json:"like_probability"`
	PriceElasticity float64 `json:"price_elasticity"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type PersonaProbability struct {
	PersonaID   string  `json:"persona_id"`
	PersonaName string  `json:"persona_name,omitempty"`
	Probability float64 `json:"probability"`
}

type SimulationResult struct {
	Price                float64              `json:"price"`
	PersonaProbabilities []PersonaProbability `json:"persona_probabilities"`
	AverageProbability   float64              `json:"average_probability"`
	ExpectedRevenue      float64              `json:"expected_revenue"`
	Recommendation       string               `json:"recommendation"`
}

type Simulation struct {
	Simulations []SimulationResult `json:"simulations"`
	Optimal     SimulationResult   `json:"optimal"`
	Insights    []string           `json:"insights"`
}

// Simulate evaluates steps evenly spaced candidate prices across pr for product, using the
// match records that belong to it.
func Simulate(product Product, records []MatchRecord, pr PriceRange, steps int) (*Simulation, error) {
	if err := validate(product, pr, steps); err != nil {
		return nil, err
	}
	own := recordsFor(product.ID, records)
	if len(own) == 0 {
		return nil, &NoDataError{ProductID: product.ID}
	}

	stepSize := (pr.Max - pr.Min) / float64(steps-1)
	sims := make([]SimulationResult, 0, steps)
	for i := 0; i < steps; i++ {
		price := math.Round(pr.Min + stepSize*float64(i))
		sims = append(sims, evaluate(product.Price, price, own))
	}

	optimal := pickOptimal(sims, product.Price)
	baseline := evaluate(product.Price, product.Price, own)

	return &Simulation{
		Simulations: sims,
		Optimal:     optimal,
		Insights:    buildInsights(product, sims, optimal, baseline),
	}, nil
}

func validate(product Product, pr PriceRange, steps int) error {
	switch {
	case !finite(product.Price) || product.Price <= 0:
		return &ValidationError{Field: "product.price", Reason: fmt.Sprintf("must be a positive number, got %v", product.Price)}
	case !finite(pr.Min) || !finite(pr.Max):
		return &ValidationError{Field: "price_range", Reason: "bounds must be finite"}
	case pr.Min < 0:
		return &ValidationError{Field: "price_range.min", Reason: "must not be negative"}
	case pr.Max < pr.Min:
		return &ValidationError{Field: "price_range", Reason: fmt.Sprintf("max %v is below min %v", pr.Max, pr.Min)}
	case steps < 2:
		return &ValidationError{Field: "steps", Reason: fmt.Sprintf("must be at least 2, got %d", steps)}
	}
	return nil
}

func recordsFor(productID string, records []MatchRecord) []MatchRecord {
	out := make([]MatchRecord, 0, len(records))
	for _, r := range records {
		if r.ProductID != "" && productID != "" && r.ProductID != productID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func evaluate(current, price float64, records []MatchRecord) SimulationResult {
	ratio := (price - current) / current
	probs := make([]PersonaProbability, 0, len(records))
	sum := 0.0
	for _, r := range records {
		p := adjustedProbability(r, ratio)
		sum += p
		probs = append(probs, PersonaProbability{
			PersonaID:   r.PersonaID,
			PersonaName: r.PersonaName,
			Probability: p,
		})
	}
	avg := round1(sum / float64(len(records)))
	return SimulationResult{
		Price:                price,
		PersonaProbabilities: probs,
		AverageProbability:   avg,
		ExpectedRevenue:      math.Round(price * avg / 100),
		Recommendation:       recommend(price, current),
	}
}

func adjustedProbability(r MatchRecord, priceChangeRatio float64) float64 {
	e := r.PriceElasticity
	if e == 0 || !finite(e) {
		e = DefaultElasticity
	}
	if r.LikeProbability == 0 {
		return 0
	}
	// An overflowing factor saturates through clamp: +Inf to 100, -Inf to 0.
	factor := 1 + e*priceChangeRatio
	return round1(clamp(r.LikeProbability*factor, 0, 100))
}

func recommend(price, current float64) string {
	switch {
	case price < current*discountThreshold:
		return RecommendationAggressive
	case price > current*premiumThreshold:
		return RecommendationPremium
	default:
		return RecommendationOptimal
	}
}

// pickOptimal returns the highest revenue index. Equal indexes go to the price closest to the
// current one; an exact distance tie keeps the lower price.
func pickOptimal(sims []SimulationResult, current float64) SimulationResult {
	best := sims[0]
	for _, s := range sims[1:] {
		switch {
		case s.ExpectedRevenue > best.ExpectedRevenue:
			best = s
		case s.ExpectedRevenue == best.ExpectedRevenue &&
			math.Abs(s.Price-current) < math.Abs(best.Price-current):
			best = s
		}
	}
	return best
}

func buildInsights(product Product, sims []SimulationResult, optimal, baseline SimulationResult) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	if optimal.Price != product.Price {
		delta := optimal.ExpectedRevenue - baseline.ExpectedRevenue
		line := fmt.Sprintf("Moving the price from %s to %s changes the revenue index by %+.0f",
			formatPrice(product.Price), formatPrice(optimal.Price), delta)
		if baseline.ExpectedRevenue > 0 {
			line += fmt.Sprintf(" (%+.1f%%)", delta/baseline.ExpectedRevenue*100)
		}
		add(line + ".")
	} else {
		add("Current pricing appears optimal.")
	}

	low, high := sims[0], sims[len(sims)-1]
	drop := round1(low.AverageProbability - high.AverageProbability)
	switch {
	case drop > highSensitivityDrop:
		add(fmt.Sprintf("High price sensitivity: average like-probability falls %.1f points between %s and %s.",
			drop, formatPrice(low.Price), formatPrice(high.Price)))
	case drop < lowSensitivityDrop:
		add(fmt.Sprintf("Low price sensitivity: average like-probability moves only %.1f points across the tested range, leaving room for premium positioning.",
			drop))
	}

	if name, personaDrop, ok := mostSensitivePersona(low, high); ok {
		add(fmt.Sprintf("%s is the most price-sensitive persona, losing %.1f points from %s to %s.",
			name, personaDrop, formatPrice(low.Price), formatPrice(high.Price)))
	}
	return out
}

// mostSensitivePersona compares per-persona probabilities at the lowest and highest tested
// price. Both results come from the same record slice, so indexes line up.
func mostSensitivePersona(low, high SimulationResult) (string, float64, bool) {
	if len(low.PersonaProbabilities) == 0 || len(low.PersonaProbabilities) != len(high.PersonaProbabilities) {
		return "", 0, false
	}
	bestIdx := 0
	bestDrop := math.Inf(-1)
	for i := range low.PersonaProbabilities {
		d := low.PersonaProbabilities[i].Probability - high.PersonaProbabilities[i].Probability
		if d > bestDrop {
			bestIdx, bestDrop = i, d
		}
	}
	p := low.PersonaProbabilities[bestIdx]
	name := strings.TrimSpace(p.PersonaName)
	if name == "" {
		name = "Persona " + p.PersonaID
	}
	return name, round1(bestDrop), true
}

func formatPrice(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f", p)
	}
	return fmt.Sprintf("%.2f", p)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// clamp also folds NaN to lo and -0 to +0.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	if v == 0 {
		return 0
	}
	return v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
