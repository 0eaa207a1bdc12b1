// Package insights runs a fixed battery of threshold rules over a tenant's products, personas
// and match records and turns the hits into short findings plus a one-paragraph summary.
package insights

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeOpportunity    Type = "opportunity"
	TypeWarning        Type = "warning"
	TypeTrend          Type = "trend"
	TypeRecommendation Type = "recommendation"
)

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// NotEnoughDataSummary is the summary when no rule fires.
const NotEnoughDataSummary = "Not enough data to generate meaningful insights yet… analyze more products against your personas to unlock trends."

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type Persona struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MatchRecord struct {
	ProductID       string  `json:"product_id"`
	PersonaID       string  `json:"persona_id"`
	LikeProbability float64 `json:"like_probability"`
	PriceSweetSpot  float64 `json:"price_sweet_spot"`
	PriceElasticity float64 `json:"price_elasticity"`
}

type Insight struct {
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      Impact `json:"impact"`
	Category    string `json:"category"`
}

type Report struct {
	Insights []Insight `json:"insights"`
	Summary  string    `json:"summary"`
}

// ContractError reports structurally inconsistent input, such as a record for a persona that
// is not in the roster. Sparse data never produces one.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string { return "insights: " + e.Reason }

// Generate evaluates every rule against the corpus. Rules are independent; their output order
// is coverage, price gap, persona variance, category performance, elasticity concentration.
func Generate(products []Product, personas []Persona, records []MatchRecord) (*Report, error) {
	c, err := newCorpus(products, personas, records)
	if err != nil {
		return nil, err
	}

	out := make([]Insight, 0, 6)
	for _, rule := range rules {
		out = append(out, rule(c)...)
	}
	return &Report{Insights: out, Summary: Summarize(out)}, nil
}

// Summarize composes one sentence per non-zero count of high-impact, opportunity and warning
// insights, in that order.
func Summarize(list []Insight) string {
	if len(list) == 0 {
		return NotEnoughDataSummary
	}
	var high, opportunities, warnings int
	for _, in := range list {
		if in.Impact == ImpactHigh {
			high++
		}
		switch in.Type {
		case TypeOpportunity:
			opportunities++
		case TypeWarning:
			warnings++
		}
	}

	var parts []string
	if high > 0 {
		parts = append(parts, fmt.Sprintf("%d high-impact %s need%s attention.", high, plural(high, "finding", "findings"), verbS(high)))
	}
	if opportunities > 0 {
		parts = append(parts, fmt.Sprintf("%d pricing %s identified.", opportunities, plural(opportunities, "opportunity", "opportunities")))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d %s flagged for review.", warnings, plural(warnings, "warning", "warnings")))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d %s generated; nothing needs urgent attention.", len(list), plural(len(list), "insight", "insights"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func verbS(n int) string {
	if n == 1 {
		return "s"
	}
	return ""
}
