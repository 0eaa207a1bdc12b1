package style

import (
	"fmt"
	"math"
	"sort"
)

// MatchRecord is the per (product, persona) score the aggregator averages.
type MatchRecord struct {
	ProductID       string  `json:"product_id"`
	PersonaID       string  `json:"persona_id"`
	LikeProbability float64 `json:"like_probability"`
}

type ClusterSummary struct {
	Cluster       string `json:"cluster"`
	Color         string `json:"color"`
	Count         int    `json:"count"`
	AvgMatchScore int    `json:"avg_match_score"`
	AvgPrice      int    `json:"avg_price"`
}

// Summaries holds one entry per configured cluster, keyed by cluster name.
type Summaries map[string]ClusterSummary

// UnknownProductError is returned when a match record points at a product outside the input set.
type UnknownProductError struct {
	ProductID string
	PersonaID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("match record (%s, %s) references unknown product", e.ProductID, e.PersonaID)
}

// DuplicateRecordError is returned when two records share a (product, persona) pair.
type DuplicateRecordError struct {
	ProductID string
	PersonaID string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("duplicate match record for product %s persona %s", e.ProductID, e.PersonaID)
}

type clusterAcc struct {
	count    int
	priceSum float64
	scoreSum float64
	scored   int
}

// Aggregate classifies products and summarizes each cluster. Every configured cluster is present
// in the result, zero-filled when nothing maps to it.
func (c *Config) Aggregate(products []Product, records []MatchRecord) (Summaries, error) {
	type productAcc struct {
		sum float64
		n   int
	}
	byProduct := make(map[string]*productAcc, len(products))
	for _, p := range products {
		byProduct[p.ID] = &productAcc{}
	}
	type pairKey struct{ product, persona string }
	seen := make(map[pairKey]bool, len(records))
	for _, r := range records {
		acc, ok := byProduct[r.ProductID]
		if !ok {
			return nil, &UnknownProductError{ProductID: r.ProductID, PersonaID: r.PersonaID}
		}
		k := pairKey{r.ProductID, r.PersonaID}
		if seen[k] {
			return nil, &DuplicateRecordError{ProductID: r.ProductID, PersonaID: r.PersonaID}
		}
		seen[k] = true
		acc.sum += r.LikeProbability
		acc.n++
	}

	accs := make(map[string]*clusterAcc, len(c.clusters))
	for _, cl := range c.clusters {
		accs[cl.Name] = &clusterAcc{}
	}
	for _, p := range products {
		a := accs[c.Classify(p).Name]
		a.count++
		a.priceSum += p.Price
		if pa := byProduct[p.ID]; pa.n > 0 {
			a.scoreSum += pa.sum / float64(pa.n)
			a.scored++
		}
	}

	out := make(Summaries, len(c.clusters))
	for _, cl := range c.clusters {
		a := accs[cl.Name]
		s := ClusterSummary{Cluster: cl.Name, Color: cl.Color, Count: a.count}
		if a.scored > 0 {
			s.AvgMatchScore = int(math.Round(a.scoreSum / float64(a.scored)))
		}
		if a.count > 0 {
			s.AvgPrice = int(math.Round(a.priceSum / float64(a.count)))
		}
		out[cl.Name] = s
	}
	return out, nil
}

// InDeclarationOrder lists the summaries in the config's cluster order, for stable display.
func (s Summaries) InDeclarationOrder(cfg *Config) []ClusterSummary {
	out := make([]ClusterSummary, 0, len(s))
	for _, cl := range cfg.clusters {
		if sum, ok := s[cl.Name]; ok {
			out = append(out, sum)
		}
	}
	return out
}

// ByMatchScore ranks summaries by AvgMatchScore descending; equal scores keep declaration order.
func (s Summaries) ByMatchScore(cfg *Config) []ClusterSummary {
	out := s.InDeclarationOrder(cfg)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgMatchScore > out[j].AvgMatchScore
	})
	return out
}
