package style

import "strings"

// Features are the attributes supplied by the feature-extraction service. Any may be empty.
type Features struct {
	Fit      string   `json:"fit,omitempty"`
	Style    string   `json:"style,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Fabric   string   `json:"fabric,omitempty"`
	Occasion []string `json:"occasion,omitempty"`
}

type Product struct {
	ID          string    `json:"id"`
	Category    string    `json:"category,omitempty"`
	Subcategory string    `json:"subcategory,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Features    *Features `json:"extracted_features,omitempty"`
}

// Classification explains a Classify result.
type Classification struct {
	Cluster Cluster `json:"cluster"`
	// Keyword is the keyword that matched; empty when Fallback is set.
	Keyword string `json:"keyword,omitempty"`
	// Fallback reports that no keyword matched and the first cluster was assigned.
	Fallback      bool   `json:"fallback"`
	ConfigVersion string `json:"config_version"`
}

// Classify returns the first cluster, in declaration order, with a keyword that occurs as a
// case-insensitive substring of the product's text. It never fails: unmatched products get the
// first cluster.
func (c *Config) Classify(p Product) Cluster {
	return c.Explain(p).Cluster
}

// Explain is Classify plus the matching keyword and fallback flag.
func (c *Config) Explain(p Product) Classification {
	corpus := searchCorpus(p)
	for _, cl := range c.clusters {
		for _, kw := range cl.Keywords {
			if strings.Contains(corpus, kw) {
				return Classification{Cluster: cl, Keyword: kw, ConfigVersion: c.version}
			}
		}
	}
	return Classification{Cluster: c.clusters[0], Fallback: true, ConfigVersion: c.version}
}

// searchCorpus joins, in fixed order: fit, style, pattern, fabric, occasions, description,
// category, subcategory.
func searchCorpus(p Product) string {
	parts := make([]string, 0, 8)
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if f := p.Features; f != nil {
		add(f.Fit)
		add(f.Style)
		add(f.Pattern)
		add(f.Fabric)
		for _, o := range f.Occasion {
			add(o)
		}
	}
	add(p.Description)
	add(p.Category)
	add(p.Subcategory)
	return strings.ToLower(strings.Join(parts, " "))
}
