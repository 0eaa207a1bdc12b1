// Package style buckets products into a fixed, ordered set of aesthetic clusters and rolls
// match scores up per cluster.
package style

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed clusters.yaml
var defaultClustersYAML []byte

type Cluster struct {
	Name     string   `yaml:"name" json:"name"`
	Color    string   `yaml:"color" json:"color"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Config is an immutable, versioned cluster table. Use ParseConfig or DefaultConfig; the zero
// value is not usable.
type Config struct {
	version  string
	clusters []Cluster
}

type configFile struct {
	Version  string    `yaml:"version"`
	Clusters []Cluster `yaml:"clusters"`
}

var ErrInvalidConfig = errors.New("invalid style cluster config")

// ParseConfig decodes a YAML cluster table. Keywords are lowercased and trimmed.
func ParseConfig(raw []byte) (*Config, error) {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	f.Version = strings.TrimSpace(f.Version)
	if f.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidConfig)
	}
	if len(f.Clusters) == 0 {
		return nil, fmt.Errorf("%w: no clusters", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(f.Clusters))
	clusters := make([]Cluster, 0, len(f.Clusters))
	for i, c := range f.Clusters {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: cluster %d has no name", ErrInvalidConfig, i)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate cluster %q", ErrInvalidConfig, name)
		}
		seen[name] = true
		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			return nil, fmt.Errorf("%w: cluster %q has no keywords", ErrInvalidConfig, name)
		}
		clusters = append(clusters, Cluster{Name: name, Color: strings.TrimSpace(c.Color), Keywords: kws})
	}
	return &Config{version: f.Version, clusters: clusters}, nil
}

var (
	defaultOnce sync.Once
	defaultCfg  *Config
)

// DefaultConfig returns the embedded six-cluster table.
func DefaultConfig() *Config {
	defaultOnce.Do(func() {
		cfg, err := ParseConfig(defaultClustersYAML)
		if err != nil {
			panic(fmt.Sprintf("style: embedded clusters.yaml: %v", err))
		}
		defaultCfg = cfg
	})
	return defaultCfg
}

// LoadConfig reads a cluster table from path, or returns DefaultConfig when path is empty.
func LoadConfig(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultConfig(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseConfig(raw)
}

func (c *Config) Version() string { return c.version }

// Clusters returns a copy of the clusters in declaration order.
func (c *Config) Clusters() []Cluster {
	out := make([]Cluster, len(c.clusters))
	for i, cl := range c.clusters {
		out[i] = Cluster{Name: cl.Name, Color: cl.Color, Keywords: append([]string(nil), cl.Keywords...)}
	}
	return out
}

// Cluster looks a cluster up by name.
func (c *Config) Cluster(name string) (Cluster, bool) {
	for _, cl := range c.clusters {
		if cl.Name == name {
			return cl, true
		}
	}
	return Cluster{}, false
}
