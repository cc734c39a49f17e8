package model

import (
	"runtime"
	"time"
)

// Config holds the full engine configuration. Values come from, in order of
// priority: CLI flags, PREASM_* environment variables, the config file at
// ~/.preassembly/config.yaml, and the defaults below.
type Config struct {
	Ontology    OntologyConfig    `json:"ontology" yaml:"ontology" mapstructure:"ontology"`
	Concurrency ConcurrencyConfig `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `json:"cache" yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
}

// OntologyConfig configures where the ontology snapshot comes from and how
// closure queries are cached.
type OntologyConfig struct {
	Path        string        `json:"path" yaml:"path" mapstructure:"path"`                            // Local snapshot file (YAML edge list)
	SnapshotURL string        `json:"snapshot_url" yaml:"snapshot_url" mapstructure:"snapshot_url"`    // Published snapshot to fetch from
	Relations   []string      `json:"relations" yaml:"relations" mapstructure:"relations"`             // Edge types traversed for refinement
	CacheTTL    time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`             // Closure cache entry lifetime
	CacheClosures bool        `json:"cache_closures" yaml:"cache_closures" mapstructure:"cache_closures"` // Memoize ancestor/descendant closures
}

// ConcurrencyConfig controls the per-type worker dispatch.
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"` // Worker pool size for large type partitions

	// PartitionThreshold is the minimum number of statements a type
	// partition must have before its refinement pass is dispatched to the
	// pool; smaller partitions run inline to avoid dispatch overhead.
	PartitionThreshold int `json:"partition_threshold" yaml:"partition_threshold" mapstructure:"partition_threshold"`
}

// CacheConfig configures the snapshot download cache.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `json:"dir" yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose  bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	JSONLogs bool `json:"json_logs" yaml:"json_logs" mapstructure:"json_logs"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{
			Relations:     []string{"isa", "partof"},
			CacheTTL:      30 * time.Minute,
			CacheClosures: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers:            runtime.NumCPU(),
			PartitionThreshold: 1000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{},
	}
}
