package config

import (
	"time"

	"vessel-manager/core/reconcile"
)

// EnhanceConfig holds settings for source lookups and batch enhancement.
type EnhanceConfig struct {
	// CacheTTLSeconds is how long fetched candidates are reused. 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// Workers bounds how many vessels a batch run enhances at once.
	Workers int `mapstructure:"workers" default:"4"`
	// CandidatePrefix is the bucket folder holding candidate drops.
	CandidatePrefix string `mapstructure:"candidate_prefix" default:"candidates"`
	// Sources lists the enabled sources, comma separated in the environment.
	Sources []string `mapstructure:"sources" default:"marinetraffic,boat_international"`
}

// CacheTTL returns the cache time-to-live as a duration.
func (c EnhanceConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// WorkerCount returns the batch pool size, at least one.
func (c EnhanceConfig) WorkerCount() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}

// EnabledSources returns the configured sources as tags, skipping blanks.
func (c EnhanceConfig) EnabledSources() []reconcile.Source {
	out := make([]reconcile.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		tag := reconcile.NormalizeTag(s)
		if tag != "" {
			out = append(out, reconcile.Source(tag))
		}
	}
	return out
}
