package config

import (
	"errors"

	"github.com/hookswap/route-engine/internal/common"
)

type AggregatorConfig struct {
	// VenueTimeoutMs bounds each venue's quote fetch during aggregation
	// (in milliseconds). Default: 800
	VenueTimeoutMs int

	// VenueRPS is the shared pool-source request budget in requests per
	// second. Default: 50
	VenueRPS int

	// VenueBurst is the limiter burst for the shared pool source.
	// Default: 10
	VenueBurst int

	// HookSeedFile optionally points at a JSON whitelist seed; when
	// empty, the built-in seed set is used.
	HookSeedFile string

	// PoolFixtureFile optionally points at a JSON pool snapshot file to
	// preload the in-memory pool source with.
	PoolFixtureFile string
}

func (c *AggregatorConfig) Key() string {
	return AGGREGATOR_CONFIG_KEY
}

func (c *AggregatorConfig) Load() error {
	c.VenueTimeoutMs = common.GetEnvIntOrDefault("AGGREGATOR_VENUE_TIMEOUT_MS", 800)
	c.VenueRPS = common.GetEnvIntOrDefault("AGGREGATOR_VENUE_RPS", 50)
	c.VenueBurst = common.GetEnvIntOrDefault("AGGREGATOR_VENUE_BURST", 10)
	c.HookSeedFile = common.GetEnvOrDefault("AGGREGATOR_HOOK_SEED_FILE", "")
	c.PoolFixtureFile = common.GetEnvOrDefault("AGGREGATOR_POOL_FIXTURE_FILE", "")
	return c.Validate()
}

func (c *AggregatorConfig) Validate() error {
	if c.VenueTimeoutMs <= 0 {
		return errors.New("venue timeout must be positive")
	}
	if c.VenueRPS <= 0 || c.VenueBurst <= 0 {
		return errors.New("venue rate limit must be positive")
	}
	return nil
}
