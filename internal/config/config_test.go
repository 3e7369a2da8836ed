package config

import "testing"

func TestGeneralConfigDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("HTTP_HOST", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")

	var gc GeneralConfig
	if err := gc.Load(); err != nil {
		t.Fatal(err)
	}
	if gc.HTTPPort != "8080" || gc.HTTPHost != "localhost" || gc.Env != "dev" || gc.LogLevel != "INFO" {
		t.Errorf("defaults wrong: %+v", gc)
	}
}

func TestGeneralConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ENV", "prod")

	var gc GeneralConfig
	if err := gc.Load(); err != nil {
		t.Fatal(err)
	}
	if gc.HTTPPort != "9090" || gc.Env != ProdEnv {
		t.Errorf("overrides not applied: %+v", gc)
	}
}

func TestAggregatorConfigDefaults(t *testing.T) {
	t.Setenv("AGGREGATOR_VENUE_TIMEOUT_MS", "")
	t.Setenv("AGGREGATOR_VENUE_RPS", "")
	t.Setenv("AGGREGATOR_VENUE_BURST", "")

	var ac AggregatorConfig
	if err := ac.Load(); err != nil {
		t.Fatal(err)
	}
	if ac.VenueTimeoutMs != 800 || ac.VenueRPS != 50 || ac.VenueBurst != 10 {
		t.Errorf("defaults wrong: %+v", ac)
	}
	if ac.HookSeedFile != "" || ac.PoolFixtureFile != "" {
		t.Errorf("file paths must default to empty: %+v", ac)
	}
}

func TestAggregatorConfigValidation(t *testing.T) {
	t.Setenv("AGGREGATOR_VENUE_TIMEOUT_MS", "0")

	var ac AggregatorConfig
	if err := ac.Load(); err == nil {
		t.Error("zero timeout must fail validation")
	}

	t.Setenv("AGGREGATOR_VENUE_TIMEOUT_MS", "250")
	t.Setenv("AGGREGATOR_VENUE_RPS", "not-a-number")
	if err := ac.Load(); err != nil {
		t.Fatal(err)
	}
	if ac.VenueTimeoutMs != 250 {
		t.Errorf("VenueTimeoutMs = %d, want 250", ac.VenueTimeoutMs)
	}
	// unparsable numbers fall back to the default
	if ac.VenueRPS != 50 {
		t.Errorf("VenueRPS = %d, want 50", ac.VenueRPS)
	}
}
