package config

import "testing"

func TestDefaultThresholds(t *testing.T) {
	cfg := Default()
	if cfg.BuyerAcceptThreshold != 0.75 {
		t.Errorf("BuyerAcceptThreshold = %v, want 0.75", cfg.BuyerAcceptThreshold)
	}
	if cfg.SellerAcceptThreshold != 0.10 {
		t.Errorf("SellerAcceptThreshold = %v, want 0.10", cfg.SellerAcceptThreshold)
	}
	if cfg.MaxStalledRounds != 3 {
		t.Errorf("MaxStalledRounds = %d, want 3", cfg.MaxStalledRounds)
	}
	if cfg.DefaultMaxRounds != 8 {
		t.Errorf("DefaultMaxRounds = %d, want 8", cfg.DefaultMaxRounds)
	}
	sum := cfg.ScoringWeights.Cost + cfg.ScoringWeights.Features + cfg.ScoringWeights.Compliance + cfg.ScoringWeights.SLA
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("scoring weights sum = %v, want 1.0", sum)
	}
}
