// Package config holds the engine-wide configuration the negotiation core
// is instantiated with. There are no package-level mutable defaults used
// at runtime; every engine, policy, and agent type takes a *Config (or the
// relevant slice of it) explicitly.
package config

// RunMode toggles counterparty-verification guardrails (§4.C).
type RunMode string

const (
	RunModeSimulation RunMode = "simulation"
	RunModeProduction RunMode = "production"
)

// ScoringWeights are the weights used by the buyer-utility composite in
// the evaluation kernel (§4.A).
type ScoringWeights struct {
	Cost       float64 `json:"cost"`
	Features   float64 `json:"features"`
	Compliance float64 `json:"compliance"`
	SLA        float64 `json:"sla"`
}

// Config is the single configuration object the host constructs and
// injects into every engine component. No component reads a global.
type Config struct {
	// BuyerAcceptThreshold is the minimum buyer utility to allow a close (§4.G, §8).
	BuyerAcceptThreshold float64 `json:"buyer_accept_threshold"`
	// SellerAcceptThreshold is the minimum seller utility to allow a close.
	SellerAcceptThreshold float64 `json:"seller_accept_threshold"`
	// MaxStalledRounds triggers the stalemate ladder advance (§4.G).
	MaxStalledRounds int `json:"max_stalled_rounds"`
	// PriceOutlierThreshold is the fractional deviation from a vendor's
	// tiered list price that trips the guardrail (§4.C).
	PriceOutlierThreshold float64 `json:"price_outlier_threshold"`
	// DiscountRate is the annual discount rate used for PV-based
	// payment-term enforcement (§4.G).
	DiscountRate float64 `json:"discount_rate"`
	// ScoringWeights feeds the buyer-utility composite (§4.A).
	ScoringWeights ScoringWeights `json:"scoring_weights"`
	// RunMode toggles guardrails that only make sense with real counterparties.
	RunMode RunMode `json:"run_mode"`
	// DefaultMaxRounds is used when a vendor's ExchangePolicy doesn't set one.
	DefaultMaxRounds int `json:"default_max_rounds"`
	// MaxConcurrentNegotiations bounds the per-run worker pool (§5).
	MaxConcurrentNegotiations int `json:"max_concurrent_negotiations"`
	// ProposalTimeoutSeconds is a per-call proposal timeout setting. No
	// package in this module reads it; proposal.NewLLM takes its timeout
	// as an argument.
	ProposalTimeoutSeconds int `json:"proposal_timeout_seconds"`
	// ProposalMaxRetries is a proposal retry-count setting. No package in
	// this module reads it; the buyer agent and proposal.LLM use their own
	// retry constants.
	ProposalMaxRetries int `json:"proposal_max_retries"`
	// RoundWallClockSeconds is a per-round wall-clock setting (§5). No
	// package in this module reads it.
	RoundWallClockSeconds int `json:"round_wall_clock_seconds"`
}

// Default returns a Config with the thresholds named in spec §6.
func Default() *Config {
	return &Config{
		BuyerAcceptThreshold:  0.75,
		SellerAcceptThreshold: 0.10,
		MaxStalledRounds:      3,
		PriceOutlierThreshold: 0.30,
		DiscountRate:          0.12,
		ScoringWeights: ScoringWeights{
			Cost:       0.40,
			Features:   0.35,
			Compliance: 0.15,
			SLA:        0.10,
		},
		RunMode:                   RunModeSimulation,
		DefaultMaxRounds:          8,
		MaxConcurrentNegotiations: 5,
		ProposalTimeoutSeconds:    60,
		ProposalMaxRetries:        3,
		RoundWallClockSeconds:     90,
	}
}
