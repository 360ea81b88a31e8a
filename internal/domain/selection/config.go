package selection

import (
	"talos/pkg/errors"
)

// Config contains the thresholds and sizing parameters for contract
// selection. A Config is immutable per call; callers override fields
// on a copy of DefaultConfig rather than mutating a shared value.
type Config struct {
	// Strike selection
	TargetDelta float64 // preferred |delta| of the short strike

	// Liquidity / pricing filters
	MinPremium   float64 // reject mid prices below this (USD per share)
	MaxSpreadPct float64 // reject spreads wider than this fraction of mid

	// Risk filters
	MaxPoT float64 // reject candidates more likely than this to touch the strike
	MinEV  float64 // reject candidates with expected value below this (USD)

	// Position economics
	RiskFreeRate       float64
	StopLossMultiplier float64 // exit when the option trades at premium * multiplier
	PositionSize       int     // contracts

	// Tail-loss model. The 80/20 blend of stop-level loss vs. the
	// double-stop scenario is a calibration constant, not a derived
	// quantity; override only with domain-owner sign-off.
	LossBlendWeight  float64 // weight on the stop-level loss
	TailLossMultiple float64 // worse-than-stop loss as a multiple of the stop loss
}

// Default thresholds, kept in one place so call sites override deliberately
// and tests can assert against the documented values.
const (
	DefaultTargetDelta        = 0.20
	DefaultMinPremium         = 0.50
	DefaultMaxSpreadPct       = 0.10
	DefaultMaxPoT             = 0.35
	DefaultMinEV              = 10.00
	DefaultRiskFreeRate       = 0.05
	DefaultStopLossMultiplier = 3.5
	DefaultPositionSize       = 1
	DefaultLossBlendWeight    = 0.80
	DefaultTailLossMultiple   = 2.0
)

// DefaultConfig returns the documented default selection configuration
func DefaultConfig() Config {
	return Config{
		TargetDelta:        DefaultTargetDelta,
		MinPremium:         DefaultMinPremium,
		MaxSpreadPct:       DefaultMaxSpreadPct,
		MaxPoT:             DefaultMaxPoT,
		MinEV:              DefaultMinEV,
		RiskFreeRate:       DefaultRiskFreeRate,
		StopLossMultiplier: DefaultStopLossMultiplier,
		PositionSize:       DefaultPositionSize,
		LossBlendWeight:    DefaultLossBlendWeight,
		TailLossMultiple:   DefaultTailLossMultiple,
	}
}

// Validate checks the configuration for values the engine cannot work with
func (c Config) Validate() error {
	if c.PositionSize < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "position size must be >= 1, got %d", c.PositionSize)
	}
	if c.StopLossMultiplier < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "stop loss multiplier must be >= 1, got %v", c.StopLossMultiplier)
	}
	if c.MaxSpreadPct < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max spread pct must be >= 0, got %v", c.MaxSpreadPct)
	}
	if c.MaxPoT < 0 || c.MaxPoT > 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max probability of touch must be in [0,1], got %v", c.MaxPoT)
	}
	if c.LossBlendWeight < 0 || c.LossBlendWeight > 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "loss blend weight must be in [0,1], got %v", c.LossBlendWeight)
	}
	if c.TailLossMultiple < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "tail loss multiple must be >= 1, got %v", c.TailLossMultiple)
	}
	return nil
}
