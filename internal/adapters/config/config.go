package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"talos/internal/domain/selection"
	"talos/pkg/errors"
)

type Config struct {
	App           AppConfig
	Selection     SelectionConfig
	Evaluator     EvaluatorConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"talos"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

// SelectionConfig exposes every selection threshold as an environment
// variable. Defaults match selection.DefaultConfig.
type SelectionConfig struct {
	TargetDelta        float64 `envconfig:"TARGET_DELTA" default:"0.20"`
	MinPremium         float64 `envconfig:"MIN_PREMIUM" default:"0.50"`
	MaxSpreadPct       float64 `envconfig:"MAX_SPREAD_PCT" default:"0.10"`
	MaxPoT             float64 `envconfig:"MAX_POT" default:"0.35"`
	MinEV              float64 `envconfig:"MIN_EV" default:"10.00"`
	RiskFreeRate       float64 `envconfig:"RISK_FREE_RATE" default:"0.05"`
	StopLossMultiplier float64 `envconfig:"STOP_LOSS_MULTIPLIER" default:"3.5"`
	PositionSize       int     `envconfig:"POSITION_SIZE" default:"1"`
	LossBlendWeight    float64 `envconfig:"LOSS_BLEND_WEIGHT" default:"0.80"`
	TailLossMultiple   float64 `envconfig:"TAIL_LOSS_MULTIPLE" default:"2.0"`
}

// ToDomain converts the env-backed selection settings into the domain value
func (c SelectionConfig) ToDomain() selection.Config {
	return selection.Config{
		TargetDelta:        c.TargetDelta,
		MinPremium:         c.MinPremium,
		MaxSpreadPct:       c.MaxSpreadPct,
		MaxPoT:             c.MaxPoT,
		MinEV:              c.MinEV,
		RiskFreeRate:       c.RiskFreeRate,
		StopLossMultiplier: c.StopLossMultiplier,
		PositionSize:       c.PositionSize,
		LossBlendWeight:    c.LossBlendWeight,
		TailLossMultiple:   c.TailLossMultiple,
	}
}

// EvaluatorConfig drives the thin CLI wrapper around the engine. The engine
// itself stays a pure library; sourcing the chain snapshot is the caller's
// concern.
type EvaluatorConfig struct {
	ChainPath   string `envconfig:"CHAIN_PATH" default:"chain.json"`
	Action      string `envconfig:"ACTION" default:"sell_put"`
	Interval    string `envconfig:"EVALUATOR_INTERVAL" default:""` // e.g. "5m"; empty = evaluate once
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`       // e.g. ":9090"; empty = no metrics server
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	Provider    string `envconfig:"ERROR_TRACKING_PROVIDER" default:"sentry"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
