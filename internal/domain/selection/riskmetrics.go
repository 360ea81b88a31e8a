package selection

import (
	"github.com/shopspring/decimal"

	"talos/internal/domain/option"
)

// RiskMetrics contains position-level figures for a selected candidate,
// for human and downstream consumption. Dollar amounts are decimal;
// probabilities and ratios stay float64.
type RiskMetrics struct {
	PremiumCollected decimal.Decimal // mid * 100 * contracts
	Breakeven        decimal.Decimal // strike +/- mid
	MoveToStrike     decimal.Decimal // distance spot must travel to reach the strike
	MaxLoss          decimal.Decimal // theoretical loss if spot pins the strike, floored at 0
	StopLossPrice    decimal.Decimal // option price that triggers the stop
	StopLossCost     decimal.Decimal // cost of buying back at the stop
	WinRateEstimate  float64         // 1 - |delta|, the delta-as-probability shortcut
	DeltaExposure    float64         // |delta| * 100 * contracts
	GammaExposure    float64         // gamma * 100 * contracts
	RiskReward       float64         // reused from ValueStats
}

// CalculateRiskMetrics derives position-level risk figures for a selected
// candidate. Pure arithmetic over already-computed values; no I/O.
func CalculateRiskMetrics(c *Candidate, spot float64, cfg Config) RiskMetrics {
	contracts := decimal.NewFromInt(int64(cfg.PositionSize))
	multiplier := decimal.NewFromFloat(SharesPerContract).Mul(contracts)

	mid := decimal.NewFromFloat(c.Mid)
	strike := decimal.NewFromFloat(c.Quote.Strike)
	spotDec := decimal.NewFromFloat(spot)
	stopMult := decimal.NewFromFloat(cfg.StopLossMultiplier)

	var breakeven, moveToStrike decimal.Decimal
	if c.Quote.Side == option.SideCall {
		breakeven = strike.Add(mid)
		moveToStrike = strike.Sub(spotDec)
	} else {
		breakeven = strike.Sub(mid)
		moveToStrike = spotDec.Sub(strike)
	}

	maxLoss := moveToStrike.Sub(mid).Mul(multiplier)
	if maxLoss.IsNegative() {
		maxLoss = decimal.Zero
	}

	one := decimal.NewFromInt(1)

	return RiskMetrics{
		PremiumCollected: mid.Mul(multiplier),
		Breakeven:        breakeven,
		MoveToStrike:     moveToStrike,
		MaxLoss:          maxLoss,
		StopLossPrice:    mid.Mul(stopMult),
		StopLossCost:     mid.Mul(stopMult.Sub(one)).Mul(multiplier),
		WinRateEstimate:  1 - c.AbsDelta,
		DeltaExposure:    c.AbsDelta * SharesPerContract * float64(cfg.PositionSize),
		GammaExposure:    c.Quote.Gamma * SharesPerContract * float64(cfg.PositionSize),
		RiskReward:       c.Stats.RiskReward,
	}
}
