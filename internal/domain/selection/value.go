package selection

import "math"

// SharesPerContract is the standard US equity option multiplier.
// Options are quoted per share; one contract covers 100 shares.
const SharesPerContract = 100.0

// MaxKellyFraction caps position sizing at quarter-Kelly. Full Kelly is
// too aggressive for short premium with fat-tailed losses.
const MaxKellyFraction = 0.25

// ValueStats holds the probability-weighted economics of one short-option
// candidate. All dollar figures are per position (premium * 100 * contracts).
// A ValueStats is a plain value; nothing mutates it after construction.
type ValueStats struct {
	ExpectedValue  float64 // probability-weighted P&L in USD
	WinProbability float64 // 1 - probability of touch
	ProfitOnWin    float64 // full premium kept, USD
	LossAtStop     float64 // loss if stopped out exactly at the stop, USD
	AvgLossOnLoss  float64 // blended expected loss given a loss, USD
	RiskReward     float64 // ProfitOnWin / LossAtStop; +Inf when LossAtStop == 0
	KellyFraction  float64 // clipped to [0, MaxKellyFraction]
}

// ExpectedValue models a short option that either expires worthless
// (keep the premium) or gets stopped out. Losses blend the stop-level
// loss with a worse-than-stop tail scenario, weighted by cfg.LossBlendWeight.
func ExpectedValue(premium, pot float64, cfg Config) ValueStats {
	winProb := 1 - pot

	profitOnWin := premium * SharesPerContract * float64(cfg.PositionSize)

	stopPrice := premium * cfg.StopLossMultiplier
	lossAtStop := (stopPrice - premium) * SharesPerContract * float64(cfg.PositionSize)

	maxLoss := lossAtStop * cfg.TailLossMultiple
	avgLossOnLoss := cfg.LossBlendWeight*lossAtStop + (1-cfg.LossBlendWeight)*maxLoss

	ev := winProb*profitOnWin - pot*avgLossOnLoss

	// A zero-cost stop means the trade cannot lose under this model;
	// treat the ratio as undefined-favorable rather than dividing by zero.
	riskReward := math.Inf(1)
	kelly := MaxKellyFraction
	if lossAtStop > 0 {
		riskReward = profitOnWin / lossAtStop
		kelly = clampKelly((winProb*riskReward - pot) / riskReward)
	}

	return ValueStats{
		ExpectedValue:  ev,
		WinProbability: winProb,
		ProfitOnWin:    profitOnWin,
		LossAtStop:     lossAtStop,
		AvgLossOnLoss:  avgLossOnLoss,
		RiskReward:     riskReward,
		KellyFraction:  kelly,
	}
}

func clampKelly(f float64) float64 {
	return math.Max(0, math.Min(MaxKellyFraction, f))
}
