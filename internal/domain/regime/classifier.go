package regime

import "time"

// vixBucket maps one regime band to its long-run percentile label
type vixBucket struct {
	upper      float64 // exclusive upper bound
	regime     VIXRegime
	percentile string
}

var vixBuckets = []vixBucket{
	{12, VIXVeryLow, "bottom decile of the long-run VIX distribution"},
	{16, VIXLow, "below the long-run median"},
	{20, VIXNormal, "around the long-run median"},
	{25, VIXElevated, "upper quartile"},
	{30, VIXHigh, "top decile"},
}

// ClassifyVIX maps a VIX level onto its regime band
func ClassifyVIX(vix float64) (VIXRegime, string) {
	for _, b := range vixBuckets {
		if vix < b.upper {
			return b.regime, b.percentile
		}
	}
	return VIXVeryHigh, "top percentile, stress conditions"
}

// ClassifySession maps wall-clock time onto a session phase
func ClassifySession(now time.Time) (SessionPhase, string) {
	minutes := now.Hour()*60 + now.Minute()
	switch {
	case minutes < 10*60+30:
		return PhaseOpenDrive, "opening hour, widest ranges and fastest repricing"
	case minutes < 12*60:
		return PhaseMorning, "morning trend, opening imbalances working off"
	case minutes < 14*60:
		return PhaseMidday, "midday lull, thinner flows and mean reversion"
	case minutes < 15*60+30:
		return PhaseAfternoon, "afternoon positioning ahead of the close"
	default:
		return PhaseClosing, "closing window, gamma pinning and settlement flows"
	}
}

// Classify builds the market context annotation for a recommendation.
// It returns nil when no VIX level is supplied; a missing annotation
// never blocks a recommendation. close is the session close used to
// report hours remaining.
func Classify(vix float64, now, close time.Time) *MarketContext {
	if vix <= 0 {
		return nil
	}

	vixRegime, percentile := ClassifyVIX(vix)
	phase, phaseText := ClassifySession(now)

	hoursRemaining := close.Sub(now).Hours()
	if hoursRemaining < 0 {
		hoursRemaining = 0
	}

	return &MarketContext{
		VIX:            vix,
		VIXRegime:      vixRegime,
		VIXPercentile:  percentile,
		Phase:          phase,
		PhaseText:      phaseText,
		HoursRemaining: hoursRemaining,
		Timestamp:      now,
	}
}
