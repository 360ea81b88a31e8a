package selection

import (
	"math"

	"talos/internal/domain/option"
)

// DefaultImpliedVol is assumed when a quote carries no usable implied
// volatility.
const DefaultImpliedVol = 0.15

// ProbabilityOfTouch estimates the chance the underlying trades at the
// strike at any point before expiry, using the zero-drift reflection
// approximation for a one-sided barrier: PoT ≈ 2 * (1 - Φ(d)) where d is
// the strike distance in diffusion standard deviations.
//
// Strikes the spot has already reached count as touched (PoT = 1), and
// with no time or no volatility left diffusion cannot reach an untouched
// barrier (PoT = 0).
func ProbabilityOfTouch(spot, strike, vol, timeToExpiry float64, side option.Side) float64 {
	if timeToExpiry <= 0 {
		return 0.0
	}

	// Barrier already crossed
	if side == option.SideCall && strike <= spot {
		return 1.0
	}
	if side == option.SidePut && strike >= spot {
		return 1.0
	}

	if vol <= 0 || spot <= 0 {
		return 0.0
	}

	distancePct := math.Abs(strike-spot) / spot
	stdDevs := distancePct / (vol * math.Sqrt(timeToExpiry))

	pot := 2 * (1 - normCDF(stdDevs))
	return clamp01(pot)
}

// normCDF computes the standard normal cumulative distribution function
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
