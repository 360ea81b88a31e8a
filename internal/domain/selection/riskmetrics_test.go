package selection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talos/internal/domain/option"
)

// decEq compares a decimal against an expected value within float
// tolerance; mids derived from float64 quotes are not exact decimals
func decEq(t *testing.T, want float64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.InDelta(t, want, got.InexactFloat64(), 1e-9, msg)
}

func TestCalculateRiskMetrics_Call(t *testing.T) {
	cfg := DefaultConfig()
	c, reason := Evaluate(goodQuote(), option.SideCall, testSpot, testTTE(), cfg)
	require.NotNil(t, c, "reason: %s", reason)

	m := CalculateRiskMetrics(c, testSpot, cfg)

	// mid = 0.575, strike 458, spot 450, stop multiple 3.5
	decEq(t, 57.5, m.PremiumCollected, "premium collected")
	decEq(t, 458.575, m.Breakeven, "breakeven")
	decEq(t, 8, m.MoveToStrike, "move to strike")
	decEq(t, 742.5, m.MaxLoss, "max loss")           // (8 - 0.575) * 100
	decEq(t, 2.0125, m.StopLossPrice, "stop price")  // 0.575 * 3.5
	decEq(t, 143.75, m.StopLossCost, "stop cost")    // 0.575 * 2.5 * 100
	assert.InDelta(t, 0.90, m.WinRateEstimate, 1e-9)   // 1 - |delta|
	assert.InDelta(t, 10.0, m.DeltaExposure, 1e-9)     // 0.10 * 100
	assert.InDelta(t, 2.0, m.GammaExposure, 1e-9)      // 0.02 * 100
	assert.InDelta(t, c.Stats.RiskReward, m.RiskReward, 1e-12)
}

func TestCalculateRiskMetrics_Put(t *testing.T) {
	cfg := DefaultConfig()
	q := option.Quote{
		Strike: 442,
		Side:   option.SidePut,
		Bid:    0.55,
		Ask:    0.60,
		Delta:  -0.10,
		IV:     0.18,
	}
	c, reason := Evaluate(q, option.SidePut, testSpot, testTTE(), cfg)
	require.NotNil(t, c, "reason: %s", reason)

	m := CalculateRiskMetrics(c, testSpot, cfg)

	decEq(t, 441.425, m.Breakeven, "breakeven") // strike - mid
	decEq(t, 8, m.MoveToStrike, "move to strike")
	assert.InDelta(t, 0.90, m.WinRateEstimate, 1e-9) // uses |delta|
}

func TestCalculateRiskMetrics_MaxLossFloor(t *testing.T) {
	// strike close enough that the premium exceeds the move: floored at 0
	cfg := DefaultConfig()
	cfg.MaxPoT = 1.0
	cfg.MinEV = -1e9

	q := option.Quote{
		Strike: 450.25,
		Side:   option.SideCall,
		Bid:    0.50,
		Ask:    0.55,
		Delta:  0.48,
		IV:     0.18,
	}
	c, reason := Evaluate(q, option.SideCall, testSpot, testTTE(), cfg)
	require.NotNil(t, c, "reason: %s", reason)

	m := CalculateRiskMetrics(c, testSpot, cfg)

	assert.True(t, m.MaxLoss.Equal(decimal.Zero), "max loss should floor at 0, got %s", m.MaxLoss)
}

func TestCalculateRiskMetrics_PositionSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PositionSize = 2

	c, reason := Evaluate(goodQuote(), option.SideCall, testSpot, testTTE(), cfg)
	require.NotNil(t, c, "reason: %s", reason)

	m := CalculateRiskMetrics(c, testSpot, cfg)

	decEq(t, 115, m.PremiumCollected, "premium collected doubles")
	decEq(t, 287.5, m.StopLossCost, "stop cost doubles")
	assert.InDelta(t, 20.0, m.DeltaExposure, 1e-9)
}
