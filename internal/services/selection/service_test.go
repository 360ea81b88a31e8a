package selection

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talos/internal/domain/option"
	"talos/internal/domain/regime"
	"talos/internal/domain/selection"
	"talos/pkg/errors"
)

// twoHoursToClose is a fixed timestamp two hours before the 16:00 close
var twoHoursToClose = time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC)

func testSnapshot() option.Snapshot {
	return option.Snapshot{
		Spot:      450.00,
		VIX:       17.3,
		Timestamp: twoHoursToClose,
	}
}

// testChain mixes one selectable call, one near strike filtered on touch
// probability, a wide-spread quote, a dead quote, a malformed quote, and
// a put that must be ignored for sell_call
func testChain() []option.Quote {
	return []option.Quote{
		{Strike: 452, Side: option.SideCall, Bid: 1.15, Ask: 1.25, Delta: 0.35, IV: 0.18},
		{Strike: 458, Side: option.SideCall, Bid: 0.55, Ask: 0.60, Delta: 0.10, Gamma: 0.02, IV: 0.18},
		{Strike: 456, Side: option.SideCall, Bid: 0.50, Ask: 0.90, Delta: 0.15, IV: 0.18},
		{Strike: 465, Side: option.SideCall, Bid: 0, Ask: 0.05, Delta: 0.02, IV: 0.18},
		{Strike: 460, Side: option.SideCall, Bid: 0.52, Ask: 0.58, Delta: math.NaN(), IV: 0.18},
		{Strike: 442, Side: option.SidePut, Bid: 0.60, Ask: 0.65, Delta: -0.11, IV: 0.18},
	}
}

func newTestService(t *testing.T, cfg selection.Config) *Service {
	t.Helper()
	svc, err := NewService(cfg)
	require.NoError(t, err)
	return svc
}

func TestNewService_RejectsBadConfig(t *testing.T) {
	cfg := selection.DefaultConfig()
	cfg.PositionSize = 0

	_, err := NewService(cfg)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestSelect_PicksBestCall(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())

	rec, err := svc.Select(option.ActionSellCall, testChain(), testSnapshot())

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, option.ActionSellCall, rec.Action)
	assert.Equal(t, option.SideCall, rec.Side)
	assert.InDelta(t, 458.0, rec.Strike, 1e-9)
	assert.InDelta(t, 0.575, rec.Mid, 1e-9)
	assert.NotEmpty(t, rec.Explanation)

	// the winner honors every configured constraint
	cfg := svc.Config()
	assert.LessOrEqual(t, rec.SpreadFrac, cfg.MaxSpreadPct)
	assert.LessOrEqual(t, rec.PoT, cfg.MaxPoT)
	assert.GreaterOrEqual(t, rec.Stats.ExpectedValue, cfg.MinEV)
}

func TestSelect_AnnotatesMarketContext(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())

	rec, err := svc.Select(option.ActionSellCall, testChain(), testSnapshot())

	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.Context)
	assert.Equal(t, regime.VIXNormal, rec.Context.VIXRegime)
	assert.Equal(t, regime.PhaseAfternoon, rec.Context.Phase)
	assert.InDelta(t, 2.0, rec.Context.HoursRemaining, 1e-9)
}

func TestSelect_NoVIXOmitsContext(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())
	snap := testSnapshot()
	snap.VIX = 0

	rec, err := svc.Select(option.ActionSellCall, testChain(), snap)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.Context)
}

func TestSelect_HoldShortCircuits(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())

	rec, err := svc.Select(option.ActionHold, testChain(), testSnapshot())

	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSelect_InvalidAction(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())

	_, err := svc.Select(option.Action("buy_call"), testChain(), testSnapshot())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidAction))
}

func TestSelect_InvalidSnapshot(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())
	snap := testSnapshot()
	snap.Spot = 0

	_, err := svc.Select(option.ActionSellCall, testChain(), snap)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSnapshot))
}

func TestSelect_NoCandidateIsNotAnError(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())

	// every spread too wide: ordinary no-trade outcome
	chain := []option.Quote{
		{Strike: 456, Side: option.SideCall, Bid: 0.50, Ask: 0.90, Delta: 0.15, IV: 0.18},
		{Strike: 458, Side: option.SideCall, Bid: 0.40, Ask: 0.80, Delta: 0.10, IV: 0.18},
	}

	rec, err := svc.Select(option.ActionSellCall, chain, testSnapshot())

	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSelect_MalformedQuoteSkipped(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())

	// a NaN-delta quote mixed into an otherwise valid chain must not
	// poison the batch
	chain := []option.Quote{
		{Strike: 460, Side: option.SideCall, Bid: 0.52, Ask: 0.58, Delta: math.NaN(), IV: 0.18},
		{Strike: 458, Side: option.SideCall, Bid: 0.55, Ask: 0.60, Delta: 0.10, IV: 0.18},
	}

	rec, err := svc.Select(option.ActionSellCall, chain, testSnapshot())

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.InDelta(t, 458.0, rec.Strike, 1e-9)
}

func TestSelect_SellPut(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())

	rec, err := svc.Select(option.ActionSellPut, testChain(), testSnapshot())

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, option.SidePut, rec.Side)
	assert.InDelta(t, 442.0, rec.Strike, 1e-9)
	assert.Negative(t, rec.Delta)
}

func TestSelect_Idempotent(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())
	chain := testChain()
	snap := testSnapshot()

	first, err := svc.Select(option.ActionSellCall, chain, snap)
	require.NoError(t, err)
	second, err := svc.Select(option.ActionSellCall, chain, snap)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSelect_DoesNotMutateInputs(t *testing.T) {
	svc := newTestService(t, selection.DefaultConfig())
	chain := testChain()

	// copy everything except the NaN quote, which breaks equality checks
	original := make([]option.Quote, len(chain))
	copy(original, chain)

	_, err := svc.Select(option.ActionSellCall, chain, testSnapshot())
	require.NoError(t, err)

	for i := range original {
		if math.IsNaN(original[i].Delta) {
			continue
		}
		assert.Equal(t, original[i], chain[i], "quote %d mutated", i)
	}
}

func TestSelect_AtCloseZeroPoT(t *testing.T) {
	// with zero time to expiry PoT is 0 for every strike, so the near
	// 452 call clears the touch filter and wins on expected value
	svc := newTestService(t, selection.DefaultConfig())
	snap := testSnapshot()
	snap.Timestamp = time.Date(2025, 3, 14, 16, 0, 0, 0, time.UTC)

	rec, err := svc.Select(option.ActionSellCall, testChain(), snap)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.InDelta(t, 452.0, rec.Strike, 1e-9)
	assert.Zero(t, rec.PoT)
}
