package selection

import (
	"math"
	"sort"

	"talos/internal/domain/option"
)

// RejectReason explains why a quote was excluded from ranking. Reasons
// feed metrics and debug logging only; they never surface as errors.
type RejectReason string

const (
	RejectNone           RejectReason = ""
	RejectWrongSide      RejectReason = "wrong_side"
	RejectMalformed      RejectReason = "malformed_quote"
	RejectNoMarket       RejectReason = "no_market"
	RejectPremiumTooLow  RejectReason = "premium_too_low"
	RejectSpreadTooWide  RejectReason = "spread_too_wide"
	RejectNoDelta        RejectReason = "no_delta"
	RejectTouchTooLikely RejectReason = "touch_too_likely"
	RejectEVTooLow       RejectReason = "ev_too_low"
)

// Candidate enriches one quote with derived pricing and risk figures.
// Candidates are built fresh from the source quote on every evaluation so
// the same chain can be re-evaluated under different configs, or
// concurrently, without the engine ever writing back into its inputs.
type Candidate struct {
	Quote option.Quote

	Mid        float64
	SpreadFrac float64
	AbsDelta   float64
	PoT        float64
	Stats      ValueStats
}

// Evaluate runs the filter pipeline for a single quote. It returns the
// enriched candidate, or nil and the reason the quote was excluded.
func Evaluate(q option.Quote, requested option.Side, spot, timeToExpiry float64, cfg Config) (*Candidate, RejectReason) {
	if q.Side != requested {
		return nil, RejectWrongSide
	}

	// A quote with a non-finite numeric field is skipped; the rest of the
	// chain is still evaluated.
	if malformed(q) {
		return nil, RejectMalformed
	}

	if q.Bid <= 0 || q.Ask <= 0 {
		return nil, RejectNoMarket
	}

	mid := (q.Bid + q.Ask) / 2
	if mid < cfg.MinPremium {
		return nil, RejectPremiumTooLow
	}

	// mid > 0 is guaranteed: bid and ask are both positive here
	spreadFrac := (q.Ask - q.Bid) / mid
	if spreadFrac > cfg.MaxSpreadPct {
		return nil, RejectSpreadTooWide
	}

	absDelta := math.Abs(q.Delta)
	if absDelta <= 0 {
		return nil, RejectNoDelta
	}

	vol := q.IV
	if vol <= 0 {
		vol = DefaultImpliedVol
	}
	pot := ProbabilityOfTouch(spot, q.Strike, vol, timeToExpiry, q.Side)
	if pot > cfg.MaxPoT {
		return nil, RejectTouchTooLikely
	}

	stats := ExpectedValue(mid, pot, cfg)
	if stats.ExpectedValue < cfg.MinEV {
		return nil, RejectEVTooLow
	}

	return &Candidate{
		Quote:      q,
		Mid:        mid,
		SpreadFrac: spreadFrac,
		AbsDelta:   absDelta,
		PoT:        pot,
		Stats:      stats,
	}, RejectNone
}

// Rank orders candidates best-first: highest expected value, then closest
// |delta| to the target, then tightest spread. The stable sort keeps
// repeated evaluations of an identical chain bit-identical.
func Rank(cands []Candidate, targetDelta float64) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Stats.ExpectedValue != b.Stats.ExpectedValue {
			return a.Stats.ExpectedValue > b.Stats.ExpectedValue
		}
		da := math.Abs(a.AbsDelta - targetDelta)
		db := math.Abs(b.AbsDelta - targetDelta)
		if da != db {
			return da < db
		}
		return a.SpreadFrac < b.SpreadFrac
	})
}

func malformed(q option.Quote) bool {
	if q.Strike <= 0 {
		return true
	}
	for _, v := range [...]float64{q.Strike, q.Bid, q.Ask, q.Delta, q.Gamma, q.Theta, q.Vega, q.IV} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
