package selection

import (
	"time"

	"talos/internal/domain/option"
	"talos/internal/domain/regime"
	"talos/internal/domain/selection"
	"talos/internal/metrics"
	"talos/pkg/errors"
	"talos/pkg/logger"
)

// Service evaluates option-chain snapshots and picks the single best
// same-day contract to sell. It holds only configuration; every call is a
// deterministic transformation of its inputs, so one Service is safe to
// share across goroutines.
type Service struct {
	cfg selection.Config
	log *logger.Logger
}

// NewService creates a selection service after validating the configuration
func NewService(cfg selection.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		cfg: cfg,
		log: logger.Get().With("component", "selection"),
	}, nil
}

// Config returns the immutable configuration the service was built with
func (s *Service) Config() selection.Config {
	return s.cfg
}

// Select picks the best contract for the requested action from the chain,
// or returns (nil, nil) when nothing meets the risk/reward bar. The
// no-candidate outcome is the expected steady state, never a fault.
// Quotes are read-only; the service never writes back into them.
func (s *Service) Select(action option.Action, quotes []option.Quote, snap option.Snapshot) (*selection.Recommendation, error) {
	start := time.Now()

	if !action.Valid() {
		metrics.RecordEvaluation(action.String(), "invalid", time.Since(start))
		return nil, errors.Wrapf(errors.ErrInvalidAction, "action %q", action)
	}

	if action == option.ActionHold {
		metrics.RecordEvaluation(action.String(), "hold", time.Since(start))
		return nil, nil
	}

	if snap.Spot <= 0 {
		metrics.RecordEvaluation(action.String(), "invalid", time.Since(start))
		return nil, errors.Wrapf(errors.ErrInvalidSnapshot, "spot %v", snap.Spot)
	}

	sessionClose := selection.SessionClose(snap.Timestamp)
	tte := selection.TimeToExpiry(snap.Timestamp, sessionClose)

	side := action.Side()
	var cands []selection.Candidate
	for _, q := range quotes {
		c, reason := selection.Evaluate(q, side, snap.Spot, tte, s.cfg)
		if c == nil {
			if reason == selection.RejectMalformed {
				s.log.Debugw("skipping malformed quote",
					"strike", q.Strike, "side", q.Side.String())
			}
			if reason != selection.RejectWrongSide {
				metrics.RecordRejection(string(reason))
			}
			continue
		}
		cands = append(cands, *c)
	}

	if len(cands) == 0 {
		metrics.RecordEvaluation(action.String(), "no_candidate", time.Since(start))
		s.log.Debugw("no eligible candidate",
			"action", action.String(), "quotes", len(quotes), "tte_years", tte)
		return nil, nil
	}

	selection.Rank(cands, s.cfg.TargetDelta)
	best := cands[0]

	rec := selection.NewRecommendation(action, &best, snap.Spot, s.cfg)
	rec.Context = regime.Classify(snap.VIX, snap.Timestamp, sessionClose)

	metrics.RecordEvaluation(action.String(), "recommended", time.Since(start))
	metrics.RecordRecommendation(action.String(),
		rec.Stats.ExpectedValue, rec.PoT, rec.Stats.KellyFraction)

	s.log.Infow("contract selected",
		"action", action.String(),
		"strike", rec.Strike,
		"mid", rec.Mid,
		"ev", rec.Stats.ExpectedValue,
		"pot", rec.PoT,
		"kelly", rec.Stats.KellyFraction,
		"candidates", len(cands),
	)

	return rec, nil
}
