package selection

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"talos/internal/domain/option"
	"talos/internal/domain/regime"
)

// Recommendation is the engine's output: the single best contract to sell,
// fully annotated. Absence of a recommendation (nothing met the bar) is
// expressed as a nil *Recommendation, not an error.
type Recommendation struct {
	Action option.Action `json:"action"`
	Strike float64       `json:"strike"`
	Side   option.Side   `json:"side"`

	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
	Mid float64 `json:"mid"`

	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	IV    float64 `json:"iv"`

	SpreadFrac float64 `json:"spread_frac"`
	PoT        float64 `json:"pot"`

	Stats ValueStats  `json:"stats"`
	Risk  RiskMetrics `json:"risk"`

	Explanation string `json:"explanation"`

	Context *regime.MarketContext `json:"context,omitempty"`
}

// NewRecommendation assembles the full output record for the winning
// candidate. The regime annotation is attached by the caller afterwards
// since it is independent of selection.
func NewRecommendation(action option.Action, c *Candidate, spot float64, cfg Config) *Recommendation {
	risk := CalculateRiskMetrics(c, spot, cfg)

	return &Recommendation{
		Action:      action,
		Strike:      c.Quote.Strike,
		Side:        c.Quote.Side,
		Bid:         c.Quote.Bid,
		Ask:         c.Quote.Ask,
		Mid:         c.Mid,
		Delta:       c.Quote.Delta,
		Gamma:       c.Quote.Gamma,
		Theta:       c.Quote.Theta,
		Vega:        c.Quote.Vega,
		IV:          c.Quote.IV,
		SpreadFrac:  c.SpreadFrac,
		PoT:         c.PoT,
		Stats:       c.Stats,
		Risk:        risk,
		Explanation: explain(action, c, risk),
	}
}

// explain renders the human-readable rationale attached to a recommendation
func explain(action option.Action, c *Candidate, risk RiskMetrics) string {
	return fmt.Sprintf(
		"%s %s %s at %s mid: win probability %.1f%%, expected value $%s, premium $%s against $%s at the stop, touch probability %.1f%%, spread %.1f%% of mid",
		action,
		humanize.CommafWithDigits(c.Quote.Strike, 2),
		c.Quote.Side,
		humanize.CommafWithDigits(c.Mid, 2),
		c.Stats.WinProbability*100,
		humanize.CommafWithDigits(c.Stats.ExpectedValue, 2),
		humanize.CommafWithDigits(c.Stats.ProfitOnWin, 2),
		humanize.CommafWithDigits(c.Stats.LossAtStop, 2),
		c.PoT*100,
		c.SpreadFrac*100,
	)
}
