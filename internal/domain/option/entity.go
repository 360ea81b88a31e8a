package option

import "time"

// Side defines the option side
type Side string

const (
	SideCall Side = "call"
	SidePut  Side = "put"
)

// Valid checks if side is valid
func (s Side) Valid() bool {
	switch s {
	case SideCall, SidePut:
		return true
	}
	return false
}

// String returns string representation
func (s Side) String() string {
	return string(s)
}

// Action defines the trading action requested from the engine
type Action string

const (
	ActionSellCall Action = "sell_call"
	ActionSellPut  Action = "sell_put"
	ActionHold     Action = "hold"
)

// Valid checks if action is valid
func (a Action) Valid() bool {
	switch a {
	case ActionSellCall, ActionSellPut, ActionHold:
		return true
	}
	return false
}

// String returns string representation
func (a Action) String() string {
	return string(a)
}

// Side returns the option side an action trades, or "" for ActionHold
func (a Action) Side() Side {
	switch a {
	case ActionSellCall:
		return SideCall
	case ActionSellPut:
		return SidePut
	}
	return ""
}

// Quote represents one strike/side of an option chain snapshot.
// Greeks are optional and may be zero when the data source omits them.
// The feed does not guarantee ask >= bid; consumers must tolerate
// crossed or empty markets rather than assume a clean book.
type Quote struct {
	Strike float64 `json:"strike"`
	Side   Side    `json:"side"`

	Bid float64 `json:"bid"` // 0 = no market
	Ask float64 `json:"ask"` // 0 = no market

	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`

	IV float64 `json:"iv"` // implied volatility, 0 = absent

	Volume       int64 `json:"volume"`
	OpenInterest int64 `json:"open_interest"`
}

// Snapshot represents the underlying market state at evaluation time
type Snapshot struct {
	Spot      float64   `json:"spot"`
	VIX       float64   `json:"vix"` // 0 = not supplied
	Timestamp time.Time `json:"timestamp"`
}

// Chain couples a snapshot with its option quotes, the engine's input shape
type Chain struct {
	Snapshot Snapshot `json:"snapshot"`
	Quotes   []Quote  `json:"quotes"`
}
