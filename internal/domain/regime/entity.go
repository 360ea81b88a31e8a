package regime

import "time"

// MarketContext annotates a recommendation with the prevailing volatility
// and time-of-day regime. It never filters or ranks candidates.
type MarketContext struct {
	VIX            float64      `json:"vix"`
	VIXRegime      VIXRegime    `json:"vix_regime"`
	VIXPercentile  string       `json:"vix_percentile"`
	Phase          SessionPhase `json:"session_phase"`
	PhaseText      string       `json:"session_phase_text"`
	HoursRemaining float64      `json:"hours_remaining"`
	Timestamp      time.Time    `json:"timestamp"`
}

// VIXRegime defines volatility regime labels, ordered from calmest to most
// stressed
type VIXRegime string

const (
	VIXVeryLow  VIXRegime = "very_low"  // < 12
	VIXLow      VIXRegime = "low"       // 12 - 16
	VIXNormal   VIXRegime = "normal"    // 16 - 20
	VIXElevated VIXRegime = "elevated"  // 20 - 25
	VIXHigh     VIXRegime = "high"      // 25 - 30
	VIXVeryHigh VIXRegime = "very_high" // >= 30
)

// Valid checks if the regime is valid
func (r VIXRegime) Valid() bool {
	switch r {
	case VIXVeryLow, VIXLow, VIXNormal, VIXElevated, VIXHigh, VIXVeryHigh:
		return true
	}
	return false
}

// String returns string representation
func (r VIXRegime) String() string {
	return string(r)
}

// SessionPhase defines time-of-day buckets within the regular session
type SessionPhase string

const (
	PhaseOpenDrive SessionPhase = "open_drive" // 09:30 - 10:30
	PhaseMorning   SessionPhase = "morning"    // 10:30 - 12:00
	PhaseMidday    SessionPhase = "midday"     // 12:00 - 14:00
	PhaseAfternoon SessionPhase = "afternoon"  // 14:00 - 15:30
	PhaseClosing   SessionPhase = "closing"    // 15:30 - 16:00
)

// Valid checks if the session phase is valid
func (p SessionPhase) Valid() bool {
	switch p {
	case PhaseOpenDrive, PhaseMorning, PhaseMidday, PhaseAfternoon, PhaseClosing:
		return true
	}
	return false
}

// String returns string representation
func (p SessionPhase) String() string {
	return string(p)
}
