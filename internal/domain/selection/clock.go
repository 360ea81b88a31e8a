package selection

import "time"

// Trading-year conventions used to annualize intraday time so it combines
// directly with annualized volatility.
const (
	TradingDaysPerYear  = 252.0
	TradingHoursPerDay  = 6.5
	MarketCloseHour     = 16 // 16:00 local exchange time
	TradingHoursPerYear = TradingDaysPerYear * TradingHoursPerDay
)

// SessionClose returns the 16:00 market close on now's calendar day,
// in now's location.
func SessionClose(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), MarketCloseHour, 0, 0, 0, now.Location())
}

// TimeToExpiry returns the remaining session time as a fraction of a
// 252-day, 6.5-hour trading year. At or after the close it returns 0:
// no time value remains.
func TimeToExpiry(now, close time.Time) float64 {
	if !now.Before(close) {
		return 0.0
	}
	hoursLeft := close.Sub(now).Hours()
	return hoursLeft / TradingHoursPerYear
}
