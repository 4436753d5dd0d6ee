package feereport

import (
	"time"

	"github.com/breez/feereport/lightning"
)

var (
	DayWindow   = 24 * time.Hour
	WeekWindow  = 7 * 24 * time.Hour
	MonthWindow = 30 * 24 * time.Hour
)

type feeSums struct {
	day   uint64
	week  uint64
	month uint64
}

// sumFees adds the fees of settled forwards resolved within the trailing
// windows ending at now. The windows are cumulative, a forward in the day
// window is counted in the week and month sums as well.
func sumFees(forwards []*lightning.Forward, now time.Time) feeSums {
	dayAgo := now.Add(-DayWindow)
	weekAgo := now.Add(-WeekWindow)
	monthAgo := now.Add(-MonthWindow)

	var sums feeSums
	for _, fwd := range forwards {
		if !fwd.IsSettled() {
			continue
		}

		resolved := *fwd.ResolvedTime
		if resolved.After(monthAgo) {
			sums.month += fwd.FeeMsat
			if resolved.After(weekAgo) {
				sums.week += fwd.FeeMsat
				if resolved.After(dayAgo) {
					sums.day += fwd.FeeMsat
				}
			}
		}
	}

	return sums
}
