// Package forecast derives point-in-time reorder forecasts from the
// component catalog and the consumption-event log. Everything here is
// pure: the same inputs always produce the same results.
package forecast

import (
	"time"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

// The rolling consumption window. The divisor is the nominal window
// length even when fewer days of history exist; sparse data deliberately
// biases the average downward, which keeps new components from looking
// urgent before enough history accumulates.
const windowDays = 30

// day truncates a timestamp to calendar-day granularity in UTC.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AverageDailyConsumption sums the component's events with a date in
// (asOf-30d, asOf] and divides by the fixed 30-day window. No events in
// the window yields exactly zero.
func AverageDailyConsumption(events []domain.ConsumptionEvent, componentID string, asOf time.Time) float64 {
	windowEnd := day(asOf)
	windowStart := windowEnd.AddDate(0, 0, -windowDays)

	var total float64
	for _, ev := range events {
		if ev.ComponentID != componentID {
			continue
		}
		d := day(ev.Date)
		if d.After(windowStart) && !d.After(windowEnd) {
			total += ev.Units
		}
	}

	return total / windowDays
}
