package provision

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/terceiro-labs/provision-backend/internal/pkg/timeofday"
)

// Shift is the calculator input: a date and up to four clock stamps.
type Shift struct {
	Date      time.Time
	Arrival   *timeofday.TimeOfDay
	LunchOut  *timeofday.TimeOfDay
	LunchIn   *timeofday.TimeOfDay
	Departure *timeofday.TimeOfDay
}

// WorkedDuration converts a shift into time actually worked.
//
// A departure earlier than the arrival is read as the next day (one midnight
// rollover at most). The lunch break is subtracted only when both stamps are
// present and lunch-in is strictly after lunch-out; any other lunch data is
// ignored here and rejected at write time by ValidateTimes.
func WorkedDuration(s Shift) time.Duration {
	if s.Arrival == nil || s.Departure == nil {
		return 0
	}

	start := s.Arrival.On(s.Date)
	end := s.Departure.On(s.Date)
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	worked := end.Sub(start)

	if s.LunchOut != nil && s.LunchIn != nil && s.LunchIn.After(*s.LunchOut) {
		worked -= s.LunchIn.On(s.Date).Sub(s.LunchOut.On(s.Date))
	}

	if worked < 0 {
		return 0
	}
	return worked
}

// Hours expresses d as decimal hours.
func Hours(d time.Duration) decimal.Decimal {
	seconds := int64(d / time.Second)
	if seconds <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600))
}
