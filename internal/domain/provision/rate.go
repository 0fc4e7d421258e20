package provision

import (
	"time"

	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// HourlyRate divides the fixed record value by the worked hours. It is
// recomputed on every read and never stored. Zero worked time yields zero.
func HourlyRate(value decimal.Decimal, worked time.Duration) decimal.Decimal {
	seconds := int64(worked / time.Second)
	if seconds <= 0 {
		return decimal.Zero
	}
	return value.Mul(secondsPerHour).Div(decimal.NewFromInt(seconds))
}
