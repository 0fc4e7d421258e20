// Package timeofday models a wall-clock time without a date, as stored in a
// Postgres "time" column.
package timeofday

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const day = 24 * time.Hour

var (
	ErrInvalidTime = errors.New("time must be in HH:MM or HH:MM:SS format")
	ErrOutOfRange  = errors.New("time of day must be before 24:00:00")
)

// TimeOfDay is an offset from midnight with second resolution, in [00:00:00, 24:00:00).
type TimeOfDay struct {
	offset time.Duration
}

// New builds a TimeOfDay from its components. Out-of-range values wrap around the day.
func New(hour, minute, second int) TimeOfDay {
	d := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
	return fromDuration(d)
}

func fromDuration(d time.Duration) TimeOfDay {
	d = d.Truncate(time.Second) % day
	if d < 0 {
		d += day
	}
	return TimeOfDay{offset: d}
}

// Parse accepts "15:04" and "15:04:05".
func Parse(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return New(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t.offset / time.Hour) }
func (t TimeOfDay) Minute() int { return int(t.offset % time.Hour / time.Minute) }
func (t TimeOfDay) Second() int { return int(t.offset % time.Minute / time.Second) }

// SinceMidnight returns the offset from 00:00:00.
func (t TimeOfDay) SinceMidnight() time.Duration { return t.offset }

func (t TimeOfDay) Before(u TimeOfDay) bool { return t.offset < u.offset }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t.offset > u.offset }
func (t TimeOfDay) Equal(u TimeOfDay) bool  { return t.offset == u.offset }

// On combines the calendar day of date with t. The result is in UTC so that
// differences between two instants never include a DST shift.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(t.offset)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidTime
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ScanTime implements pgtype.TimeScanner. Postgres accepts 24:00:00, which has
// no TimeOfDay equivalent and is rejected.
func (t *TimeOfDay) ScanTime(v pgtype.Time) error {
	if !v.Valid {
		return errors.New("cannot scan NULL into TimeOfDay")
	}
	if v.Microseconds < 0 || v.Microseconds >= day.Microseconds() {
		return fmt.Errorf("%w: got %d microseconds", ErrOutOfRange, v.Microseconds)
	}
	*t = fromDuration(time.Duration(v.Microseconds) * time.Microsecond)
	return nil
}

// TimeValue implements pgtype.TimeValuer.
func (t TimeOfDay) TimeValue() (pgtype.Time, error) {
	return pgtype.Time{Microseconds: t.offset.Microseconds(), Valid: true}, nil
}
