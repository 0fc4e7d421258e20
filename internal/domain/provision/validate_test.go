package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/pkg/timeofday"
)

func record(arrival, lunchOut, lunchIn, departure string) Record {
	rec := Record{
		Date:      testDate,
		Arrival:   timeofday.MustParse(arrival),
		Departure: timeofday.MustParse(departure),
	}
	if lunchOut != "" {
		rec.LunchOut = tod(lunchOut)
	}
	if lunchIn != "" {
		rec.LunchIn = tod(lunchIn)
	}
	return rec
}

func TestValidateTimes(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		reason string
	}{
		{"valid with lunch", record("08:00", "12:00", "13:00", "17:00"), ""},
		{"valid without lunch", record("08:00", "", "", "17:00"), ""},
		{"single lunch stamp is not checked", record("08:00", "19:00", "", "17:00"), ""},
		{"same arrival and departure", record("08:00", "", "", "08:00"), ReasonDepartureBeforeArrival},
		{"departure before arrival", record("22:00", "", "", "06:00"), ReasonDepartureBeforeArrival},
		{"lunch return equals lunch departure", record("08:00", "12:00", "12:00", "17:00"), ReasonLunchReturnBeforeLeave},
		{"lunch return before lunch departure", record("08:00", "13:00", "12:00", "17:00"), ReasonLunchReturnBeforeLeave},
		{"lunch departure at arrival", record("08:00", "08:00", "09:00", "17:00"), ReasonLunchLeaveBeforeArrival},
		{"lunch departure before arrival", record("08:00", "07:00", "09:00", "17:00"), ReasonLunchLeaveBeforeArrival},
		{"lunch return at departure", record("08:00", "12:00", "17:00", "17:00"), ReasonLunchReturnAfterLeaving},
		{"lunch return after departure", record("08:00", "12:00", "18:00", "17:00"), ReasonLunchReturnAfterLeaving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.ValidateTimes()
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTimeOrder)
			assert.EqualError(t, err, tt.reason)

			var orderErr *TimeOrderError
			require.True(t, errors.As(err, &orderErr))
			assert.Equal(t, tt.reason, orderErr.Reason)
		})
	}
}

func TestValidateTimesReportsFirstFailure(t *testing.T) {
	// Departure check runs before any lunch check.
	err := record("08:00", "13:00", "12:00", "07:00").ValidateTimes()
	assert.EqualError(t, err, ReasonDepartureBeforeArrival)

	// Lunch return/departure ordering is checked before lunch vs arrival.
	err = record("10:00", "09:30", "09:00", "17:00").ValidateTimes()
	assert.EqualError(t, err, ReasonLunchReturnBeforeLeave)

	// Lunch vs arrival is checked before lunch vs departure.
	err = record("10:00", "09:00", "18:00", "17:00").ValidateTimes()
	assert.EqualError(t, err, ReasonLunchLeaveBeforeArrival)
}

func TestValidateTimesRejectsEveryNonPositiveSpan(t *testing.T) {
	for h := 0; h < 24; h++ {
		arrival := timeofday.New(h, 30, 0)
		for dh := 0; dh <= h; dh++ {
			departure := timeofday.New(dh, 30, 0)
			rec := Record{Date: testDate, Arrival: arrival, Departure: departure}
			assert.ErrorIs(t, rec.ValidateTimes(), ErrInvalidTimeOrder, "arrival %s departure %s", arrival, departure)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected", "in_review"} {
		st, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), st)
	}

	_, err := ParseStatus("cancelled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.True(t, StatusApproved.Payable())
	assert.False(t, StatusInReview.Payable())
	assert.False(t, StatusPending.Payable())
}
