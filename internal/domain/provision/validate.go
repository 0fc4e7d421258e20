package provision

// Reasons reported by ValidateTimes, in check order.
const (
	ReasonDepartureBeforeArrival  = "departure must be after arrival"
	ReasonLunchReturnBeforeLeave  = "lunch return must be after lunch departure"
	ReasonLunchLeaveBeforeArrival = "lunch departure must be after arrival"
	ReasonLunchReturnAfterLeaving = "lunch return must be before departure"
)

// TimeOrderError is returned when the clock stamps of a record are out of order.
// It matches ErrInvalidTimeOrder with errors.Is.
type TimeOrderError struct {
	Reason string
}

func (e *TimeOrderError) Error() string {
	return e.Reason
}

func (e *TimeOrderError) Is(target error) bool {
	return target == ErrInvalidTimeOrder
}

// HasPartialLunch reports a record carrying exactly one of the two lunch stamps.
func (r Record) HasPartialLunch() bool {
	return (r.LunchOut == nil) != (r.LunchIn == nil)
}

// ValidateTimes enforces the ordering of the four clock stamps and reports the
// first violation only. Times are compared as wall-clock values on the record
// date, so a departure at or before the arrival is rejected.
func (r Record) ValidateTimes() error {
	if !r.Departure.After(r.Arrival) {
		return &TimeOrderError{Reason: ReasonDepartureBeforeArrival}
	}

	if r.LunchOut == nil || r.LunchIn == nil {
		return nil
	}

	switch {
	case !r.LunchIn.After(*r.LunchOut):
		return &TimeOrderError{Reason: ReasonLunchReturnBeforeLeave}
	case !r.LunchOut.After(r.Arrival):
		return &TimeOrderError{Reason: ReasonLunchLeaveBeforeArrival}
	case !r.LunchIn.Before(r.Departure):
		return &TimeOrderError{Reason: ReasonLunchReturnAfterLeaving}
	}
	return nil
}
