package schedule

import "errors"

// Booking rejections. The first three are request-level validation failures;
// the two unavailability errors mean the two-hour separation window around an
// existing appointment was violated. All are detected before any mutation.
var (
	ErrPastDateTime      = errors.New("appointment time must be in the future")
	ErrNonPositiveCost   = errors.New("cost must be greater than zero")
	ErrSpecialtyMismatch = errors.New("doctor specialty does not match room department")
	ErrDoctorUnavailable = errors.New("doctor unavailable at requested time")
	ErrRoomUnavailable   = errors.New("room unavailable at requested time")
)

// Persistence errors. ErrBadRecord covers malformed lines (field count,
// unparseable time/cost, unknown status); ErrUnknownReference covers a
// well-formed line naming an identifier absent from the lookup tables.
var (
	ErrBadRecord        = errors.New("malformed appointment record")
	ErrUnknownReference = errors.New("unknown reference in appointment record")
)
