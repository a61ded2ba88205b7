package schedule

import "time"

// DefaultWindow is the minimum separation between two appointments sharing a
// doctor or a room.
const DefaultWindow = 2 * time.Hour

// fitsWindow reports whether a candidate time keeps at least window of
// elapsed time from every existing appointment. The comparison is a true
// duration: an existing appointment at the exact candidate instant is a
// conflict, and so is anything strictly closer than the window on either
// side.
func fitsWindow(existing []*Appointment, at time.Time, window time.Duration) bool {
	for _, a := range existing {
		d := at.Sub(a.When())
		if d < 0 {
			d = -d
		}
		if d < window {
			return false
		}
	}
	return true
}
