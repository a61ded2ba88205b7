package entity

import (
	"sync"
	"time"
)

// Appointment is the view of a booking that entities keep as a
// back-reference. The concrete type lives in the scheduling package; from
// this side only the scheduled time matters.
type Appointment interface {
	When() time.Time
}

// appointmentList holds an entity's appointment back-references. The slice
// is owned exclusively by the entity; readers get a snapshot copy.
type appointmentList struct {
	mu    sync.Mutex
	appts []Appointment
}

func (l *appointmentList) AddAppointment(a Appointment) {
	l.mu.Lock()
	l.appts = append(l.appts, a)
	l.mu.Unlock()
}

// Appointments returns the back-references in insertion order. Mutating the
// returned slice has no effect on the entity.
func (l *appointmentList) Appointments() []Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Appointment, len(l.appts))
	copy(out, l.appts)
	return out
}
