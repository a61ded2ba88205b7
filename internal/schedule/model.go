package schedule

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

var allStatuses = []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}

// ParseStatus resolves a persisted status by exact name.
func ParseStatus(name string) (Status, error) {
	for _, s := range allStatuses {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrBadRecord, name)
}

// Appointment binds one patient, one doctor and one room at a point in time.
// Participants, time and cost are fixed at creation; only status and notes
// change afterwards. Appointments are created by the scheduler's commit step
// or by decoding a persisted record, and are never deleted.
type Appointment struct {
	patient *entity.Patient
	doctor  *entity.Doctor
	room    *entity.Room
	at      time.Time
	cost    decimal.Decimal

	mu     sync.Mutex
	status Status
	notes  string
}

func newAppointment(patient *entity.Patient, doctor *entity.Doctor, room *entity.Room, at time.Time, cost decimal.Decimal) *Appointment {
	return &Appointment{
		patient: patient,
		doctor:  doctor,
		room:    room,
		at:      at,
		cost:    cost,
		status:  StatusScheduled,
	}
}

func (a *Appointment) Patient() *entity.Patient { return a.patient }
func (a *Appointment) Doctor() *entity.Doctor   { return a.doctor }
func (a *Appointment) Room() *entity.Room       { return a.room }
func (a *Appointment) Cost() decimal.Decimal    { return a.cost }

// When is the scheduled time; it also satisfies the entity back-reference
// contract.
func (a *Appointment) When() time.Time { return a.at }

func (a *Appointment) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Appointment) SetStatus(s Status) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

func (a *Appointment) Notes() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notes
}

func (a *Appointment) SetNotes(notes string) {
	a.mu.Lock()
	a.notes = notes
	a.mu.Unlock()
}

func (a *Appointment) String() string {
	return fmt.Sprintf("appointment{patient=%s doctor=%s room=%s at=%s cost=%s status=%s}",
		a.patient.DNI(), a.doctor.DNI(), a.room.Number(),
		a.at.Format(time.RFC3339), a.cost, a.Status())
}

var _ entity.Appointment = (*Appointment)(nil)

// sanitizeNotes keeps notes CSV-safe on output.
func sanitizeNotes(notes string) string {
	return strings.ReplaceAll(notes, ",", ";")
}
