package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
	"github.com/medgrid/clinic-appointment-scheduling/internal/lock"
)

// Scheduler orchestrates booking: request validation, then the availability
// and specialty checks, then the commit into the store plus the entity
// back-references. The check-then-commit sequence runs under per-doctor and
// per-room locks so two concurrent bookings for the same doctor or room
// cannot both pass the availability check.
type Scheduler struct {
	store  *Store
	locker *lock.Keyed
	window time.Duration
	now    func() time.Time
}

// NewScheduler builds a scheduler with its own empty store. A window <= 0
// means DefaultWindow.
func NewScheduler(window time.Duration) *Scheduler {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Scheduler{
		store:  NewStore(),
		locker: lock.NewKeyed(),
		window: window,
		now:    time.Now,
	}
}

func doctorKey(dni string) string  { return "doctor:" + dni }
func roomKey(number string) string { return "room:" + number }

// Schedule books an appointment. Either all effects happen (log, three
// indexes, three back-references) or none; every rejection leaves state
// untouched.
func (s *Scheduler) Schedule(patient *entity.Patient, doctor *entity.Doctor, room *entity.Room,
	at time.Time, cost decimal.Decimal) (*Appointment, error) {

	if !at.After(s.now()) {
		return nil, fmt.Errorf("%w: %s", ErrPastDateTime, at.Format(time.RFC3339))
	}
	if cost.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveCost, cost)
	}

	var appt *Appointment
	err := s.locker.WithKeys(doctorKey(doctor.DNI()), roomKey(room.Number()), func() error {
		if !fitsWindow(s.store.ByDoctor(doctor.DNI()), at, s.window) {
			return fmt.Errorf("%w: doctor %s at %s", ErrDoctorUnavailable, doctor.DNI(), at.Format(time.RFC3339))
		}
		if !fitsWindow(s.store.ByRoom(room.Number()), at, s.window) {
			return fmt.Errorf("%w: room %s at %s", ErrRoomUnavailable, room.Number(), at.Format(time.RFC3339))
		}
		if doctor.Specialty() != room.Department().Specialty() {
			return fmt.Errorf("%w: doctor is %s, room %s belongs to %s department",
				ErrSpecialtyMismatch, doctor.Specialty(), room.Number(), room.Department().Specialty())
		}

		appt = newAppointment(patient, doctor, room, at, cost)
		s.store.Commit(appt)

		patient.AddAppointment(appt)
		doctor.AddAppointment(appt)
		room.AddAppointment(appt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// AppointmentsByPatient returns the patient's appointments in booking order.
// The slice is a snapshot; the empty case is an empty slice.
func (s *Scheduler) AppointmentsByPatient(p *entity.Patient) []*Appointment {
	return s.store.ByPatient(p.DNI())
}

func (s *Scheduler) AppointmentsByDoctor(d *entity.Doctor) []*Appointment {
	return s.store.ByDoctor(d.DNI())
}

func (s *Scheduler) AppointmentsByRoom(r *entity.Room) []*Appointment {
	return s.store.ByRoom(r.Number())
}

// Appointments returns the primary log in commit order.
func (s *Scheduler) Appointments() []*Appointment {
	return s.store.All()
}

// CompletePast marks every scheduled appointment whose time has passed as
// completed and reports how many it touched.
func (s *Scheduler) CompletePast(now time.Time) int {
	var n int
	for _, a := range s.store.All() {
		if a.Status() == StatusScheduled && a.When().Before(now) {
			a.SetStatus(StatusCompleted)
			n++
		}
	}
	return n
}
