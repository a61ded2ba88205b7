package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
)

// Persisted line format, one appointment per line, no header:
//
//	patientDNI,doctorDNI,roomNumber,dateTime,cost,STATUS,notes
//
// Exactly seven comma-delimited fields. The date-time is RFC 3339. Literal
// commas in notes are stored as semicolons so the field count stays fixed.
const csvFields = 7

// Lookup carries the caller-supplied tables used to resolve the entity
// references in a persisted line. The codec does not own or construct
// entities.
type Lookup struct {
	Patients map[string]*entity.Patient
	Doctors  map[string]*entity.Doctor
	Rooms    map[string]*entity.Room
}

// EncodeLine renders an appointment as one CSV line.
func EncodeLine(a *Appointment) string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s",
		a.Patient().DNI(),
		a.Doctor().DNI(),
		a.Room().Number(),
		a.When().Format(time.RFC3339),
		a.Cost(),
		a.Status(),
		sanitizeNotes(a.Notes()),
	)
}

// DecodeLine parses one CSV line back into an appointment, resolving the
// entity references against the lookup tables. Business rules are not
// re-applied: a round trip may legitimately restore a past-dated or
// cancelled appointment.
func DecodeLine(line string, tables Lookup) (*Appointment, error) {
	fields := strings.Split(line, ",")
	if len(fields) != csvFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrBadRecord, csvFields, len(fields))
	}

	at, err := time.Parse(time.RFC3339, fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: bad date-time %q: %v", ErrBadRecord, fields[3], err)
	}
	cost, err := decimal.NewFromString(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: bad cost %q: %v", ErrBadRecord, fields[4], err)
	}
	status, err := ParseStatus(fields[5])
	if err != nil {
		return nil, err
	}
	notes := strings.ReplaceAll(fields[6], ";", ",")

	patient, ok := tables.Patients[fields[0]]
	if !ok {
		return nil, fmt.Errorf("%w: patient %q", ErrUnknownReference, fields[0])
	}
	doctor, ok := tables.Doctors[fields[1]]
	if !ok {
		return nil, fmt.Errorf("%w: doctor %q", ErrUnknownReference, fields[1])
	}
	room, ok := tables.Rooms[fields[2]]
	if !ok {
		return nil, fmt.Errorf("%w: room %q", ErrUnknownReference, fields[2])
	}

	a := newAppointment(patient, doctor, room, at, cost)
	a.SetStatus(status)
	a.SetNotes(notes)
	return a, nil
}
