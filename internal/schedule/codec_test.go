package schedule

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
)

func testLookup(t *testing.T) (Lookup, *entity.Patient, *entity.Doctor, *entity.Room) {
	t.Helper()
	patient := newTestPatient(t, "11111111")
	doctor := newTestDoctor(t, "22222222", entity.Cardiology)
	room := newTestRoom(t, "101", entity.Cardiology)
	tables := Lookup{
		Patients: map[string]*entity.Patient{patient.DNI(): patient},
		Doctors:  map[string]*entity.Doctor{doctor.DNI(): doctor},
		Rooms:    map[string]*entity.Room{room.Number(): room},
	}
	return tables, patient, doctor, room
}

func TestEncodeLine(t *testing.T) {
	_, patient, doctor, room := testLookup(t)
	at := time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC)

	a := newAppointment(patient, doctor, room, at, cost("150.5"))
	a.SetNotes("bring previous ECG, fasting required")

	line := EncodeLine(a)
	want := "11111111,22222222,101,2026-09-14T10:30:00Z,150.5,SCHEDULED,bring previous ECG; fasting required"
	assert.Equal(t, want, line)
	assert.Len(t, strings.Split(line, ","), csvFields)
}

func TestDecodeLineRoundTrip(t *testing.T) {
	tables, patient, doctor, room := testLookup(t)
	at := time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC)

	orig := newAppointment(patient, doctor, room, at, cost("150.5"))
	orig.SetStatus(StatusCancelled)
	orig.SetNotes("no symptoms; routine check")

	got, err := DecodeLine(EncodeLine(orig), tables)
	require.NoError(t, err)

	assert.Same(t, patient, got.Patient())
	assert.Same(t, doctor, got.Doctor())
	assert.Same(t, room, got.Room())
	assert.True(t, got.When().Equal(at))
	assert.True(t, got.Cost().Equal(orig.Cost()))
	assert.Equal(t, StatusCancelled, got.Status())
	assert.Equal(t, "no symptoms; routine check", got.Notes())
}

func TestDecodeLineCommaNotesComeBackAsSemicolons(t *testing.T) {
	tables, patient, doctor, room := testLookup(t)
	a := newAppointment(patient, doctor, room,
		time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC), cost("80"))
	a.SetNotes("allergic to penicillin, check chart")

	got, err := DecodeLine(EncodeLine(a), tables)
	require.NoError(t, err)
	// The comma was stored as a semicolon and the decoder maps it back.
	assert.Equal(t, "allergic to penicillin, check chart", got.Notes())
}

func TestDecodeLineDoesNotReapplyBusinessRules(t *testing.T) {
	tables, _, _, _ := testLookup(t)

	// A past-dated completed appointment is a legitimate persisted record.
	line := "11111111,22222222,101,2020-01-01T08:00:00Z,99.99,COMPLETED,"
	got, err := DecodeLine(line, tables)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status())
	assert.True(t, got.When().Before(time.Now()))
}

func TestDecodeLineErrors(t *testing.T) {
	tables, _, _, _ := testLookup(t)
	valid := "11111111,22222222,101,2026-09-14T10:30:00Z,150.5,SCHEDULED,notes"

	tests := []struct {
		name     string
		line     string
		wantErr  error
		contains string
	}{
		{
			name:    "too few fields",
			line:    "11111111,22222222,101,2026-09-14T10:30:00Z,150.5,SCHEDULED",
			wantErr: ErrBadRecord,
		},
		{
			name:    "too many fields",
			line:    valid + ",extra",
			wantErr: ErrBadRecord,
		},
		{
			name:    "bad date-time",
			line:    "11111111,22222222,101,14/09/2026 10:30,150.5,SCHEDULED,",
			wantErr: ErrBadRecord,
		},
		{
			name:    "bad cost",
			line:    "11111111,22222222,101,2026-09-14T10:30:00Z,abc,SCHEDULED,",
			wantErr: ErrBadRecord,
		},
		{
			name:    "unknown status",
			line:    "11111111,22222222,101,2026-09-14T10:30:00Z,150.5,PENDING,",
			wantErr: ErrBadRecord,
		},
		{
			name:     "unknown patient",
			line:     "99999999,22222222,101,2026-09-14T10:30:00Z,150.5,SCHEDULED,",
			wantErr:  ErrUnknownReference,
			contains: "99999999",
		},
		{
			name:     "unknown doctor",
			line:     "11111111,88888888,101,2026-09-14T10:30:00Z,150.5,SCHEDULED,",
			wantErr:  ErrUnknownReference,
			contains: "88888888",
		},
		{
			name:     "unknown room",
			line:     "11111111,22222222,777,2026-09-14T10:30:00Z,150.5,SCHEDULED,",
			wantErr:  ErrUnknownReference,
			contains: "777",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLine(tt.line, tables)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("scheduled")
	assert.ErrorIs(t, err, ErrBadRecord, "status names are case sensitive")
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrBadRecord)
}

func TestAppointmentString(t *testing.T) {
	_, patient, doctor, room := testLookup(t)
	at := time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC)
	a := newAppointment(patient, doctor, room, at, cost("150.5"))

	s := fmt.Sprint(a)
	assert.Contains(t, s, "11111111")
	assert.Contains(t, s, "101")
	assert.Contains(t, s, "SCHEDULED")
}
