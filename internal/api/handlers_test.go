package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
	"github.com/medgrid/clinic-appointment-scheduling/internal/schedule"
)

type testEnv struct {
	router   http.Handler
	sched    *schedule.Scheduler
	network  *entity.Network
	dataFile string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	network := entity.NewNetwork()
	birth := time.Date(1985, time.July, 20, 0, 0, 0, 0, time.UTC)

	hospital, err := entity.NewHospital("Central", "Av. Libertador 100", "555-0100")
	require.NoError(t, err)
	require.NoError(t, network.AddHospital(hospital))

	cardio, err := entity.NewDepartment("Cardiology (Central)", entity.Cardiology)
	require.NoError(t, err)
	require.NoError(t, network.AddDepartment(cardio))
	require.NoError(t, network.AttachDepartment(hospital.Name(), cardio.Name()))

	neuro, err := entity.NewDepartment("Neurology (Central)", entity.Neurology)
	require.NoError(t, err)
	require.NoError(t, network.AddDepartment(neuro))
	require.NoError(t, network.AttachDepartment(hospital.Name(), neuro.Name()))

	cardioRoom, err := entity.NewRoom("101", "consultation", cardio)
	require.NoError(t, err)
	require.NoError(t, network.AddRoom(cardioRoom))
	neuroRoom, err := entity.NewRoom("201", "consultation", neuro)
	require.NoError(t, err)
	require.NoError(t, network.AddRoom(neuroRoom))

	doctor, err := entity.NewDoctor("Gregory", "House", "22222222", birth, entity.ABNegative, "MP-12345", entity.Cardiology)
	require.NoError(t, err)
	require.NoError(t, network.AddDoctor(doctor))
	require.NoError(t, network.AttachDoctor(cardio.Name(), doctor.DNI()))

	patient, err := entity.NewPatient("Ana", "Garcia", "11111111", birth, entity.OPositive, "555-0101", "742 Evergreen Terrace")
	require.NoError(t, err)
	require.NoError(t, network.AddPatient(patient))
	require.NoError(t, network.AttachPatient(hospital.Name(), patient.DNI()))

	sched := schedule.NewScheduler(0)
	dataFile := filepath.Join(t.TempDir(), "appointments.csv")

	router := NewRouter(RouterConfig{
		Scheduler: sched,
		Network:   network,
		DataFile:  dataFile,
		Env:       "dev",
		Version:   "test",
	})
	return &testEnv{router: router, sched: sched, network: network, dataFile: dataFile}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func bookingRequest(startsAt time.Time) CreateAppointmentRequest {
	return CreateAppointmentRequest{
		PatientDNI: "11111111",
		DoctorDNI:  "22222222",
		RoomNumber: "101",
		StartsAt:   startsAt.Format(time.RFC3339),
		Cost:       "150.50",
		Notes:      "first visit",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateAppointment(t *testing.T) {
	env := newTestEnv(t)
	startsAt := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	rec := env.do(t, http.MethodPost, "/appointments", bookingRequest(startsAt))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "11111111", resp.PatientDNI)
	assert.Equal(t, "22222222", resp.DoctorDNI)
	assert.Equal(t, "101", resp.RoomNumber)
	assert.True(t, resp.StartsAt.Equal(startsAt))
	assert.Equal(t, "150.5", resp.Cost)
	assert.Equal(t, "SCHEDULED", resp.Status)

	require.Len(t, env.sched.Appointments(), 1)
	assert.Equal(t, "first visit", env.sched.Appointments()[0].Notes())
}

func TestCreateAppointmentConflicts(t *testing.T) {
	env := newTestEnv(t)
	startsAt := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	rec := env.do(t, http.MethodPost, "/appointments", bookingRequest(startsAt))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/appointments", bookingRequest(startsAt.Add(time.Hour)))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "doctor_unavailable", decodeError(t, rec).Error)

	assert.Len(t, env.sched.Appointments(), 1)
}

func TestCreateAppointmentValidationFailures(t *testing.T) {
	env := newTestEnv(t)
	future := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	tests := []struct {
		name       string
		mutate     func(*CreateAppointmentRequest)
		wantStatus int
		wantError  string
	}{
		{"unknown patient", func(r *CreateAppointmentRequest) { r.PatientDNI = "99999999" },
			http.StatusNotFound, "patient_not_found"},
		{"unknown doctor", func(r *CreateAppointmentRequest) { r.DoctorDNI = "99999999" },
			http.StatusNotFound, "doctor_not_found"},
		{"unknown room", func(r *CreateAppointmentRequest) { r.RoomNumber = "999" },
			http.StatusNotFound, "room_not_found"},
		{"bad starts_at", func(r *CreateAppointmentRequest) { r.StartsAt = "tomorrow" },
			http.StatusBadRequest, "invalid_starts_at"},
		{"bad cost", func(r *CreateAppointmentRequest) { r.Cost = "lots" },
			http.StatusBadRequest, "invalid_cost"},
		{"past date", func(r *CreateAppointmentRequest) { r.StartsAt = "2020-01-01T10:00:00Z" },
			http.StatusBadRequest, "past_date_time"},
		{"zero cost", func(r *CreateAppointmentRequest) { r.Cost = "0" },
			http.StatusBadRequest, "non_positive_cost"},
		{"specialty mismatch", func(r *CreateAppointmentRequest) { r.RoomNumber = "201" },
			http.StatusBadRequest, "specialty_mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookingRequest(future)
			tt.mutate(&req)
			rec := env.do(t, http.MethodPost, "/appointments", req)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
		})
	}

	assert.Empty(t, env.sched.Appointments(), "every rejection leaves state untouched")
}

func TestCreateAppointmentBadJSON(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request_body", decodeError(t, rec).Error)
}

func TestListAppointments(t *testing.T) {
	env := newTestEnv(t)
	startsAt := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	rec := env.do(t, http.MethodPost, "/appointments", bookingRequest(startsAt))
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, target := range []string{
		"/appointments",
		"/appointments?patient=11111111",
		"/appointments?doctor=22222222",
		"/appointments?room=101",
	} {
		rec := env.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)

		var resp ListAppointmentsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Appointments, 1, target)
		assert.Equal(t, "11111111", resp.Appointments[0].PatientDNI)
	}

	rec = env.do(t, http.MethodGet, "/appointments?patient=99999999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "patient_not_found", decodeError(t, rec).Error)
}

func TestSaveAndLoadRoundTripOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	startsAt := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	rec := env.do(t, http.MethodPost, "/appointments", bookingRequest(startsAt))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/admin/save", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved PersistResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, 1, saved.Count)
	assert.Equal(t, env.dataFile, saved.Path)

	rec = env.do(t, http.MethodPost, "/admin/load", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var loaded PersistResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, 1, loaded.Count)

	require.Len(t, env.sched.Appointments(), 1)
}

func TestLoadReportsBadRecords(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.dataFile, []byte("not,enough,fields\n"), 0o644))

	rec := env.do(t, http.MethodPost, "/admin/load", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "bad_record", decodeError(t, rec).Error)
}

func TestLoadReportsUnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	line := "55555555,22222222,101,2026-09-14T10:30:00Z,75,SCHEDULED,\n"
	require.NoError(t, os.WriteFile(env.dataFile, []byte(line), 0o644))

	rec := env.do(t, http.MethodPost, "/admin/load", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "unknown_reference", resp.Error)
	assert.Contains(t, resp.Details, "55555555")
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResponsesCarryRequestID(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health/live", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
