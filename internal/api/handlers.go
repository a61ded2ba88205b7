package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
	"github.com/medgrid/clinic-appointment-scheduling/internal/schedule"
)

func createAppointmentHandler(svc *schedule.Scheduler, network *entity.Network) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patient, ok := network.PatientByDNI(req.PatientDNI)
		if !ok {
			writeError(w, http.StatusNotFound, "patient_not_found", "no patient with DNI "+req.PatientDNI)
			return
		}
		doctor, ok := network.DoctorByDNI(req.DoctorDNI)
		if !ok {
			writeError(w, http.StatusNotFound, "doctor_not_found", "no doctor with DNI "+req.DoctorDNI)
			return
		}
		room, ok := network.RoomByNumber(req.RoomNumber)
		if !ok {
			writeError(w, http.StatusNotFound, "room_not_found", "no room with number "+req.RoomNumber)
			return
		}

		startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_starts_at", "starts_at must be RFC 3339")
			return
		}
		cost, err := decimal.NewFromString(req.Cost)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_cost", "cost must be a decimal number")
			return
		}

		appt, err := svc.Schedule(patient, doctor, room, startsAt, cost)
		if err != nil {
			handleScheduleError(w, err)
			return
		}
		if req.Notes != "" {
			appt.SetNotes(req.Notes)
		}

		writeJSON(w, http.StatusCreated, toResponse(appt))
	}
}

func listAppointmentsHandler(svc *schedule.Scheduler, network *entity.Network) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var appts []*schedule.Appointment
		switch {
		case q.Get("patient") != "":
			patient, ok := network.PatientByDNI(q.Get("patient"))
			if !ok {
				writeError(w, http.StatusNotFound, "patient_not_found", "no patient with DNI "+q.Get("patient"))
				return
			}
			appts = svc.AppointmentsByPatient(patient)
		case q.Get("doctor") != "":
			doctor, ok := network.DoctorByDNI(q.Get("doctor"))
			if !ok {
				writeError(w, http.StatusNotFound, "doctor_not_found", "no doctor with DNI "+q.Get("doctor"))
				return
			}
			appts = svc.AppointmentsByDoctor(doctor)
		case q.Get("room") != "":
			room, ok := network.RoomByNumber(q.Get("room"))
			if !ok {
				writeError(w, http.StatusNotFound, "room_not_found", "no room with number "+q.Get("room"))
				return
			}
			appts = svc.AppointmentsByRoom(room)
		default:
			appts = svc.Appointments()
		}

		resp := ListAppointmentsResponse{Appointments: make([]AppointmentResponse, 0, len(appts))}
		for _, a := range appts {
			resp.Appointments = append(resp.Appointments, toResponse(a))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func saveAppointmentsHandler(svc *schedule.Scheduler, dataFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Save(dataFile); err != nil {
			writeError(w, http.StatusInternalServerError, "save_failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, PersistResponse{Path: dataFile, Count: len(svc.Appointments())})
	}
}

func loadAppointmentsHandler(svc *schedule.Scheduler, network *entity.Network, dataFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables := schedule.Lookup{
			Patients: network.PatientTable(),
			Doctors:  network.DoctorTable(),
			Rooms:    network.RoomTable(),
		}
		if err := svc.Load(dataFile, tables); err != nil {
			handleLoadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, PersistResponse{Path: dataFile, Count: len(svc.Appointments())})
	}
}

func handleScheduleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrPastDateTime):
		writeError(w, http.StatusBadRequest, "past_date_time", err.Error())
	case errors.Is(err, schedule.ErrNonPositiveCost):
		writeError(w, http.StatusBadRequest, "non_positive_cost", err.Error())
	case errors.Is(err, schedule.ErrSpecialtyMismatch):
		writeError(w, http.StatusBadRequest, "specialty_mismatch", err.Error())
	case errors.Is(err, schedule.ErrDoctorUnavailable):
		writeError(w, http.StatusConflict, "doctor_unavailable", err.Error())
	case errors.Is(err, schedule.ErrRoomUnavailable):
		writeError(w, http.StatusConflict, "room_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleLoadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrBadRecord):
		writeError(w, http.StatusUnprocessableEntity, "bad_record", err.Error())
	case errors.Is(err, schedule.ErrUnknownReference):
		writeError(w, http.StatusUnprocessableEntity, "unknown_reference", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "load_failed", err.Error())
	}
}

func toResponse(a *schedule.Appointment) AppointmentResponse {
	return AppointmentResponse{
		PatientDNI: a.Patient().DNI(),
		DoctorDNI:  a.Doctor().DNI(),
		RoomNumber: a.Room().Number(),
		StartsAt:   a.When(),
		Cost:       a.Cost().String(),
		Status:     string(a.Status()),
		Notes:      a.Notes(),
	}
}
