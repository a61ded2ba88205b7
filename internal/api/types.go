package api

import "time"

type CreateAppointmentRequest struct {
	PatientDNI string `json:"patient_dni"`
	DoctorDNI  string `json:"doctor_dni"`
	RoomNumber string `json:"room_number"`
	StartsAt   string `json:"starts_at"` // RFC 3339
	Cost       string `json:"cost"`
	Notes      string `json:"notes,omitempty"`
}

type AppointmentResponse struct {
	PatientDNI string    `json:"patient_dni"`
	DoctorDNI  string    `json:"doctor_dni"`
	RoomNumber string    `json:"room_number"`
	StartsAt   time.Time `json:"starts_at"`
	Cost       string    `json:"cost"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
}

type ListAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

type PersistResponse struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
