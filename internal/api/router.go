package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
	"github.com/medgrid/clinic-appointment-scheduling/internal/schedule"
)

type RouterConfig struct {
	Scheduler *schedule.Scheduler
	Network   *entity.Network
	DataFile  string
	Env       string
	Version   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.DataFile, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Post("/appointments", createAppointmentHandler(cfg.Scheduler, cfg.Network))
	r.Get("/appointments", listAppointmentsHandler(cfg.Scheduler, cfg.Network))

	r.Post("/admin/save", saveAppointmentsHandler(cfg.Scheduler, cfg.DataFile))
	r.Post("/admin/load", loadAppointmentsHandler(cfg.Scheduler, cfg.Network, cfg.DataFile))

	return r
}
