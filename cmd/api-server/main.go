package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/medgrid/clinic-appointment-scheduling/internal/api"
	"github.com/medgrid/clinic-appointment-scheduling/internal/config"
	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
	"github.com/medgrid/clinic-appointment-scheduling/internal/fixture"
	"github.com/medgrid/clinic-appointment-scheduling/internal/logging"
	"github.com/medgrid/clinic-appointment-scheduling/internal/schedule"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("api-server", "dev")
		log.Fatal().Err(err).Msg("config load error")
	}
	logging.Init("api-server", cfg.Env)

	log.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTPPort).
		Str("data_file", cfg.DataFile).
		Dur("availability_window", cfg.AvailabilityWindow).
		Msg("api-server starting up")

	network := entity.NewNetwork()
	if cfg.SeedOnStart {
		network, err = fixture.BuildNetwork(cfg.FixtureSeed, fixture.DefaultParams())
		if err != nil {
			log.Fatal().Err(err).Msg("build fixture network")
		}
		log.Info().Uint64("seed", cfg.FixtureSeed).Msg("fixture network ready")
	}

	sched := schedule.NewScheduler(cfg.AvailabilityWindow)
	if _, err := os.Stat(cfg.DataFile); err == nil {
		tables := schedule.Lookup{
			Patients: network.PatientTable(),
			Doctors:  network.DoctorTable(),
			Rooms:    network.RoomTable(),
		}
		if err := sched.Load(cfg.DataFile, tables); err != nil {
			log.Warn().Err(err).Str("path", cfg.DataFile).Msg("could not load appointment log, starting empty")
		} else {
			log.Info().Int("appointments", len(sched.Appointments())).Msg("appointment log loaded")
		}
	}

	router := api.NewRouter(api.RouterConfig{
		Scheduler: sched,
		Network:   network,
		DataFile:  cfg.DataFile,
		Env:       cfg.Env,
		Version:   version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	if err := sched.Save(cfg.DataFile); err != nil {
		log.Error().Err(err).Str("path", cfg.DataFile).Msg("final save failed")
	} else {
		log.Info().Int("appointments", len(sched.Appointments())).Str("path", cfg.DataFile).Msg("appointment log saved")
	}
}
