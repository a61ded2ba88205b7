// Status-worker periodically sweeps the CSV appointment log: scheduled
// appointments whose time has passed are marked completed and the log is
// written back. It is meant to run while the api-server is stopped, or
// against a copy of the log.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medgrid/clinic-appointment-scheduling/internal/config"
	"github.com/medgrid/clinic-appointment-scheduling/internal/fixture"
	"github.com/medgrid/clinic-appointment-scheduling/internal/logging"
	"github.com/medgrid/clinic-appointment-scheduling/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("status-worker", "dev")
		log.Fatal().Err(err).Msg("config load error")
	}
	logging.Init("status-worker", cfg.Env)

	log.Info().
		Str("env", cfg.Env).
		Dur("interval", cfg.WorkerInterval).
		Str("data_file", cfg.DataFile).
		Msg("status-worker starting up")

	network, err := fixture.BuildNetwork(cfg.FixtureSeed, fixture.DefaultParams())
	if err != nil {
		log.Fatal().Err(err).Msg("build fixture network")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tables := schedule.Lookup{
		Patients: network.PatientTable(),
		Doctors:  network.DoctorTable(),
		Rooms:    network.RoomTable(),
	}

	// Run once at startup
	runOnce(cfg, tables)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Info().Msg("shutdown signal received, stopping status worker")
			return
		case <-ticker.C:
			runOnce(cfg, tables)
		}
	}
}

func runOnce(cfg config.Config, tables schedule.Lookup) {
	start := time.Now()

	sched := schedule.NewScheduler(cfg.AvailabilityWindow)
	if err := sched.Load(cfg.DataFile, tables); err != nil {
		log.Error().Err(err).Str("path", cfg.DataFile).Msg("sweep load error")
		return
	}

	completed := sched.CompletePast(time.Now())
	if completed == 0 {
		log.Info().Dur("took", time.Since(start)).Msg("sweep complete, nothing to do")
		return
	}

	if err := sched.Save(cfg.DataFile); err != nil {
		log.Error().Err(err).Str("path", cfg.DataFile).Msg("sweep save error")
		return
	}

	log.Info().
		Int("completed", completed).
		Dur("took", time.Since(start)).
		Msg("sweep complete")
}
