// Seed builds the fixture network and books a batch of future appointments,
// writing the CSV log the api-server loads on startup.
package main

import (
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/medgrid/clinic-appointment-scheduling/internal/config"
	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
	"github.com/medgrid/clinic-appointment-scheduling/internal/fixture"
	"github.com/medgrid/clinic-appointment-scheduling/internal/logging"
	"github.com/medgrid/clinic-appointment-scheduling/internal/schedule"
)

const targetAppointments = 300

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("seed", "dev")
		log.Fatal().Err(err).Msg("config load error")
	}
	logging.Init("seed", cfg.Env)
	log.Info().Uint64("seed", cfg.FixtureSeed).Msg("seed starting")

	network, err := fixture.BuildNetwork(cfg.FixtureSeed, fixture.DefaultParams())
	if err != nil {
		log.Fatal().Err(err).Msg("build fixture network")
	}

	patients := collectPatients(network)
	doctors := collectDoctors(network)
	if len(patients) == 0 || len(doctors) == 0 {
		log.Fatal().Msg("fixture network is empty")
	}

	sched := schedule.NewScheduler(cfg.AvailabilityWindow)
	rng := rand.New(rand.NewSource(int64(cfg.FixtureSeed)))

	booked, conflicts := 0, 0
	for booked < targetAppointments && conflicts < targetAppointments*10 {
		patient := patients[rng.Intn(len(patients))]
		doctor := doctors[rng.Intn(len(doctors))]

		rooms := roomsFor(network, doctor)
		if len(rooms) == 0 {
			continue
		}
		room := rooms[rng.Intn(len(rooms))]

		at := time.Now().
			Add(time.Duration(1+rng.Intn(30*24)) * time.Hour).
			Truncate(time.Hour)
		cost := decimal.NewFromInt(int64(50 + rng.Intn(250))).Add(decimal.New(int64(rng.Intn(100)), -2))

		_, err := sched.Schedule(patient, doctor, room, at, cost)
		switch {
		case err == nil:
			booked++
		case errors.Is(err, schedule.ErrDoctorUnavailable), errors.Is(err, schedule.ErrRoomUnavailable):
			conflicts++
		default:
			log.Fatal().Err(err).Msg("unexpected scheduling error")
		}
	}

	if err := sched.Save(cfg.DataFile); err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataFile).Msg("save appointment log")
	}

	log.Info().
		Int("appointments", booked).
		Int("conflicts_skipped", conflicts).
		Str("path", cfg.DataFile).
		Msg("seed complete")
}

func collectPatients(network *entity.Network) []*entity.Patient {
	var out []*entity.Patient
	for _, p := range network.PatientTable() {
		out = append(out, p)
	}
	return out
}

func collectDoctors(network *entity.Network) []*entity.Doctor {
	var out []*entity.Doctor
	for _, d := range network.DoctorTable() {
		out = append(out, d)
	}
	return out
}

// roomsFor returns the rooms a doctor can be booked into: those whose
// department matches the doctor's specialty.
func roomsFor(network *entity.Network, doctor *entity.Doctor) []*entity.Room {
	var out []*entity.Room
	for _, r := range network.RoomTable() {
		if r.Department().Specialty() == doctor.Specialty() {
			out = append(out, r)
		}
	}
	return out
}
