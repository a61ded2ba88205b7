// Simulate drives concurrent booking and lookup traffic against a running
// api-server and reports success/conflict rates and latency percentiles.
// It rebuilds the fixture network with the same seed as the server to know
// which patient DNIs, doctor DNIs and room numbers exist.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medgrid/clinic-appointment-scheduling/internal/config"
	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
	"github.com/medgrid/clinic-appointment-scheduling/internal/fixture"
	"github.com/medgrid/clinic-appointment-scheduling/internal/logging"
)

type SimConfig struct {
	APIBaseURL   string
	Duration     time.Duration
	Workers      int
	BookingRatio float64
	ReadRatio    float64
	FixtureSeed  uint64
}

// bookingTarget pairs a doctor with the rooms compatible with their
// specialty so generated requests mostly exercise the availability rules,
// not the specialty check.
type bookingTarget struct {
	doctorDNI string
	rooms     []string
}

type DataPool struct {
	PatientDNIs []string
	Targets     []bookingTarget
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, success, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case success:
		atomic.AddInt64(&om.Success, 1)
	case conflict:
		atomic.AddInt64(&om.Conflict, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[percentileIndex(len(latencies), 50)]
	p95 = latencies[percentileIndex(len(latencies), 95)]
	return avg, min, max, p50, p95
}

func percentileIndex(n, pct int) int {
	idx := n * pct / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

type Metrics struct {
	Booking       OperationMetrics
	ListByPatient OperationMetrics
	ListByDoctor  OperationMetrics
	ListByRoom    OperationMetrics
}

type Simulator struct {
	config  SimConfig
	pool    *DataPool
	client  *http.Client
	metrics Metrics
}

func main() {
	baseCfg, err := config.Load()
	if err != nil {
		logging.Init("simulate", "dev")
		log.Fatal().Err(err).Msg("config load error")
	}
	logging.Init("simulate", baseCfg.Env)

	cfg := loadSimConfig(baseCfg)
	if cfg.Workers <= 0 || cfg.Duration <= 0 {
		log.Fatal().Msg("SIM_WORKERS and SIM_DURATION must be > 0")
	}

	log.Info().
		Dur("duration", cfg.Duration).
		Int("workers", cfg.Workers).
		Float64("booking_ratio", cfg.BookingRatio).
		Msg("simulator starting")

	network, err := fixture.BuildNetwork(cfg.FixtureSeed, fixture.DefaultParams())
	if err != nil {
		log.Fatal().Err(err).Msg("build fixture network")
	}

	pool := buildDataPool(network)
	if len(pool.PatientDNIs) == 0 || len(pool.Targets) == 0 {
		log.Fatal().Msg("fixture network has no patients or doctors")
	}
	log.Info().
		Int("patients", len(pool.PatientDNIs)).
		Int("doctors", len(pool.Targets)).
		Msg("data pool ready")

	sim := &Simulator{
		config: cfg,
		pool:   pool,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	sim.Run()
	sim.PrintReport()
}

func loadSimConfig(base config.Config) SimConfig {
	cfg := SimConfig{
		APIBaseURL:   getEnv("SIM_API_BASE_URL", "http://localhost:"+base.HTTPPort),
		Duration:     getDuration("SIM_DURATION", 30*time.Second),
		Workers:      getInt("SIM_WORKERS", 10),
		BookingRatio: getFloat("SIM_BOOKING_RATIO", 0.6),
		ReadRatio:    getFloat("SIM_READ_RATIO", 0.4),
		FixtureSeed:  base.FixtureSeed,
	}

	total := cfg.BookingRatio + cfg.ReadRatio
	if total > 0 {
		cfg.BookingRatio /= total
		cfg.ReadRatio /= total
	}
	return cfg
}

func buildDataPool(network *entity.Network) *DataPool {
	pool := &DataPool{}
	for dni := range network.PatientTable() {
		pool.PatientDNIs = append(pool.PatientDNIs, dni)
	}
	sort.Strings(pool.PatientDNIs)

	roomsBySpecialty := make(map[entity.Specialty][]string)
	for number, room := range network.RoomTable() {
		spec := room.Department().Specialty()
		roomsBySpecialty[spec] = append(roomsBySpecialty[spec], number)
	}
	for _, rooms := range roomsBySpecialty {
		sort.Strings(rooms)
	}

	for dni, doctor := range network.DoctorTable() {
		pool.Targets = append(pool.Targets, bookingTarget{
			doctorDNI: dni,
			rooms:     roomsBySpecialty[doctor.Specialty()],
		})
	}
	sort.Slice(pool.Targets, func(i, j int) bool { return pool.Targets[i].doctorDNI < pool.Targets[j].doctorDNI })

	return pool
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Info().Int("workers", s.config.Workers).Msg("starting simulation")

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Info().Msg("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if rng.Float64() < s.config.BookingRatio {
				s.doBooking(ctx, rng)
				continue
			}
			switch rng.Intn(3) {
			case 0:
				s.doList(ctx, "patient", s.randomPatient(rng), &s.metrics.ListByPatient)
			case 1:
				s.doList(ctx, "doctor", s.randomTarget(rng).doctorDNI, &s.metrics.ListByDoctor)
			case 2:
				target := s.randomTarget(rng)
				if len(target.rooms) > 0 {
					s.doList(ctx, "room", target.rooms[rng.Intn(len(target.rooms))], &s.metrics.ListByRoom)
				}
			}
		}
	}
}

func (s *Simulator) randomPatient(rng *rand.Rand) string {
	return s.pool.PatientDNIs[rng.Intn(len(s.pool.PatientDNIs))]
}

func (s *Simulator) randomTarget(rng *rand.Rand) bookingTarget {
	return s.pool.Targets[rng.Intn(len(s.pool.Targets))]
}

func (s *Simulator) doBooking(ctx context.Context, rng *rand.Rand) {
	target := s.randomTarget(rng)
	if len(target.rooms) == 0 {
		return
	}

	reqBody := map[string]string{
		"patient_dni": s.randomPatient(rng),
		"doctor_dni":  target.doctorDNI,
		"room_number": target.rooms[rng.Intn(len(target.rooms))],
		"starts_at": time.Now().
			Add(time.Duration(1+rng.Intn(30*24)) * time.Hour).
			Truncate(time.Hour).
			Format(time.RFC3339),
		"cost": fmt.Sprintf("%d.%02d", 50+rng.Intn(250), rng.Intn(100)),
	}
	body, _ := json.Marshal(reqBody)

	start := time.Now()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIBaseURL+"/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	conflict := false
	if err == nil {
		resp.Body.Close()
		success = resp.StatusCode == http.StatusCreated
		conflict = resp.StatusCode == http.StatusConflict
	}

	s.metrics.Booking.Record(latency, success, conflict)
}

func (s *Simulator) doList(ctx context.Context, param, value string, om *OperationMetrics) {
	start := time.Now()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/appointments?%s=%s", s.config.APIBaseURL, param, value), nil)

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	if err == nil {
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}

	om.Record(latency, success, false)
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Booking", &s.metrics.Booking)
	printOperationReport("List by Patient", &s.metrics.ListByPatient)
	printOperationReport("List by Doctor", &s.metrics.ListByDoctor)
	printOperationReport("List by Room", &s.metrics.ListByRoom)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	conflict := atomic.LoadInt64(&om.Conflict)
	errCount := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if conflict > 0 {
		fmt.Printf("  Conflicts: %d (%.1f%%)\n", conflict, float64(conflict)/float64(total)*100)
	}
	if errCount > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", errCount, float64(errCount)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

// Helper functions

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
