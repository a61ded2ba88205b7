package api

import (
	"net/http"
	"os"
	"path/filepath"
)

type HealthHandler struct {
	dataFile string
	env      string
	version  string
}

func NewHealthHandler(dataFile, env, version string) *HealthHandler {
	return &HealthHandler{
		dataFile: dataFile,
		env:      env,
		version:  version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

// Readiness probes the only external dependency: the directory holding the
// CSV appointment log must be writable for save to work.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	status := "ok"

	dir := filepath.Dir(h.dataFile)
	probe, err := os.CreateTemp(dir, ".readiness-*")
	if err != nil {
		deps["data_dir"] = "down"
		status = "error"
	} else {
		probe.Close()
		os.Remove(probe.Name())
		deps["data_dir"] = "ok"
	}

	resp := ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	}

	httpStatus := http.StatusOK
	if status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
