package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
	"github.com/pupbiru/humanitix-auto-codes/internal/rollout"
)

// Handler exposes the rollout over HTTP for cron-less deployments. Runs are
// serialized: a second trigger waits for the in-flight run to finish.
type Handler struct {
	Service *rollout.Service
	Logger  *logger.Logger

	mu         sync.Mutex
	lastReport *rollout.RunReport
}

type errorResponse struct {
	Error  string             `json:"error"`
	Report *rollout.RunReport `json:"report,omitempty"`
}

// Run triggers a rollout run and returns its report.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	report, err := h.Service.Run(r.Context())
	h.lastReport = report
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Run failed: %v", err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Report: report})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// LastReport returns the most recent run's report.
func (h *Handler) LastReport(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lastReport == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no run recorded yet"})
		return
	}
	writeJSON(w, http.StatusOK, h.lastReport)
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
