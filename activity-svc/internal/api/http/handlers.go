package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"toro-admin/activity-svc/internal/service"

	"github.com/gorilla/mux"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Handler struct {
	Store service.StoreInterface
}

func NewHandler(store service.StoreInterface) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/activity", h.recent).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "activity-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.Recent(r.Context(), parseLimit(r.URL.Query().Get("limit")))
	if err != nil {
		log.Printf("[activity-svc] recent activity: %v", err)
		http.Error(w, "Failed to load activity", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// parseLimit defaults a missing or invalid limit and clamps it to maxLimit.
func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
