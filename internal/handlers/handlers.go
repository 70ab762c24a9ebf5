// Package handlers exposes the fleet store over a JSON HTTP API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/juju/clock"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/advisor"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/reminder"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

const maxBodyBytes = 5 << 20

// Handler serves the fleet API.
type Handler struct {
	store   *store.Store
	engine  *reminder.Engine
	advisor advisor.Advisor
	log     *log.Entry
}

// New creates a Handler. A nil advisor disables suggestions.
func New(s *store.Store, engine *reminder.Engine, a advisor.Advisor) *Handler {
	if engine == nil {
		engine = reminder.New(nil)
	}
	if a == nil {
		a = advisor.Unavailable{}
	}
	return &Handler{
		store:   s,
		engine:  engine,
		advisor: a,
		log:     log.WithField("component", "http"),
	}
}

// RouterOptions configures the middleware around the API.
type RouterOptions struct {
	Logger    *log.Logger
	Clock     clock.Clock
	RateLimit int // requests per minute per client; 0 disables
}

// Router registers every route on a new mux.Router.
func (h *Handler) Router(opts RouterOptions) *mux.Router {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.Use(middleware.RequestLogger(opts.Logger, opts.Clock))

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	// Subrouters report a method mismatch as 404 unless they have their own handler.
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	api.Use(middleware.NewRateLimiter(opts.Clock).Limit(opts.RateLimit, time.Minute))

	api.HandleFunc("/fleet", h.ListFleet).Methods(http.MethodGet)
	api.HandleFunc("/fleet", h.CreateFleetItem).Methods(http.MethodPost)
	api.HandleFunc("/fleet", h.ClearFleet).Methods(http.MethodDelete)
	api.HandleFunc("/fleet/{id}", h.GetFleetItem).Methods(http.MethodGet)
	api.HandleFunc("/fleet/{id}", h.UpdateFleetItem).Methods(http.MethodPut)
	api.HandleFunc("/fleet/{id}", h.DeleteFleetItem).Methods(http.MethodDelete)
	api.HandleFunc("/fleet/{id}/history", h.History).Methods(http.MethodGet)
	api.HandleFunc("/fleet/{id}/status", h.Status).Methods(http.MethodGet)
	api.HandleFunc("/fleet/{id}/records", h.LogMaintenance).Methods(http.MethodPost)
	api.HandleFunc("/fleet/{id}/analyze", h.Analyze).Methods(http.MethodPost)

	api.HandleFunc("/records", h.ListRecords).Methods(http.MethodGet)
	api.HandleFunc("/reminders", h.Reminders).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.Settings).Methods(http.MethodGet)

	api.HandleFunc("/csv/template", h.CSVTemplate).Methods(http.MethodGet)
	api.HandleFunc("/csv/export", h.CSVExport).Methods(http.MethodGet)
	api.HandleFunc("/csv/import", h.CSVImport).Methods(http.MethodPost)
	return r
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// storeError answers a failed mutation. Only persistence can fail here.
func (h *Handler) storeError(w http.ResponseWriter, err error, msg string) {
	h.log.WithError(err).Error(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
