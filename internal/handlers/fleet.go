package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-maintenance/internal/advisor"
	"github.com/ukydev/fleet-maintenance/internal/fleet"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/reminder"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

// ListFleet returns the fleet, narrowed by the type, status and q query
// parameters.
func (h *Handler) ListFleet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f fleet.Filter
	if v := q.Get("type"); v != "" {
		t, ok := models.ParseFleetType(v)
		if !ok {
			http.Error(w, "Invalid type", http.StatusBadRequest)
			return
		}
		f.Type = t
	}
	if v := q.Get("status"); v != "" && !strings.EqualFold(v, "all") {
		s, ok := models.ParseFleetStatus(v)
		if !ok {
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}
		f.Status = s
	}
	f.Query = q.Get("q")
	writeJSON(w, http.StatusOK, h.store.Search(f))
}

// normalizeItem checks the enums of an incoming item and fills defaults.
func normalizeItem(item *models.FleetItem) error {
	t, ok := models.ParseFleetType(string(item.Type))
	if !ok {
		return errors.New("invalid type")
	}
	item.Type = t
	if item.Status == "" {
		item.Status = models.StatusActive
	}
	s, ok := models.ParseFleetStatus(string(item.Status))
	if !ok {
		return errors.New("invalid status")
	}
	item.Status = s
	if strings.TrimSpace(item.PlateOrSerial) == "" {
		return errors.New("plateOrSerial is required")
	}
	if item.CurrentMeter < 0 || item.Year < 0 {
		return errors.New("year and currentMeter must not be negative")
	}
	return nil
}

// CreateFleetItem adds an item. A missing id is generated.
func (h *Handler) CreateFleetItem(w http.ResponseWriter, r *http.Request) {
	var item models.FleetItem
	if !decodeJSON(w, r, &item) {
		return
	}
	if err := normalizeItem(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if item.ID == "" {
		item.ID = models.NewID()
	} else if _, exists := h.store.FleetItem(item.ID); exists {
		http.Error(w, "Fleet item already exists", http.StatusConflict)
		return
	}
	if err := h.store.AddFleetItem(r.Context(), item); err != nil {
		h.storeError(w, err, "Failed to save fleet item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// GetFleetItem returns one item.
func (h *Handler) GetFleetItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.store.FleetItem(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Fleet item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateFleetItem replaces an item. The id in the path wins over the body.
// The type is fixed at creation: it may be omitted but not changed.
func (h *Handler) UpdateFleetItem(w http.ResponseWriter, r *http.Request) {
	var item models.FleetItem
	if !decodeJSON(w, r, &item) {
		return
	}
	item.ID = mux.Vars(r)["id"]
	existing, ok := h.store.FleetItem(item.ID)
	if !ok {
		http.Error(w, "Fleet item not found", http.StatusNotFound)
		return
	}
	if item.Type == "" {
		item.Type = existing.Type
	}
	if err := normalizeItem(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if item.Type != existing.Type {
		http.Error(w, "type cannot be changed", http.StatusBadRequest)
		return
	}
	if item.CurrentMeter < existing.CurrentMeter {
		http.Error(w, "currentMeter cannot be lowered", http.StatusBadRequest)
		return
	}
	changed, err := h.store.UpdateFleetItem(r.Context(), item)
	if err != nil {
		h.storeError(w, err, "Failed to save fleet item")
		return
	}
	saved, found := h.store.FleetItem(item.ID)
	if !changed || !found {
		http.Error(w, "Fleet item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteFleetItem removes an item and its records. The caller confirms with
// ?confirm=true; without it nothing changes and 409 is returned.
func (h *Handler) DeleteFleetItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := h.store.FleetItem(id); !ok {
		http.Error(w, "Fleet item not found", http.StatusNotFound)
		return
	}
	c := store.Declined
	if confirmed(r) {
		c = store.Confirmed
	}
	deleted, err := h.store.DeleteFleetItem(r.Context(), id, c)
	if err != nil {
		h.storeError(w, err, "Failed to delete fleet item")
		return
	}
	if !deleted {
		http.Error(w, "Deletion must be confirmed with ?confirm=true", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearFleet deletes every item and record once confirmed.
func (h *Handler) ClearFleet(w http.ResponseWriter, r *http.Request) {
	c := store.Declined
	if confirmed(r) {
		c = store.Confirmed
	}
	cleared, err := h.store.ClearFleet(r.Context(), c)
	if err != nil {
		h.storeError(w, err, "Failed to clear fleet")
		return
	}
	if !cleared {
		http.Error(w, "Clearing must be confirmed with ?confirm=true", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type historyResponse struct {
	Records []models.MaintenanceRecord `json:"records"`
	Repairs []models.MaintenanceRecord `json:"repairs"`
	Routine []models.MaintenanceRecord `json:"routine"`
}

// History returns the item's records newest first, also split into repairs
// and routine work.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := h.store.FleetItem(id); !ok {
		http.Error(w, "Fleet item not found", http.StatusNotFound)
		return
	}
	records := h.store.History(id)
	repairs, routine := reminder.SplitHistory(records)
	writeJSON(w, http.StatusOK, historyResponse{Records: records, Repairs: repairs, Routine: routine})
}

// Status returns the item's due status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	item, ok := snap.FleetItem(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Fleet item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.ComputeDueStatus(item, snap.Records))
}

// LogMaintenance records work done on an item.
func (h *Handler) LogMaintenance(w http.ResponseWriter, r *http.Request) {
	var in fleet.RecordInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rec, err := h.store.LogMaintenance(r.Context(), mux.Vars(r)["id"], in)
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		http.Error(w, "Fleet item not found", http.StatusNotFound)
	case errors.Is(err, fleet.ErrInvalidRecord):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		h.storeError(w, err, "Failed to save maintenance record")
	default:
		writeJSON(w, http.StatusCreated, rec)
	}
}

type analyzeRequest struct {
	Issue string `json:"issue"`
}

type analyzeResponse struct {
	Available  bool                `json:"available"`
	Suggestion *advisor.Suggestion `json:"suggestion,omitempty"`
}

// Analyze asks the advisor about an issue. No suggestion is a normal answer.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, ok := h.store.FleetItem(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Fleet item not found", http.StatusNotFound)
		return
	}
	s, ok := advisor.Advise(r.Context(), h.advisor, item, req.Issue)
	if !ok {
		writeJSON(w, http.StatusOK, analyzeResponse{})
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Available: true, Suggestion: &s})
}
