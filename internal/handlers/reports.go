package handlers

import (
	"io"
	"mime"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/csvio"
)

// ListRecords returns every maintenance record in insertion order.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Records())
}

// Reminders returns the service reminder list.
func (h *Handler) Reminders(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, h.engine.Reminders(snap.Fleet, snap.Records))
}

// Dashboard returns the dashboard counters.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, h.engine.Dashboard(snap.Fleet, snap.Records))
}

// Settings returns the pick lists.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Settings())
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// CSVTemplate downloads the empty import template.
func (h *Handler) CSVTemplate(w http.ResponseWriter, r *http.Request) {
	writeCSV(w, "fleet_template.csv", csvio.ProduceTemplate())
}

// CSVExport downloads the whole fleet.
func (h *Handler) CSVExport(w http.ResponseWriter, r *http.Request) {
	data, err := csvio.Serialize(h.store.Fleet())
	if err != nil {
		h.log.WithError(err).Error("Failed to export fleet")
		http.Error(w, "Failed to export fleet", http.StatusInternalServerError)
		return
	}
	writeCSV(w, "fleet_export.csv", data)
}

type importResponse struct {
	Parsed   int `json:"parsed"`
	Skipped  int `json:"skipped"`
	Imported int `json:"imported"`
}

// CSVImport adds the rows of an uploaded file. The file is either the raw
// request body or the "file" part of a multipart form.
func (h *Handler) CSVImport(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r)
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}
	res := csvio.ParseDetailed(data)
	if len(res.Items) == 0 {
		http.Error(w, csvio.ErrNoRows.Error(), http.StatusUnprocessableEntity)
		return
	}
	imported, err := h.store.ImportFleet(r.Context(), res.Items)
	if err != nil {
		h.storeError(w, err, "Failed to import fleet")
		return
	}
	h.log.WithFields(log.Fields{
		"parsed":   len(res.Items),
		"skipped":  res.Skipped,
		"imported": imported,
	}).Info("CSV import finished")
	writeJSON(w, http.StatusOK, importResponse{Parsed: len(res.Items), Skipped: res.Skipped, Imported: imported})
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
