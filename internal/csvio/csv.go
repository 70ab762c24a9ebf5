// Package csvio converts fleet items to and from the spreadsheet interchange
// format. Parsing is lenient: hand-edited rows that cannot be understood are
// skipped instead of failing the whole file.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Header is the canonical column order.
var Header = []string{
	"type", "make", "model", "year", "plateOrSerial", "currentMeter", "status",
	"category", "location", "assignedTo", "vin", "engineType", "fuelType",
}

const (
	colType = iota
	colMake
	colModel
	colYear
	colPlate
	colMeter
	colStatus
	colCategory
	colLocation
	colAssignedTo
	colVIN
	colEngineType
	colFuelType
)

// ErrNoRows is reported by callers when a file holds no importable row. It
// is an outcome to show the user, not a failure of the parser.
var ErrNoRows = errors.New("no valid data found, check the template")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ProduceTemplate returns the header row alone.
func ProduceTemplate() []byte {
	out, _ := Serialize(nil)
	return out
}

// Serialize writes one row per item under Header. Fields holding the
// delimiter, quotes or newlines are quoted with inner quotes doubled.
// Identifiers and tire size are not exported.
func Serialize(items []models.FleetItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := w.Write(row(item)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func row(item models.FleetItem) []string {
	td := models.TechnicalDetails{}
	if item.TechnicalDetails != nil {
		td = *item.TechnicalDetails
	}
	return []string{
		string(item.Type),
		item.Make,
		item.Model,
		strconv.Itoa(item.Year),
		item.PlateOrSerial,
		strconv.FormatFloat(item.CurrentMeter, 'f', -1, 64),
		string(item.Status),
		item.Category,
		item.Location,
		item.AssignedTo,
		td.VIN,
		td.EngineType,
		td.FuelType,
	}
}

// Result reports what Parse did with the input.
type Result struct {
	Items   []models.FleetItem
	Skipped int // data rows dropped as malformed or incomplete
}

// Parse reads items from data and returns only the valid ones, each with a
// freshly generated ID. Input without any valid row yields an empty slice.
func Parse(data []byte) []models.FleetItem {
	return ParseDetailed(data).Items
}

// ParseDetailed is Parse with a count of the rows it skipped.
func ParseDetailed(data []byte) Result {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	res := Result{Items: []models.FleetItem{}}
	header := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				if !header {
					res.Skipped++
				}
				header = false
				continue
			}
			break
		}
		if header {
			header = false
			continue
		}
		if blank(rec) {
			continue
		}
		item, ok := parseRow(rec)
		if !ok {
			res.Skipped++
			continue
		}
		res.Items = append(res.Items, item)
	}
	return res
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRow(rec []string) (models.FleetItem, bool) {
	// Spreadsheets often pad rows with empty trailing cells.
	if len(rec) > len(Header) && blank(rec[len(Header):]) {
		rec = rec[:len(Header)]
	}
	if len(rec) != len(Header) {
		return models.FleetItem{}, false
	}
	// Free text is kept as written; only checks and numeric or enum cells
	// ignore surrounding spaces.
	cell := func(i int) string { return strings.TrimSpace(rec[i]) }
	if cell(colMake) == "" || cell(colModel) == "" || cell(colPlate) == "" {
		return models.FleetItem{}, false
	}

	item := models.FleetItem{
		ID:            models.NewID(),
		Type:          models.FleetTypeVehicle,
		Make:          rec[colMake],
		Model:         rec[colModel],
		PlateOrSerial: rec[colPlate],
		Status:        models.StatusActive,
		Category:      rec[colCategory],
		Location:      rec[colLocation],
		AssignedTo:    rec[colAssignedTo],
	}

	if cell(colType) != "" {
		t, ok := models.ParseFleetType(cell(colType))
		if !ok {
			return models.FleetItem{}, false
		}
		item.Type = t
	}
	if cell(colStatus) != "" {
		st, ok := models.ParseFleetStatus(cell(colStatus))
		if !ok {
			return models.FleetItem{}, false
		}
		item.Status = st
	}
	if cell(colYear) != "" {
		year, err := strconv.Atoi(cell(colYear))
		if err != nil || year < 0 {
			return models.FleetItem{}, false
		}
		item.Year = year
	}
	if cell(colMeter) != "" {
		meter, err := strconv.ParseFloat(cell(colMeter), 64)
		if err != nil || meter < 0 || math.IsNaN(meter) || math.IsInf(meter, 0) {
			return models.FleetItem{}, false
		}
		item.CurrentMeter = meter
	}

	td := &models.TechnicalDetails{
		VIN:        rec[colVIN],
		EngineType: rec[colEngineType],
		FuelType:   rec[colFuelType],
	}
	if !td.IsZero() {
		item.TechnicalDetails = td
	}
	return item, true
}
