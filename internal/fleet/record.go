package fleet

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/reminder"
)

// ErrInvalidRecord wraps every validation failure of NewRecord.
var ErrInvalidRecord = errors.New("invalid maintenance record")

// RecordInput is what a user enters when logging maintenance.
type RecordInput struct {
	Date         models.Date            `json:"date"`
	MeterReading float64                `json:"meterReading"`
	Type         models.MaintenanceType `json:"type"`
	Description  string                 `json:"description"`
	Parts        string                 `json:"parts"`
	LaborCost    float64                `json:"laborCost"`
	PartsCost    float64                `json:"partsCost"`
	Technician   string                 `json:"technician"`
}

// NewRecord builds the record for item from in: a fresh id, the total cost,
// "None" for missing parts and the default next-due thresholds.
func NewRecord(item models.FleetItem, in RecordInput) (models.MaintenanceRecord, error) {
	typ, err := in.validate()
	if err != nil {
		return models.MaintenanceRecord{}, err
	}
	parts := strings.TrimSpace(in.Parts)
	if parts == "" {
		parts = models.DefaultParts
	}
	rec := models.MaintenanceRecord{
		ID:           models.NewID(),
		FleetItemID:  item.ID,
		Date:         in.Date,
		MeterReading: in.MeterReading,
		Type:         typ,
		Description:  strings.TrimSpace(in.Description),
		Parts:        parts,
		LaborCost:    in.LaborCost,
		PartsCost:    in.PartsCost,
		TotalCost:    in.LaborCost + in.PartsCost,
		Technician:   strings.TrimSpace(in.Technician),
	}
	next := reminder.ComputeDefaultNextDue(rec, item)
	rec.NextDueMeter = next.Meter
	rec.NextDueDate = next.Date
	return rec, nil
}

func (in RecordInput) validate() (models.MaintenanceType, error) {
	if in.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}
	t, ok := models.ParseMaintenanceType(string(in.Type))
	if !ok {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidRecord, in.Type)
	}
	if strings.TrimSpace(in.Description) == "" {
		return "", fmt.Errorf("%w: description is required", ErrInvalidRecord)
	}
	amounts := []struct {
		name string
		v    float64
	}{
		{"meter reading", in.MeterReading},
		{"labor cost", in.LaborCost},
		{"parts cost", in.PartsCost},
	}
	for _, a := range amounts {
		if a.v < 0 || math.IsNaN(a.v) || math.IsInf(a.v, 0) {
			return "", fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidRecord, a.name)
		}
	}
	return t, nil
}
