package models

import "strings"

// MaintenanceType classifies a maintenance event.
type MaintenanceType string

const (
	MaintenanceService    MaintenanceType = "SERVICE"
	MaintenanceRepair     MaintenanceType = "REPAIR"
	MaintenanceInspection MaintenanceType = "INSPECTION"
)

// ParseMaintenanceType parses a maintenance type case-insensitively.
func ParseMaintenanceType(s string) (MaintenanceType, bool) {
	switch t := MaintenanceType(strings.ToUpper(strings.TrimSpace(s))); t {
	case MaintenanceService, MaintenanceRepair, MaintenanceInspection:
		return t, true
	default:
		return "", false
	}
}

// DefaultParts is stored when a record lists no parts.
const DefaultParts = "None"

// MaintenanceRecord represents one completed service, repair or inspection.
type MaintenanceRecord struct {
	ID           string          `json:"id"`
	FleetItemID  string          `json:"fleetItemId"`
	Date         Date            `json:"date"`
	MeterReading float64         `json:"meterReading"`
	Type         MaintenanceType `json:"type"`
	Description  string          `json:"description"`
	Parts        string          `json:"parts"`
	LaborCost    float64         `json:"laborCost"`
	PartsCost    float64         `json:"partsCost"`
	TotalCost    float64         `json:"totalCost"` // always LaborCost + PartsCost
	NextDueMeter *float64        `json:"nextDueMeter,omitempty"`
	NextDueDate  *Date           `json:"nextDueDate,omitempty"`
	Technician   string          `json:"technician,omitempty"`
}

// Clone returns a copy that shares no memory with r.
func (r MaintenanceRecord) Clone() MaintenanceRecord {
	if r.NextDueMeter != nil {
		m := *r.NextDueMeter
		r.NextDueMeter = &m
	}
	if r.NextDueDate != nil {
		d := *r.NextDueDate
		r.NextDueDate = &d
	}
	return r
}

// IsRoutine reports whether the record is preventive work (service or inspection).
func (r MaintenanceRecord) IsRoutine() bool {
	return r.Type != MaintenanceRepair
}
