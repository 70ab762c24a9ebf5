package models

import (
	"strings"

	"github.com/google/uuid"
)

// FleetType distinguishes vehicles (metered in km) from equipment (metered in hours).
type FleetType string

const (
	FleetTypeVehicle   FleetType = "VEHICLE"
	FleetTypeEquipment FleetType = "EQUIPMENT"
)

// ParseFleetType parses a fleet type case-insensitively.
func ParseFleetType(s string) (FleetType, bool) {
	switch t := FleetType(strings.ToUpper(strings.TrimSpace(s))); t {
	case FleetTypeVehicle, FleetTypeEquipment:
		return t, true
	default:
		return "", false
	}
}

// MeterUnit returns the short unit label of the item's meter.
func (t FleetType) MeterUnit() string {
	if t == FleetTypeEquipment {
		return "hrs"
	}
	return "km"
}

// FleetStatus is the operational state of a fleet item.
type FleetStatus string

const (
	StatusActive       FleetStatus = "ACTIVE"
	StatusWorkshop     FleetStatus = "WORKSHOP"
	StatusOutOfService FleetStatus = "OUT_OF_SERVICE"
)

// ParseFleetStatus parses a status case-insensitively. Spaces and dashes are
// accepted in place of underscores ("out of service").
func ParseFleetStatus(s string) (FleetStatus, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch st := FleetStatus(norm); st {
	case StatusActive, StatusWorkshop, StatusOutOfService:
		return st, true
	default:
		return "", false
	}
}

// TechnicalDetails holds optional technical attributes of a fleet item.
type TechnicalDetails struct {
	EngineType string `json:"engineType,omitempty"`
	VIN        string `json:"vin,omitempty"`
	TireSize   string `json:"tireSize,omitempty"`
	FuelType   string `json:"fuelType,omitempty"`
}

// IsZero reports whether no technical detail is set.
func (d *TechnicalDetails) IsZero() bool {
	return d == nil || *d == TechnicalDetails{}
}

// FleetItem represents a tracked vehicle or piece of equipment.
type FleetItem struct {
	ID               string            `json:"id"`
	Type             FleetType         `json:"type"`
	Make             string            `json:"make"`
	Model            string            `json:"model"`
	Year             int               `json:"year"`
	PlateOrSerial    string            `json:"plateOrSerial"`
	CurrentMeter     float64           `json:"currentMeter"` // km for vehicles, hours for equipment
	Status           FleetStatus       `json:"status"`
	Category         string            `json:"category"`
	Location         string            `json:"location"`
	AssignedTo       string            `json:"assignedTo,omitempty"`
	TechnicalDetails *TechnicalDetails `json:"technicalDetails,omitempty"`
}

// Clone returns a copy that shares no memory with f.
func (f FleetItem) Clone() FleetItem {
	if f.TechnicalDetails != nil {
		td := *f.TechnicalDetails
		f.TechnicalDetails = &td
	}
	return f
}

// SerialKey is the case-insensitive identity used to detect duplicate imports.
func (f FleetItem) SerialKey() string {
	return strings.ToLower(strings.TrimSpace(f.PlateOrSerial))
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}
