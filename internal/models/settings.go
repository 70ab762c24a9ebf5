package models

// Settings is the static configuration offered to the user when editing items
// and logging maintenance.
type Settings struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	JobTypes   []string `json:"jobTypes"`
	AccessPin  string   `json:"accessPin"` // stored only; nothing enforces it
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Categories: []string{"Sedan", "Pickup Truck", "Excavator", "Forklift", "Generator"},
		Locations:  []string{"Main HQ", "North Site", "South Depot"},
		JobTypes:   []string{"Routine Service", "Breakdown", "Tire Change", "Oil Change"},
		AccessPin:  "1234",
	}
}
