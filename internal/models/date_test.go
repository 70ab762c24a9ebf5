package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_AddYears(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		years    int
		expected string
	}{
		{"plain day", "2024-01-15", 1, "2025-01-15"},
		{"leap day clamps", "2024-02-29", 1, "2025-02-28"},
		{"leap day to leap year", "2024-02-29", 4, "2028-02-29"},
		{"end of year", "2023-12-31", 1, "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDate(tt.in).AddYears(tt.years).String()
			if got != tt.expected {
				t.Errorf("AddYears(%s, %d) = %s, want %s", tt.in, tt.years, got, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-10-15")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if d != NewDate(2023, time.October, 15) {
		t.Errorf("unexpected date %s", d)
	}

	d, err = ParseDate("2023-10-15T22:10:00Z")
	if err != nil {
		t.Fatalf("parse timestamp failed: %v", err)
	}
	if d.String() != "2023-10-15" {
		t.Errorf("expected timestamp truncated to day, got %s", d)
	}

	if _, err := ParseDate("15/10/2023"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestDate_JSON(t *testing.T) {
	rec := MaintenanceRecord{ID: "r", Date: NewDate(2024, time.March, 1)}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if raw["date"] != "2024-03-01" {
		t.Errorf("expected date 2024-03-01 on the wire, got %v", raw["date"])
	}
	if _, ok := raw["nextDueDate"]; ok {
		t.Error("absent nextDueDate must be omitted")
	}

	var out MaintenanceRecord
	if err := json.Unmarshal([]byte(`{"date":"2023-10-20","nextDueDate":"2024-10-20"}`), &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out.NextDueDate == nil || out.NextDueDate.String() != "2024-10-20" {
		t.Errorf("unexpected nextDueDate %v", out.NextDueDate)
	}
}
