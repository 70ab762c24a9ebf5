// Package advisor offers optional troubleshooting suggestions for a reported
// issue. The rest of the system works the same whether an advisor is present
// or not.
package advisor

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ErrUnavailable means no suggestion can be produced.
var ErrUnavailable = errors.New("advisor unavailable")

// Suggestion is a diagnosis with the steps to confirm and fix it.
type Suggestion struct {
	Diagnosis string   `json:"diagnosis"`
	Steps     []string `json:"steps"`
}

// Advisor analyses an issue description for a fleet item.
type Advisor interface {
	Analyze(ctx context.Context, item models.FleetItem, issue string) (Suggestion, error)
}

// Static answers every request with the same generic checklist.
type Static struct{}

// Analyze returns the generic checklist.
func (Static) Analyze(ctx context.Context, item models.FleetItem, issue string) (Suggestion, error) {
	return Suggestion{
		Diagnosis: "AI analysis is not configured yet. Please rely on your mechanical experience for now.",
		Steps: []string{
			"Check the basic items first (fluids, filters, visible leaks).",
			"Read any available fault codes from the vehicle/equipment.",
			"Inspect the area related to the described issue.",
			"Plan the repair and record it in the maintenance log.",
		},
	}, nil
}

// Unavailable never has a suggestion.
type Unavailable struct{}

// Analyze always fails with ErrUnavailable.
func (Unavailable) Analyze(context.Context, models.FleetItem, string) (Suggestion, error) {
	return Suggestion{}, ErrUnavailable
}

// Advise asks a for a suggestion and reports whether one was produced. A nil
// advisor, a blank issue or any advisor error all mean "no suggestion".
func Advise(ctx context.Context, a Advisor, item models.FleetItem, issue string) (Suggestion, bool) {
	if a == nil || strings.TrimSpace(issue) == "" {
		return Suggestion{}, false
	}
	s, err := a.Analyze(ctx, item, issue)
	if err != nil {
		log.WithError(err).WithField("item_id", item.ID).Warn("No maintenance suggestion available")
		return Suggestion{}, false
	}
	return s, true
}
