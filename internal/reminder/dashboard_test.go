package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestDashboard(t *testing.T) {
	e := newEngine()
	now := e.Today()
	in30 := now.AddDays(30)
	in31 := now.AddDays(31)
	past := now.AddDays(-1)

	fleet := []models.FleetItem{
		vehicle("v1", 0),
		vehicle("v2", 0),
		{ID: "e1", Type: models.FleetTypeEquipment, Status: models.StatusWorkshop},
		{ID: "e2", Type: models.FleetTypeEquipment, Status: models.StatusWorkshop},
		vehicle("v3", 0),
	}
	records := []models.MaintenanceRecord{
		{ID: "r1", FleetItemID: "v1", Date: now.AddDays(-300), NextDueDate: &in30},
		{ID: "r2", FleetItemID: "v2", Date: now.AddDays(-200), NextDueDate: &in31},
		{ID: "r3", FleetItemID: "e1", Date: now.AddDays(-100), NextDueDate: &past},
		{ID: "r4", FleetItemID: "e2", Date: now.AddDays(-10), NextDueDate: &now},
	}

	c := e.Dashboard(fleet, records)
	assert.Equal(t, 3, c.Vehicles)
	assert.Equal(t, 2, c.Equipment)
	assert.Equal(t, 2, c.InWorkshop)
	assert.Equal(t, 2, c.DueSoon, "exactly 30 days and today count, 31 days and past do not")

	require.Len(t, c.Recent, RecentRecords)
	assert.Equal(t, "r4", c.Recent[0].ID)
	assert.Equal(t, "r3", c.Recent[1].ID)
	assert.Equal(t, "r2", c.Recent[2].ID)
}

func TestDashboard_OnlyLatestRecordCounts(t *testing.T) {
	e := newEngine()
	now := e.Today()
	soon := now.AddDays(5)
	later := now.AddDays(300)

	fleet := []models.FleetItem{vehicle("v1", 0)}
	records := []models.MaintenanceRecord{
		{FleetItemID: "v1", Date: now.AddDays(-360), NextDueDate: &soon},
		{FleetItemID: "v1", Date: now.AddDays(-60), NextDueDate: &later},
	}
	assert.Equal(t, 0, e.Dashboard(fleet, records).DueSoon)
}

func TestReminders_OverdueFirst(t *testing.T) {
	e := newEngine()
	now := e.Today()
	past := now.AddDays(-3)
	soon := now.AddDays(3)

	fleet := []models.FleetItem{vehicle("ok", 0), vehicle("none", 0), vehicle("soon", 0), vehicle("late", 0)}
	records := []models.MaintenanceRecord{
		{FleetItemID: "ok", Date: now.AddDays(-1), NextDueDate: ptrDate("2099-01-01")},
		{FleetItemID: "soon", Date: now.AddDays(-1), NextDueDate: &soon},
		{FleetItemID: "late", Date: now.AddDays(-1), NextDueDate: &past},
	}

	list := e.Reminders(fleet, records)
	require.Len(t, list, 4)
	order := make([]string, 0, len(list))
	for _, r := range list {
		order = append(order, r.Item.ID)
	}
	assert.Equal(t, []string{"late", "soon", "ok", "none"}, order)
	assert.Equal(t, StatusUnknown, list[3].Status)
	require.NotNil(t, list[0].LastService)
	assert.Equal(t, now.AddDays(-1), *list[0].LastService)
}
