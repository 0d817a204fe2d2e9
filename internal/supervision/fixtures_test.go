package supervision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"orplanning/internal/domain"
)

func intPtr(n int) *int { return &n }

func general(id string, priority, max int) *domain.SupervisionRule {
	return &domain.SupervisionRule{
		ID:         id,
		Name:       "general " + id,
		Kind:       domain.RuleGeneral,
		Active:     true,
		Priority:   priority,
		Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: max},
	}
}

func sectorRule(id, sector string, priority, max int) *domain.SupervisionRule {
	return &domain.SupervisionRule{
		ID:         id,
		Name:       "sector " + id,
		Kind:       domain.RuleSectorSpecific,
		SectorID:   sector,
		Active:     true,
		Priority:   priority,
		Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: max},
	}
}

func exception(id, sector string, priority, max int, ceiling *int) *domain.SupervisionRule {
	return &domain.SupervisionRule{
		ID:       id,
		Name:     "exception " + id,
		Kind:     domain.RuleException,
		SectorID: sector,
		Active:   true,
		Priority: priority,
		Conditions: domain.RuleConditions{
			MaxRoomsPerSupervisor: max,
			MaxRoomsException:     ceiling,
		},
	}
}

func mustCatalog(t *testing.T, rules ...*domain.SupervisionRule) *Catalog {
	t.Helper()
	c, err := NewCatalog(rules)
	require.NoError(t, err)
	return c
}

func ruleIDs(rules []*domain.SupervisionRule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.ID)
	}
	return out
}

// layout returns sectors ortho, cardio and ophtalmo with rooms 101-103, 201-203 and
// 301-302 respectively.
func layout() ([]*domain.Sector, []*domain.Room) {
	sectors := []*domain.Sector{
		{ID: "ortho", Name: "Orthopedics", Active: true, RoomIDs: []string{"r101", "r102", "r103"}},
		{ID: "cardio", Name: "Cardiology", Active: true, RoomIDs: []string{"r201", "r202", "r203"}},
		{ID: "ophtalmo", Name: "Ophthalmology", Active: true, RoomIDs: []string{"r301", "r302"}},
	}
	rooms := []*domain.Room{
		{ID: "r101", Number: "101", SectorID: "ortho", Active: true, Status: domain.RoomAvailable},
		{ID: "r102", Number: "102", SectorID: "ortho", Active: true, Status: domain.RoomAvailable},
		{ID: "r103", Number: "103", SectorID: "ortho", Active: true, Status: domain.RoomAvailable},
		{ID: "r201", Number: "201", SectorID: "cardio", Active: true, Status: domain.RoomAvailable},
		{ID: "r202", Number: "202", SectorID: "cardio", Active: true, Status: domain.RoomAvailable},
		{ID: "r203", Number: "204", SectorID: "cardio", Active: true, Status: domain.RoomAvailable},
		{ID: "r301", Number: "S1", SectorID: "ophtalmo", Active: true, Status: domain.RoomAvailable},
		{ID: "r302", Number: "S2", SectorID: "ophtalmo", Active: true, Status: domain.RoomAvailable},
	}
	return sectors, rooms
}

func entry(room, supervisor string, periods ...domain.Period) domain.AssignmentEntry {
	return domain.AssignmentEntry{RoomID: room, SupervisorID: supervisor, Periods: periods}
}

var morning = domain.Period{Start: "08:00", End: "13:00"}
