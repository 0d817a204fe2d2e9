package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orplanning/internal/domain"
)

const sample = `
sectors:
  - id: ortho
    name: Orthopedie
    active: true
rooms:
  - id: r101
    number: "101"
    sector_id: ortho
    active: true
    status: available
rules:
  - id: base
    name: Base limit
    kind: general
    active: true
    priority: 1
    conditions:
      max_rooms_per_supervisor: 2
  - id: ortho-peak
    name: Ortho peak
    kind: exception
    sector_id: ortho
    active: true
    priority: 10
    conditions:
      max_rooms_per_supervisor: 2
      max_rooms_exception: 3
      incompatible_sectors: [cardio]
assignments:
  - date: "2025-03-10"
    entries:
      - room_id: r101
        supervisor_id: dr-a
        periods:
          - {start: "08:00", end: "12:00"}
`

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, snap.Sectors, 1)
	require.Len(t, snap.Rooms, 1)
	require.Len(t, snap.Rules, 2)

	peak := snap.Rules[1]
	assert.Equal(t, domain.RuleException, peak.Kind)
	require.NotNil(t, peak.Conditions.MaxRoomsException)
	assert.Equal(t, 3, *peak.Conditions.MaxRoomsException)
	assert.Equal(t, []string{"cardio"}, peak.Conditions.IncompatibleSectors)

	a, err := Assignment(snap, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []domain.Period{{Start: "08:00", End: "12:00"}}, a.Entries[0].Periods)

	_, err = Assignment(snap, "2025-03-11")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown field", "rules:\n  - id: a\n    conditions:\n      max_room: 2\n"},
		{"bad date", "assignments:\n  - date: 10/03/2025\n"},
		{"not yaml", "rules: [\n"},
		{"duplicate rule id", "rules:\n  - {id: a, name: A, kind: general, conditions: {max_rooms_per_supervisor: 2}}\n  - {id: a, name: B, kind: general, conditions: {max_rooms_per_supervisor: 2}}\n"},
		{"rule without kind", "rules:\n  - {id: a, name: A, conditions: {max_rooms_per_supervisor: 2}}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestParse_SectorRuleWithoutSector(t *testing.T) {
	raw := `
rules:
  - id: base
    name: Base limit
    kind: general
    conditions: {max_rooms_per_supervisor: 2}
  - id: bad
    name: Cardio
    kind: sector_specific
    conditions: {max_rooms_per_supervisor: 1}
`
	snap, err := Parse([]byte(raw))
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var ruleErr *domain.InvalidRuleDefinitionError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "bad", ruleErr.RuleID)
	assert.Equal(t, "sector_id", ruleErr.Field)
}

func TestParse_Empty(t *testing.T) {
	snap, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, snap.Rules)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, snap.Rules, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
