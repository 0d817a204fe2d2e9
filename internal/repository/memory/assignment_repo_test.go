package memory

import (
	"context"
	"testing"

	"orplanning/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepository(t *testing.T) {
	ctx := context.Background()
	day := &domain.Assignment{
		Date: "2025-03-10",
		Entries: []domain.AssignmentEntry{
			{RoomID: "r101", SupervisorID: "dr-a", Periods: []domain.Period{{Start: "08:00", End: "12:00"}}},
		},
	}
	repo := NewAssignmentRepository([]*domain.Assignment{day, nil})

	got, err := repo.GetByDate(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, day, got)

	got.Entries[0].Periods[0].End = "18:00"
	fresh, err := repo.GetByDate(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "12:00", fresh.Entries[0].Periods[0].End)

	_, err = repo.GetByDate(ctx, "2025-03-11")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	next := &domain.Assignment{Date: "2025-03-11", Entries: []domain.AssignmentEntry{{RoomID: "r102", SupervisorID: "dr-b"}}}
	require.NoError(t, repo.Save(ctx, next))
	saved, err := repo.GetByDate(ctx, "2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, "dr-b", saved.Entries[0].SupervisorID)
}

func TestFromSnapshot(t *testing.T) {
	ctx := context.Background()
	repos := FromSnapshot(&domain.Snapshot{
		Sectors:     []*domain.Sector{{ID: "ortho"}},
		Rooms:       []*domain.Room{{ID: "r101", SectorID: "ortho"}},
		Rules:       []*domain.SupervisionRule{newRule("g", "Base")},
		Assignments: []*domain.Assignment{{Date: "2025-03-10"}},
	})

	rules, err := repos.Rules.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
	sectors, err := repos.Sectors.ListSectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r101"}, sectors[0].RoomIDs)
	_, err = repos.Assignments.GetByDate(ctx, "2025-03-10")
	assert.NoError(t, err)

	empty := FromSnapshot(nil)
	rules, err = empty.Rules.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)
}
