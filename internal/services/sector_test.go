package services

import (
	"context"
	"testing"
	"time"

	"orplanning/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectorService(t *testing.T) {
	ctx := context.Background()
	snap := fixtureSnapshot()
	svc := NewSectorService(memory.NewSectorRepository(snap.Sectors, snap.Rooms), time.Second)

	sectors, err := svc.ListSectors(ctx)
	require.NoError(t, err)
	require.Len(t, sectors, 3)
	assert.Equal(t, []string{"r101", "r102", "r103"}, sectors[0].RoomIDs)

	rooms, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 5)
}
