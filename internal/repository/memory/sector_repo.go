package memory

import (
	"context"
	"sync"

	"orplanning/internal/domain"
)

type sectorRepository struct {
	mu      sync.RWMutex
	sectors []*domain.Sector
	rooms   []*domain.Room
}

// NewSectorRepository returns a read-only domain.SectorRepository over the given layout.
// A sector seeded without room IDs lists the rooms that reference it.
func NewSectorRepository(sectors []*domain.Sector, rooms []*domain.Room) domain.SectorRepository {
	r := &sectorRepository{}
	for _, room := range rooms {
		if room != nil {
			r.rooms = append(r.rooms, cloneRoom(room))
		}
	}
	for _, s := range sectors {
		if s == nil {
			continue
		}
		c := cloneSector(s)
		if len(c.RoomIDs) == 0 {
			for _, room := range r.rooms {
				if room.SectorID == c.ID {
					c.RoomIDs = append(c.RoomIDs, room.ID)
				}
			}
		}
		r.sectors = append(r.sectors, c)
	}
	return r
}

func (r *sectorRepository) ListSectors(_ context.Context) ([]*domain.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Sector, 0, len(r.sectors))
	for _, s := range r.sectors {
		out = append(out, cloneSector(s))
	}
	return out, nil
}

func (r *sectorRepository) ListRooms(_ context.Context) ([]*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, cloneRoom(room))
	}
	return out, nil
}

func (r *sectorRepository) GetRoomByID(_ context.Context, id string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.rooms {
		if room.ID == id {
			return cloneRoom(room), nil
		}
	}
	return nil, domain.ErrNotFound
}

func cloneSector(s *domain.Sector) *domain.Sector {
	c := *s
	c.RoomIDs = append([]string(nil), s.RoomIDs...)
	return &c
}

func cloneRoom(room *domain.Room) *domain.Room {
	c := *room
	c.AdjacentRoomIDs = append([]string(nil), room.AdjacentRoomIDs...)
	return &c
}
