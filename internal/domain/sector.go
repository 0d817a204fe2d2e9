package domain

import "context"

// RoomStatus is the operational status of an operating room. It is context only
// for supervision checks.
type RoomStatus string

const (
	RoomAvailable    RoomStatus = "available"
	RoomOccupied     RoomStatus = "occupied"
	RoomMaintenance  RoomStatus = "maintenance"
	RoomOutOfService RoomStatus = "out_of_service"
)

// Valid reports whether s is a known status. The empty status is treated as available.
func (s RoomStatus) Valid() bool {
	switch s {
	case "", RoomAvailable, RoomOccupied, RoomMaintenance, RoomOutOfService:
		return true
	}
	return false
}

// Sector groups operating rooms (usually by specialty) and is the unit of rule targeting.
// swagger:model Sector
type Sector struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Color   string   `json:"color" yaml:"color"`
	Active  bool     `json:"active" yaml:"active"`
	RoomIDs []string `json:"room_ids" yaml:"room_ids"`
}

// Room is an operating room. A room belongs to exactly one sector.
// AdjacentRoomIDs is an optional explicit topology used by the contiguity check.
// swagger:model Room
type Room struct {
	ID              string     `json:"id" yaml:"id"`
	Number          string     `json:"number" yaml:"number"`
	Name            string     `json:"name" yaml:"name"`
	SectorID        string     `json:"sector_id" yaml:"sector_id"`
	Active          bool       `json:"active" yaml:"active"`
	Status          RoomStatus `json:"status" yaml:"status"`
	AdjacentRoomIDs []string   `json:"adjacent_room_ids,omitempty" yaml:"adjacent_room_ids,omitempty"`
}

// SectorRepository provides read access to sectors and rooms. CRUD lives with the
// owning collaborator; the supervision engine only reads the current state.
type SectorRepository interface {
	ListSectors(ctx context.Context) ([]*Sector, error)
	ListRooms(ctx context.Context) ([]*Room, error)
	GetRoomByID(ctx context.Context, id string) (*Room, error)
}

// SectorService exposes the room layout to API clients.
type SectorService interface {
	ListSectors(ctx context.Context) ([]*Sector, error)
	ListRooms(ctx context.Context) ([]*Room, error)
}
