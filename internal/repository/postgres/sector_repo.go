package postgres

import (
	"context"
	"database/sql"
	"errors"

	"orplanning/internal/domain"

	"github.com/lib/pq"
)

type sectorRepository struct {
	DB *sql.DB
}

// NewSectorRepository returns a domain.SectorRepository implemented with Postgres.
func NewSectorRepository(db *sql.DB) domain.SectorRepository {
	return &sectorRepository{DB: db}
}

func (r *sectorRepository) ListSectors(ctx context.Context) ([]*domain.Sector, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.name, s.color, s.active,
			COALESCE(array_agg(o.id ORDER BY o.number) FILTER (WHERE o.id IS NOT NULL), '{}')
		 FROM sectors s
		 LEFT JOIN operating_rooms o ON o.sector_id = s.id
		 GROUP BY s.id
		 ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sectors := make([]*domain.Sector, 0)
	for rows.Next() {
		var s domain.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.Active, pq.Array(&s.RoomIDs)); err != nil {
			return nil, err
		}
		sectors = append(sectors, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sectors, nil
}

const roomColumns = `id, number, name, sector_id, active, status, adjacent_room_ids`

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var status string
	if err := row.Scan(&room.ID, &room.Number, &room.Name, &room.SectorID, &room.Active, &status, pq.Array(&room.AdjacentRoomIDs)); err != nil {
		return nil, err
	}
	room.Status = domain.RoomStatus(status)
	return &room, nil
}

func (r *sectorRepository) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+roomColumns+` FROM operating_rooms ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *sectorRepository) GetRoomByID(ctx context.Context, id string) (*domain.Room, error) {
	room, err := scanRoom(r.DB.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM operating_rooms WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}
