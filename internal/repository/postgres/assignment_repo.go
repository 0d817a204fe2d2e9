package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"orplanning/internal/domain"
)

type assignmentRepository struct {
	DB *sql.DB
}

// NewAssignmentRepository returns a domain.AssignmentRepository implemented with Postgres.
// Entries are stored one row per room with the periods as JSON.
func NewAssignmentRepository(db *sql.DB) domain.AssignmentRepository {
	return &assignmentRepository{DB: db}
}

func (r *assignmentRepository) GetByDate(ctx context.Context, date string) (*domain.Assignment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT room_id, supervisor_id, periods FROM supervision_assignments WHERE date = $1 ORDER BY position`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	a := &domain.Assignment{Date: date, Entries: []domain.AssignmentEntry{}}
	for rows.Next() {
		var e domain.AssignmentEntry
		var periods []byte
		if err := rows.Scan(&e.RoomID, &e.SupervisorID, &periods); err != nil {
			return nil, err
		}
		if len(periods) > 0 {
			if err := json.Unmarshal(periods, &e.Periods); err != nil {
				return nil, fmt.Errorf("decode periods for room %s: %w", e.RoomID, err)
			}
		}
		a.Entries = append(a.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(a.Entries) == 0 {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// Save replaces the planning stored for the assignment's date.
func (r *assignmentRepository) Save(ctx context.Context, a *domain.Assignment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM supervision_assignments WHERE date = $1`, a.Date); err != nil {
		return err
	}
	for i, e := range a.Entries {
		periods, err := json.Marshal(e.Periods)
		if err != nil {
			return fmt.Errorf("encode periods for room %s: %w", e.RoomID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO supervision_assignments (date, position, room_id, supervisor_id, periods) VALUES ($1, $2, $3, $4, $5)`,
			a.Date, i, e.RoomID, e.SupervisorID, periods); err != nil {
			return err
		}
	}
	return tx.Commit()
}
