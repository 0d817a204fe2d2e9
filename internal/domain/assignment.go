package domain

import (
	"context"
	"time"
)

// Period is a supervision time slot within a day, as "HH:MM" strings.
type Period struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Overlaps reports whether p and o share any instant. "HH:MM" strings compare lexically.
func (p Period) Overlaps(o Period) bool {
	return p.Start < o.End && p.End > o.Start
}

// AssignmentEntry binds one room to its supervising anesthetist for the day.
type AssignmentEntry struct {
	RoomID       string   `json:"room_id" yaml:"room_id"`
	SupervisorID string   `json:"supervisor_id" yaml:"supervisor_id"`
	Periods      []Period `json:"periods,omitempty" yaml:"periods,omitempty"`
}

// Assignment is a day's room to supervisor planning. Each room maps to at most one
// supervisor per time slot.
// swagger:model Assignment
type Assignment struct {
	Date    string            `json:"date" yaml:"date"`
	Entries []AssignmentEntry `json:"entries" yaml:"entries"`
}

// DateLayout is the layout of Assignment.Date.
const DateLayout = "2006-01-02"

// ParseDate parses an assignment date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// AssignmentRepository stores day plannings.
type AssignmentRepository interface {
	GetByDate(ctx context.Context, date string) (*Assignment, error)
	Save(ctx context.Context, assignment *Assignment) error
}
