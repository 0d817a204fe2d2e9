package memory

import (
	"context"
	"sync"

	"orplanning/internal/domain"
)

type assignmentRepository struct {
	mu     sync.RWMutex
	byDate map[string]*domain.Assignment
}

// NewAssignmentRepository returns a domain.AssignmentRepository seeded with plannings.
// A later seed for the same date replaces an earlier one.
func NewAssignmentRepository(seed []*domain.Assignment) domain.AssignmentRepository {
	r := &assignmentRepository{byDate: make(map[string]*domain.Assignment, len(seed))}
	for _, a := range seed {
		if a != nil {
			r.byDate[a.Date] = cloneAssignment(a)
		}
	}
	return r
}

func (r *assignmentRepository) GetByDate(_ context.Context, date string) (*domain.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byDate[date]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAssignment(a), nil
}

func (r *assignmentRepository) Save(_ context.Context, a *domain.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byDate[a.Date] = cloneAssignment(a)
	return nil
}

func cloneAssignment(a *domain.Assignment) *domain.Assignment {
	c := &domain.Assignment{Date: a.Date, Entries: make([]domain.AssignmentEntry, len(a.Entries))}
	for i, e := range a.Entries {
		e.Periods = append([]domain.Period(nil), e.Periods...)
		c.Entries[i] = e
	}
	return c
}
