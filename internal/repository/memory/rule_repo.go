// Package memory holds in-process repositories used for local runs, snapshot
// files and tests. Every read returns copies so callers never share state with
// the store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"orplanning/internal/domain"

	"github.com/google/uuid"
)

type ruleRepository struct {
	mu    sync.RWMutex
	rules []*domain.SupervisionRule
}

// NewRuleRepository returns a domain.RuleRepository seeded with rules. Seed rules
// without an ID are given one.
func NewRuleRepository(seed []*domain.SupervisionRule) domain.RuleRepository {
	r := &ruleRepository{rules: make([]*domain.SupervisionRule, 0, len(seed))}
	for _, rule := range seed {
		if rule == nil {
			continue
		}
		c := rule.Clone()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		r.rules = append(r.rules, c)
	}
	return r
}

func (r *ruleRepository) indexOf(id string) int {
	for i, rule := range r.rules {
		if rule.ID == id {
			return i
		}
	}
	return -1
}

func (r *ruleRepository) nameTaken(name, exceptID string) bool {
	for _, rule := range r.rules {
		if rule.Name == name && rule.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ruleRepository) Create(_ context.Context, rule *domain.SupervisionRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rule.ID != "" && r.indexOf(rule.ID) >= 0 {
		return fmt.Errorf("rule id already exists: %s: %w", rule.ID, domain.ErrInvalidInput)
	}
	if r.nameTaken(rule.Name, "") {
		return fmt.Errorf("rule name already exists: %s: %w", rule.Name, domain.ErrInvalidInput)
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	r.rules = append(r.rules, rule.Clone())
	return nil
}

func (r *ruleRepository) GetByID(_ context.Context, id string) (*domain.SupervisionRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return r.rules[i].Clone(), nil
}

func (r *ruleRepository) List(_ context.Context) ([]*domain.SupervisionRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneRules(r.rules), nil
}

func (r *ruleRepository) ListPaged(_ context.Context, params domain.PaginationParams) ([]*domain.SupervisionRule, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.rules)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := total
	if params.PageSize > 0 && start+params.PageSize < total {
		end = start + params.PageSize
	}
	return cloneRules(r.rules[start:end]), total, nil
}

func (r *ruleRepository) Update(_ context.Context, rule *domain.SupervisionRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(rule.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if r.nameTaken(rule.Name, rule.ID) {
		return fmt.Errorf("rule name already exists: %s: %w", rule.Name, domain.ErrInvalidInput)
	}
	updated := rule.Clone()
	updated.CreatedAt = r.rules[i].CreatedAt
	r.rules[i] = updated
	return nil
}

func (r *ruleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.rules = append(r.rules[:i], r.rules[i+1:]...)
	return nil
}

func cloneRules(rules []*domain.SupervisionRule) []*domain.SupervisionRule {
	out := make([]*domain.SupervisionRule, 0, len(rules))
	for _, rule := range rules {
		out = append(out, rule.Clone())
	}
	return out
}
