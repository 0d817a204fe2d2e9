// Package supervision implements the operating room supervision rule engine: rule
// lookup, limit resolution, sector compatibility, assignment validation and catalog
// conflict detection. Everything in this package is a pure query over an immutable
// snapshot; nothing blocks or performs I/O.
package supervision

import (
	"errors"
	"fmt"
	"sort"

	"orplanning/internal/domain"
)

// Catalog is an immutable, validated set of supervision rules.
type Catalog struct {
	rules []*domain.SupervisionRule
}

// NewCatalog validates and normalizes rules and returns a catalog holding private
// copies of them. Every malformed rule is reported; the returned error joins one
// *domain.InvalidRuleDefinitionError per offending rule.
func NewCatalog(rules []*domain.SupervisionRule) (*Catalog, error) {
	var errs []error
	seen := make(map[string]struct{}, len(rules))
	out := make([]*domain.SupervisionRule, 0, len(rules))
	for i, r := range rules {
		if r == nil {
			errs = append(errs, &domain.InvalidRuleDefinitionError{Field: fmt.Sprintf("rules[%d]", i), Reason: "is nil"})
			continue
		}
		c := r.Clone()
		c.Normalize()
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				errs = append(errs, &domain.InvalidRuleDefinitionError{RuleID: c.ID, Field: "id", Reason: "is duplicated"})
				continue
			}
			seen[c.ID] = struct{}{}
		}
		out = append(out, c)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Catalog{rules: out}, nil
}

// Rules returns all rules in insertion order.
func (c *Catalog) Rules() []*domain.SupervisionRule {
	out := make([]*domain.SupervisionRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// ActiveRules returns the active rules in insertion order.
func (c *Catalog) ActiveRules() []*domain.SupervisionRule {
	out := []*domain.SupervisionRule{}
	for _, r := range c.rules {
		if r.Active {
			out = append(out, r)
		}
	}
	return out
}

// RulesByKind returns every rule of the given kind in insertion order.
func (c *Catalog) RulesByKind(kind domain.RuleKind) []*domain.SupervisionRule {
	out := []*domain.SupervisionRule{}
	for _, r := range c.rules {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// RulesForSector returns the active rules governing sectorID: every general rule,
// sector-specific rules targeting it, and exceptions that are global or target it.
// The result is ordered by descending priority; ties keep insertion order.
func (c *Catalog) RulesForSector(sectorID string) []*domain.SupervisionRule {
	out := []*domain.SupervisionRule{}
	for _, r := range c.rules {
		if governs(r, sectorID) {
			out = append(out, r)
		}
	}
	byPriority(out)
	return out
}

// GeneralRule returns the highest-priority active general rule.
func (c *Catalog) GeneralRule() (*domain.SupervisionRule, bool) {
	return c.top(func(r *domain.SupervisionRule) bool { return r.Kind == domain.RuleGeneral })
}

// SectorRule returns the highest-priority active sector-specific rule targeting sectorID.
func (c *Catalog) SectorRule(sectorID string) (*domain.SupervisionRule, bool) {
	return c.top(func(r *domain.SupervisionRule) bool {
		return r.Kind == domain.RuleSectorSpecific && r.SectorID == sectorID
	})
}

// top returns the first active rule with the highest priority among those matching.
func (c *Catalog) top(match func(*domain.SupervisionRule) bool) (*domain.SupervisionRule, bool) {
	var best *domain.SupervisionRule
	for _, r := range c.rules {
		if !r.Active || !match(r) {
			continue
		}
		if best == nil || r.Priority > best.Priority {
			best = r
		}
	}
	return best, best != nil
}

func governs(r *domain.SupervisionRule, sectorID string) bool {
	if !r.Active {
		return false
	}
	switch r.Kind {
	case domain.RuleGeneral:
		return true
	case domain.RuleSectorSpecific:
		return r.SectorID == sectorID
	case domain.RuleException:
		return r.SectorID == "" || r.SectorID == sectorID
	}
	return false
}

func byPriority(rules []*domain.SupervisionRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
}
