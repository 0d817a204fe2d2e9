package supervision

import (
	"fmt"
	"strings"

	"orplanning/internal/domain"
)

// CompatibilityMode selects whether sector compatibility is checked from one side or both.
type CompatibilityMode string

const (
	// Asymmetric only inspects the rules governing the first sector of the pair.
	Asymmetric CompatibilityMode = "asymmetric"
	// Symmetric requires the pair to be compatible from both sides.
	Symmetric CompatibilityMode = "symmetric"
)

// ParseCompatibilityMode parses a mode name; the empty string means Asymmetric.
func ParseCompatibilityMode(s string) (CompatibilityMode, error) {
	switch CompatibilityMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asymmetric:
		return Asymmetric, nil
	case Symmetric:
		return Symmetric, nil
	}
	return "", fmt.Errorf("unknown compatibility mode %q", s)
}

// CompatibilityChecker decides whether one supervisor may cover rooms in two sectors.
type CompatibilityChecker struct {
	catalog *Catalog
	mode    CompatibilityMode
}

// NewCompatibilityChecker returns a checker over catalog using mode.
func NewCompatibilityChecker(catalog *Catalog, mode CompatibilityMode) *CompatibilityChecker {
	if mode == "" {
		mode = Asymmetric
	}
	return &CompatibilityChecker{catalog: catalog, mode: mode}
}

// SectorsCompatible reports whether sectors a and b may be co-supervised.
func (c *CompatibilityChecker) SectorsCompatible(a, b string) bool {
	if a == b {
		return true
	}
	if c.mode == Symmetric {
		return c.oneWay(a, b) && c.oneWay(b, a)
	}
	return c.oneWay(a, b)
}

// oneWay evaluates the pair from the point of view of the rules governing a.
// An explicit incompatibility always wins; an explicit allowance lifts both the
// internal-only restriction and the general default.
func (c *CompatibilityChecker) oneWay(a, b string) bool {
	governing := c.catalog.RulesForSector(a)
	for _, r := range governing {
		if r.Conditions.Forbids(b) {
			return false
		}
	}
	for _, r := range governing {
		if r.Conditions.Allows(b) {
			return true
		}
	}
	for _, r := range governing {
		if r.Kind == domain.RuleSectorSpecific && r.Conditions.InternalSupervisionOnly {
			return false
		}
	}
	if base, ok := c.catalog.GeneralRule(); ok {
		return !base.Conditions.InternalSupervisionOnly
	}
	return true
}
