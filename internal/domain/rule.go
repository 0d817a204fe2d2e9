package domain

import (
	"context"
	"strings"
	"time"
)

// RuleKind selects how a supervision rule participates in resolution.
type RuleKind string

const (
	// RuleGeneral sets the base limits for every sector.
	RuleGeneral RuleKind = "general"
	// RuleSectorSpecific tightens the limits of one sector.
	RuleSectorSpecific RuleKind = "sector_specific"
	// RuleException is a deliberate override that may raise the room limit.
	RuleException RuleKind = "exception"
)

// Valid reports whether k is one of the known rule kinds.
func (k RuleKind) Valid() bool {
	switch k {
	case RuleGeneral, RuleSectorSpecific, RuleException:
		return true
	}
	return false
}

// DefaultMaxRoomsPerSupervisor applies when the catalog holds no active general rule.
const DefaultMaxRoomsPerSupervisor = 2

// RuleConditions is the condition bundle of a supervision rule.
// swagger:model RuleConditions
type RuleConditions struct {
	MaxRoomsPerSupervisor   int      `json:"max_rooms_per_supervisor" yaml:"max_rooms_per_supervisor"`
	MaxRoomsException       *int     `json:"max_rooms_exception,omitempty" yaml:"max_rooms_exception,omitempty"`
	InternalSupervisionOnly bool     `json:"internal_supervision_only,omitempty" yaml:"internal_supervision_only,omitempty"`
	ContiguousRoomsRequired bool     `json:"contiguous_rooms_required,omitempty" yaml:"contiguous_rooms_required,omitempty"`
	RequiredSkills          []string `json:"required_skills,omitempty" yaml:"required_skills,omitempty"`
	AllowedExternalSectors  []string `json:"allowed_external_sectors,omitempty" yaml:"allowed_external_sectors,omitempty"`
	IncompatibleSectors     []string `json:"incompatible_sectors,omitempty" yaml:"incompatible_sectors,omitempty"`
}

// ExceptionCeiling is the room limit an exception rule grants when it applies.
func (c RuleConditions) ExceptionCeiling() int {
	if c.MaxRoomsException != nil {
		return *c.MaxRoomsException
	}
	return c.MaxRoomsPerSupervisor
}

// Allows reports whether sectorID is listed in AllowedExternalSectors.
func (c RuleConditions) Allows(sectorID string) bool {
	return containsString(c.AllowedExternalSectors, sectorID)
}

// Forbids reports whether sectorID is listed in IncompatibleSectors.
func (c RuleConditions) Forbids(sectorID string) bool {
	return containsString(c.IncompatibleSectors, sectorID)
}

// SupervisionRule constrains how many rooms, and which sectors, one supervisor may cover.
// swagger:model SupervisionRule
type SupervisionRule struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        RuleKind       `json:"kind" yaml:"kind"`
	SectorID    string         `json:"sector_id,omitempty" yaml:"sector_id,omitempty"`
	Active      bool           `json:"active" yaml:"active"`
	Priority    int            `json:"priority" yaml:"priority"`
	Conditions  RuleConditions `json:"conditions" yaml:"conditions"`
	CreatedAt   time.Time      `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time      `json:"updated_at" yaml:"-"`
}

// Validate checks the rule for ingestion. It returns an *InvalidRuleDefinitionError
// naming the first offending field, or nil.
func (r *SupervisionRule) Validate() error {
	invalid := func(field, reason string) error {
		return &InvalidRuleDefinitionError{RuleID: r.ID, Field: field, Reason: reason}
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name", "is required")
	}
	if !r.Kind.Valid() {
		return invalid("kind", "must be one of general, sector_specific, exception")
	}
	if r.Kind == RuleSectorSpecific && strings.TrimSpace(r.SectorID) == "" {
		return invalid("sector_id", "is required for sector_specific rules")
	}
	if r.Conditions.MaxRoomsPerSupervisor < 1 {
		return invalid("conditions.max_rooms_per_supervisor", "must be at least 1")
	}
	if r.Conditions.MaxRoomsException != nil && *r.Conditions.MaxRoomsException < 1 {
		return invalid("conditions.max_rooms_exception", "must be at least 1")
	}
	return nil
}

// Normalize clears fields the rule kind ignores. A general rule never carries a target sector.
func (r *SupervisionRule) Normalize() {
	r.SectorID = strings.TrimSpace(r.SectorID)
	if r.Kind == RuleGeneral {
		r.SectorID = ""
	}
}

// Clone returns a deep copy so callers can hand out rules without sharing slices.
func (r *SupervisionRule) Clone() *SupervisionRule {
	c := *r
	if r.Conditions.MaxRoomsException != nil {
		v := *r.Conditions.MaxRoomsException
		c.Conditions.MaxRoomsException = &v
	}
	c.Conditions.RequiredSkills = cloneStrings(r.Conditions.RequiredSkills)
	c.Conditions.AllowedExternalSectors = cloneStrings(r.Conditions.AllowedExternalSectors)
	c.Conditions.IncompatibleSectors = cloneStrings(r.Conditions.IncompatibleSectors)
	return &c
}

// RuleRepository defines storage for supervision rules.
// List returns rules in insertion order.
type RuleRepository interface {
	Create(ctx context.Context, rule *SupervisionRule) error
	GetByID(ctx context.Context, id string) (*SupervisionRule, error)
	List(ctx context.Context) ([]*SupervisionRule, error)
	ListPaged(ctx context.Context, params PaginationParams) ([]*SupervisionRule, int, error)
	Update(ctx context.Context, rule *SupervisionRule) error
	Delete(ctx context.Context, id string) error
}

// RuleService defines the business logic for managing the rule catalog.
type RuleService interface {
	CreateRule(ctx context.Context, rule *SupervisionRule) error
	GetRule(ctx context.Context, id string) (*SupervisionRule, error)
	ListRules(ctx context.Context, params PaginationParams) ([]*SupervisionRule, int, error)
	UpdateRule(ctx context.Context, rule *SupervisionRule) (*SupervisionRule, error)
	DeleteRule(ctx context.Context, id string) error
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
