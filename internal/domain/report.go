package domain

import "context"

// ViolationKind tags a blocking finding of the assignment validator.
type ViolationKind string

const (
	ViolationMaxRoomsExceeded    ViolationKind = "max_rooms_exceeded"
	ViolationIncompatibleSectors ViolationKind = "incompatible_sectors"
	ViolationContiguity          ViolationKind = "contiguity_violation"
	ViolationUnknownReference    ViolationKind = "unknown_reference"
	ViolationMissingSupervisor   ViolationKind = "missing_supervisor"
	ViolationRoomDoubleBooked    ViolationKind = "room_double_booked"
	ViolationPeriodOverlap       ViolationKind = "period_overlap"
)

// WarningKind tags a non-blocking finding.
type WarningKind string

const (
	WarningHighLoad           WarningKind = "high_load"
	WarningExceptionApplied   WarningKind = "exception_applied"
	WarningMissingPeriod      WarningKind = "missing_period"
	WarningInactiveRoom       WarningKind = "inactive_room"
	WarningRoomUnavailable    WarningKind = "room_unavailable"
	WarningDanglingRuleSector WarningKind = "dangling_rule_sector"
)

// Violation is a blocking finding about one supervisor (or one entry).
// swagger:model Violation
type Violation struct {
	Kind         ViolationKind `json:"kind"`
	Message      string        `json:"message"`
	SupervisorID string        `json:"supervisor_id,omitempty"`
	RoomIDs      []string      `json:"room_ids"`
}

// Warning is a non-blocking finding.
// swagger:model Warning
type Warning struct {
	Kind         WarningKind `json:"kind"`
	Message      string      `json:"message"`
	SupervisorID string      `json:"supervisor_id,omitempty"`
	RoomIDs      []string    `json:"room_ids"`
}

// ValidationReport is the outcome of validating an assignment. Violations keep the
// order in which they were found.
// swagger:model ValidationReport
type ValidationReport struct {
	Date       string      `json:"date"`
	Violations []Violation `json:"violations"`
	Warnings   []Warning   `json:"warnings"`
}

// NewValidationReport returns an empty report with non-nil slices.
func NewValidationReport(date string) *ValidationReport {
	return &ValidationReport{Date: date, Violations: []Violation{}, Warnings: []Warning{}}
}

// Valid reports whether the report has no violations. Warnings do not block.
func (r *ValidationReport) Valid() bool {
	return len(r.Violations) == 0
}

// AddViolation appends a violation.
func (r *ValidationReport) AddViolation(v Violation) {
	if v.RoomIDs == nil {
		v.RoomIDs = []string{}
	}
	r.Violations = append(r.Violations, v)
}

// AddWarning appends a warning.
func (r *ValidationReport) AddWarning(w Warning) {
	if w.RoomIDs == nil {
		w.RoomIDs = []string{}
	}
	r.Warnings = append(r.Warnings, w)
}

// ViolationsOf returns the violations of the given kind.
func (r *ValidationReport) ViolationsOf(kind ViolationKind) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// WarningsOf returns the warnings of the given kind.
func (r *ValidationReport) WarningsOf(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Resolution is the effective room limit for a set of sectors together with the rules
// that produced it.
// swagger:model Resolution
type Resolution struct {
	SectorIDs         []string `json:"sector_ids"`
	MaxRooms          int      `json:"max_rooms"`
	NormalMax         int      `json:"normal_max"`
	BaseRuleID        string   `json:"base_rule_id,omitempty"`
	TighteningRuleIDs []string `json:"tightening_rule_ids"`
	ExceptionRuleID   string   `json:"exception_rule_id,omitempty"`
	InternalOnly      bool     `json:"internal_only"`
}

// SupervisionService validates plannings against the rule catalog.
type SupervisionService interface {
	ValidateAssignment(ctx context.Context, assignment *Assignment) (*ValidationReport, error)
	ValidatePlanningForDate(ctx context.Context, date string) (*ValidationReport, error)
	ResolveMaxRooms(ctx context.Context, sectorIDs []string) (*Resolution, error)
	SectorsCompatible(ctx context.Context, a, b string) (bool, error)
	DetectConflicts(ctx context.Context) ([]CatalogConflict, error)
}
