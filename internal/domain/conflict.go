package domain

// ConflictKind tags a contradiction between two active rules.
type ConflictKind string

const (
	ConflictRoomCount           ConflictKind = "room_count_conflict"
	ConflictIncompatibility     ConflictKind = "incompatibility_conflict"
	ConflictInternalSupervision ConflictKind = "internal_supervision_conflict"
)

// ConflictSeverity grades a catalog conflict.
type ConflictSeverity string

const (
	SeverityLow    ConflictSeverity = "low"
	SeverityMedium ConflictSeverity = "medium"
	SeverityHigh   ConflictSeverity = "high"
)

// CatalogConflict is a pair of active rules that contradict each other, independent
// of any assignment. RuleAID precedes RuleBID in catalog order.
// swagger:model CatalogConflict
type CatalogConflict struct {
	RuleAID     string           `json:"rule_a_id"`
	RuleBID     string           `json:"rule_b_id"`
	Kind        ConflictKind     `json:"kind"`
	Severity    ConflictSeverity `json:"severity"`
	Description string           `json:"description"`
}
