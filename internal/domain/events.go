package domain

import "context"

// Event names published after supervision checks.
const (
	EventPlanningValidated = "planning.validated"
	EventCatalogConflicts  = "catalog.conflicts"
)

// PlanningValidatedEvent is the payload of EventPlanningValidated.
type PlanningValidatedEvent struct {
	Date       string         `json:"date"`
	Valid      bool           `json:"valid"`
	Violations map[string]int `json:"violations"`
	Warnings   int            `json:"warnings"`
}

// CatalogConflictsEvent is the payload of EventCatalogConflicts.
type CatalogConflictsEvent struct {
	Count     int               `json:"count"`
	Conflicts []CatalogConflict `json:"conflicts"`
}

// EventPublisher broadcasts domain events to other services. Delivery is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// SupervisionRecorder records supervision outcomes (metrics port).
type SupervisionRecorder interface {
	ObserveValidation(report *ValidationReport)
	ObserveConflicts(conflicts []CatalogConflict)
}
