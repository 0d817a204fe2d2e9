package memory

import "orplanning/internal/domain"

// Repositories bundles the in-memory stores built from one snapshot.
type Repositories struct {
	Rules       domain.RuleRepository
	Sectors     domain.SectorRepository
	Assignments domain.AssignmentRepository
}

// FromSnapshot seeds in-memory repositories with the snapshot content. A nil
// snapshot yields empty stores.
func FromSnapshot(snap *domain.Snapshot) Repositories {
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	return Repositories{
		Rules:       NewRuleRepository(snap.Rules),
		Sectors:     NewSectorRepository(snap.Sectors, snap.Rooms),
		Assignments: NewAssignmentRepository(snap.Assignments),
	}
}
