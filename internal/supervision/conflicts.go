package supervision

import (
	"fmt"

	"orplanning/internal/domain"
)

// DetectCatalogConflicts compares every unordered pair of active rules and reports
// the pairs that contradict each other. It never consults an assignment.
func DetectCatalogConflicts(c *Catalog) []domain.CatalogConflict {
	active := c.ActiveRules()
	conflicts := []domain.CatalogConflict{}
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			conflicts = append(conflicts, pairConflicts(active[i], active[j])...)
		}
	}
	return conflicts
}

func pairConflicts(a, b *domain.SupervisionRule) []domain.CatalogConflict {
	var out []domain.CatalogConflict
	conflict := func(kind domain.ConflictKind, sev domain.ConflictSeverity, format string, args ...any) {
		out = append(out, domain.CatalogConflict{
			RuleAID:     a.ID,
			RuleBID:     b.ID,
			Kind:        kind,
			Severity:    sev,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if a.Kind == b.Kind && a.SectorID == b.SectorID &&
		a.Conditions.MaxRoomsPerSupervisor != b.Conditions.MaxRoomsPerSupervisor {
		conflict(domain.ConflictRoomCount, domain.SeverityMedium,
			"rules %q and %q set different room limits (%d and %d)%s",
			a.Name, b.Name, a.Conditions.MaxRoomsPerSupervisor, b.Conditions.MaxRoomsPerSupervisor, forSector(a.SectorID))
	}

	if a.SectorID == "" || a.SectorID != b.SectorID {
		return out
	}

	if a.Conditions.Forbids(b.SectorID) || b.Conditions.Forbids(a.SectorID) {
		conflict(domain.ConflictIncompatibility, domain.SeverityHigh,
			"rules %q and %q declare sector %s incompatible with itself", a.Name, b.Name, a.SectorID)
	} else if s, ok := allowedAndForbidden(a, b); ok {
		conflict(domain.ConflictIncompatibility, domain.SeverityHigh,
			"rules %q and %q both allow and forbid co-supervision with sector %s%s", a.Name, b.Name, s, forSector(a.SectorID))
	}

	if a.Conditions.InternalSupervisionOnly != b.Conditions.InternalSupervisionOnly {
		conflict(domain.ConflictInternalSupervision, domain.SeverityHigh,
			"rules %q and %q disagree on internal-only supervision%s", a.Name, b.Name, forSector(a.SectorID))
	}
	return out
}

// allowedAndForbidden returns the first sector one rule allows while the other forbids.
func allowedAndForbidden(a, b *domain.SupervisionRule) (string, bool) {
	for _, s := range a.Conditions.AllowedExternalSectors {
		if b.Conditions.Forbids(s) {
			return s, true
		}
	}
	for _, s := range b.Conditions.AllowedExternalSectors {
		if a.Conditions.Forbids(s) {
			return s, true
		}
	}
	return "", false
}

func forSector(id string) string {
	if id == "" {
		return ""
	}
	return " for sector " + id
}
