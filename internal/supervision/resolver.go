package supervision

import (
	"orplanning/internal/domain"
)

// Resolver computes effective supervision limits for a set of sectors.
type Resolver struct {
	catalog *Catalog
}

// NewResolver returns a Resolver reading from catalog.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// MaxRoomsForSupervisor returns the maximum number of rooms a supervisor touching
// sectorIDs may cover.
func (r *Resolver) MaxRoomsForSupervisor(sectorIDs []string) int {
	return r.Resolve(sectorIDs).MaxRooms
}

// Resolve applies, in order: the general base limit (default 2), tightening by the
// top sector-specific rule of each sector, then the ceiling of the top applicable
// exception, which may only raise the result.
func (r *Resolver) Resolve(sectorIDs []string) domain.Resolution {
	sectors := dedupe(sectorIDs)
	res := domain.Resolution{
		SectorIDs:         sectors,
		MaxRooms:          domain.DefaultMaxRoomsPerSupervisor,
		TighteningRuleIDs: []string{},
	}

	running := domain.DefaultMaxRoomsPerSupervisor
	if base, ok := r.catalog.GeneralRule(); ok {
		running = base.Conditions.MaxRoomsPerSupervisor
		res.BaseRuleID = base.ID
		res.InternalOnly = base.Conditions.InternalSupervisionOnly
	}

	sectorInternal := false
	for _, s := range sectors {
		rule, ok := r.catalog.SectorRule(s)
		if !ok {
			continue
		}
		if rule.Conditions.InternalSupervisionOnly {
			sectorInternal = true
		}
		if rule.Conditions.MaxRoomsPerSupervisor < running {
			running = rule.Conditions.MaxRoomsPerSupervisor
			res.TighteningRuleIDs = append(res.TighteningRuleIDs, rule.ID)
		}
	}
	res.InternalOnly = res.InternalOnly || sectorInternal
	res.NormalMax = running
	res.MaxRooms = running

	if exc, ok := r.applicableException(sectors); ok {
		res.ExceptionRuleID = exc.ID
		if ceiling := exc.Conditions.ExceptionCeiling(); ceiling > running {
			res.MaxRooms = ceiling
		}
	}
	return res
}

// InternalSupervisionOnly reports whether a supervisor touching sectorIDs must keep
// supervision internal to one sector.
func (r *Resolver) InternalSupervisionOnly(sectorIDs []string) bool {
	return r.Resolve(sectorIDs).InternalOnly
}

// applicableException returns the highest-priority active exception that is global
// or targets one of sectors.
func (r *Resolver) applicableException(sectors []string) (*domain.SupervisionRule, bool) {
	in := make(map[string]struct{}, len(sectors))
	for _, s := range sectors {
		in[s] = struct{}{}
	}
	return r.catalog.top(func(rule *domain.SupervisionRule) bool {
		if rule.Kind != domain.RuleException {
			return false
		}
		if rule.SectorID == "" {
			return true
		}
		_, ok := in[rule.SectorID]
		return ok
	})
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
