package supervision

import (
	"fmt"
	"strings"

	"orplanning/internal/domain"
)

// DefaultHighLoadThreshold is the room count from which a HighLoad warning is raised.
const DefaultHighLoadThreshold = 3

// Validator checks a day's room to supervisor assignment against a catalog.
type Validator struct {
	catalog  *Catalog
	resolver *Resolver
	checker  *CompatibilityChecker
	rooms    map[string]*domain.Room
	sectors  map[string]*domain.Sector
	highLoad int
	mode     CompatibilityMode
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithCompatibilityMode selects symmetric or asymmetric sector compatibility.
func WithCompatibilityMode(mode CompatibilityMode) ValidatorOption {
	return func(v *Validator) { v.mode = mode }
}

// WithHighLoadThreshold sets the room count that triggers a HighLoad warning.
func WithHighLoadThreshold(n int) ValidatorOption {
	return func(v *Validator) {
		if n > 0 {
			v.highLoad = n
		}
	}
}

// NewValidator returns a Validator over a snapshot of the catalog, sectors and rooms.
func NewValidator(catalog *Catalog, sectors []*domain.Sector, rooms []*domain.Room, opts ...ValidatorOption) *Validator {
	v := &Validator{
		catalog:  catalog,
		resolver: NewResolver(catalog),
		rooms:    make(map[string]*domain.Room, len(rooms)),
		sectors:  make(map[string]*domain.Sector, len(sectors)),
		highLoad: DefaultHighLoadThreshold,
		mode:     Asymmetric,
	}
	for _, r := range rooms {
		if r != nil {
			v.rooms[r.ID] = r
		}
	}
	for _, s := range sectors {
		if s != nil {
			v.sectors[s.ID] = s
		}
	}
	for _, opt := range opts {
		opt(v)
	}
	v.checker = NewCompatibilityChecker(catalog, v.mode)
	return v
}

// supervision is the derived per-supervisor view of an assignment.
type supervision struct {
	id      string
	rooms   []*domain.Room
	roomIDs []string
	sectors []string
}

// Validate runs every check for every supervisor and returns the complete report.
// It never mutates the catalog, the snapshot or the assignment.
func (v *Validator) Validate(a *domain.Assignment) *domain.ValidationReport {
	if a == nil {
		return domain.NewValidationReport("")
	}
	report := domain.NewValidationReport(a.Date)

	v.checkRuleSectors(report)
	groups := v.checkEntries(a, report)
	v.checkDoubleBooking(a, report)

	for _, g := range groups {
		v.checkMaxRooms(g, report)
		v.checkCompatibility(g, report)
		v.checkContiguity(g, report)
		if len(g.roomIDs) >= v.highLoad {
			report.AddWarning(domain.Warning{
				Kind:         domain.WarningHighLoad,
				Message:      fmt.Sprintf("supervisor %s covers %d rooms", g.id, len(g.roomIDs)),
				SupervisorID: g.id,
				RoomIDs:      cloneIDs(g.roomIDs),
			})
		}
	}
	return report
}

// checkRuleSectors warns about active rules targeting a sector absent from the snapshot.
func (v *Validator) checkRuleSectors(report *domain.ValidationReport) {
	for _, r := range v.catalog.ActiveRules() {
		if r.SectorID == "" {
			continue
		}
		if _, ok := v.sectors[r.SectorID]; ok {
			continue
		}
		report.AddWarning(domain.Warning{
			Kind:    domain.WarningDanglingRuleSector,
			Message: fmt.Sprintf("rule %q targets unknown sector %s", r.Name, r.SectorID),
		})
	}
}

// checkEntries validates each entry on its own and groups the valid ones by
// supervisor, in order of first appearance.
func (v *Validator) checkEntries(a *domain.Assignment, report *domain.ValidationReport) []*supervision {
	var groups []*supervision
	bySupervisor := make(map[string]*supervision)

	for _, e := range a.Entries {
		if strings.TrimSpace(e.SupervisorID) == "" {
			report.AddViolation(domain.Violation{
				Kind:    domain.ViolationMissingSupervisor,
				Message: fmt.Sprintf("room %s has no supervisor assigned", e.RoomID),
				RoomIDs: []string{e.RoomID},
			})
			continue
		}
		room, ok := v.rooms[e.RoomID]
		if !ok {
			report.AddViolation(domain.Violation{
				Kind:         domain.ViolationUnknownReference,
				Message:      fmt.Sprintf("room %s does not exist", e.RoomID),
				SupervisorID: e.SupervisorID,
				RoomIDs:      []string{e.RoomID},
			})
			continue
		}
		if _, ok := v.sectors[room.SectorID]; !ok {
			report.AddViolation(domain.Violation{
				Kind:         domain.ViolationUnknownReference,
				Message:      fmt.Sprintf("sector %s of room %s does not exist", room.SectorID, room.Number),
				SupervisorID: e.SupervisorID,
				RoomIDs:      []string{room.ID},
			})
		}
		v.checkRoomState(e, room, report)
		v.checkPeriods(e, report)

		g, ok := bySupervisor[e.SupervisorID]
		if !ok {
			g = &supervision{id: e.SupervisorID}
			bySupervisor[e.SupervisorID] = g
			groups = append(groups, g)
		}
		if containsID(g.roomIDs, room.ID) {
			continue
		}
		g.rooms = append(g.rooms, room)
		g.roomIDs = append(g.roomIDs, room.ID)
		if !containsID(g.sectors, room.SectorID) {
			g.sectors = append(g.sectors, room.SectorID)
		}
	}
	return groups
}

func (v *Validator) checkRoomState(e domain.AssignmentEntry, room *domain.Room, report *domain.ValidationReport) {
	if !room.Active {
		report.AddWarning(domain.Warning{
			Kind:         domain.WarningInactiveRoom,
			Message:      fmt.Sprintf("room %s is inactive", room.Number),
			SupervisorID: e.SupervisorID,
			RoomIDs:      []string{room.ID},
		})
	}
	if room.Status == domain.RoomMaintenance || room.Status == domain.RoomOutOfService {
		report.AddWarning(domain.Warning{
			Kind:         domain.WarningRoomUnavailable,
			Message:      fmt.Sprintf("room %s is %s", room.Number, room.Status),
			SupervisorID: e.SupervisorID,
			RoomIDs:      []string{room.ID},
		})
	}
}

func (v *Validator) checkPeriods(e domain.AssignmentEntry, report *domain.ValidationReport) {
	if len(e.Periods) == 0 {
		report.AddWarning(domain.Warning{
			Kind:         domain.WarningMissingPeriod,
			Message:      fmt.Sprintf("supervisor %s has no period defined for room %s", e.SupervisorID, e.RoomID),
			SupervisorID: e.SupervisorID,
			RoomIDs:      []string{e.RoomID},
		})
		return
	}
	for i := 0; i < len(e.Periods); i++ {
		for j := i + 1; j < len(e.Periods); j++ {
			if e.Periods[i].Overlaps(e.Periods[j]) {
				report.AddViolation(domain.Violation{
					Kind: domain.ViolationPeriodOverlap,
					Message: fmt.Sprintf("supervisor %s has overlapping periods %s-%s and %s-%s in room %s",
						e.SupervisorID, e.Periods[i].Start, e.Periods[i].End, e.Periods[j].Start, e.Periods[j].End, e.RoomID),
					SupervisorID: e.SupervisorID,
					RoomIDs:      []string{e.RoomID},
				})
				return
			}
		}
	}
}

// checkDoubleBooking flags rooms held by two supervisors in the same time slot.
// Entries without periods cover the whole day.
func (v *Validator) checkDoubleBooking(a *domain.Assignment, report *domain.ValidationReport) {
	byRoom := make(map[string][]domain.AssignmentEntry)
	var order []string
	for _, e := range a.Entries {
		if e.SupervisorID == "" {
			continue
		}
		if _, ok := byRoom[e.RoomID]; !ok {
			order = append(order, e.RoomID)
		}
		byRoom[e.RoomID] = append(byRoom[e.RoomID], e)
	}
	for _, roomID := range order {
		entries := byRoom[roomID]
	scan:
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if entries[i].SupervisorID == entries[j].SupervisorID || !slotsOverlap(entries[i].Periods, entries[j].Periods) {
					continue
				}
				report.AddViolation(domain.Violation{
					Kind:         domain.ViolationRoomDoubleBooked,
					Message:      fmt.Sprintf("room %s is supervised by both %s and %s in the same period", roomID, entries[i].SupervisorID, entries[j].SupervisorID),
					SupervisorID: entries[j].SupervisorID,
					RoomIDs:      []string{roomID},
				})
				break scan
			}
		}
	}
}

func slotsOverlap(a, b []domain.Period) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for _, p := range a {
		for _, q := range b {
			if p.Overlaps(q) {
				return true
			}
		}
	}
	return false
}

func (v *Validator) checkMaxRooms(g *supervision, report *domain.ValidationReport) {
	res := v.resolver.Resolve(g.sectors)
	n := len(g.roomIDs)
	if n > res.MaxRooms {
		report.AddViolation(domain.Violation{
			Kind:         domain.ViolationMaxRoomsExceeded,
			Message:      fmt.Sprintf("supervisor %s is assigned %d rooms, maximum is %d", g.id, n, res.MaxRooms),
			SupervisorID: g.id,
			RoomIDs:      cloneIDs(g.roomIDs),
		})
		return
	}
	if n > res.NormalMax {
		report.AddWarning(domain.Warning{
			Kind: domain.WarningExceptionApplied,
			Message: fmt.Sprintf("supervisor %s is assigned %d rooms, above the normal maximum %d but within exception %s (%d)",
				g.id, n, res.NormalMax, res.ExceptionRuleID, res.MaxRooms),
			SupervisorID: g.id,
			RoomIDs:      cloneIDs(g.roomIDs),
		})
	}
}

// checkCompatibility reports at most one incompatible pair per supervisor.
func (v *Validator) checkCompatibility(g *supervision, report *domain.ValidationReport) {
	for i := 0; i < len(g.sectors); i++ {
		for j := i + 1; j < len(g.sectors); j++ {
			a, b := g.sectors[i], g.sectors[j]
			if v.checker.SectorsCompatible(a, b) {
				continue
			}
			report.AddViolation(domain.Violation{
				Kind:         domain.ViolationIncompatibleSectors,
				Message:      fmt.Sprintf("supervisor %s covers incompatible sectors %s and %s", g.id, v.sectorName(a), v.sectorName(b)),
				SupervisorID: g.id,
				RoomIDs:      cloneIDs(g.roomIDs),
			})
			return
		}
	}
}

func (v *Validator) checkContiguity(g *supervision, report *domain.ValidationReport) {
	if len(g.rooms) < 2 || !v.requiresContiguity(g.sectors) {
		return
	}
	if ok, reason := checkContiguity(g.rooms); !ok {
		report.AddViolation(domain.Violation{
			Kind:         domain.ViolationContiguity,
			Message:      fmt.Sprintf("supervisor %s is assigned non-contiguous rooms: %s", g.id, reason),
			SupervisorID: g.id,
			RoomIDs:      cloneIDs(g.roomIDs),
		})
	}
}

func (v *Validator) requiresContiguity(sectors []string) bool {
	for _, s := range sectors {
		for _, r := range v.catalog.RulesForSector(s) {
			if r.Conditions.ContiguousRoomsRequired {
				return true
			}
		}
	}
	return false
}

func (v *Validator) sectorName(id string) string {
	if s, ok := v.sectors[id]; ok && s.Name != "" {
		return s.Name
	}
	return id
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
