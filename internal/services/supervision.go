package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"orplanning/internal/domain"
	"orplanning/internal/supervision"
)

const defaultContextTimeout = 5 * time.Second

// SupervisionConfig wires the supervision service.
type SupervisionConfig struct {
	RuleRepo          domain.RuleRepository
	SectorRepo        domain.SectorRepository
	AssignmentRepo    domain.AssignmentRepository
	EmailService      domain.EmailService
	Publisher         domain.EventPublisher
	Recorder          domain.SupervisionRecorder
	AlertRecipients   []string
	CompatibilityMode supervision.CompatibilityMode
	HighLoadThreshold int
	ContextTimeout    time.Duration
	Logger            *slog.Logger
}

type supervisionService struct {
	ruleRepo        domain.RuleRepository
	sectorRepo      domain.SectorRepository
	assignmentRepo  domain.AssignmentRepository
	emailService    domain.EmailService
	publisher       domain.EventPublisher
	recorder        domain.SupervisionRecorder
	alertRecipients []string
	options         []supervision.ValidatorOption
	mode            supervision.CompatibilityMode
	contextTimeout  time.Duration
	logger          *slog.Logger

	mu                sync.Mutex
	lastConflictsSeen string
}

// NewSupervisionService returns a SupervisionService. Each call reads a fresh
// snapshot of rules, sectors and rooms from the repositories. Notifications
// (events, alert emails) and metrics are optional and best-effort.
func NewSupervisionService(cfg SupervisionConfig) domain.SupervisionService {
	var opts []supervision.ValidatorOption
	if cfg.CompatibilityMode != "" {
		opts = append(opts, supervision.WithCompatibilityMode(cfg.CompatibilityMode))
	}
	if cfg.HighLoadThreshold > 0 {
		opts = append(opts, supervision.WithHighLoadThreshold(cfg.HighLoadThreshold))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ContextTimeout
	if timeout <= 0 {
		timeout = defaultContextTimeout
	}
	return &supervisionService{
		ruleRepo:        cfg.RuleRepo,
		sectorRepo:      cfg.SectorRepo,
		assignmentRepo:  cfg.AssignmentRepo,
		emailService:    cfg.EmailService,
		publisher:       cfg.Publisher,
		recorder:        cfg.Recorder,
		alertRecipients: cfg.AlertRecipients,
		options:         opts,
		mode:            cfg.CompatibilityMode,
		contextTimeout:  timeout,
		logger:          logger,
	}
}

func (s *supervisionService) catalog(ctx context.Context) (*supervision.Catalog, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	catalog, err := supervision.NewCatalog(rules)
	if err != nil {
		// Rules that fail ingestion here were stored invalid; report an internal error.
		return nil, fmt.Errorf("stored rule catalog is invalid: %v", err)
	}
	return catalog, nil
}

func (s *supervisionService) validator(ctx context.Context) (*supervision.Validator, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	sectors, err := s.sectorRepo.ListSectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sectors: %w", err)
	}
	rooms, err := s.sectorRepo.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	return supervision.NewValidator(catalog, sectors, rooms, s.options...), nil
}

// ValidateAssignment validates a draft planning. The outcome is recorded and
// published but never mailed.
func (s *supervisionService) ValidateAssignment(ctx context.Context, a *domain.Assignment) (*domain.ValidationReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if a == nil {
		return nil, fmt.Errorf("assignment is required: %w", domain.ErrInvalidInput)
	}
	if a.Date != "" {
		if _, err := domain.ParseDate(a.Date); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", a.Date, domain.ErrInvalidInput)
		}
	}
	report, err := s.validate(ctx, a)
	if err != nil {
		return nil, err
	}
	s.publishValidation(ctx, report)
	return report, nil
}

// ValidatePlanningForDate validates the stored planning of date and alerts the
// configured recipients when it has violations.
func (s *supervisionService) ValidatePlanningForDate(ctx context.Context, date string) (*domain.ValidationReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, domain.ErrInvalidInput)
	}
	a, err := s.assignmentRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load planning %s: %w", date, err)
	}
	report, err := s.validate(ctx, a)
	if err != nil {
		return nil, err
	}
	s.publishValidation(ctx, report)
	s.alert(ctx, report)
	return report, nil
}

func (s *supervisionService) validate(ctx context.Context, a *domain.Assignment) (*domain.ValidationReport, error) {
	v, err := s.validator(ctx)
	if err != nil {
		return nil, err
	}
	report := v.Validate(a)
	if s.recorder != nil {
		s.recorder.ObserveValidation(report)
	}
	return report, nil
}

func (s *supervisionService) ResolveMaxRooms(ctx context.Context, sectorIDs []string) (*domain.Resolution, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	res := supervision.NewResolver(catalog).Resolve(sectorIDs)
	return &res, nil
}

func (s *supervisionService) SectorsCompatible(ctx context.Context, a, b string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if a == "" || b == "" {
		return false, fmt.Errorf("two sector ids are required: %w", domain.ErrInvalidInput)
	}
	catalog, err := s.catalog(ctx)
	if err != nil {
		return false, err
	}
	mode := s.mode
	if mode == "" {
		mode = supervision.Asymmetric
	}
	return supervision.NewCompatibilityChecker(catalog, mode).SectorsCompatible(a, b), nil
}

// DetectConflicts scans the catalog. Recipients are mailed only when the set of
// conflicts differs from the previous scan.
func (s *supervisionService) DetectConflicts(ctx context.Context) ([]domain.CatalogConflict, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	conflicts := supervision.DetectCatalogConflicts(catalog)
	if s.recorder != nil {
		s.recorder.ObserveConflicts(conflicts)
	}
	if !s.conflictsChanged(conflicts) {
		return conflicts, nil
	}
	if len(conflicts) > 0 {
		if s.publisher != nil {
			event := domain.CatalogConflictsEvent{Count: len(conflicts), Conflicts: conflicts}
			if err := s.publisher.Publish(ctx, domain.EventCatalogConflicts, event); err != nil {
				s.logger.WarnContext(ctx, "publish catalog conflicts failed", "err", err)
			}
		}
		if s.emailService != nil && len(s.alertRecipients) > 0 {
			data := &domain.CatalogConflictEmailData{Recipients: s.alertRecipients, Conflicts: conflicts}
			if err := s.emailService.SendCatalogConflicts(ctx, data); err != nil {
				s.logger.WarnContext(ctx, "catalog conflict email failed", "err", err)
			}
		}
	}
	return conflicts, nil
}

func (s *supervisionService) conflictsChanged(conflicts []domain.CatalogConflict) bool {
	keys := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		keys = append(keys, c.RuleAID+"|"+c.RuleBID+"|"+string(c.Kind))
	}
	sort.Strings(keys)
	sig := strings.Join(keys, ",")

	s.mu.Lock()
	defer s.mu.Unlock()
	if sig == s.lastConflictsSeen {
		return false
	}
	s.lastConflictsSeen = sig
	return true
}

func (s *supervisionService) publishValidation(ctx context.Context, report *domain.ValidationReport) {
	if s.publisher == nil {
		return
	}
	counts := make(map[string]int)
	for _, v := range report.Violations {
		counts[string(v.Kind)]++
	}
	event := domain.PlanningValidatedEvent{
		Date:       report.Date,
		Valid:      report.Valid(),
		Violations: counts,
		Warnings:   len(report.Warnings),
	}
	if err := s.publisher.Publish(ctx, domain.EventPlanningValidated, event); err != nil {
		s.logger.WarnContext(ctx, "publish validation event failed", "date", report.Date, "err", err)
	}
}

func (s *supervisionService) alert(ctx context.Context, report *domain.ValidationReport) {
	if report.Valid() || s.emailService == nil || len(s.alertRecipients) == 0 {
		return
	}
	data := &domain.ValidationAlertEmailData{
		Recipients: s.alertRecipients,
		Date:       report.Date,
		Violations: report.Violations,
		Warnings:   report.Warnings,
	}
	if err := s.emailService.SendValidationAlert(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "validation alert email failed", "date", report.Date, "err", err)
	}
}
