package services

import (
	"context"
	"fmt"
	"time"

	"orplanning/internal/domain"
)

type ruleService struct {
	ruleRepo       domain.RuleRepository
	contextTimeout time.Duration
}

// NewRuleService returns a RuleService that validates rules before storing them.
func NewRuleService(ruleRepo domain.RuleRepository, timeout time.Duration) domain.RuleService {
	return &ruleService{ruleRepo: ruleRepo, contextTimeout: timeout}
}

func (s *ruleService) CreateRule(ctx context.Context, rule *domain.SupervisionRule) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rule == nil {
		return fmt.Errorf("rule is required: %w", domain.ErrInvalidInput)
	}
	rule.Normalize()
	if err := rule.Validate(); err != nil {
		return err
	}
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return fmt.Errorf("create rule: %w", err)
	}
	return nil
}

func (s *ruleService) GetRule(ctx context.Context, id string) (*domain.SupervisionRule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rule %s: %w", id, err)
	}
	return rule, nil
}

func (s *ruleService) ListRules(ctx context.Context, params domain.PaginationParams) ([]*domain.SupervisionRule, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rules, total, err := s.ruleRepo.ListPaged(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list rules: %w", err)
	}
	return rules, total, nil
}

// UpdateRule replaces the stored rule with the same ID and returns the stored version.
func (s *ruleService) UpdateRule(ctx context.Context, rule *domain.SupervisionRule) (*domain.SupervisionRule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rule == nil || rule.ID == "" {
		return nil, fmt.Errorf("rule id is required: %w", domain.ErrInvalidInput)
	}
	rule.Normalize()
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	rule.UpdatedAt = time.Now()
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("update rule %s: %w", rule.ID, err)
	}
	stored, err := s.ruleRepo.GetByID(ctx, rule.ID)
	if err != nil {
		return nil, fmt.Errorf("reload rule %s: %w", rule.ID, err)
	}
	return stored, nil
}

func (s *ruleService) DeleteRule(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rule %s: %w", id, err)
	}
	return nil
}
