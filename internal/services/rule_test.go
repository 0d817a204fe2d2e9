package services

import (
	"context"
	"testing"
	"time"

	"orplanning/internal/domain"
	"orplanning/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleService_CreateRule(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		rule      *domain.SupervisionRule
		wantField string
	}{
		{
			name: "valid general rule drops its sector",
			rule: &domain.SupervisionRule{Name: "Base", Kind: domain.RuleGeneral, SectorID: "ortho",
				Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: 2}},
		},
		{
			name:      "missing name",
			rule:      &domain.SupervisionRule{Kind: domain.RuleGeneral, Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: 2}},
			wantField: "name",
		},
		{
			name:      "sector rule without sector",
			rule:      &domain.SupervisionRule{Name: "Cardio", Kind: domain.RuleSectorSpecific, Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: 1}},
			wantField: "sector_id",
		},
		{
			name:      "zero room limit",
			rule:      &domain.SupervisionRule{Name: "Zero", Kind: domain.RuleGeneral},
			wantField: "conditions.max_rooms_per_supervisor",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRuleService(memory.NewRuleRepository(nil), time.Second)
			err := svc.CreateRule(ctx, tt.rule)
			if tt.wantField != "" {
				var ruleErr *domain.InvalidRuleDefinitionError
				require.ErrorAs(t, err, &ruleErr)
				assert.Equal(t, tt.wantField, ruleErr.Field)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tt.rule.ID)
			assert.Empty(t, tt.rule.SectorID)
			assert.False(t, tt.rule.CreatedAt.IsZero())
		})
	}
}

func TestRuleService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewRuleService(memory.NewRuleRepository(nil), time.Second)

	rule := &domain.SupervisionRule{Name: "Cardio", Kind: domain.RuleSectorSpecific, SectorID: " cardio ", Active: true,
		Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: 1}}
	require.NoError(t, svc.CreateRule(ctx, rule))
	assert.Equal(t, "cardio", rule.SectorID)

	rules, total, err := svc.ListRules(ctx, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, rules, 1)

	update := rules[0]
	update.Conditions.MaxRoomsPerSupervisor = 2
	stored, err := svc.UpdateRule(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Conditions.MaxRoomsPerSupervisor)
	assert.Equal(t, rule.CreatedAt, stored.CreatedAt)

	_, err = svc.UpdateRule(ctx, &domain.SupervisionRule{ID: "missing", Name: "X", Kind: domain.RuleGeneral,
		Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateRule(ctx, &domain.SupervisionRule{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.DeleteRule(ctx, rule.ID))
	_, err = svc.GetRule(ctx, rule.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteRule(ctx, rule.ID), domain.ErrNotFound)
}
