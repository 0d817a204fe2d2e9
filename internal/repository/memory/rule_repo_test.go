package memory

import (
	"context"
	"testing"

	"orplanning/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRule(id, name string) *domain.SupervisionRule {
	return &domain.SupervisionRule{
		ID:         id,
		Name:       name,
		Kind:       domain.RuleGeneral,
		Active:     true,
		Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: 2, IncompatibleSectors: []string{"x"}},
	}
}

func TestRuleRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository([]*domain.SupervisionRule{newRule("a", "A"), nil, newRule("", "B")})

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.NotEmpty(t, all[1].ID)

	created := newRule("", "C")
	require.NoError(t, repo.Create(ctx, created))
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name)

	got.Name = "C2"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "C2", again.Name)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "a"), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newRule("a", "A")), domain.ErrNotFound)
}

func TestRuleRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository([]*domain.SupervisionRule{newRule("a", "A"), newRule("b", "B")})

	assert.ErrorIs(t, repo.Create(ctx, newRule("a", "Other")), domain.ErrInvalidInput)
	assert.ErrorIs(t, repo.Create(ctx, newRule("", "A")), domain.ErrInvalidInput)
	assert.ErrorIs(t, repo.Update(ctx, newRule("b", "A")), domain.ErrInvalidInput)
	assert.NoError(t, repo.Update(ctx, newRule("b", "B")))
}

func TestRuleRepository_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository([]*domain.SupervisionRule{newRule("a", "A")})

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	got.Conditions.IncompatibleSectors[0] = "mutated"
	got.Name = "mutated"

	fresh, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", fresh.Name)
	assert.Equal(t, []string{"x"}, fresh.Conditions.IncompatibleSectors)
}

func TestRuleRepository_ListPaged(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository([]*domain.SupervisionRule{
		newRule("a", "A"), newRule("b", "B"), newRule("c", "C"),
	})

	tests := []struct {
		name   string
		params domain.PaginationParams
		want   []string
	}{
		{"first page", domain.PaginationParams{Page: 1, PageSize: 2}, []string{"a", "b"}},
		{"last page", domain.PaginationParams{Page: 2, PageSize: 2}, []string{"c"}},
		{"past the end", domain.PaginationParams{Page: 5, PageSize: 2}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, total, err := repo.ListPaged(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, 3, total)
			ids := []string{}
			for _, r := range rules {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
