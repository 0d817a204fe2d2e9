package supervision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orplanning/internal/domain"
)

func TestCompatibilityChecker_SectorsCompatible(t *testing.T) {
	internalOrtho := sectorRule("s-ortho", "ortho", 1, 2)
	internalOrtho.Conditions.InternalSupervisionOnly = true

	internalOrthoAllowsCardio := sectorRule("s-ortho", "ortho", 1, 2)
	internalOrthoAllowsCardio.Conditions.InternalSupervisionOnly = true
	internalOrthoAllowsCardio.Conditions.AllowedExternalSectors = []string{"cardio"}

	cardioForbidsOrtho := sectorRule("s-cardio", "cardio", 1, 2)
	cardioForbidsOrtho.Conditions.IncompatibleSectors = []string{"ortho"}

	internalGeneral := general("g", 1, 2)
	internalGeneral.Conditions.InternalSupervisionOnly = true

	generalAllowsOphtalmo := general("g-allow", 0, 2)
	generalAllowsOphtalmo.Conditions.AllowedExternalSectors = []string{"ophtalmo"}

	forbidAndAllow := sectorRule("s-cardio", "cardio", 1, 2)
	forbidAndAllow.Conditions.IncompatibleSectors = []string{"ortho"}
	forbidAndAllow.Conditions.AllowedExternalSectors = []string{"ortho"}

	tests := []struct {
		name  string
		rules []*domain.SupervisionRule
		mode  CompatibilityMode
		a, b  string
		want  bool
	}{
		{"empty catalog", nil, Asymmetric, "ortho", "cardio", true},
		{"internal only sector", []*domain.SupervisionRule{general("g", 1, 2), internalOrtho}, Asymmetric, "ortho", "cardio", false},
		{"internal only is one sided in asymmetric mode", []*domain.SupervisionRule{general("g", 1, 2), internalOrtho}, Asymmetric, "cardio", "ortho", true},
		{"internal only seen from both sides in symmetric mode", []*domain.SupervisionRule{general("g", 1, 2), internalOrtho}, Symmetric, "cardio", "ortho", false},
		{"explicit allow lifts internal only", []*domain.SupervisionRule{internalOrthoAllowsCardio}, Asymmetric, "ortho", "cardio", true},
		{"explicit allow only for listed sector", []*domain.SupervisionRule{internalOrthoAllowsCardio}, Asymmetric, "ortho", "ophtalmo", false},
		{"incompatible list", []*domain.SupervisionRule{cardioForbidsOrtho}, Asymmetric, "cardio", "ortho", false},
		{"incompatible list not checked from other side", []*domain.SupervisionRule{cardioForbidsOrtho}, Asymmetric, "ortho", "cardio", true},
		{"incompatible list checked from other side when symmetric", []*domain.SupervisionRule{cardioForbidsOrtho}, Symmetric, "ortho", "cardio", false},
		{"incompatibility beats allowance", []*domain.SupervisionRule{forbidAndAllow}, Asymmetric, "cardio", "ortho", false},
		{"general internal only", []*domain.SupervisionRule{internalGeneral}, Asymmetric, "cardio", "ortho", false},
		{"general allowance overrides general internal only", []*domain.SupervisionRule{internalGeneral, generalAllowsOphtalmo}, Asymmetric, "cardio", "ophtalmo", true},
		{"general default compatible", []*domain.SupervisionRule{general("g", 1, 2)}, Symmetric, "cardio", "ortho", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompatibilityChecker(mustCatalog(t, tt.rules...), tt.mode)
			assert.Equal(t, tt.want, c.SectorsCompatible(tt.a, tt.b))
		})
	}
}

func TestCompatibilityChecker_SameSectorAlwaysCompatible(t *testing.T) {
	internal := sectorRule("s", "ortho", 1, 1)
	internal.Conditions.InternalSupervisionOnly = true
	internal.Conditions.IncompatibleSectors = []string{"ortho"}
	g := general("g", 1, 2)
	g.Conditions.InternalSupervisionOnly = true

	for _, mode := range []CompatibilityMode{Asymmetric, Symmetric} {
		c := NewCompatibilityChecker(mustCatalog(t, g, internal), mode)
		for _, s := range []string{"ortho", "cardio", "unknown"} {
			assert.True(t, c.SectorsCompatible(s, s), "mode %s sector %s", mode, s)
		}
	}
}

func TestParseCompatibilityMode(t *testing.T) {
	m, err := ParseCompatibilityMode("")
	require.NoError(t, err)
	assert.Equal(t, Asymmetric, m)

	m, err = ParseCompatibilityMode(" Symmetric ")
	require.NoError(t, err)
	assert.Equal(t, Symmetric, m)

	_, err = ParseCompatibilityMode("both")
	require.Error(t, err)
}
