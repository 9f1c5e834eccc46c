package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LevelBot_Go/internal/domain"
)

func tiers() []domain.RewardTier {
	return []domain.RewardTier{
		{Level: 10, RoleID: "r10", Name: "Trusted Member"},
		{Level: 1, RoleID: "r1", Name: "Verified"},
		{Level: 5, RoleID: "r5", Name: "Active Member"},
		{Level: 15, Name: "Veteran"},
	}
}

func names(ts []domain.RewardTier) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Name)
	}
	return out
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(tiers())

	tests := []struct {
		name  string
		level int
		held  []string
		want  []string
	}{
		{"below first tier", 0, nil, []string{}},
		{"jump grants every crossed role", 12, nil, []string{"Verified", "Active Member", "Trusted Member"}},
		{"held roles skipped", 12, []string{"r1", "r10"}, []string{"Active Member"}},
		{"display-only tiers never granted", 20, []string{"r1", "r5", "r10"}, []string{}},
		{"exact threshold", 5, []string{"r1"}, []string{"Active Member"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(r.Resolve(tt.level, tt.held)))
		})
	}
}

func TestResolver_DuplicateRoleOnce(t *testing.T) {
	r := NewResolver([]domain.RewardTier{
		{Level: 1, RoleID: "same", Name: "A"},
		{Level: 2, RoleID: "same", Name: "B"},
	})
	due := r.Resolve(5, nil)
	require.Len(t, due, 1)
	assert.Equal(t, "A", due[0].Name)
}

func TestResolver_Crossed(t *testing.T) {
	r := NewResolver(tiers())

	assert.Equal(t, []string{"Active Member", "Trusted Member"}, names(r.Crossed(4, 10)))
	assert.Equal(t, []string{}, names(r.Crossed(5, 9)))
	assert.Equal(t, []string{"Veteran"}, names(r.Crossed(10, 15)))
}

func TestResolver_Highest(t *testing.T) {
	r := NewResolver(tiers())

	_, ok := r.Highest(0)
	assert.False(t, ok)

	tier, ok := r.Highest(7)
	require.True(t, ok)
	assert.Equal(t, "Active Member", tier.Name)
}

func TestResolver_DefaultTiersScenario(t *testing.T) {
	r := NewResolver(domain.DefaultRewardTiers("verified-role"))

	// 2500 XP is level 5: Verified role due, Active Member announced
	assert.Equal(t, []string{"Verified"}, names(r.Resolve(5, nil)))
	assert.Equal(t, []string{"Active Member"}, names(r.Crossed(4, 5)))
}
