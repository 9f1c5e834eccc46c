// Package reward maps levels to milestone tiers and the roles they grant.
package reward

import (
	"sort"

	"github.com/osse101/LevelBot_Go/internal/domain"
)

// Resolver answers which tiers a level has reached
type Resolver struct {
	tiers []domain.RewardTier
}

// NewResolver creates a resolver over tiers, kept sorted by level
func NewResolver(tiers []domain.RewardTier) *Resolver {
	sorted := append([]domain.RewardTier(nil), tiers...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })
	return &Resolver{tiers: sorted}
}

// Tiers returns the configured tiers ordered by level
func (r *Resolver) Tiers() []domain.RewardTier {
	return append([]domain.RewardTier(nil), r.tiers...)
}

// Resolve returns every role-granting tier at or below level whose role is
// not in held. The same role configured on several tiers is returned once.
func (r *Resolver) Resolve(level int, held []string) []domain.RewardTier {
	have := make(map[string]struct{}, len(held))
	for _, id := range held {
		have[id] = struct{}{}
	}

	var due []domain.RewardTier
	for _, tier := range r.tiers {
		if tier.Level > level {
			break
		}
		if !tier.GrantsRole() {
			continue
		}
		if _, ok := have[tier.RoleID]; ok {
			continue
		}
		have[tier.RoleID] = struct{}{}
		due = append(due, tier)
	}
	return due
}

// Crossed returns the tiers whose level lies in (oldLevel, newLevel]
func (r *Resolver) Crossed(oldLevel, newLevel int) []domain.RewardTier {
	var crossed []domain.RewardTier
	for _, tier := range r.tiers {
		if tier.Level > oldLevel && tier.Level <= newLevel {
			crossed = append(crossed, tier)
		}
	}
	return crossed
}

// Highest returns the highest tier reached at level
func (r *Resolver) Highest(level int) (domain.RewardTier, bool) {
	var best domain.RewardTier
	found := false
	for _, tier := range r.tiers {
		if tier.Level > level {
			break
		}
		best, found = tier, true
	}
	return best, found
}
