package domain

// RewardTier is a static level milestone. RoleID is empty for display-only
// milestones that are announced but grant nothing.
type RewardTier struct {
	Level  int    `json:"level" validate:"gte=0"`
	RoleID string `json:"role_id,omitempty"`
	Name   string `json:"name" validate:"required"`
}

// GrantsRole reports whether reaching the tier grants a role
func (t RewardTier) GrantsRole() bool {
	return t.RoleID != ""
}

// DefaultRewardTiers mirrors the milestone table the community started with
func DefaultRewardTiers(verifiedRoleID string) []RewardTier {
	return []RewardTier{
		{Level: 1, RoleID: verifiedRoleID, Name: "Verified"},
		{Level: 5, Name: "Active Member"},
		{Level: 10, Name: "Trusted Member"},
		{Level: 15, Name: "Veteran"},
		{Level: 20, Name: "Elite Member"},
		{Level: 25, Name: "Legend"},
	}
}
