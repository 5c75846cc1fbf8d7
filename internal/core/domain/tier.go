package domain

import "errors"

var ErrInvalidTier = errors.New("tier min amount and quota must be >= 0")
var ErrTierNotFound = errors.New("reward tier not found")

// RewardTier is a scarce perk attached to a project. TierID is unique only
// within its project. Quota never goes negative and is decremented by exactly
// one per successful pledge referencing the tier.
type RewardTier struct {
	ProjectID string `json:"project_id"`
	TierID    string `json:"tier_id"`
	Name      string `json:"name"`
	MinAmount int64  `json:"min_amount"`
	Quota     int64  `json:"quota"`
}

// Validate performs the structural checks applied at creation/import time.
func (t *RewardTier) Validate() error {
	if t.MinAmount < 0 || t.Quota < 0 {
		return ErrInvalidTier
	}
	return nil
}
