package csv

import (
	"context"
	"fmt"
	"strconv"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

var tierColumns = []string{"project_id", "tier_id", "name", "min_amount", "quota"}

// TierRepository reads and updates the reward_tiers collection. The natural
// key is (project_id, tier_id); tier ids repeat across projects.
type TierRepository struct {
	c *collection
}

func NewTierRepository(s *Store) *TierRepository {
	return &TierRepository{c: &s.tiers}
}

func (r *TierRepository) ListByProject(_ context.Context, projectID string) ([]domain.RewardTier, error) {
	rows, err := r.c.rows()
	if err != nil {
		return nil, err
	}
	var out []domain.RewardTier
	for _, row := range rows {
		t, err := decodeTier(row)
		if err != nil {
			return nil, err
		}
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TierRepository) Get(ctx context.Context, projectID, tierID string) (*domain.RewardTier, error) {
	tiers, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range tiers {
		if tiers[i].TierID == tierID {
			return &tiers[i], nil
		}
	}
	return nil, domain.ErrTierNotFound
}

// Update rewrites the collection with t's row replaced, matched on the
// composite key. No-op when the tier is absent.
func (r *TierRepository) Update(_ context.Context, t *domain.RewardTier) error {
	return r.c.mutate(func(rows [][]string) ([][]string, bool) {
		for i, row := range rows {
			if len(row) > 1 && row[0] == t.ProjectID && row[1] == t.TierID {
				rows[i] = encodeTier(t)
				return rows, true
			}
		}
		return rows, false
	})
}

func encodeTier(t *domain.RewardTier) []string {
	return []string{
		t.ProjectID,
		t.TierID,
		t.Name,
		strconv.FormatInt(t.MinAmount, 10),
		strconv.FormatInt(t.Quota, 10),
	}
}

func decodeTier(row []string) (domain.RewardTier, error) {
	if len(row) != len(tierColumns) {
		return domain.RewardTier{}, fmt.Errorf("reward_tiers: malformed row %q", row)
	}
	minAmount, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return domain.RewardTier{}, fmt.Errorf("reward_tiers: min_amount %q: %w", row[3], err)
	}
	quota, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return domain.RewardTier{}, fmt.Errorf("reward_tiers: quota %q: %w", row[4], err)
	}
	return domain.RewardTier{
		ProjectID: row[0],
		TierID:    row[1],
		Name:      row[2],
		MinAmount: minAmount,
		Quota:     quota,
	}, nil
}
