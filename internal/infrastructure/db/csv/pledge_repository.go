package csv

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

var pledgeColumns = []string{"pledge_id", "user_id", "project_id", "created_at", "amount", "tier_id", "status", "reject_reason"}

// PledgeRepository persists the append-only pledge ledger. Rows are never
// rewritten in place; Append is the only mutation.
type PledgeRepository struct {
	c *collection
}

func NewPledgeRepository(s *Store) *PledgeRepository {
	return &PledgeRepository{c: &s.pledges}
}

func (r *PledgeRepository) List(_ context.Context) ([]domain.Pledge, error) {
	rows, err := r.c.rows()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Pledge, 0, len(rows))
	for _, row := range rows {
		p, err := decodePledge(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PledgeRepository) ListByUser(ctx context.Context, userID string) ([]domain.Pledge, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Pledge
	for _, p := range all {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PledgeRepository) Get(ctx context.Context, pledgeID string) (*domain.Pledge, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].PledgeID == pledgeID {
			return &all[i], nil
		}
	}
	return nil, domain.ErrPledgeNotFound
}

func (r *PledgeRepository) Append(_ context.Context, p *domain.Pledge) error {
	return r.c.mutate(func(rows [][]string) ([][]string, bool) {
		return append(rows, encodePledge(p)), true
	})
}

func encodePledge(p *domain.Pledge) []string {
	return []string{
		p.PledgeID,
		p.UserID,
		p.ProjectID,
		p.CreatedAt.UTC().Format(time.RFC3339),
		strconv.FormatInt(p.Amount, 10),
		p.TierID,
		string(p.Status),
		string(p.RejectReason),
	}
}

func decodePledge(row []string) (domain.Pledge, error) {
	if len(row) != len(pledgeColumns) {
		return domain.Pledge{}, fmt.Errorf("pledges: malformed row %q", row)
	}
	createdAt, err := time.Parse(time.RFC3339, row[3])
	if err != nil {
		return domain.Pledge{}, fmt.Errorf("pledges: created_at %q: %w", row[3], err)
	}
	amount, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return domain.Pledge{}, fmt.Errorf("pledges: amount %q: %w", row[4], err)
	}
	return domain.Pledge{
		PledgeID:     row[0],
		UserID:       row[1],
		ProjectID:    row[2],
		CreatedAt:    createdAt,
		Amount:       amount,
		TierID:       row[5],
		Status:       domain.PledgeStatus(row[6]),
		RejectReason: domain.RejectReason(row[7]),
	}, nil
}
