package ports

import (
	"context"
	"time"
)

// CreatePledgeInput carries all data needed to record a pledge attempt.
type CreatePledgeInput struct {
	UserID    string
	ProjectID string
	Amount    int64
	TierID    string // optional: empty means no tier referenced
	// IdempotencyKey, when non-empty, lets a retried request return the
	// previously recorded pledge instead of running the ledger again.
	IdempotencyKey string
}

// PledgeResult is returned by the ledger after every create call. Business
// rejections are carried here as data, never as errors.
type PledgeResult struct {
	PledgeID  string
	UserID    string
	ProjectID string
	TierID    string
	Amount    int64
	CreatedAt time.Time
	Status    string
	Reason    string // reject reason code, empty on success
	// Replayed is true when the Idempotency-Key matched a prior pledge and
	// no new ledger entry was written.
	Replayed bool
}

// PledgeService is the pledge ledger: it validates an attempt against
// business rules, appends the pledge, and atomically applies the project and
// tier updates a successful pledge implies. Only storage failures surface as
// errors.
type PledgeService interface {
	CreatePledge(ctx context.Context, input CreatePledgeInput) (*PledgeResult, error)
}
