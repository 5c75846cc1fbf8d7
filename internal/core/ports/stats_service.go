package ports

import (
	"context"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

// UserStats summarizes one backer's pledge history.
type UserStats struct {
	SuccessCount  int
	RejectedCount int
	// TotalAmount sums Amount over successful pledges only.
	TotalAmount int64
}

// GlobalStats counts pledge outcomes across all backers.
type GlobalStats struct {
	SuccessCount  int
	RejectedCount int
}

// PledgeHistoryItem pairs a pledge with the display name of its project.
// ProjectName falls back to the project id when the project no longer
// resolves (rejected attempts may reference ids that never existed).
type PledgeHistoryItem struct {
	Pledge      domain.Pledge
	ProjectName string
}

// StatsService derives read-side aggregates by scanning the pledge
// collection. No caching: every call reflects the durable state at call time.
type StatsService interface {
	UserStats(ctx context.Context, userID string) (*UserStats, error)
	GlobalStats(ctx context.Context) (*GlobalStats, error)
	// UserHistory returns the backer's pledges newest first.
	UserHistory(ctx context.Context, userID string) ([]PledgeHistoryItem, error)
}
