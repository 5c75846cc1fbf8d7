package ports

import (
	"context"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects. Update
// replaces the stored record matching the project id and is a no-op when the
// id is absent.
type ProjectRepository interface {
	List(ctx context.Context) ([]domain.Project, error)
	// Get returns domain.ErrProjectNotFound when no project matches.
	Get(ctx context.Context, projectID string) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

// TierRepository defines persistence operations for reward tiers. Tiers are
// always addressed scoped to their project.
type TierRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.RewardTier, error)
	// Get returns domain.ErrTierNotFound when no tier matches within the project.
	Get(ctx context.Context, projectID, tierID string) (*domain.RewardTier, error)
	Update(ctx context.Context, t *domain.RewardTier) error
}

// UserRepository provides read access to backer accounts.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when the username is unknown.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// PledgeRepository persists the append-only pledge ledger. List and
// ListByUser return pledges in storage (insertion) order.
type PledgeRepository interface {
	List(ctx context.Context) ([]domain.Pledge, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Pledge, error)
	// Get returns domain.ErrPledgeNotFound when no pledge matches.
	Get(ctx context.Context, pledgeID string) (*domain.Pledge, error)
	Append(ctx context.Context, p *domain.Pledge) error
}
