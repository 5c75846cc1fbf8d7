package ports

import (
	"context"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

// Sort orders accepted by ListProjects.
const (
	SortNew     = "new"     // newest project id first (default)
	SortClosing = "closing" // nearest deadline first
	SortFunded  = "funded"  // highest raised amount first
)

// ListProjectsFilter carries the browse parameters for the project catalog.
type ListProjectsFilter struct {
	Query    string // optional: case-insensitive substring match on name
	Category string // optional: exact match; empty or "all" means no filter
	Sort     string // one of the Sort constants; unknown values fall back to SortNew
}

// ProjectSummary is a project enriched with the funding derivations the
// catalog exposes.
type ProjectSummary struct {
	Project       domain.Project
	PercentFunded int // 0-100, capped at 100
	DaysLeft      int // whole days until the deadline; negative when passed
	ClosingSoon   bool
	FullyFunded   bool
}

// ProjectDetail is the full catalog view of a single project.
type ProjectDetail struct {
	Project       domain.Project
	Tiers         []domain.RewardTier
	PercentFunded int
}

// CatalogService exposes the read accessors the presentation layer browses
// projects and tiers with.
type CatalogService interface {
	ListProjects(ctx context.Context, filter ListProjectsFilter) ([]ProjectSummary, error)
	GetProject(ctx context.Context, projectID string) (*ProjectDetail, error)
	ListTiers(ctx context.Context, projectID string) ([]domain.RewardTier, error)
	GetTier(ctx context.Context, projectID, tierID string) (*domain.RewardTier, error)
	// Categories returns the sorted set of categories across all projects.
	Categories(ctx context.Context) ([]string, error)
}
