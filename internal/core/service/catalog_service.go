package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/csfund/crowdfund-system/internal/core/domain"
	"github.com/csfund/crowdfund-system/internal/core/ports"
)

// closingSoonWindow is the number of days left within which a project is
// flagged as closing soon.
const closingSoonWindow = 7

// CatalogService serves the read-only project browse operations: filtered
// and sorted listings plus the funding derivations the storefront shows.
type CatalogService struct {
	projects ports.ProjectRepository
	tiers    ports.TierRepository
	now      func() time.Time
}

func NewCatalogService(projects ports.ProjectRepository, tiers ports.TierRepository) *CatalogService {
	return &CatalogService{projects: projects, tiers: tiers, now: time.Now}
}

// ListProjects returns summaries matching filter, sorted per filter.Sort.
func (s *CatalogService) ListProjects(ctx context.Context, filter ports.ListProjectsFilter) ([]ports.ProjectSummary, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	today := domain.DateOf(s.now())
	items := make([]ports.ProjectSummary, 0, len(all))
	for _, p := range all {
		if filter.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && p.Category != filter.Category {
			continue
		}
		items = append(items, summarize(p, today))
	}

	switch filter.Sort {
	case ports.SortClosing:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Project.Deadline.Before(items[j].Project.Deadline)
		})
	case ports.SortFunded:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Project.RaisedAmount > items[j].Project.RaisedAmount
		})
	default: // SortNew
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Project.ProjectID > items[j].Project.ProjectID
		})
	}

	return items, nil
}

// GetProject returns the project with its tiers and funding percent.
func (s *CatalogService) GetProject(ctx context.Context, projectID string) (*ports.ProjectDetail, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tiers, err := s.tiers.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tiers for %s: %w", projectID, err)
	}
	return &ports.ProjectDetail{
		Project:       *project,
		Tiers:         tiers,
		PercentFunded: percentFunded(project),
	}, nil
}

// ListTiers returns the tiers belonging to projectID in storage order.
func (s *CatalogService) ListTiers(ctx context.Context, projectID string) ([]domain.RewardTier, error) {
	return s.tiers.ListByProject(ctx, projectID)
}

// GetTier returns a single tier scoped to its project.
func (s *CatalogService) GetTier(ctx context.Context, projectID, tierID string) (*domain.RewardTier, error) {
	return s.tiers.Get(ctx, projectID, tierID)
}

// Categories returns the sorted set of distinct categories.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	seen := make(map[string]struct{}, len(all))
	var categories []string
	for _, p := range all {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func summarize(p domain.Project, today time.Time) ports.ProjectSummary {
	daysLeft := int(domain.DateOf(p.Deadline).Sub(today).Hours() / 24)
	return ports.ProjectSummary{
		Project:       p,
		PercentFunded: percentFunded(&p),
		DaysLeft:      daysLeft,
		ClosingSoon:   daysLeft >= 0 && daysLeft <= closingSoonWindow,
		FullyFunded:   p.RaisedAmount >= p.GoalAmount,
	}
}

func percentFunded(p *domain.Project) int {
	if p.GoalAmount <= 0 {
		return 0
	}
	percent := int(p.RaisedAmount * 100 / p.GoalAmount)
	if percent > 100 {
		percent = 100
	}
	return percent
}
