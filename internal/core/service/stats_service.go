package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/csfund/crowdfund-system/internal/core/domain"
	"github.com/csfund/crowdfund-system/internal/core/ports"
)

// StatsService derives pledge aggregates by re-scanning the ledger on every
// call. Results always reflect the latest durable state; nothing is cached.
type StatsService struct {
	pledges  ports.PledgeRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewStatsService(pledges ports.PledgeRepository, projects ports.ProjectRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{pledges: pledges, projects: projects, logger: logger}
}

// UserStats counts one backer's outcomes and sums the amounts of their
// successful pledges.
func (s *StatsService) UserStats(ctx context.Context, userID string) (*ports.UserStats, error) {
	items, err := s.pledges.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pledges for %s: %w", userID, err)
	}

	stats := &ports.UserStats{}
	for _, p := range items {
		switch p.Status {
		case domain.StatusSuccess:
			stats.SuccessCount++
			stats.TotalAmount += p.Amount
		case domain.StatusRejected:
			stats.RejectedCount++
		}
	}
	return stats, nil
}

// GlobalStats counts outcomes across the whole ledger.
func (s *StatsService) GlobalStats(ctx context.Context) (*ports.GlobalStats, error) {
	items, err := s.pledges.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pledges: %w", err)
	}

	stats := &ports.GlobalStats{}
	for _, p := range items {
		switch p.Status {
		case domain.StatusSuccess:
			stats.SuccessCount++
		case domain.StatusRejected:
			stats.RejectedCount++
		}
	}
	return stats, nil
}

// UserHistory returns the backer's pledges newest first, each annotated with
// its project name. Attempts against ids that never resolved keep the raw
// project id as the display name.
func (s *StatsService) UserHistory(ctx context.Context, userID string) ([]ports.PledgeHistoryItem, error) {
	items, err := s.pledges.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pledges for %s: %w", userID, err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	history := make([]ports.PledgeHistoryItem, 0, len(items))
	for _, p := range items {
		name := p.ProjectID
		project, err := s.projects.Get(ctx, p.ProjectID)
		if err == nil {
			name = project.Name
		} else if !errors.Is(err, domain.ErrProjectNotFound) {
			return nil, fmt.Errorf("get project %s: %w", p.ProjectID, err)
		}
		history = append(history, ports.PledgeHistoryItem{Pledge: p, ProjectName: name})
	}
	return history, nil
}
