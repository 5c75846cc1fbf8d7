package handler

import (
	"context"

	"github.com/csfund/crowdfund-system/internal/core/domain"
	"github.com/csfund/crowdfund-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
	verifyFn func(ctx context.Context, username, password string) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	return s.verifyFn(ctx, username, password)
}

type stubCatalogService struct {
	listFn       func(ctx context.Context, filter ports.ListProjectsFilter) ([]ports.ProjectSummary, error)
	getFn        func(ctx context.Context, projectID string) (*ports.ProjectDetail, error)
	listTiersFn  func(ctx context.Context, projectID string) ([]domain.RewardTier, error)
	getTierFn    func(ctx context.Context, projectID, tierID string) (*domain.RewardTier, error)
	categoriesFn func(ctx context.Context) ([]string, error)
}

func (s *stubCatalogService) ListProjects(ctx context.Context, filter ports.ListProjectsFilter) ([]ports.ProjectSummary, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCatalogService) GetProject(ctx context.Context, projectID string) (*ports.ProjectDetail, error) {
	return s.getFn(ctx, projectID)
}

func (s *stubCatalogService) ListTiers(ctx context.Context, projectID string) ([]domain.RewardTier, error) {
	return s.listTiersFn(ctx, projectID)
}

func (s *stubCatalogService) GetTier(ctx context.Context, projectID, tierID string) (*domain.RewardTier, error) {
	return s.getTierFn(ctx, projectID, tierID)
}

func (s *stubCatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}

type stubPledgeService struct {
	createFn func(ctx context.Context, input ports.CreatePledgeInput) (*ports.PledgeResult, error)
}

func (s *stubPledgeService) CreatePledge(ctx context.Context, input ports.CreatePledgeInput) (*ports.PledgeResult, error) {
	return s.createFn(ctx, input)
}

type stubStatsService struct {
	userStatsFn   func(ctx context.Context, userID string) (*ports.UserStats, error)
	globalStatsFn func(ctx context.Context) (*ports.GlobalStats, error)
	historyFn     func(ctx context.Context, userID string) ([]ports.PledgeHistoryItem, error)
}

func (s *stubStatsService) UserStats(ctx context.Context, userID string) (*ports.UserStats, error) {
	return s.userStatsFn(ctx, userID)
}

func (s *stubStatsService) GlobalStats(ctx context.Context) (*ports.GlobalStats, error) {
	return s.globalStatsFn(ctx)
}

func (s *stubStatsService) UserHistory(ctx context.Context, userID string) ([]ports.PledgeHistoryItem, error) {
	return s.historyFn(ctx, userID)
}
