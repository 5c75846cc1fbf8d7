package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

// In-memory stub repositories shared by the service tests. They are
// goroutine-safe so the concurrency tests can hammer them, and they mirror
// the real store's sentinel-error behavior.

var discardLogger = zerolog.Nop()

type stubProjectRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.Project
	order   []string
	listErr error
	getErr  error
	updErr  error
	updates int
}

func newStubProjectRepo(projects ...domain.Project) *stubProjectRepo {
	r := &stubProjectRepo{byID: make(map[string]domain.Project)}
	for _, p := range projects {
		r.byID[p.ProjectID] = p
		r.order = append(r.order, p.ProjectID)
	}
	return r
}

func (r *stubProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Project, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *stubProjectRepo) Get(_ context.Context, projectID string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.byID[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := p
	return &clone, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updErr != nil {
		return r.updErr
	}
	r.updates++
	if _, ok := r.byID[p.ProjectID]; ok {
		r.byID[p.ProjectID] = *p
	}
	return nil
}

func (r *stubProjectRepo) raised(projectID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[projectID].RaisedAmount
}

type tierKey struct{ projectID, tierID string }

type stubTierRepo struct {
	mu      sync.Mutex
	byKey   map[tierKey]domain.RewardTier
	order   []tierKey
	gets    int // number of Get calls observed
	updErr  error
	updates int
}

func newStubTierRepo(tiers ...domain.RewardTier) *stubTierRepo {
	r := &stubTierRepo{byKey: make(map[tierKey]domain.RewardTier)}
	for _, t := range tiers {
		k := tierKey{t.ProjectID, t.TierID}
		r.byKey[k] = t
		r.order = append(r.order, k)
	}
	return r
}

func (r *stubTierRepo) ListByProject(_ context.Context, projectID string) ([]domain.RewardTier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RewardTier
	for _, k := range r.order {
		if k.projectID == projectID {
			out = append(out, r.byKey[k])
		}
	}
	return out, nil
}

func (r *stubTierRepo) Get(_ context.Context, projectID, tierID string) (*domain.RewardTier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	t, ok := r.byKey[tierKey{projectID, tierID}]
	if !ok {
		return nil, domain.ErrTierNotFound
	}
	clone := t
	return &clone, nil
}

func (r *stubTierRepo) Update(_ context.Context, t *domain.RewardTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updErr != nil {
		return r.updErr
	}
	r.updates++
	k := tierKey{t.ProjectID, t.TierID}
	if _, ok := r.byKey[k]; ok {
		r.byKey[k] = *t
	}
	return nil
}

func (r *stubTierRepo) quota(projectID, tierID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byKey[tierKey{projectID, tierID}].Quota
}

type stubPledgeRepo struct {
	mu        sync.Mutex
	items     []domain.Pledge
	appendErr error
}

func (r *stubPledgeRepo) List(_ context.Context) ([]domain.Pledge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Pledge(nil), r.items...), nil
}

func (r *stubPledgeRepo) ListByUser(_ context.Context, userID string) ([]domain.Pledge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Pledge
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPledgeRepo) Get(_ context.Context, pledgeID string) (*domain.Pledge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.PledgeID == pledgeID {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrPledgeNotFound
}

func (r *stubPledgeRepo) Append(_ context.Context, p *domain.Pledge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.items = append(r.items, *p)
	return nil
}

func (r *stubPledgeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type stubUserRepo struct {
	byUsername map[string]domain.User
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{byUsername: make(map[string]domain.User)}
	for _, u := range users {
		r.byUsername[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) Get(_ context.Context, userID string) (*domain.User, error) {
	for _, u := range r.byUsername {
		if u.UserID == userID {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := u
	return &clone, nil
}

type stubReplayCache struct {
	mu   sync.Mutex
	byID map[string]string
}

func newStubReplayCache() *stubReplayCache {
	return &stubReplayCache{byID: make(map[string]string)}
}

func (c *stubReplayCache) Lookup(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byID[key], nil
}

func (c *stubReplayCache) Remember(_ context.Context, key, pledgeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[key] = pledgeID
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}
