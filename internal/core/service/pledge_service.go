package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/csfund/crowdfund-system/internal/api/metrics"
	"github.com/csfund/crowdfund-system/internal/core/domain"
	"github.com/csfund/crowdfund-system/internal/core/ports"
)

// ReplayCache abstracts the idempotency store (Redis). Lookup returns the
// pledge id previously remembered under key, or "" when the key is unknown.
type ReplayCache interface {
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, pledgeID string) error
}

// PledgeService is the pledge ledger. It is the sole writer of pledge
// records and the sole mutator of Project.RaisedAmount and RewardTier.Quota.
//
// The record store linearizes operations per collection but not across
// collections, so the ledger serializes the whole lookup-evaluate-append-
// update sequence under a per-project mutex. Two concurrent pledges against
// the same project therefore never both see the same quota unit.
type PledgeService struct {
	projects ports.ProjectRepository
	tiers    ports.TierRepository
	pledges  ports.PledgeRepository
	replay   ReplayCache // optional; nil disables idempotent replay
	logger   zerolog.Logger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPledgeService(
	projects ports.ProjectRepository,
	tiers ports.TierRepository,
	pledges ports.PledgeRepository,
	replay ReplayCache,
	logger zerolog.Logger,
) *PledgeService {
	return &PledgeService{
		projects: projects,
		tiers:    tiers,
		pledges:  pledges,
		replay:   replay,
		logger:   logger,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// CreatePledge records one pledge attempt. Both outcomes are appended to the
// ledger; only a successful pledge mutates project and tier state. Business
// rejections are returned as data on the result, never as an error — the
// error return is reserved for storage failures.
func (s *PledgeService) CreatePledge(ctx context.Context, in ports.CreatePledgeInput) (*ports.PledgeResult, error) {
	start := time.Now()

	if replayed := s.lookupReplay(ctx, in.IdempotencyKey); replayed != nil {
		metrics.PledgeReplaysTotal.Inc()
		s.logger.Info().
			Str("idempotency_key", in.IdempotencyKey).
			Str("pledge_id", replayed.PledgeID).
			Msg("idempotent replay")
		return resultOf(replayed, true), nil
	}

	lock := s.projectLock(in.ProjectID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()

	var (
		project *domain.Project
		tier    *domain.RewardTier
		reason  domain.RejectReason
		err     error
	)

	project, err = s.projects.Get(ctx, in.ProjectID)
	if err != nil {
		if !errors.Is(err, domain.ErrProjectNotFound) {
			return nil, s.fail(start, fmt.Errorf("get project %s: %w", in.ProjectID, err))
		}
		// The attempt is still recorded; no tier lookup, no mutation.
		reason = domain.ReasonProjectNotFound
	}

	if reason == "" && in.TierID != "" {
		tier, err = s.tiers.Get(ctx, in.ProjectID, in.TierID)
		if err != nil {
			if !errors.Is(err, domain.ErrTierNotFound) {
				return nil, s.fail(start, fmt.Errorf("get tier %s/%s: %w", in.ProjectID, in.TierID, err))
			}
			reason = domain.ReasonTierNotFound
		}
	}

	if reason == "" {
		reason = domain.EvaluatePledge(in.Amount, project, tier, now)
	}

	status := domain.StatusSuccess
	if reason != "" {
		status = domain.StatusRejected
	}

	pledge := &domain.Pledge{
		PledgeID:     generatePledgeID(now),
		UserID:       in.UserID,
		ProjectID:    in.ProjectID,
		CreatedAt:    now.UTC(),
		Amount:       in.Amount,
		TierID:       in.TierID,
		Status:       status,
		RejectReason: reason,
	}

	if err := s.pledges.Append(ctx, pledge); err != nil {
		return nil, s.fail(start, fmt.Errorf("append pledge: %w", err))
	}

	if status == domain.StatusSuccess {
		project.RaisedAmount += pledge.Amount
		if err := s.projects.Update(ctx, project); err != nil {
			return nil, s.fail(start, fmt.Errorf("update project %s: %w", project.ProjectID, err))
		}
		if tier != nil {
			if tier.Quota > 0 {
				tier.Quota--
			}
			if err := s.tiers.Update(ctx, tier); err != nil {
				return nil, s.fail(start, fmt.Errorf("update tier %s/%s: %w", tier.ProjectID, tier.TierID, err))
			}
		}
	}

	s.rememberReplay(ctx, in.IdempotencyKey, pledge.PledgeID)
	s.observe(pledge, start)

	return resultOf(pledge, false), nil
}

// lookupReplay resolves an idempotency key to the previously recorded
// pledge. Cache failures are logged and treated as a miss.
func (s *PledgeService) lookupReplay(ctx context.Context, key string) *domain.Pledge {
	if s.replay == nil || key == "" {
		return nil
	}
	pledgeID, err := s.replay.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("replay lookup failed, processing anyway")
		return nil
	}
	if pledgeID == "" {
		return nil
	}
	pledge, err := s.pledges.Get(ctx, pledgeID)
	if err != nil {
		s.logger.Warn().Err(err).Str("pledge_id", pledgeID).Msg("replayed pledge not found, processing anyway")
		return nil
	}
	return pledge
}

func (s *PledgeService) rememberReplay(ctx context.Context, key, pledgeID string) {
	if s.replay == nil || key == "" {
		return
	}
	if err := s.replay.Remember(ctx, key, pledgeID); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to set replay key")
	}
}

// projectLock returns the mutex serializing pledges for projectID, creating
// it on first use. Locks are never released back; the map is bounded by the
// number of distinct project ids seen.
func (s *PledgeService) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[projectID] = l
	}
	return l
}

func (s *PledgeService) fail(start time.Time, err error) error {
	metrics.PledgeProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
	s.logger.Error().Err(err).Msg("pledge ledger storage failure")
	return err
}

func (s *PledgeService) observe(p *domain.Pledge, start time.Time) {
	reason := "none"
	if p.RejectReason != "" {
		reason = string(p.RejectReason)
	}
	metrics.PledgesTotal.WithLabelValues(string(p.Status), reason).Inc()
	if p.Status == domain.StatusSuccess {
		metrics.PledgeAmountTotal.Add(float64(p.Amount))
	}
	metrics.PledgeProcessingDuration.WithLabelValues(string(p.Status)).Observe(time.Since(start).Seconds())

	s.logger.Info().
		Str("pledge_id", p.PledgeID).
		Str("user_id", p.UserID).
		Str("project_id", p.ProjectID).
		Str("tier_id", p.TierID).
		Int64("amount", p.Amount).
		Str("status", string(p.Status)).
		Str("reason", reason).
		Msg("pledge recorded")
}

func resultOf(p *domain.Pledge, replayed bool) *ports.PledgeResult {
	return &ports.PledgeResult{
		PledgeID:  p.PledgeID,
		UserID:    p.UserID,
		ProjectID: p.ProjectID,
		TierID:    p.TierID,
		Amount:    p.Amount,
		CreatedAt: p.CreatedAt,
		Status:    string(p.Status),
		Reason:    string(p.RejectReason),
		Replayed:  replayed,
	}
}

// generatePledgeID returns a unique pledge id in the format
// PL<unix-millis>-<hex suffix>. The random suffix keeps ids collision-free
// under rapid concurrent calls sharing a millisecond.
func generatePledgeID(now time.Time) string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// fallback: nanosecond resolution alone
		return fmt.Sprintf("PL%d", now.UnixNano())
	}
	return fmt.Sprintf("PL%d-%06X", now.UnixMilli(), b)
}
