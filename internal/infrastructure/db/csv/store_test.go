package csv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()

	projects := []domain.Project{
		{ProjectID: "12345678", Name: "AI For Schools", Category: "Education",
			GoalAmount: 100000, Deadline: date(2030, 1, 1), RaisedAmount: 25000},
		{ProjectID: "12345679", Name: "Green Farm", Category: "Environment",
			GoalAmount: 80000, Deadline: date(2030, 2, 1), RaisedAmount: 10000},
	}
	tiers := []domain.RewardTier{
		{ProjectID: "12345678", TierID: "T1", Name: "Sticker Pack", MinAmount: 200, Quota: 50},
		{ProjectID: "12345678", TierID: "T2", Name: "T-Shirt", MinAmount: 600, Quota: 30},
		{ProjectID: "12345679", TierID: "T1", Name: "Seed Set", MinAmount: 300, Quota: 40},
	}
	users := []domain.User{
		{UserID: "U01", Username: "alice", Password: "alice123", DisplayName: "Alice"},
	}
	if err := Bootstrap(dir, projects, tiers, users); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOpen_MissingFileIsInitError(t *testing.T) {
	dir := t.TempDir()
	if err := Bootstrap(dir, nil, nil, nil); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "pledges.csv")); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(dir); err == nil {
		t.Fatal("expected error for missing collection file")
	}
}

func TestProjectRepository_ListAndGet(t *testing.T) {
	store := newTestStore(t)
	repo := NewProjectRepository(store)
	ctx := context.Background()

	projects, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	// File order is preserved.
	if projects[0].ProjectID != "12345678" || projects[1].ProjectID != "12345679" {
		t.Errorf("unexpected order: %s, %s", projects[0].ProjectID, projects[1].ProjectID)
	}

	p, err := repo.Get(ctx, "12345679")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Green Farm" || p.GoalAmount != 80000 || !p.Deadline.Equal(date(2030, 2, 1)) {
		t.Errorf("decoded project wrong: %+v", p)
	}

	if _, err := repo.Get(ctx, "99999999"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectRepository_Update(t *testing.T) {
	store := newTestStore(t)
	repo := NewProjectRepository(store)
	ctx := context.Background()

	p, _ := repo.Get(ctx, "12345678")
	p.RaisedAmount = 25500
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	reread, _ := repo.Get(ctx, "12345678")
	if reread.RaisedAmount != 25500 {
		t.Errorf("expected 25500 after rewrite, got %d", reread.RaisedAmount)
	}

	// Other rows survive the rewrite untouched.
	other, _ := repo.Get(ctx, "12345679")
	if other.RaisedAmount != 10000 {
		t.Errorf("unrelated row changed: %+v", other)
	}
}

func TestProjectRepository_UpdateAbsentKeyIsNoop(t *testing.T) {
	store := newTestStore(t)
	repo := NewProjectRepository(store)
	ctx := context.Background()

	ghost := &domain.Project{ProjectID: "99999999", Name: "Ghost", Category: "None",
		GoalAmount: 1, Deadline: date(2030, 1, 1)}
	if err := repo.Update(ctx, ghost); err != nil {
		t.Fatalf("update: %v", err)
	}
	projects, _ := repo.List(ctx)
	if len(projects) != 2 {
		t.Fatalf("no-op update must not add rows, got %d", len(projects))
	}
}

func TestTierRepository_ScopedToProject(t *testing.T) {
	store := newTestStore(t)
	repo := NewTierRepository(store)
	ctx := context.Background()

	tiers, err := repo.ListByProject(ctx, "12345678")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(tiers))
	}

	// T1 exists on both projects; the composite key keeps them apart.
	tier, err := repo.Get(ctx, "12345679", "T1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tier.Name != "Seed Set" {
		t.Errorf("wrong tier resolved: %+v", tier)
	}

	if _, err := repo.Get(ctx, "12345679", "T2"); !errors.Is(err, domain.ErrTierNotFound) {
		t.Fatalf("expected ErrTierNotFound, got %v", err)
	}
}

func TestTierRepository_Update(t *testing.T) {
	store := newTestStore(t)
	repo := NewTierRepository(store)
	ctx := context.Background()

	tier, _ := repo.Get(ctx, "12345678", "T1")
	tier.Quota = 49
	if err := repo.Update(ctx, tier); err != nil {
		t.Fatalf("update: %v", err)
	}

	reread, _ := repo.Get(ctx, "12345678", "T1")
	if reread.Quota != 49 {
		t.Errorf("expected quota 49, got %d", reread.Quota)
	}
	// The same tier id under the other project is untouched.
	other, _ := repo.Get(ctx, "12345679", "T1")
	if other.Quota != 40 {
		t.Errorf("sibling tier changed: %+v", other)
	}
}

func TestUserRepository(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	u, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.UserID != "U01" || u.Password != "alice123" {
		t.Errorf("decoded user wrong: %+v", u)
	}

	if _, err := repo.FindByUsername(ctx, "mallory"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, "U99"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPledgeRepository_AppendRoundTrip(t *testing.T) {
	store := newTestStore(t)
	repo := NewPledgeRepository(store)
	ctx := context.Background()

	created := time.Date(2026, 3, 15, 12, 0, 1, 0, time.UTC)
	pledges := []domain.Pledge{
		{PledgeID: "PL1", UserID: "U01", ProjectID: "12345678", CreatedAt: created,
			Amount: 500, TierID: "T1", Status: domain.StatusSuccess},
		{PledgeID: "PL2", UserID: "U01", ProjectID: "12345678", CreatedAt: created.Add(time.Second),
			Amount: 0, Status: domain.StatusRejected, RejectReason: domain.ReasonNonPositiveAmount},
	}
	for i := range pledges {
		if err := repo.Append(ctx, &pledges[i]); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 pledges, got %d", len(all))
	}
	// Insertion order.
	if all[0].PledgeID != "PL1" || all[1].PledgeID != "PL2" {
		t.Errorf("order wrong: %s, %s", all[0].PledgeID, all[1].PledgeID)
	}
	if !all[0].CreatedAt.Equal(created) {
		t.Errorf("created_at mangled: %v", all[0].CreatedAt)
	}
	// Optional fields: absent tier and reason come back empty, not zero-ish.
	if all[1].TierID != "" || all[0].RejectReason != "" {
		t.Errorf("optional fields wrong: %+v", all)
	}
	if all[1].RejectReason != domain.ReasonNonPositiveAmount {
		t.Errorf("reason lost: %+v", all[1])
	}

	got, err := repo.Get(ctx, "PL2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusRejected {
		t.Errorf("unexpected pledge: %+v", got)
	}
}

func TestPledgeRepository_ListByUser(t *testing.T) {
	store := newTestStore(t)
	repo := NewPledgeRepository(store)
	ctx := context.Background()

	for _, p := range []domain.Pledge{
		{PledgeID: "PL1", UserID: "U01", ProjectID: "12345678", CreatedAt: time.Now().UTC(), Amount: 100, Status: domain.StatusSuccess},
		{PledgeID: "PL2", UserID: "U02", ProjectID: "12345678", CreatedAt: time.Now().UTC(), Amount: 200, Status: domain.StatusSuccess},
	} {
		pledge := p
		if err := repo.Append(ctx, &pledge); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	mine, err := repo.ListByUser(ctx, "U01")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(mine) != 1 || mine[0].PledgeID != "PL1" {
		t.Fatalf("unexpected result: %+v", mine)
	}
}

// Names containing commas and quotes survive the CSV round trip.
func TestCSVQuotingRoundTrip(t *testing.T) {
	dir := t.TempDir()
	projects := []domain.Project{{
		ProjectID: "12345678", Name: `Robots, "Lasers" & More`, Category: "Education",
		GoalAmount: 1000, Deadline: date(2030, 1, 1), RaisedAmount: 0,
	}}
	if err := Bootstrap(dir, projects, nil, nil); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	p, err := NewProjectRepository(store).Get(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(p.Name, `"Lasers"`) {
		t.Errorf("name mangled: %q", p.Name)
	}
}
