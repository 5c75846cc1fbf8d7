package domain

import (
	"testing"
	"time"
)

var ruleNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func openProject() *Project {
	return &Project{
		ProjectID:    "12345678",
		Name:         "Green Farm",
		Category:     "Environment",
		GoalAmount:   80000,
		Deadline:     ruleNow.AddDate(0, 1, 0),
		RaisedAmount: 10000,
	}
}

func TestEvaluatePledge_Admissible(t *testing.T) {
	tier := &RewardTier{ProjectID: "12345678", TierID: "T1", MinAmount: 200, Quota: 1}
	if got := EvaluatePledge(500, openProject(), tier, ruleNow); got != "" {
		t.Fatalf("expected admissible, got %q", got)
	}
}

func TestEvaluatePledge_NoTier(t *testing.T) {
	if got := EvaluatePledge(1, openProject(), nil, ruleNow); got != "" {
		t.Fatalf("expected admissible without tier, got %q", got)
	}
}

func TestEvaluatePledge_DeadlinePassed(t *testing.T) {
	p := openProject()
	p.Deadline = ruleNow.AddDate(0, 0, -1)
	if got := EvaluatePledge(500, p, nil, ruleNow); got != ReasonDeadlinePassed {
		t.Fatalf("expected %q, got %q", ReasonDeadlinePassed, got)
	}

	// Deadline on the pledge day counts as passed.
	p.Deadline = DateOf(ruleNow)
	if got := EvaluatePledge(500, p, nil, ruleNow); got != ReasonDeadlinePassed {
		t.Fatalf("same-day deadline: expected %q, got %q", ReasonDeadlinePassed, got)
	}
}

func TestEvaluatePledge_NonPositiveAmount(t *testing.T) {
	for _, amount := range []int64{0, -100} {
		if got := EvaluatePledge(amount, openProject(), nil, ruleNow); got != ReasonNonPositiveAmount {
			t.Errorf("amount=%d: expected %q, got %q", amount, ReasonNonPositiveAmount, got)
		}
	}
}

func TestEvaluatePledge_BelowTierMinimum(t *testing.T) {
	tier := &RewardTier{MinAmount: 600, Quota: 10}
	if got := EvaluatePledge(599, openProject(), tier, ruleNow); got != ReasonBelowTierMinimum {
		t.Fatalf("expected %q, got %q", ReasonBelowTierMinimum, got)
	}
}

func TestEvaluatePledge_TierSoldOut(t *testing.T) {
	tier := &RewardTier{MinAmount: 200, Quota: 0}
	if got := EvaluatePledge(500, openProject(), tier, ruleNow); got != ReasonTierSoldOut {
		t.Fatalf("expected %q, got %q", ReasonTierSoldOut, got)
	}
}

// The first failing check determines the reason: deadline dominates amount,
// amount dominates tier checks.
func TestEvaluatePledge_CheckOrder(t *testing.T) {
	expired := openProject()
	expired.Deadline = ruleNow.AddDate(0, 0, -7)
	soldOut := &RewardTier{MinAmount: 1000, Quota: 0}

	if got := EvaluatePledge(-5, expired, soldOut, ruleNow); got != ReasonDeadlinePassed {
		t.Fatalf("deadline must dominate: got %q", got)
	}
	if got := EvaluatePledge(-5, openProject(), soldOut, ruleNow); got != ReasonNonPositiveAmount {
		t.Fatalf("amount must dominate tier checks: got %q", got)
	}
	if got := EvaluatePledge(500, openProject(), soldOut, ruleNow); got != ReasonBelowTierMinimum {
		t.Fatalf("tier minimum precedes quota: got %q", got)
	}
}

func TestRejectReason_Message(t *testing.T) {
	if msg := ReasonTierSoldOut.Message(); msg != "Tier sold out" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if msg := RejectReason("weird").Message(); msg != "weird" {
		t.Fatalf("unknown reason should pass through, got %q", msg)
	}
}
