package domain

import "time"

// RejectReason is the stable code stored and reported for a rejected pledge.
// The empty value means the pledge is admissible.
type RejectReason string

const (
	ReasonProjectNotFound   RejectReason = "project_not_found"
	ReasonTierNotFound      RejectReason = "tier_not_found"
	ReasonDeadlinePassed    RejectReason = "deadline_passed"
	ReasonNonPositiveAmount RejectReason = "non_positive_amount"
	ReasonBelowTierMinimum  RejectReason = "below_tier_minimum"
	ReasonTierSoldOut       RejectReason = "tier_sold_out"
)

// Message returns the human-readable form shown to the end user.
func (r RejectReason) Message() string {
	switch r {
	case ReasonProjectNotFound:
		return "Project not found"
	case ReasonTierNotFound:
		return "Tier not found"
	case ReasonDeadlinePassed:
		return "Project deadline passed"
	case ReasonNonPositiveAmount:
		return "Amount must be > 0"
	case ReasonBelowTierMinimum:
		return "Amount below tier minimum"
	case ReasonTierSoldOut:
		return "Tier sold out"
	}
	return string(r)
}

// EvaluatePledge decides whether a pledge is admissible against the current
// project and tier state. tier may be nil when no tier was referenced.
//
// Checks run in fixed order and the first failure wins: deadline, then
// amount, then tier minimum, then tier quota. The function is total and has
// no side effects.
func EvaluatePledge(amount int64, project *Project, tier *RewardTier, now time.Time) RejectReason {
	if !DateOf(project.Deadline).After(DateOf(now)) {
		return ReasonDeadlinePassed
	}
	if amount <= 0 {
		return ReasonNonPositiveAmount
	}
	if tier != nil {
		if amount < tier.MinAmount {
			return ReasonBelowTierMinimum
		}
		if tier.Quota <= 0 {
			return ReasonTierSoldOut
		}
	}
	return ""
}
