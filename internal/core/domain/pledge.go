package domain

import (
	"errors"
	"time"
)

var ErrPledgeNotFound = errors.New("pledge not found")

// PledgeStatus is the final outcome of a pledge attempt.
type PledgeStatus string

const (
	StatusSuccess  PledgeStatus = "success"
	StatusRejected PledgeStatus = "rejected"
)

// Pledge records one backer's attempt to commit money to a project.
// Pledges are append-only: once written they are never mutated or deleted,
// whatever their outcome. Rejected attempts stay in the ledger as an audit
// trail.
type Pledge struct {
	PledgeID     string       `json:"pledge_id"`
	UserID       string       `json:"user_id"`
	ProjectID    string       `json:"project_id"`
	CreatedAt    time.Time    `json:"created_at"`
	Amount       int64        `json:"amount"`
	TierID       string       `json:"tier_id,omitempty"` // empty when no tier was referenced
	Status       PledgeStatus `json:"status"`
	RejectReason RejectReason `json:"reject_reason,omitempty"` // set iff Status is rejected
}
