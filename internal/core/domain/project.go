package domain

import (
	"errors"
	"time"
)

var ErrInvalidProjectID = errors.New("project id must be 8 digits and not start with 0")
var ErrInvalidGoal = errors.New("goal amount must be greater than zero")
var ErrPastDeadline = errors.New("deadline must be in the future")
var ErrProjectNotFound = errors.New("project not found")

// Project is a crowdfunding campaign that backers pledge money toward.
// RaisedAmount only ever grows, and only through a successful pledge
// recorded by the ledger.
type Project struct {
	ProjectID    string    `json:"project_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	GoalAmount   int64     `json:"goal_amount"`
	Deadline     time.Time `json:"deadline"` // calendar date; time of day is ignored
	RaisedAmount int64     `json:"raised_amount"`
}

// Validate performs the structural checks applied at creation/import time.
// It is not re-run on reads.
func (p *Project) Validate(today time.Time) error {
	if !validProjectID(p.ProjectID) {
		return ErrInvalidProjectID
	}
	if p.GoalAmount <= 0 {
		return ErrInvalidGoal
	}
	if !DateOf(p.Deadline).After(DateOf(today)) {
		return ErrPastDeadline
	}
	return nil
}

// validProjectID reports whether id is exactly 8 ASCII digits with a
// non-zero leading digit.
func validProjectID(id string) bool {
	if len(id) != 8 || id[0] == '0' {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// DateOf truncates t to its calendar date in UTC. Deadlines are compared
// date-to-date, never by clock time.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
