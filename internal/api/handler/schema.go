package handler

import (
	"time"

	"github.com/csfund/crowdfund-system/internal/core/domain"
	"github.com/csfund/crowdfund-system/internal/core/ports"
)

const dateLayout = "2006-01-02"

// --- Requests ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// createPledgeRequest deliberately leaves amount unconstrained: a
// non-positive amount is a business rejection the ledger records, not a
// payload error.
type createPledgeRequest struct {
	ProjectID string `json:"project_id" validate:"required,len=8,numeric"`
	Amount    int64  `json:"amount"`
	TierID    string `json:"tier_id,omitempty"`
}

// --- Responses ---

type userResponse struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type tierResponse struct {
	TierID    string `json:"tier_id"`
	Name      string `json:"name"`
	MinAmount int64  `json:"min_amount"`
	Quota     int64  `json:"quota"`
}

type projectSummaryResponse struct {
	ProjectID     string `json:"project_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	GoalAmount    int64  `json:"goal_amount"`
	RaisedAmount  int64  `json:"raised_amount"`
	Deadline      string `json:"deadline"`
	PercentFunded int    `json:"percent_funded"`
	DaysLeft      int    `json:"days_left"`
	ClosingSoon   bool   `json:"closing_soon"`
	FullyFunded   bool   `json:"fully_funded"`
}

type projectDetailResponse struct {
	ProjectID     string         `json:"project_id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	GoalAmount    int64          `json:"goal_amount"`
	RaisedAmount  int64          `json:"raised_amount"`
	Deadline      string         `json:"deadline"`
	PercentFunded int            `json:"percent_funded"`
	Tiers         []tierResponse `json:"tiers"`
}

type listProjectsResponse struct {
	Projects   []projectSummaryResponse `json:"projects"`
	Categories []string                 `json:"categories"`
}

type pledgeResponse struct {
	PledgeID  string `json:"pledge_id"`
	ProjectID string `json:"project_id"`
	TierID    string `json:"tier_id,omitempty"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
	Replayed  bool   `json:"replayed,omitempty"`
}

type historyItemResponse struct {
	PledgeID    string `json:"pledge_id"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	TierID      string `json:"tier_id,omitempty"`
	Amount      int64  `json:"amount"`
	CreatedAt   string `json:"created_at"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

type userStatsResponse struct {
	SuccessCount  int                   `json:"success_count"`
	RejectedCount int                   `json:"rejected_count"`
	TotalAmount   int64                 `json:"total_amount"`
	History       []historyItemResponse `json:"history"`
}

type globalStatsResponse struct {
	SuccessCount  int `json:"success_count"`
	RejectedCount int `json:"rejected_count"`
}

// --- Mappers ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		UserID:      u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

func toTierResponse(t domain.RewardTier) tierResponse {
	return tierResponse{
		TierID:    t.TierID,
		Name:      t.Name,
		MinAmount: t.MinAmount,
		Quota:     t.Quota,
	}
}

func toProjectSummaryResponse(s ports.ProjectSummary) projectSummaryResponse {
	return projectSummaryResponse{
		ProjectID:     s.Project.ProjectID,
		Name:          s.Project.Name,
		Category:      s.Project.Category,
		GoalAmount:    s.Project.GoalAmount,
		RaisedAmount:  s.Project.RaisedAmount,
		Deadline:      s.Project.Deadline.Format(dateLayout),
		PercentFunded: s.PercentFunded,
		DaysLeft:      s.DaysLeft,
		ClosingSoon:   s.ClosingSoon,
		FullyFunded:   s.FullyFunded,
	}
}

func toProjectDetailResponse(d *ports.ProjectDetail) projectDetailResponse {
	tiers := make([]tierResponse, 0, len(d.Tiers))
	for _, t := range d.Tiers {
		tiers = append(tiers, toTierResponse(t))
	}
	return projectDetailResponse{
		ProjectID:     d.Project.ProjectID,
		Name:          d.Project.Name,
		Category:      d.Project.Category,
		GoalAmount:    d.Project.GoalAmount,
		RaisedAmount:  d.Project.RaisedAmount,
		Deadline:      d.Project.Deadline.Format(dateLayout),
		PercentFunded: d.PercentFunded,
		Tiers:         tiers,
	}
}

func toPledgeResponse(r *ports.PledgeResult) pledgeResponse {
	resp := pledgeResponse{
		PledgeID:  r.PledgeID,
		ProjectID: r.ProjectID,
		TierID:    r.TierID,
		Amount:    r.Amount,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		Status:    r.Status,
		Reason:    r.Reason,
		Replayed:  r.Replayed,
	}
	if r.Reason != "" {
		resp.Message = domain.RejectReason(r.Reason).Message()
	}
	return resp
}

func toHistoryItemResponse(item ports.PledgeHistoryItem) historyItemResponse {
	return historyItemResponse{
		PledgeID:    item.Pledge.PledgeID,
		ProjectID:   item.Pledge.ProjectID,
		ProjectName: item.ProjectName,
		TierID:      item.Pledge.TierID,
		Amount:      item.Pledge.Amount,
		CreatedAt:   item.Pledge.CreatedAt.UTC().Format(time.RFC3339),
		Status:      string(item.Pledge.Status),
		Reason:      string(item.Pledge.RejectReason),
	}
}
