package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csfund/crowdfund-system/internal/core/ports"
)

// StatsHandler serves the read-side pledge aggregates.
type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Me handles GET /v1/stats/me.
//
// @Summary      The authenticated backer's pledge stats and history
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userStatsResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/stats/me [get]
func (h *StatsHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	stats, err := h.stats.UserStats(ctx, userID)
	if err != nil {
		return err
	}
	history, err := h.stats.UserHistory(ctx, userID)
	if err != nil {
		return err
	}

	items := make([]historyItemResponse, 0, len(history))
	for _, item := range history {
		items = append(items, toHistoryItemResponse(item))
	}

	return c.JSON(http.StatusOK, userStatsResponse{
		SuccessCount:  stats.SuccessCount,
		RejectedCount: stats.RejectedCount,
		TotalAmount:   stats.TotalAmount,
		History:       items,
	})
}

// Global handles GET /v1/stats.
//
// @Summary      Platform-wide pledge outcome counts
// @Tags         stats
// @Produce      json
// @Success      200  {object}  globalStatsResponse
// @Failure      500  {object}  map[string]string
// @Router       /v1/stats [get]
func (h *StatsHandler) Global(c echo.Context) error {
	stats, err := h.stats.GlobalStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, globalStatsResponse{
		SuccessCount:  stats.SuccessCount,
		RejectedCount: stats.RejectedCount,
	})
}
