package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csfund/crowdfund-system/internal/core/ports"
)

// PledgeHandler handles HTTP requests for the pledge ledger.
type PledgeHandler struct {
	service ports.PledgeService
}

func NewPledgeHandler(service ports.PledgeService) *PledgeHandler {
	return &PledgeHandler{service: service}
}

// Create handles POST /v1/pledges.
//
// Both outcomes return 201: a rejected pledge is a recorded ledger entry,
// not a transport failure. The status and reason fields carry the verdict.
//
// @Summary      Submit a pledge
// @Tags         pledges
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string               false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createPledgeRequest  true   "Pledge details"
// @Success      201              {object}  pledgeResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      500              {object}  map[string]string
// @Router       /v1/pledges [post]
func (h *PledgeHandler) Create(c echo.Context) error {
	var req createPledgeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.CreatePledge(c.Request().Context(), ports.CreatePledgeInput{
		UserID:         userID,
		ProjectID:      req.ProjectID,
		Amount:         req.Amount,
		TierID:         req.TierID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPledgeResponse(result))
}
