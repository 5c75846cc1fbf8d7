package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csfund/crowdfund-system/internal/core/ports"
)

// ProjectHandler handles HTTP requests for browsing the project catalog.
type ProjectHandler struct {
	catalog ports.CatalogService
}

func NewProjectHandler(catalog ports.CatalogService) *ProjectHandler {
	return &ProjectHandler{catalog: catalog}
}

// List handles GET /v1/projects.
//
// @Summary      Browse projects
// @Tags         projects
// @Produce      json
// @Param        q         query     string  false  "Substring match on project name"
// @Param        category  query     string  false  "Category filter; empty or 'all' disables"
// @Param        sort      query     string  false  "Sort order: new, closing, funded"
// @Success      200       {object}  listProjectsResponse
// @Failure      500       {object}  map[string]string
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	summaries, err := h.catalog.ListProjects(ctx, ports.ListProjectsFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		return err
	}

	projects := make([]projectSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		projects = append(projects, toProjectSummaryResponse(s))
	}

	return c.JSON(http.StatusOK, listProjectsResponse{
		Projects:   projects,
		Categories: categories,
	})
}

// Get handles GET /v1/projects/:project_id.
//
// @Summary      Get a project with its reward tiers
// @Tags         projects
// @Produce      json
// @Param        project_id  path      string  true  "Project id (8 digits)"
// @Success      200         {object}  projectDetailResponse
// @Failure      404         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /v1/projects/{project_id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	detail, err := h.catalog.GetProject(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectDetailResponse(detail))
}

// ListTiers handles GET /v1/projects/:project_id/tiers.
//
// @Summary      List the reward tiers of a project
// @Tags         projects
// @Produce      json
// @Param        project_id  path      string  true  "Project id (8 digits)"
// @Success      200         {array}   tierResponse
// @Failure      404         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /v1/projects/{project_id}/tiers [get]
func (h *ProjectHandler) ListTiers(c echo.Context) error {
	tiers, err := h.catalog.ListTiers(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		return err
	}
	out := make([]tierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, toTierResponse(t))
	}
	return c.JSON(http.StatusOK, out)
}

// GetTier handles GET /v1/projects/:project_id/tiers/:tier_id.
//
// @Summary      Get a single reward tier
// @Tags         projects
// @Produce      json
// @Param        project_id  path      string  true  "Project id (8 digits)"
// @Param        tier_id     path      string  true  "Tier id"
// @Success      200         {object}  tierResponse
// @Failure      404         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /v1/projects/{project_id}/tiers/{tier_id} [get]
func (h *ProjectHandler) GetTier(c echo.Context) error {
	tier, err := h.catalog.GetTier(c.Request().Context(), c.Param("project_id"), c.Param("tier_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTierResponse(*tier))
}
