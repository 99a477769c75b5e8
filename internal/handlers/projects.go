package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

type ProjectHandler struct {
	projects *services.ProjectService
	log      *logger.Logger
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects, log: logger.New("ProjectHandler")}
}

type ActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// ListPublic returns approved, active projects.
// @Summary List projects
// @Tags projects
// @Produce json
// @Param style query string false "Style key filter"
// @Success 200 {object} map[string]interface{}
// @Router /api/projects [get]
func (h *ProjectHandler) ListPublic(c echo.Context) error {
	page, limit := pagination(c)
	projects, total, err := h.projects.PublicList(c.Request().Context(), c.QueryParam("style"), page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, projects, total, page, limit)
}

// GetPublic returns one approved, active project.
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]string
// @Router /api/projects/{id} [get]
func (h *ProjectHandler) GetPublic(c echo.Context) error {
	project, err := h.projects.PublicGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// ListOwn returns all of the caller's projects, every status.
// @Summary List own projects
// @Tags artisan
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/artisan/projects [get]
func (h *ProjectHandler) ListOwn(c echo.Context) error {
	page, limit := pagination(c)
	projects, total, err := h.projects.ListByArtisan(c.Request().Context(), middleware.GetUserID(c), page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, projects, total, page, limit)
}

// GetOwn returns one of the caller's projects, any status.
// @Summary Get own project
// @Tags artisan
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 403 {object} map[string]string "Not the owner"
// @Router /api/artisan/projects/{id} [get]
func (h *ProjectHandler) GetOwn(c echo.Context) error {
	project, err := h.projects.GetOwn(c.Request().Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Submit creates a project for the calling artisan; it enters moderation
// as pending.
// @Summary Submit a project
// @Tags artisan
// @Accept json
// @Produce json
// @Param request body models.Project true "Project"
// @Success 201 {object} models.Project
// @Router /api/artisan/projects [post]
func (h *ProjectHandler) Submit(c echo.Context) error {
	var project models.Project
	if err := c.Bind(&project); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	project.ArtisanID = middleware.GetUserID(c)
	if err := c.Validate(project); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.projects.Submit(c.Request().Context(), middleware.GetUserID(c), &project); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// UpdateOwn edits the caller's project; the edit sends it back to pending.
// @Summary Update own project
// @Tags artisan
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body models.Project true "Project"
// @Success 200 {object} models.Project
// @Failure 403 {object} map[string]string "Not the owner"
// @Router /api/artisan/projects/{id} [put]
func (h *ProjectHandler) UpdateOwn(c echo.Context) error {
	var changes models.Project
	if err := c.Bind(&changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	changes.ArtisanID = middleware.GetUserID(c)
	if err := c.Validate(changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	project, err := h.projects.UpdateOwn(c.Request().Context(), middleware.GetUserID(c), c.Param("id"), &changes)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// SetActive flips the caller's visibility toggle on an approved project.
// @Summary Toggle project visibility
// @Tags artisan
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ActiveRequest true "Toggle"
// @Success 200 {object} models.Project
// @Failure 409 {object} map[string]string "Project not approved"
// @Router /api/artisan/projects/{id}/active [patch]
func (h *ProjectHandler) SetActive(c echo.Context) error {
	var req ActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	project, err := h.projects.SetActive(c.Request().Context(), middleware.GetUserID(c), c.Param("id"), *req.IsActive)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteOwn removes the caller's project.
// @Summary Delete own project
// @Tags artisan
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]bool
// @Router /api/artisan/projects/{id} [delete]
func (h *ProjectHandler) DeleteOwn(c echo.Context) error {
	if err := h.projects.DeleteOwn(c.Request().Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListAdmin returns all projects pending first, for the moderation queue.
// @Summary List projects for moderation
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/projects [get]
func (h *ProjectHandler) ListAdmin(c echo.Context) error {
	page, limit := pagination(c)
	projects, total, err := h.projects.AdminList(c.Request().Context(), c.QueryParam("status"), page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, projects, total, page, limit)
}

// GetAdmin returns any project with its owner, regardless of status.
// @Summary Get a project for moderation
// @Tags admin
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]string
// @Router /api/admin/projects/{id} [get]
func (h *ProjectHandler) GetAdmin(c echo.Context) error {
	project, err := h.projects.Get(c.Request().Context(), c.Param("id"), "Artisan")
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// CreateAdmin adds a project on behalf of an artisan. The owner must be an
// existing artisan account; the project still enters moderation as pending.
// @Summary Create a project
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.Project true "Project"
// @Success 201 {object} models.Project
// @Failure 404 {object} map[string]string "Unknown artisan"
// @Router /api/admin/projects [post]
func (h *ProjectHandler) CreateAdmin(c echo.Context) error {
	var project models.Project
	if err := c.Bind(&project); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(project); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.projects.AdminCreate(c.Request().Context(), &project); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// UpdateAdmin edits any project without disturbing its moderation status.
// @Summary Update a project
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body models.Project true "Project"
// @Success 200 {object} models.Project
// @Router /api/admin/projects/{id} [put]
func (h *ProjectHandler) UpdateAdmin(c echo.Context) error {
	var changes models.Project
	if err := c.Bind(&changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	project, err := h.projects.AdminUpdate(c.Request().Context(), c.Param("id"), &changes)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// SetStatus applies a moderation decision to a project.
// @Summary Moderate a project
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body StatusRequest true "Decision"
// @Success 200 {object} models.Project
// @Failure 400 {object} map[string]string "Invalid or unchanged status"
// @Router /api/admin/projects/{id}/status [patch]
func (h *ProjectHandler) SetStatus(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	project, err := h.projects.SetStatus(c.Request().Context(), c.Param("id"), models.ContentStatus(req.Status))
	if err != nil {
		return serviceError(c, err)
	}

	h.log.Info("Project %s moderated: %s", project.ID, project.Status)
	return c.JSON(http.StatusOK, project)
}

// DeleteAdmin removes any project.
// @Summary Delete a project
// @Tags admin
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]bool
// @Router /api/admin/projects/{id} [delete]
func (h *ProjectHandler) DeleteAdmin(c echo.Context) error {
	if _, err := h.projects.Get(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	if err := h.projects.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
