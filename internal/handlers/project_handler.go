package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "siteproof/internal/errors"
	"siteproof/internal/pagination"
	"siteproof/internal/services"
)

// ProjectHandler handles project and work package reads.
type ProjectHandler struct {
	projectService services.ProjectServicer
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService services.ProjectServicer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects returns the tenant's projects
// @Summary     List projects
// @Description List projects newest-first
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Project] "Projects"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.projectService.ListProjects(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProject returns a single project
// @Summary     Get project
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {object} models.Project "Project"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	project, err := h.projectService.GetProjectByID(projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListWorkPackages returns a project's work packages
// @Summary     List work packages
// @Description List a project's work packages newest-first
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {array} models.WorkPackage "Work packages"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id}/work-packages [get]
func (h *ProjectHandler) ListWorkPackages(c *gin.Context) {
	projectID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	packages, err := h.projectService.ListWorkPackages(projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"work_packages": packages})
}
