package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "siteproof/internal/errors"
	"siteproof/internal/models"
	"siteproof/internal/pagination"
)

// projectService provides read access to projects and work packages.
type projectService struct {
	db *gorm.DB
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(db *gorm.DB) ProjectServicer {
	return &projectService{db: db}
}

// ListProjects returns projects newest-first.
func (s *projectService) ListProjects(page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var projects []models.Project
	if err := s.db.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(projects, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetProjectByID retrieves a single project.
func (s *projectService) GetProjectByID(id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &project, nil
}

// ListWorkPackages returns a project's work packages newest-first.
func (s *projectService) ListWorkPackages(projectID string) ([]models.WorkPackage, error) {
	if _, err := s.GetProjectByID(projectID); err != nil {
		return nil, err
	}

	var packages []models.WorkPackage
	if err := s.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&packages).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return packages, nil
}
