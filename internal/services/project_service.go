package services

import (
	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"
	"estate_manager/internal/repository"

	"github.com/go-playground/validator/v10"
)

type ProjectService interface {
	CreateProject(project *models.Project) error
	GetProject(id uint) (*models.Project, error)
	GetAllProjects() ([]models.Project, error)
	UpdateProject(project *models.Project) error
	DeleteProject(id uint) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	salesRepo   repository.SalesRepository
	validate    *validator.Validate
}

func NewProjectService(projectRepo repository.ProjectRepository, salesRepo repository.SalesRepository) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		salesRepo:   salesRepo,
		validate:    validator.New(),
	}
}

func (s *projectService) CreateProject(project *models.Project) error {
	if err := validateStruct(s.validate, project); err != nil {
		return err
	}
	if _, err := s.salesRepo.GetCompanyByID(project.CompanyID); err != nil {
		return err
	}
	// Progress is derived from milestones; a new project has none.
	project.Progress = 0
	if project.Status == "" {
		project.Status = string(models.ProjectOngoing)
	}
	return s.projectRepo.Create(project)
}

func (s *projectService) GetProject(id uint) (*models.Project, error) {
	return s.projectRepo.GetByID(id)
}

func (s *projectService) GetAllProjects() ([]models.Project, error) {
	return s.projectRepo.GetAll()
}

func (s *projectService) UpdateProject(project *models.Project) error {
	if err := validateStruct(s.validate, project); err != nil {
		return err
	}
	if project.ID == 0 {
		return apperrors.NewValidation("id", "required")
	}
	current, err := s.projectRepo.GetByID(project.ID)
	if err != nil {
		return err
	}
	// Progress is never authored through this path.
	project.Progress = current.Progress
	project.CreatedAt = current.CreatedAt
	return s.projectRepo.Update(project)
}

func (s *projectService) DeleteProject(id uint) error {
	if _, err := s.projectRepo.GetByID(id); err != nil {
		return err
	}
	return s.projectRepo.Delete(id)
}
