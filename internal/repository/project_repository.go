package repository

import (
	"errors"
	"time"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository interface {
	WithTx(tx *gorm.DB) ProjectRepository
	Create(project *models.Project) error
	GetByID(id uint) (*models.Project, error)
	GetByCompanyID(companyID uint) ([]models.Project, error)
	GetAll() ([]models.Project, error)
	Update(project *models.Project) error
	UpdateProgress(projectID uint, progress int) error
	Delete(id uint) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) WithTx(tx *gorm.DB) ProjectRepository {
	if tx == nil {
		return r
	}
	return &projectRepository{db: tx}
}

func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("project", id)
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetByCompanyID(companyID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("company_id = ?", companyID).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetAll() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(project *models.Project) error {
	result := r.db.Save(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("project", project.ID)
	}
	return nil
}

// UpdateProgress writes only the derived progress column.
func (r *projectRepository) UpdateProgress(projectID uint, progress int) error {
	result := r.db.Model(&models.Project{}).Where("id = ?", projectID).Updates(map[string]interface{}{
		"progress":   progress,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("project", projectID)
	}
	return nil
}

func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}
