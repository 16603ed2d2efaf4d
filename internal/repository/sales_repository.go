package repository

import (
	"errors"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"

	"gorm.io/gorm"
)

type SalesRepository interface {
	CreateCompany(company *models.Company) error
	GetCompanyByID(id uint) (*models.Company, error)
	GetCompanyByName(name string) (*models.Company, error)

	CreateLead(lead *models.Lead) error
	GetLeadByID(id uint) (*models.Lead, error)
	GetLeadsByCompany(companyID uint) ([]models.Lead, error)
	UpdateLead(lead *models.Lead) error
	DeleteLead(id uint) error

	CreateClient(client *models.Client) error
	GetClientByID(id uint) (*models.Client, error)
	GetClientsByCompany(companyID uint) ([]models.Client, error)
	UpdateClient(client *models.Client) error
	DeleteClient(id uint) error
}

type salesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) CreateCompany(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *salesRepository) GetCompanyByID(id uint) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("company", id)
		}
		return nil, err
	}
	return &company, nil
}

func (r *salesRepository) GetCompanyByName(name string) (*models.Company, error) {
	var company models.Company
	err := r.db.Where("name = ?", name).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *salesRepository) CreateLead(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *salesRepository) GetLeadByID(id uint) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("lead", id)
		}
		return nil, err
	}
	return &lead, nil
}

func (r *salesRepository) GetLeadsByCompany(companyID uint) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Where("company_id = ?", companyID).Find(&leads).Error
	return leads, err
}

func (r *salesRepository) UpdateLead(lead *models.Lead) error {
	result := r.db.Save(lead)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("lead", lead.ID)
	}
	return nil
}

func (r *salesRepository) DeleteLead(id uint) error {
	return r.db.Delete(&models.Lead{}, id).Error
}

func (r *salesRepository) CreateClient(client *models.Client) error {
	return r.db.Create(client).Error
}

func (r *salesRepository) GetClientByID(id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("client", id)
		}
		return nil, err
	}
	return &client, nil
}

func (r *salesRepository) GetClientsByCompany(companyID uint) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Where("company_id = ?", companyID).Find(&clients).Error
	return clients, err
}

func (r *salesRepository) UpdateClient(client *models.Client) error {
	result := r.db.Save(client)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("client", client.ID)
	}
	return nil
}

func (r *salesRepository) DeleteClient(id uint) error {
	return r.db.Delete(&models.Client{}, id).Error
}
