package services

import (
	"time"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"
	"estate_manager/internal/repository"

	"github.com/go-playground/validator/v10"
)

type SalesService interface {
	CreateLead(lead *models.Lead) error
	GetLead(id uint) (*models.Lead, error)
	GetLeadsByCompany(companyID uint) ([]models.Lead, error)
	UpdateLead(lead *models.Lead) error
	DeleteLead(id uint) error
	// ConvertLead promotes a lead into a client, carrying the contact
	// details over and marking the lead converted.
	ConvertLead(leadID uint) (*models.Client, error)

	CreateClient(client *models.Client) error
	GetClient(id uint) (*models.Client, error)
	GetClientsByCompany(companyID uint) ([]models.Client, error)
	UpdateClient(client *models.Client) error
	DeleteClient(id uint) error
}

type salesService struct {
	salesRepo repository.SalesRepository
	validate  *validator.Validate
}

func NewSalesService(salesRepo repository.SalesRepository) SalesService {
	return &salesService{salesRepo: salesRepo, validate: validator.New()}
}

func (s *salesService) CreateLead(lead *models.Lead) error {
	if err := validateStruct(s.validate, lead); err != nil {
		return err
	}
	if lead.Status == "" {
		lead.Status = string(models.LeadNew)
	}
	return s.salesRepo.CreateLead(lead)
}

func (s *salesService) GetLead(id uint) (*models.Lead, error) {
	return s.salesRepo.GetLeadByID(id)
}

func (s *salesService) GetLeadsByCompany(companyID uint) ([]models.Lead, error) {
	return s.salesRepo.GetLeadsByCompany(companyID)
}

func (s *salesService) UpdateLead(lead *models.Lead) error {
	if err := validateStruct(s.validate, lead); err != nil {
		return err
	}
	if lead.ID == 0 {
		return apperrors.NewValidation("id", "required")
	}
	if _, err := s.salesRepo.GetLeadByID(lead.ID); err != nil {
		return err
	}
	return s.salesRepo.UpdateLead(lead)
}

func (s *salesService) DeleteLead(id uint) error {
	if _, err := s.salesRepo.GetLeadByID(id); err != nil {
		return err
	}
	return s.salesRepo.DeleteLead(id)
}

func (s *salesService) ConvertLead(leadID uint) (*models.Client, error) {
	lead, err := s.salesRepo.GetLeadByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status == string(models.LeadConverted) {
		return nil, apperrors.NewValidation("status", "lead already converted")
	}

	client := &models.Client{
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     lead.Email,
		LeadID:    &lead.ID,
		CompanyID: lead.CompanyID,
	}
	if err := s.salesRepo.CreateClient(client); err != nil {
		return nil, err
	}

	now := time.Now()
	lead.Status = string(models.LeadConverted)
	lead.ConvertedAt = &now
	if err := s.salesRepo.UpdateLead(lead); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *salesService) CreateClient(client *models.Client) error {
	if err := validateStruct(s.validate, client); err != nil {
		return err
	}
	return s.salesRepo.CreateClient(client)
}

func (s *salesService) GetClient(id uint) (*models.Client, error) {
	return s.salesRepo.GetClientByID(id)
}

func (s *salesService) GetClientsByCompany(companyID uint) ([]models.Client, error) {
	return s.salesRepo.GetClientsByCompany(companyID)
}

func (s *salesService) UpdateClient(client *models.Client) error {
	if err := validateStruct(s.validate, client); err != nil {
		return err
	}
	if client.ID == 0 {
		return apperrors.NewValidation("id", "required")
	}
	if _, err := s.salesRepo.GetClientByID(client.ID); err != nil {
		return err
	}
	return s.salesRepo.UpdateClient(client)
}

func (s *salesService) DeleteClient(id uint) error {
	if _, err := s.salesRepo.GetClientByID(id); err != nil {
		return err
	}
	return s.salesRepo.DeleteClient(id)
}
