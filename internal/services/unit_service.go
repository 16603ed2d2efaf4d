package services

import (
	"time"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/logger"
	"estate_manager/internal/models"
	"estate_manager/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UnitSummaryCache caches a unit's financial snapshot for list screens.
type UnitSummaryCache interface {
	SetUnitSummary(unitID uint, summary interface{}, ttl time.Duration) error
	GetUnitSummary(unitID uint, dest interface{}) error
	DeleteUnitSummary(unitID uint) error
}

type UnitSummary struct {
	UnitID         uint            `json:"unit_id"`
	FlatNo         string          `json:"flat_no"`
	FlatValue      decimal.Decimal `json:"flat_value"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	BalanceAmount  decimal.Decimal `json:"balance_amount"`
	Status         string          `json:"status"`
}

type UnitService interface {
	CreateUnit(unit *models.UnitFlat) error
	GetUnit(id uint) (*models.UnitFlat, error)
	GetUnitsByProject(projectID uint) ([]models.UnitFlat, error)
	GetAllUnits() ([]models.UnitFlat, error)
	GetUnitSummary(id uint) (*UnitSummary, error)
	// UpdateUnit accepts only the authored fields. Derived money columns
	// are re-derived here; a project re-association seeds the customer
	// schedule and a balance change re-derives existing schedule amounts.
	UpdateUnit(unit *models.UnitFlat) error
	DeleteUnit(id uint) error
}

type unitService struct {
	txm             repository.TxManager
	unitRepo        repository.UnitRepository
	projectRepo     repository.ProjectRepository
	scheduleService UnitScheduleService
	cache           UnitSummaryCache
	cacheTTL        time.Duration
	validate        *validator.Validate
	log             *logrus.Logger
}

func NewUnitService(
	txm repository.TxManager,
	unitRepo repository.UnitRepository,
	projectRepo repository.ProjectRepository,
	scheduleService UnitScheduleService,
	cache UnitSummaryCache,
	cacheTTL time.Duration,
	log *logrus.Logger,
) UnitService {
	return &unitService{
		txm:             txm,
		unitRepo:        unitRepo,
		projectRepo:     projectRepo,
		scheduleService: scheduleService,
		cache:           cache,
		cacheTTL:        cacheTTL,
		validate:        validator.New(),
		log:             log,
	}
}

func (s *unitService) CreateUnit(unit *models.UnitFlat) error {
	if err := validateStruct(s.validate, unit); err != nil {
		return err
	}
	if unit.Status == "" {
		unit.Status = string(models.UnitAvailable)
	}
	if err := validateUnitStatus(unit); err != nil {
		return err
	}
	if _, err := s.projectRepo.GetByID(unit.ProjectID); err != nil {
		return err
	}

	// A fresh unit has no receipts yet.
	unit.ReceivedAmount = decimal.Zero
	unit.RecalculateDerived()

	err := s.txm.Transaction(func(tx *gorm.DB) error {
		if err := s.unitRepo.WithTx(tx).Create(unit); err != nil {
			return err
		}
		return s.scheduleService.PopulateFromProjectMilestones(tx, unit.ID, unit.ProjectID)
	})
	if err != nil {
		return err
	}

	s.cacheSummary(unit)
	return nil
}

func (s *unitService) GetUnit(id uint) (*models.UnitFlat, error) {
	return s.unitRepo.GetByID(id)
}

func (s *unitService) GetUnitsByProject(projectID uint) ([]models.UnitFlat, error) {
	return s.unitRepo.GetByProjectID(projectID)
}

func (s *unitService) GetAllUnits() ([]models.UnitFlat, error) {
	return s.unitRepo.GetAll()
}

func (s *unitService) GetUnitSummary(id uint) (*UnitSummary, error) {
	if s.cache != nil {
		var summary UnitSummary
		if err := s.cache.GetUnitSummary(id, &summary); err == nil {
			return &summary, nil
		}
	}
	unit, err := s.unitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	summary := summaryOf(unit)
	s.cacheSummary(unit)
	return summary, nil
}

func (s *unitService) UpdateUnit(unit *models.UnitFlat) error {
	if err := validateStruct(s.validate, unit); err != nil {
		return err
	}
	if unit.ID == 0 {
		return apperrors.NewValidation("id", "required")
	}

	current, err := s.unitRepo.GetByID(unit.ID)
	if err != nil {
		return err
	}
	if unit.Status == "" {
		unit.Status = current.Status
	}
	if err := validateUnitStatus(unit); err != nil {
		return err
	}
	if unit.ProjectID != current.ProjectID {
		if _, err := s.projectRepo.GetByID(unit.ProjectID); err != nil {
			return err
		}
	}

	// Received amount belongs to the receipt ledger; carry it over and
	// re-derive value and balance from the authored fields.
	unit.ReceivedAmount = current.ReceivedAmount
	unit.CreatedAt = current.CreatedAt
	unit.RecalculateDerived()

	projectChanged := unit.ProjectID != current.ProjectID
	balanceChanged := !unit.BalanceAmount.Equal(current.BalanceAmount)

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		if err := s.unitRepo.WithTx(tx).Update(unit); err != nil {
			return err
		}
		if projectChanged {
			if err := s.scheduleService.PopulateFromProjectMilestones(tx, unit.ID, unit.ProjectID); err != nil {
				return err
			}
		}
		if balanceChanged {
			if err := s.scheduleService.RecalculateAmounts(tx, unit.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cacheSummary(unit)
	return nil
}

func (s *unitService) DeleteUnit(id uint) error {
	if _, err := s.unitRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.unitRepo.Delete(id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteUnitSummary(id); err != nil {
			logger.LogError(s.log, "services", "DeleteUnit", "unit summary cache delete", id, err)
		}
	}
	return nil
}

func validateUnitStatus(unit *models.UnitFlat) error {
	switch unit.Status {
	case string(models.UnitAvailable):
		return nil
	case string(models.UnitBooked), string(models.UnitSold):
		if unit.ClientID == nil {
			return apperrors.NewValidation("client_id", "required for booked or sold units")
		}
		return nil
	default:
		return apperrors.NewValidation("status", "must be available, booked or sold")
	}
}

func summaryOf(unit *models.UnitFlat) *UnitSummary {
	return &UnitSummary{
		UnitID:         unit.ID,
		FlatNo:         unit.FlatNo,
		FlatValue:      unit.FlatValue,
		ReceivedAmount: unit.ReceivedAmount,
		BalanceAmount:  unit.BalanceAmount,
		Status:         unit.Status,
	}
}

func (s *unitService) cacheSummary(unit *models.UnitFlat) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetUnitSummary(unit.ID, summaryOf(unit), s.cacheTTL); err != nil {
		logger.LogError(s.log, "services", "cacheSummary", "unit summary cache write", unit.ID, err)
	}
}
