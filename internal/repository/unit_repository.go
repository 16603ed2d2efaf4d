package repository

import (
	"errors"
	"time"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UnitRepository interface {
	WithTx(tx *gorm.DB) UnitRepository
	Create(unit *models.UnitFlat) error
	GetByID(id uint) (*models.UnitFlat, error)
	GetByProjectID(projectID uint) ([]models.UnitFlat, error)
	GetByClientID(clientID uint) ([]models.UnitFlat, error)
	GetAll() ([]models.UnitFlat, error)
	Update(unit *models.UnitFlat) error
	UpdateDerivedAmounts(unitID uint, flatValue, receivedAmount, balanceAmount decimal.Decimal) error
	Delete(id uint) error
}

type unitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) WithTx(tx *gorm.DB) UnitRepository {
	if tx == nil {
		return r
	}
	return &unitRepository{db: tx}
}

func (r *unitRepository) Create(unit *models.UnitFlat) error {
	return r.db.Create(unit).Error
}

func (r *unitRepository) GetByID(id uint) (*models.UnitFlat, error) {
	var unit models.UnitFlat
	err := r.db.First(&unit, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("unit", id)
		}
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) GetByProjectID(projectID uint) ([]models.UnitFlat, error) {
	var units []models.UnitFlat
	err := r.db.Where("project_id = ?", projectID).Order("flat_no").Find(&units).Error
	return units, err
}

func (r *unitRepository) GetByClientID(clientID uint) ([]models.UnitFlat, error) {
	var units []models.UnitFlat
	err := r.db.Where("client_id = ?", clientID).Find(&units).Error
	return units, err
}

func (r *unitRepository) GetAll() ([]models.UnitFlat, error) {
	var units []models.UnitFlat
	err := r.db.Find(&units).Error
	return units, err
}

func (r *unitRepository) Update(unit *models.UnitFlat) error {
	result := r.db.Save(unit)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("unit", unit.ID)
	}
	return nil
}

// UpdateDerivedAmounts writes only the ledger-derived money columns.
func (r *unitRepository) UpdateDerivedAmounts(unitID uint, flatValue, receivedAmount, balanceAmount decimal.Decimal) error {
	result := r.db.Model(&models.UnitFlat{}).Where("id = ?", unitID).Updates(map[string]interface{}{
		"flat_value":      flatValue,
		"received_amount": receivedAmount,
		"balance_amount":  balanceAmount,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("unit", unitID)
	}
	return nil
}

func (r *unitRepository) Delete(id uint) error {
	return r.db.Delete(&models.UnitFlat{}, id).Error
}
