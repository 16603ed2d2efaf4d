package repository

import (
	"errors"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository

	CreateCustomerSchedule(schedule *models.UnitCustomerSchedule) error
	GetCustomerScheduleByID(id uint) (*models.UnitCustomerSchedule, error)
	GetCustomerSchedulesByUnit(unitID uint) ([]models.UnitCustomerSchedule, error)
	CountCustomerSchedulesByUnit(unitID uint) (int64, error)
	UpdateCustomerSchedule(schedule *models.UnitCustomerSchedule) error

	CreatePaymentRequest(request *models.UnitPaymentRequest) error
	GetPaymentRequestsByUnit(unitID uint) ([]models.UnitPaymentRequest, error)
	MaxPaymentRequestSrNo(unitID uint) (int, error)

	CreateReceipt(receipt *models.UnitPaymentReceipt) error
	GetReceiptByID(id uint) (*models.UnitPaymentReceipt, error)
	GetReceiptsByUnit(unitID uint) ([]models.UnitPaymentReceipt, error)
	UpdateReceipt(receipt *models.UnitPaymentReceipt) error
	DeleteReceipt(id uint) error
	SumReceiptsByUnit(unitID uint) (decimal.Decimal, error)
	MaxReceiptSrNo(unitID uint) (int, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	if tx == nil {
		return r
	}
	return &paymentRepository{db: tx}
}

func (r *paymentRepository) CreateCustomerSchedule(schedule *models.UnitCustomerSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *paymentRepository) GetCustomerScheduleByID(id uint) (*models.UnitCustomerSchedule, error) {
	var schedule models.UnitCustomerSchedule
	err := r.db.First(&schedule, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("customer schedule", id)
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *paymentRepository) GetCustomerSchedulesByUnit(unitID uint) ([]models.UnitCustomerSchedule, error) {
	var schedules []models.UnitCustomerSchedule
	err := r.db.Where("unit_id = ?", unitID).Order("sr_no").Find(&schedules).Error
	return schedules, err
}

func (r *paymentRepository) CountCustomerSchedulesByUnit(unitID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.UnitCustomerSchedule{}).Where("unit_id = ?", unitID).Count(&count).Error
	return count, err
}

func (r *paymentRepository) UpdateCustomerSchedule(schedule *models.UnitCustomerSchedule) error {
	result := r.db.Save(schedule)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("customer schedule", schedule.ID)
	}
	return nil
}

func (r *paymentRepository) CreatePaymentRequest(request *models.UnitPaymentRequest) error {
	return r.db.Create(request).Error
}

func (r *paymentRepository) GetPaymentRequestsByUnit(unitID uint) ([]models.UnitPaymentRequest, error) {
	var requests []models.UnitPaymentRequest
	err := r.db.Where("unit_id = ?", unitID).Order("sr_no").Find(&requests).Error
	return requests, err
}

func (r *paymentRepository) MaxPaymentRequestSrNo(unitID uint) (int, error) {
	var max int
	err := r.db.Model(&models.UnitPaymentRequest{}).
		Where("unit_id = ?", unitID).
		Select("COALESCE(MAX(sr_no), 0)").
		Scan(&max).Error
	return max, err
}

func (r *paymentRepository) CreateReceipt(receipt *models.UnitPaymentReceipt) error {
	return r.db.Create(receipt).Error
}

func (r *paymentRepository) GetReceiptByID(id uint) (*models.UnitPaymentReceipt, error) {
	var receipt models.UnitPaymentReceipt
	err := r.db.First(&receipt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("payment receipt", id)
		}
		return nil, err
	}
	return &receipt, nil
}

func (r *paymentRepository) GetReceiptsByUnit(unitID uint) ([]models.UnitPaymentReceipt, error) {
	var receipts []models.UnitPaymentReceipt
	err := r.db.Where("unit_id = ?", unitID).Order("sr_no").Find(&receipts).Error
	return receipts, err
}

func (r *paymentRepository) UpdateReceipt(receipt *models.UnitPaymentReceipt) error {
	result := r.db.Save(receipt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("payment receipt", receipt.ID)
	}
	return nil
}

func (r *paymentRepository) DeleteReceipt(id uint) error {
	return r.db.Delete(&models.UnitPaymentReceipt{}, id).Error
}

// SumReceiptsByUnit totals the full receipt ledger for a unit.
func (r *paymentRepository) SumReceiptsByUnit(unitID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&models.UnitPaymentReceipt{}).
		Where("unit_id = ?", unitID).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *paymentRepository) MaxReceiptSrNo(unitID uint) (int, error) {
	var max int
	err := r.db.Model(&models.UnitPaymentReceipt{}).
		Where("unit_id = ?", unitID).
		Select("COALESCE(MAX(sr_no), 0)").
		Scan(&max).Error
	return max, err
}
