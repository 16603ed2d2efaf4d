package services

import (
	"fmt"
	"time"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/logger"
	"estate_manager/internal/models"
	"estate_manager/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PaymentService interface {
	MilestoneCompletionHandler

	AddReceipt(receipt *models.UnitPaymentReceipt) error
	UpdateReceipt(receipt *models.UnitPaymentReceipt) error
	DeleteReceipt(id uint) error
	GetReceiptsByUnit(unitID uint) ([]models.UnitPaymentReceipt, error)
	GetPaymentRequestsByUnit(unitID uint) ([]models.UnitPaymentRequest, error)
	GetCustomerSchedulesByUnit(unitID uint) ([]models.UnitCustomerSchedule, error)
}

type paymentService struct {
	txm             repository.TxManager
	unitRepo        repository.UnitRepository
	paymentRepo     repository.PaymentRepository
	scheduleService UnitScheduleService
	cache           UnitSummaryCache
	validate        *validator.Validate
	log             *logrus.Logger
}

func NewPaymentService(
	txm repository.TxManager,
	unitRepo repository.UnitRepository,
	paymentRepo repository.PaymentRepository,
	scheduleService UnitScheduleService,
	cache UnitSummaryCache,
	log *logrus.Logger,
) PaymentService {
	return &paymentService{
		txm:             txm,
		unitRepo:        unitRepo,
		paymentRepo:     paymentRepo,
		scheduleService: scheduleService,
		cache:           cache,
		validate:        validator.New(),
		log:             log,
	}
}

// OnMilestoneCompleted advances each unit's matching customer schedule to
// payment_requested and auto-creates the billing record. Units are processed
// independently: one unit's failure never blocks the rest, the failures come
// back collected in a CascadeError.
func (s *paymentService) OnMilestoneCompleted(projectID uint, milestone *models.Milestone) error {
	units, err := s.unitRepo.GetByProjectID(projectID)
	if err != nil {
		return err
	}

	var unitErrs []error
	for i := range units {
		unit := units[i]
		if err := s.requestPaymentForUnit(&unit, milestone); err != nil {
			logger.LogError(s.log, "services", "OnMilestoneCompleted", "per-unit payment request", unit.ID, err)
			unitErrs = append(unitErrs, fmt.Errorf("unit %d: %w", unit.ID, err))
		}
	}
	if len(unitErrs) > 0 {
		return apperrors.NewCascade("milestone completion payment fan-out", unitErrs...)
	}
	return nil
}

func (s *paymentService) requestPaymentForUnit(unit *models.UnitFlat, milestone *models.Milestone) error {
	return s.txm.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)

		schedules, err := paymentRepo.GetCustomerSchedulesByUnit(unit.ID)
		if err != nil {
			return err
		}

		match := matchSchedule(schedules, milestone)
		if match == nil {
			// Nothing to advance: no matching row, or it already moved
			// past not_started. Re-triggering the same completion is a
			// no-op.
			return nil
		}

		match.Status = string(models.SchedulePaymentRequested)
		if err := paymentRepo.UpdateCustomerSchedule(match); err != nil {
			return err
		}

		maxSrNo, err := paymentRepo.MaxPaymentRequestSrNo(unit.ID)
		if err != nil {
			return err
		}
		request := &models.UnitPaymentRequest{
			UnitID:      unit.ID,
			SrNo:        maxSrNo + 1,
			Date:        time.Now(),
			Description: fmt.Sprintf("Payment request for %s", milestone.MilestoneName),
			Amount:      match.Amount,
		}
		return paymentRepo.CreatePaymentRequest(request)
	})
}

// matchSchedule finds the not_started row mirroring the milestone, matching
// by originating milestone id when the row carries one and by copied name
// for rows seeded before the back-reference existed.
func matchSchedule(schedules []models.UnitCustomerSchedule, milestone *models.Milestone) *models.UnitCustomerSchedule {
	for i := range schedules {
		if schedules[i].Status != string(models.ScheduleNotStarted) {
			continue
		}
		if schedules[i].MilestoneID != nil {
			if *schedules[i].MilestoneID == milestone.ID {
				return &schedules[i]
			}
			continue
		}
		if schedules[i].Milestone == milestone.MilestoneName {
			return &schedules[i]
		}
	}
	return nil
}

func (s *paymentService) AddReceipt(receipt *models.UnitPaymentReceipt) error {
	if err := validateStruct(s.validate, receipt); err != nil {
		return err
	}
	if _, err := s.unitRepo.GetByID(receipt.UnitID); err != nil {
		return err
	}
	if receipt.Date.IsZero() {
		receipt.Date = time.Now()
	}

	err := s.txm.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)

		if receipt.SrNo == 0 {
			maxSrNo, err := paymentRepo.MaxReceiptSrNo(receipt.UnitID)
			if err != nil {
				return err
			}
			receipt.SrNo = maxSrNo + 1
		}
		if err := paymentRepo.CreateReceipt(receipt); err != nil {
			return err
		}
		return s.applyReceiptLedger(tx, receipt.UnitID)
	})
	if err != nil {
		return err
	}

	s.invalidateSummary(receipt.UnitID)
	return nil
}

func (s *paymentService) UpdateReceipt(receipt *models.UnitPaymentReceipt) error {
	if receipt.ID == 0 {
		return apperrors.NewValidation("id", "required")
	}

	current, err := s.paymentRepo.GetReceiptByID(receipt.ID)
	if err != nil {
		return err
	}
	receipt.UnitID = current.UnitID
	if receipt.SrNo == 0 {
		receipt.SrNo = current.SrNo
	}
	receipt.CreatedAt = current.CreatedAt
	if err := validateStruct(s.validate, receipt); err != nil {
		return err
	}

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.WithTx(tx).UpdateReceipt(receipt); err != nil {
			return err
		}
		return s.applyReceiptLedger(tx, receipt.UnitID)
	})
	if err != nil {
		return err
	}

	s.invalidateSummary(receipt.UnitID)
	return nil
}

func (s *paymentService) DeleteReceipt(id uint) error {
	receipt, err := s.paymentRepo.GetReceiptByID(id)
	if err != nil {
		return err
	}

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.WithTx(tx).DeleteReceipt(id); err != nil {
			return err
		}
		return s.applyReceiptLedger(tx, receipt.UnitID)
	})
	if err != nil {
		return err
	}

	s.invalidateSummary(receipt.UnitID)
	return nil
}

// applyReceiptLedger recomputes the unit's received amount from the full
// receipt ledger rather than adjusting incrementally, so a partial or failed
// earlier update can never leave drift behind. Runs inside the caller's
// receipt-mutation transaction.
func (s *paymentService) applyReceiptLedger(tx *gorm.DB, unitID uint) error {
	unitRepo := s.unitRepo.WithTx(tx)
	paymentRepo := s.paymentRepo.WithTx(tx)

	received, err := paymentRepo.SumReceiptsByUnit(unitID)
	if err != nil {
		return err
	}

	unit, err := unitRepo.GetByID(unitID)
	if err != nil {
		return err
	}
	oldBalance := unit.BalanceAmount

	unit.ReceivedAmount = received
	unit.RecalculateDerived()
	if err := unitRepo.UpdateDerivedAmounts(unitID, unit.FlatValue, unit.ReceivedAmount, unit.BalanceAmount); err != nil {
		return err
	}

	if !unit.BalanceAmount.Equal(oldBalance) {
		return s.scheduleService.RecalculateAmounts(tx, unitID)
	}
	return nil
}

func (s *paymentService) GetReceiptsByUnit(unitID uint) ([]models.UnitPaymentReceipt, error) {
	return s.paymentRepo.GetReceiptsByUnit(unitID)
}

func (s *paymentService) GetPaymentRequestsByUnit(unitID uint) ([]models.UnitPaymentRequest, error) {
	return s.paymentRepo.GetPaymentRequestsByUnit(unitID)
}

func (s *paymentService) GetCustomerSchedulesByUnit(unitID uint) ([]models.UnitCustomerSchedule, error) {
	return s.paymentRepo.GetCustomerSchedulesByUnit(unitID)
}

func (s *paymentService) invalidateSummary(unitID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteUnitSummary(unitID); err != nil {
		logger.LogError(s.log, "services", "invalidateSummary", "unit summary cache delete", unitID, err)
	}
}
