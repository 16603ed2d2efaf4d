package services

import (
	"estate_manager/internal/models"
	"estate_manager/internal/repository"

	"gorm.io/gorm"
)

// UnitScheduleService owns the unit-level customer payment schedule rows:
// seeding them from project milestones and re-deriving their amounts when
// the unit's balance moves.
type UnitScheduleService interface {
	// PopulateFromProjectMilestones seeds a blank customer schedule from
	// the project's milestones. One-time: a unit that already has any
	// schedule rows is left untouched, and later milestone edits never
	// rewrite rows seeded earlier.
	PopulateFromProjectMilestones(tx *gorm.DB, unitID uint, projectID uint) error
	// RecalculateAmounts re-derives every schedule row's amount from the
	// unit's current balance and the row's stored completion percentage.
	RecalculateAmounts(tx *gorm.DB, unitID uint) error
}

type unitScheduleService struct {
	unitRepo     repository.UnitRepository
	scheduleRepo repository.ScheduleRepository
	paymentRepo  repository.PaymentRepository
}

func NewUnitScheduleService(
	unitRepo repository.UnitRepository,
	scheduleRepo repository.ScheduleRepository,
	paymentRepo repository.PaymentRepository,
) UnitScheduleService {
	return &unitScheduleService{
		unitRepo:     unitRepo,
		scheduleRepo: scheduleRepo,
		paymentRepo:  paymentRepo,
	}
}

func (s *unitScheduleService) PopulateFromProjectMilestones(tx *gorm.DB, unitID uint, projectID uint) error {
	scheduleRepo := s.scheduleRepo.WithTx(tx)
	paymentRepo := s.paymentRepo.WithTx(tx)
	unitRepo := s.unitRepo.WithTx(tx)

	milestones, err := scheduleRepo.GetMilestonesByProject(projectID)
	if err != nil {
		return err
	}
	if len(milestones) == 0 {
		return nil
	}

	existing, err := paymentRepo.CountCustomerSchedulesByUnit(unitID)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	unit, err := unitRepo.GetByID(unitID)
	if err != nil {
		return err
	}

	for i := range milestones {
		m := milestones[i]
		row := &models.UnitCustomerSchedule{
			UnitID:               unitID,
			SrNo:                 m.SrNo,
			MilestoneID:          &m.ID,
			Milestone:            m.MilestoneName,
			CompletionPercentage: m.CompletionPercentage,
			Amount:               models.ScheduleAmount(unit.BalanceAmount, m.CompletionPercentage),
			Status:               string(models.ScheduleNotStarted),
		}
		if err := paymentRepo.CreateCustomerSchedule(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *unitScheduleService) RecalculateAmounts(tx *gorm.DB, unitID uint) error {
	paymentRepo := s.paymentRepo.WithTx(tx)

	unit, err := s.unitRepo.WithTx(tx).GetByID(unitID)
	if err != nil {
		return err
	}

	schedules, err := paymentRepo.GetCustomerSchedulesByUnit(unitID)
	if err != nil {
		return err
	}

	for i := range schedules {
		schedules[i].Amount = models.ScheduleAmount(unit.BalanceAmount, schedules[i].CompletionPercentage)
		if err := paymentRepo.UpdateCustomerSchedule(&schedules[i]); err != nil {
			return err
		}
	}
	return nil
}
