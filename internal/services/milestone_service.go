package services

import (
	"time"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/logger"
	"estate_manager/internal/models"
	"estate_manager/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MilestoneCompletionHandler receives the post-commit notification that a
// milestone transitioned into completed. The payment service implements it;
// the indirection keeps the mutation path free of payment logic.
type MilestoneCompletionHandler interface {
	OnMilestoneCompleted(projectID uint, milestone *models.Milestone) error
}

type MilestoneService interface {
	AddMilestone(milestone *models.Milestone) (uint, error)
	AddScheduleWithMilestones(projectID uint, date time.Time, milestones []models.Milestone) (*models.ProjectSchedule, error)
	GetMilestone(id uint) (*models.Milestone, error)
	GetSchedulesByProject(projectID uint) ([]models.ProjectSchedule, error)
	GetMilestonesBySchedule(scheduleID uint) ([]models.Milestone, error)
	// UpdateMilestone persists the change and recomputes progress in one
	// transaction. A transition into completed additionally fans out the
	// payment cascade after commit; a cascade failure comes back as a
	// CascadeError while the milestone update stands.
	UpdateMilestone(milestone *models.Milestone) error
	DeleteMilestone(id uint) error
}

type milestoneService struct {
	txm             repository.TxManager
	scheduleRepo    repository.ScheduleRepository
	projectRepo     repository.ProjectRepository
	progressService ProgressService
	completion      MilestoneCompletionHandler
	validate        *validator.Validate
	log             *logrus.Logger
}

func NewMilestoneService(
	txm repository.TxManager,
	scheduleRepo repository.ScheduleRepository,
	projectRepo repository.ProjectRepository,
	progressService ProgressService,
	completion MilestoneCompletionHandler,
	log *logrus.Logger,
) MilestoneService {
	return &milestoneService{
		txm:             txm,
		scheduleRepo:    scheduleRepo,
		projectRepo:     projectRepo,
		progressService: progressService,
		completion:      completion,
		validate:        validator.New(),
		log:             log,
	}
}

func (s *milestoneService) AddMilestone(milestone *models.Milestone) (uint, error) {
	if err := validateStruct(s.validate, milestone); err != nil {
		return 0, err
	}

	schedule, err := s.scheduleRepo.GetScheduleByID(milestone.ScheduleID)
	if err != nil {
		return 0, err
	}

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		scheduleRepo := s.scheduleRepo.WithTx(tx)

		if milestone.SrNo == 0 {
			siblings, err := scheduleRepo.GetMilestonesBySchedule(milestone.ScheduleID)
			if err != nil {
				return err
			}
			milestone.SrNo = len(siblings) + 1
		}
		if milestone.Status == "" {
			milestone.Status = string(models.MilestoneNotStarted)
		}
		if err := scheduleRepo.CreateMilestone(milestone); err != nil {
			return err
		}

		_, err := s.progressService.RecomputeProjectProgress(tx, schedule.ProjectID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return milestone.ID, nil
}

// AddScheduleWithMilestones creates one schedule and its milestones in a
// single transaction, recomputing progress once for the whole batch.
func (s *milestoneService) AddScheduleWithMilestones(projectID uint, date time.Time, milestones []models.Milestone) (*models.ProjectSchedule, error) {
	for i := range milestones {
		if milestones[i].MilestoneName == "" {
			return nil, apperrors.NewValidation("milestone_name", "required")
		}
	}
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		return nil, err
	}

	schedule := &models.ProjectSchedule{ProjectID: projectID, Date: date}
	err := s.txm.Transaction(func(tx *gorm.DB) error {
		scheduleRepo := s.scheduleRepo.WithTx(tx)

		if err := scheduleRepo.CreateSchedule(schedule); err != nil {
			return err
		}
		for i := range milestones {
			milestones[i].ScheduleID = schedule.ID
			milestones[i].SrNo = i + 1
			if milestones[i].Status == "" {
				milestones[i].Status = string(models.MilestoneNotStarted)
			}
			if err := scheduleRepo.CreateMilestone(&milestones[i]); err != nil {
				return err
			}
		}

		_, err := s.progressService.RecomputeProjectProgress(tx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *milestoneService) GetMilestone(id uint) (*models.Milestone, error) {
	return s.scheduleRepo.GetMilestoneByID(id)
}

func (s *milestoneService) GetSchedulesByProject(projectID uint) ([]models.ProjectSchedule, error) {
	return s.scheduleRepo.GetSchedulesByProject(projectID)
}

func (s *milestoneService) GetMilestonesBySchedule(scheduleID uint) ([]models.Milestone, error) {
	return s.scheduleRepo.GetMilestonesBySchedule(scheduleID)
}

func (s *milestoneService) UpdateMilestone(milestone *models.Milestone) error {
	if err := validateStruct(s.validate, milestone); err != nil {
		return err
	}
	if milestone.ID == 0 {
		return apperrors.NewValidation("id", "required")
	}

	current, err := s.scheduleRepo.GetMilestoneByID(milestone.ID)
	if err != nil {
		return err
	}
	schedule, err := s.scheduleRepo.GetScheduleByID(current.ScheduleID)
	if err != nil {
		return err
	}

	completedNow := milestone.Status == string(models.MilestoneCompleted) &&
		current.Status != string(models.MilestoneCompleted)

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		milestone.ScheduleID = current.ScheduleID
		if milestone.SrNo == 0 {
			milestone.SrNo = current.SrNo
		}
		milestone.CreatedAt = current.CreatedAt
		if err := s.scheduleRepo.WithTx(tx).UpdateMilestone(milestone); err != nil {
			return err
		}

		_, err := s.progressService.RecomputeProjectProgress(tx, schedule.ProjectID)
		return err
	})
	if err != nil {
		return err
	}

	if completedNow && s.completion != nil {
		if err := s.completion.OnMilestoneCompleted(schedule.ProjectID, milestone); err != nil {
			logger.LogError(s.log, "services", "UpdateMilestone", "payment cascade", milestone.ID, err)
			if apperrors.IsCascade(err) {
				return err
			}
			return apperrors.NewCascade("milestone completion cascade", err)
		}
	}
	return nil
}

func (s *milestoneService) DeleteMilestone(id uint) error {
	milestone, err := s.scheduleRepo.GetMilestoneByID(id)
	if err != nil {
		return err
	}
	schedule, err := s.scheduleRepo.GetScheduleByID(milestone.ScheduleID)
	if err != nil {
		return err
	}

	return s.txm.Transaction(func(tx *gorm.DB) error {
		scheduleRepo := s.scheduleRepo.WithTx(tx)

		if err := scheduleRepo.DeleteMilestone(id); err != nil {
			return err
		}
		// Keep sr_no contiguous 1..N for the surviving siblings.
		if err := scheduleRepo.RenumberMilestones(milestone.ScheduleID); err != nil {
			return err
		}

		_, err := s.progressService.RecomputeProjectProgress(tx, schedule.ProjectID)
		return err
	})
}
