package repository

import (
	"errors"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"

	"gorm.io/gorm"
)

type ScheduleRepository interface {
	WithTx(tx *gorm.DB) ScheduleRepository
	CreateSchedule(schedule *models.ProjectSchedule) error
	GetScheduleByID(id uint) (*models.ProjectSchedule, error)
	GetSchedulesByProject(projectID uint) ([]models.ProjectSchedule, error)
	DeleteSchedule(id uint) error

	CreateMilestone(milestone *models.Milestone) error
	GetMilestoneByID(id uint) (*models.Milestone, error)
	GetMilestonesBySchedule(scheduleID uint) ([]models.Milestone, error)
	GetMilestonesByProject(projectID uint) ([]models.Milestone, error)
	UpdateMilestone(milestone *models.Milestone) error
	DeleteMilestone(id uint) error
	RenumberMilestones(scheduleID uint) error
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) WithTx(tx *gorm.DB) ScheduleRepository {
	if tx == nil {
		return r
	}
	return &scheduleRepository{db: tx}
}

func (r *scheduleRepository) CreateSchedule(schedule *models.ProjectSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *scheduleRepository) GetScheduleByID(id uint) (*models.ProjectSchedule, error) {
	var schedule models.ProjectSchedule
	err := r.db.First(&schedule, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("project schedule", id)
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) GetSchedulesByProject(projectID uint) ([]models.ProjectSchedule, error) {
	var schedules []models.ProjectSchedule
	err := r.db.Where("project_id = ?", projectID).Order("date").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepository) DeleteSchedule(id uint) error {
	return r.db.Delete(&models.ProjectSchedule{}, id).Error
}

func (r *scheduleRepository) CreateMilestone(milestone *models.Milestone) error {
	return r.db.Create(milestone).Error
}

func (r *scheduleRepository) GetMilestoneByID(id uint) (*models.Milestone, error) {
	var milestone models.Milestone
	err := r.db.First(&milestone, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("milestone", id)
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *scheduleRepository) GetMilestonesBySchedule(scheduleID uint) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := r.db.Where("schedule_id = ?", scheduleID).Order("sr_no").Find(&milestones).Error
	return milestones, err
}

// GetMilestonesByProject loads every milestone across all of the project's
// schedules, ordered schedule-first so unit schedules seed in screen order.
func (r *scheduleRepository) GetMilestonesByProject(projectID uint) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := r.db.
		Joins("JOIN project_schedules ON project_schedules.id = milestones.schedule_id").
		Where("project_schedules.project_id = ? AND project_schedules.deleted_at IS NULL", projectID).
		Order("milestones.schedule_id, milestones.sr_no").
		Find(&milestones).Error
	return milestones, err
}

func (r *scheduleRepository) UpdateMilestone(milestone *models.Milestone) error {
	result := r.db.Save(milestone)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewWriteConflict("milestone", milestone.ID)
	}
	return nil
}

func (r *scheduleRepository) DeleteMilestone(id uint) error {
	return r.db.Delete(&models.Milestone{}, id).Error
}

// RenumberMilestones rewrites sr_no to a contiguous 1..N for the schedule's
// surviving milestones, preserving their current order.
func (r *scheduleRepository) RenumberMilestones(scheduleID uint) error {
	milestones, err := r.GetMilestonesBySchedule(scheduleID)
	if err != nil {
		return err
	}
	for i := range milestones {
		if milestones[i].SrNo == i+1 {
			continue
		}
		err := r.db.Model(&models.Milestone{}).
			Where("id = ?", milestones[i].ID).
			Update("sr_no", i+1).Error
		if err != nil {
			return err
		}
	}
	return nil
}
