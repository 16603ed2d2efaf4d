package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Project struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null" validate:"required"`
	Description string          `json:"description" gorm:"type:text"`
	Address     string          `json:"address"`
	// Progress is derived from milestone statuses and owned by the
	// progress service. Never written from handlers.
	Progress    int             `json:"progress" gorm:"default:0"`
	TotalBudget decimal.Decimal `json:"total_budget" gorm:"type:decimal(15,2)"`
	Status      string          `json:"status" gorm:"default:'ongoing'"` // ongoing, on_hold, completed
	CompanyID   uint            `json:"company_id" gorm:"not null" validate:"required"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

type ProjectSchedule struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProjectID uint           `json:"project_id" gorm:"not null;index" validate:"required"`
	Date      time.Time      `json:"date" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Milestone struct {
	ID                   uint            `json:"id" gorm:"primaryKey"`
	ScheduleID           uint            `json:"schedule_id" gorm:"not null;index" validate:"required"`
	SrNo                 int             `json:"sr_no" gorm:"not null"` // 1-based, contiguous within a schedule
	MilestoneName        string          `json:"milestone_name" gorm:"not null" validate:"required"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage" gorm:"type:decimal(5,2)"`
	Status               string          `json:"status" gorm:"default:'not_started'"` // not_started, in_progress, completed
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

type MilestoneStatus string

const (
	MilestoneNotStarted MilestoneStatus = "not_started"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
)
