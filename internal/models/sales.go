package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null" validate:"required"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lead struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null" validate:"required"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Source      string         `json:"source"` // referral, walk_in, online, broker
	Status      string         `json:"status" gorm:"default:'new'"` // new, followup, converted, lost
	Notes       string         `json:"notes" gorm:"type:text"`
	CompanyID   uint           `json:"company_id" gorm:"not null"`
	ConvertedAt *time.Time     `json:"converted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadFollowup  LeadStatus = "followup"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

type Client struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null" validate:"required"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	PANNo     string         `json:"pan_no"`
	LeadID    *uint          `json:"lead_id" gorm:"index"`
	CompanyID uint           `json:"company_id" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
