package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UnitFlat struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	FlatNo      string          `json:"flat_no" gorm:"not null" validate:"required"`
	ProjectID   uint            `json:"project_id" gorm:"not null;index" validate:"required"`
	ClientID    *uint           `json:"client_id" gorm:"index"`
	AreaSqft    decimal.Decimal `json:"area_sqft" gorm:"type:decimal(10,2)"`
	RatePerSqft decimal.Decimal `json:"rate_per_sqft" gorm:"type:decimal(15,2)"`
	// FlatValue, ReceivedAmount and BalanceAmount are derived: flat value
	// from area and rate, received from the receipt ledger, balance from
	// the other two. Only the services write them.
	FlatValue      decimal.Decimal `json:"flat_value" gorm:"type:decimal(15,2)"`
	ReceivedAmount decimal.Decimal `json:"received_amount" gorm:"type:decimal(15,2)"`
	BalanceAmount  decimal.Decimal `json:"balance_amount" gorm:"type:decimal(15,2)"`
	Status         string          `json:"status" gorm:"default:'available'"` // available, booked, sold
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitBooked    UnitStatus = "booked"
	UnitSold      UnitStatus = "sold"
)

// RecalculateDerived re-derives flat value and balance from area, rate and
// the current received amount, rounded to 2 decimals.
func (u *UnitFlat) RecalculateDerived() {
	u.FlatValue = u.AreaSqft.Mul(u.RatePerSqft).Round(2)
	u.BalanceAmount = u.FlatValue.Sub(u.ReceivedAmount).Round(2)
}
