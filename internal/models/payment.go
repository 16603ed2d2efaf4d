package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnitCustomerSchedule mirrors one project milestone for one unit, scaled to
// that unit's balance. Amount is a point-in-time snapshot recomputed by the
// schedule service when the balance changes, not a live formula.
type UnitCustomerSchedule struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UnitID uint `json:"unit_id" gorm:"not null;index" validate:"required"`
	SrNo   int  `json:"sr_no" gorm:"not null"`
	// MilestoneID links back to the originating milestone when known.
	// Older rows only carry the copied name, so the cascade matches by id
	// first and falls back to name.
	MilestoneID          *uint           `json:"milestone_id" gorm:"index"`
	Milestone            string          `json:"milestone" gorm:"not null" validate:"required"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage" gorm:"type:decimal(5,2)"`
	Amount               decimal.Decimal `json:"amount" gorm:"type:decimal(15,2)"`
	Status               string          `json:"status" gorm:"default:'not_started'"` // not_started, payment_requested, payment_received
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

type CustomerScheduleStatus string

const (
	ScheduleNotStarted       CustomerScheduleStatus = "not_started"
	SchedulePaymentRequested CustomerScheduleStatus = "payment_requested"
	SchedulePaymentReceived  CustomerScheduleStatus = "payment_received"
)

type UnitPaymentRequest struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UnitID      uint            `json:"unit_id" gorm:"not null;index" validate:"required"`
	SrNo        int             `json:"sr_no" gorm:"not null"`
	Date        time.Time       `json:"date" gorm:"not null"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2)"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

// UnitPaymentReceipt is an actual recorded payment. The full set of receipts
// per unit is the ledger source of truth for the unit's received amount.
type UnitPaymentReceipt struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	UnitID           uint            `json:"unit_id" gorm:"not null;index" validate:"required"`
	SrNo             int             `json:"sr_no" gorm:"not null"`
	Date             time.Time       `json:"date" gorm:"not null"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(15,2)" validate:"required"`
	Mode             string          `json:"mode"` // cash, cheque, bank_transfer, upi
	Remarks          string          `json:"remarks" gorm:"type:text"`
	PaymentRequestID *uint           `json:"payment_request_id" gorm:"index"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

type PaymentMode string

const (
	PaymentCash         PaymentMode = "cash"
	PaymentCheque       PaymentMode = "cheque"
	PaymentBankTransfer PaymentMode = "bank_transfer"
	PaymentUPI          PaymentMode = "upi"
)

// ScheduleAmount computes a customer-schedule amount from a unit balance and
// a milestone completion percentage, rounded to 2 decimals.
func ScheduleAmount(balance, completionPercentage decimal.Decimal) decimal.Decimal {
	return balance.Mul(completionPercentage).Div(decimal.NewFromInt(100)).Round(2)
}
