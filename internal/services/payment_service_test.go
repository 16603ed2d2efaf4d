package services

import (
	"testing"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"

	"github.com/shopspring/decimal"
)

func seedTwoUnitProject(t *testing.T, env *testEnv) (*models.Project, []models.Milestone, []*models.UnitFlat) {
	t.Helper()
	project := env.seedProject(t)
	env.seedSchedule(t, project.ID, []milestoneDef{
		{"Foundation", 20, models.MilestoneNotStarted},
		{"Slab", 30, models.MilestoneNotStarted},
	})

	units := make([]*models.UnitFlat, 2)
	for i, flatNo := range []string{"A-101", "A-102"} {
		unit := &models.UnitFlat{
			FlatNo:      flatNo,
			ProjectID:   project.ID,
			AreaSqft:    decimal.NewFromInt(200),
			RatePerSqft: decimal.NewFromInt(5000),
		}
		if err := env.unitSvc.CreateUnit(unit); err != nil {
			t.Fatalf("create unit %s: %v", flatNo, err)
		}
		units[i] = unit
	}

	milestones, _ := env.schedules.GetMilestonesByProject(project.ID)
	return project, milestones, units
}

func TestOnMilestoneCompletedCascade(t *testing.T) {
	env := newTestEnv()
	project, milestones, units := seedTwoUnitProject(t, env)
	foundation := milestones[0]

	if err := env.payment.OnMilestoneCompleted(project.ID, &foundation); err != nil {
		t.Fatalf("OnMilestoneCompleted: %v", err)
	}

	for _, unit := range units {
		schedules, _ := env.payments.GetCustomerSchedulesByUnit(unit.ID)
		if schedules[0].Status != string(models.SchedulePaymentRequested) {
			t.Errorf("unit %d Foundation schedule status = %q, want payment_requested", unit.ID, schedules[0].Status)
		}
		if schedules[1].Status != string(models.ScheduleNotStarted) {
			t.Errorf("unit %d Slab schedule status = %q, want not_started", unit.ID, schedules[1].Status)
		}

		requests, _ := env.payments.GetPaymentRequestsByUnit(unit.ID)
		if len(requests) != 1 {
			t.Fatalf("unit %d has %d payment requests, want 1", unit.ID, len(requests))
		}
		if requests[0].SrNo != 1 {
			t.Errorf("unit %d request sr_no = %d, want 1", unit.ID, requests[0].SrNo)
		}
		if !requests[0].Amount.Equal(schedules[0].Amount) {
			t.Errorf("unit %d request amount = %s, want schedule amount %s", unit.ID, requests[0].Amount, schedules[0].Amount)
		}
		if requests[0].Description != "Payment request for Foundation" {
			t.Errorf("unit %d request description = %q", unit.ID, requests[0].Description)
		}
	}
}

func TestOnMilestoneCompletedIdempotent(t *testing.T) {
	env := newTestEnv()
	project, milestones, units := seedTwoUnitProject(t, env)
	foundation := milestones[0]

	if err := env.payment.OnMilestoneCompleted(project.ID, &foundation); err != nil {
		t.Fatalf("first trigger: %v", err)
	}
	if err := env.payment.OnMilestoneCompleted(project.ID, &foundation); err != nil {
		t.Fatalf("second trigger: %v", err)
	}

	for _, unit := range units {
		requests, _ := env.payments.GetPaymentRequestsByUnit(unit.ID)
		if len(requests) != 1 {
			t.Errorf("unit %d has %d payment requests after re-trigger, want 1", unit.ID, len(requests))
		}
	}
}

func TestOnMilestoneCompletedPerUnitIsolation(t *testing.T) {
	env := newTestEnv()
	project, milestones, units := seedTwoUnitProject(t, env)
	foundation := milestones[0]

	// First unit's payment-request insert fails; the second unit must
	// still be processed and the failure reported as a cascade warning.
	env.payments.failRequestForUnit = units[0].ID

	err := env.payment.OnMilestoneCompleted(project.ID, &foundation)
	if err == nil {
		t.Fatal("expected a cascade error")
	}
	if !apperrors.IsCascade(err) {
		t.Fatalf("expected CascadeError, got %v", err)
	}

	okRequests, _ := env.payments.GetPaymentRequestsByUnit(units[1].ID)
	if len(okRequests) != 1 {
		t.Errorf("healthy unit got %d payment requests, want 1", len(okRequests))
	}
}

func TestReceiptLedgerConsistency(t *testing.T) {
	env := newTestEnv()
	project := env.seedProject(t)
	unit := env.seedUnit(t, project.ID, 1000, 5000) // flat value 5,000,000

	first := &models.UnitPaymentReceipt{UnitID: unit.ID, Amount: decimal.NewFromInt(50000), Mode: string(models.PaymentCash)}
	second := &models.UnitPaymentReceipt{UnitID: unit.ID, Amount: decimal.NewFromInt(75000), Mode: string(models.PaymentCheque)}
	if err := env.payment.AddReceipt(first); err != nil {
		t.Fatalf("add first receipt: %v", err)
	}
	if err := env.payment.AddReceipt(second); err != nil {
		t.Fatalf("add second receipt: %v", err)
	}

	stored, _ := env.units.GetByID(unit.ID)
	if !stored.ReceivedAmount.Equal(decimal.NewFromInt(125000)) {
		t.Errorf("received = %s, want 125000", stored.ReceivedAmount)
	}

	if err := env.payment.DeleteReceipt(first.ID); err != nil {
		t.Fatalf("delete receipt: %v", err)
	}

	stored, _ = env.units.GetByID(unit.ID)
	if !stored.ReceivedAmount.Equal(decimal.NewFromInt(75000)) {
		t.Errorf("received = %s after delete, want exactly 75000", stored.ReceivedAmount)
	}
	if !stored.BalanceAmount.Equal(decimal.NewFromInt(4925000)) {
		t.Errorf("balance = %s, want 4925000", stored.BalanceAmount)
	}
}

func TestUpdateReceiptRecomputesLedger(t *testing.T) {
	env := newTestEnv()
	project := env.seedProject(t)
	unit := env.seedUnit(t, project.ID, 1000, 5000)

	receipt := &models.UnitPaymentReceipt{UnitID: unit.ID, Amount: decimal.NewFromInt(50000), Mode: string(models.PaymentCash)}
	if err := env.payment.AddReceipt(receipt); err != nil {
		t.Fatalf("AddReceipt: %v", err)
	}

	receipt.Amount = decimal.NewFromInt(60000)
	if err := env.payment.UpdateReceipt(receipt); err != nil {
		t.Fatalf("UpdateReceipt: %v", err)
	}

	stored, _ := env.units.GetByID(unit.ID)
	if !stored.ReceivedAmount.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("received = %s, want 60000", stored.ReceivedAmount)
	}
}

func TestAddReceiptValidation(t *testing.T) {
	env := newTestEnv()

	err := env.payment.AddReceipt(&models.UnitPaymentReceipt{UnitID: 1})
	if !apperrors.IsValidation(err) {
		t.Errorf("expected ValidationError for zero amount, got %v", err)
	}

	err = env.payment.AddReceipt(&models.UnitPaymentReceipt{UnitID: 42, Amount: decimal.NewFromInt(1000)})
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError for missing unit, got %v", err)
	}
}
