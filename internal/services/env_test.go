package services

import (
	"io"
	"testing"
	"time"

	"estate_manager/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type testEnv struct {
	projects  *fakeProjectRepo
	schedules *fakeScheduleRepo
	units     *fakeUnitRepo
	payments  *fakePaymentRepo

	progress      ProgressService
	unitSchedules UnitScheduleService
	payment       PaymentService
	milestones    MilestoneService
	unitSvc       UnitService
}

func newTestEnv() *testEnv {
	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		projects:  newFakeProjectRepo(),
		schedules: newFakeScheduleRepo(),
		units:     newFakeUnitRepo(),
		payments:  newFakePaymentRepo(),
	}

	txm := fakeTxManager{}
	env.progress = NewProgressService(env.projects, env.schedules, nil, 0, log)
	env.unitSchedules = NewUnitScheduleService(env.units, env.schedules, env.payments)
	env.payment = NewPaymentService(txm, env.units, env.payments, env.unitSchedules, nil, log)
	env.milestones = NewMilestoneService(txm, env.schedules, env.projects, env.progress, env.payment, log)
	env.unitSvc = NewUnitService(txm, env.units, env.projects, env.unitSchedules, nil, 0, log)
	return env
}

func (e *testEnv) seedProject(t *testing.T) *models.Project {
	t.Helper()
	project := &models.Project{Name: "Green Meadows", CompanyID: 1}
	if err := e.projects.Create(project); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

type milestoneDef struct {
	name   string
	pct    int64
	status models.MilestoneStatus
}

func (e *testEnv) seedSchedule(t *testing.T, projectID uint, defs []milestoneDef) []models.Milestone {
	t.Helper()
	milestones := make([]models.Milestone, len(defs))
	for i, def := range defs {
		milestones[i] = models.Milestone{
			MilestoneName:        def.name,
			CompletionPercentage: decimal.NewFromInt(def.pct),
			Status:               string(def.status),
		}
	}
	if _, err := e.milestones.AddScheduleWithMilestones(projectID, time.Now(), milestones); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	return milestones
}

func (e *testEnv) seedUnit(t *testing.T, projectID uint, areaSqft, ratePerSqft int64) *models.UnitFlat {
	t.Helper()
	unit := &models.UnitFlat{
		FlatNo:      "A-101",
		ProjectID:   projectID,
		AreaSqft:    decimal.NewFromInt(areaSqft),
		RatePerSqft: decimal.NewFromInt(ratePerSqft),
	}
	if err := e.unitSvc.CreateUnit(unit); err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	return unit
}
