package services

import (
	"database/sql"
	"fmt"
	"sort"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"
	"estate_manager/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes standing in for the gorm repositories; services never
// touch a live store in tests.

type fakeTxManager struct{}

func (fakeTxManager) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeProjectRepo struct {
	projects       map[uint]models.Project
	nextID         uint
	progressWrites int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[uint]models.Project{}, nextID: 1}
}

func (r *fakeProjectRepo) WithTx(tx *gorm.DB) repository.ProjectRepository { return r }

func (r *fakeProjectRepo) Create(project *models.Project) error {
	project.ID = r.nextID
	r.nextID++
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) GetByID(id uint) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.NewNotFound("project", id)
	}
	copied := p
	return &copied, nil
}

func (r *fakeProjectRepo) GetByCompanyID(companyID uint) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) GetAll() ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(project *models.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return apperrors.NewWriteConflict("project", project.ID)
	}
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) UpdateProgress(projectID uint, progress int) error {
	p, ok := r.projects[projectID]
	if !ok {
		return apperrors.NewWriteConflict("project", projectID)
	}
	p.Progress = progress
	r.projects[projectID] = p
	r.progressWrites++
	return nil
}

func (r *fakeProjectRepo) Delete(id uint) error {
	delete(r.projects, id)
	return nil
}

type fakeScheduleRepo struct {
	schedules       map[uint]models.ProjectSchedule
	milestones      map[uint]models.Milestone
	nextScheduleID  uint
	nextMilestoneID uint
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules:       map[uint]models.ProjectSchedule{},
		milestones:      map[uint]models.Milestone{},
		nextScheduleID:  1,
		nextMilestoneID: 1,
	}
}

func (r *fakeScheduleRepo) WithTx(tx *gorm.DB) repository.ScheduleRepository { return r }

func (r *fakeScheduleRepo) CreateSchedule(schedule *models.ProjectSchedule) error {
	schedule.ID = r.nextScheduleID
	r.nextScheduleID++
	r.schedules[schedule.ID] = *schedule
	return nil
}

func (r *fakeScheduleRepo) GetScheduleByID(id uint) (*models.ProjectSchedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, apperrors.NewNotFound("project schedule", id)
	}
	copied := s
	return &copied, nil
}

func (r *fakeScheduleRepo) GetSchedulesByProject(projectID uint) ([]models.ProjectSchedule, error) {
	var out []models.ProjectSchedule
	for _, s := range r.schedules {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeScheduleRepo) DeleteSchedule(id uint) error {
	delete(r.schedules, id)
	return nil
}

func (r *fakeScheduleRepo) CreateMilestone(milestone *models.Milestone) error {
	milestone.ID = r.nextMilestoneID
	r.nextMilestoneID++
	r.milestones[milestone.ID] = *milestone
	return nil
}

func (r *fakeScheduleRepo) GetMilestoneByID(id uint) (*models.Milestone, error) {
	m, ok := r.milestones[id]
	if !ok {
		return nil, apperrors.NewNotFound("milestone", id)
	}
	copied := m
	return &copied, nil
}

func (r *fakeScheduleRepo) GetMilestonesBySchedule(scheduleID uint) ([]models.Milestone, error) {
	var out []models.Milestone
	for _, m := range r.milestones {
		if m.ScheduleID == scheduleID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SrNo < out[j].SrNo })
	return out, nil
}

func (r *fakeScheduleRepo) GetMilestonesByProject(projectID uint) ([]models.Milestone, error) {
	var out []models.Milestone
	for _, m := range r.milestones {
		s, ok := r.schedules[m.ScheduleID]
		if ok && s.ProjectID == projectID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduleID != out[j].ScheduleID {
			return out[i].ScheduleID < out[j].ScheduleID
		}
		return out[i].SrNo < out[j].SrNo
	})
	return out, nil
}

func (r *fakeScheduleRepo) UpdateMilestone(milestone *models.Milestone) error {
	if _, ok := r.milestones[milestone.ID]; !ok {
		return apperrors.NewWriteConflict("milestone", milestone.ID)
	}
	r.milestones[milestone.ID] = *milestone
	return nil
}

func (r *fakeScheduleRepo) DeleteMilestone(id uint) error {
	delete(r.milestones, id)
	return nil
}

func (r *fakeScheduleRepo) RenumberMilestones(scheduleID uint) error {
	milestones, _ := r.GetMilestonesBySchedule(scheduleID)
	for i, m := range milestones {
		m.SrNo = i + 1
		r.milestones[m.ID] = m
	}
	return nil
}

type fakeUnitRepo struct {
	units  map[uint]models.UnitFlat
	nextID uint
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: map[uint]models.UnitFlat{}, nextID: 1}
}

func (r *fakeUnitRepo) WithTx(tx *gorm.DB) repository.UnitRepository { return r }

func (r *fakeUnitRepo) Create(unit *models.UnitFlat) error {
	unit.ID = r.nextID
	r.nextID++
	r.units[unit.ID] = *unit
	return nil
}

func (r *fakeUnitRepo) GetByID(id uint) (*models.UnitFlat, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, apperrors.NewNotFound("unit", id)
	}
	copied := u
	return &copied, nil
}

func (r *fakeUnitRepo) GetByProjectID(projectID uint) ([]models.UnitFlat, error) {
	var out []models.UnitFlat
	for _, u := range r.units {
		if u.ProjectID == projectID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUnitRepo) GetByClientID(clientID uint) ([]models.UnitFlat, error) {
	var out []models.UnitFlat
	for _, u := range r.units {
		if u.ClientID != nil && *u.ClientID == clientID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) GetAll() ([]models.UnitFlat, error) {
	var out []models.UnitFlat
	for _, u := range r.units {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUnitRepo) Update(unit *models.UnitFlat) error {
	if _, ok := r.units[unit.ID]; !ok {
		return apperrors.NewWriteConflict("unit", unit.ID)
	}
	r.units[unit.ID] = *unit
	return nil
}

func (r *fakeUnitRepo) UpdateDerivedAmounts(unitID uint, flatValue, receivedAmount, balanceAmount decimal.Decimal) error {
	u, ok := r.units[unitID]
	if !ok {
		return apperrors.NewWriteConflict("unit", unitID)
	}
	u.FlatValue = flatValue
	u.ReceivedAmount = receivedAmount
	u.BalanceAmount = balanceAmount
	r.units[unitID] = u
	return nil
}

func (r *fakeUnitRepo) Delete(id uint) error {
	delete(r.units, id)
	return nil
}

type fakePaymentRepo struct {
	customerSchedules map[uint]models.UnitCustomerSchedule
	paymentRequests   map[uint]models.UnitPaymentRequest
	receipts          map[uint]models.UnitPaymentReceipt
	nextScheduleID    uint
	nextRequestID     uint
	nextReceiptID     uint

	// failRequestForUnit makes payment-request creation fail for one
	// unit, to exercise per-unit cascade isolation.
	failRequestForUnit uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		customerSchedules: map[uint]models.UnitCustomerSchedule{},
		paymentRequests:   map[uint]models.UnitPaymentRequest{},
		receipts:          map[uint]models.UnitPaymentReceipt{},
		nextScheduleID:    1,
		nextRequestID:     1,
		nextReceiptID:     1,
	}
}

func (r *fakePaymentRepo) WithTx(tx *gorm.DB) repository.PaymentRepository { return r }

func (r *fakePaymentRepo) CreateCustomerSchedule(schedule *models.UnitCustomerSchedule) error {
	schedule.ID = r.nextScheduleID
	r.nextScheduleID++
	r.customerSchedules[schedule.ID] = *schedule
	return nil
}

func (r *fakePaymentRepo) GetCustomerScheduleByID(id uint) (*models.UnitCustomerSchedule, error) {
	s, ok := r.customerSchedules[id]
	if !ok {
		return nil, apperrors.NewNotFound("customer schedule", id)
	}
	copied := s
	return &copied, nil
}

func (r *fakePaymentRepo) GetCustomerSchedulesByUnit(unitID uint) ([]models.UnitCustomerSchedule, error) {
	var out []models.UnitCustomerSchedule
	for _, s := range r.customerSchedules {
		if s.UnitID == unitID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SrNo < out[j].SrNo })
	return out, nil
}

func (r *fakePaymentRepo) CountCustomerSchedulesByUnit(unitID uint) (int64, error) {
	var count int64
	for _, s := range r.customerSchedules {
		if s.UnitID == unitID {
			count++
		}
	}
	return count, nil
}

func (r *fakePaymentRepo) UpdateCustomerSchedule(schedule *models.UnitCustomerSchedule) error {
	if _, ok := r.customerSchedules[schedule.ID]; !ok {
		return apperrors.NewWriteConflict("customer schedule", schedule.ID)
	}
	r.customerSchedules[schedule.ID] = *schedule
	return nil
}

func (r *fakePaymentRepo) CreatePaymentRequest(request *models.UnitPaymentRequest) error {
	if r.failRequestForUnit != 0 && request.UnitID == r.failRequestForUnit {
		return fmt.Errorf("simulated insert failure for unit %d", request.UnitID)
	}
	request.ID = r.nextRequestID
	r.nextRequestID++
	r.paymentRequests[request.ID] = *request
	return nil
}

func (r *fakePaymentRepo) GetPaymentRequestsByUnit(unitID uint) ([]models.UnitPaymentRequest, error) {
	var out []models.UnitPaymentRequest
	for _, req := range r.paymentRequests {
		if req.UnitID == unitID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SrNo < out[j].SrNo })
	return out, nil
}

func (r *fakePaymentRepo) MaxPaymentRequestSrNo(unitID uint) (int, error) {
	max := 0
	for _, req := range r.paymentRequests {
		if req.UnitID == unitID && req.SrNo > max {
			max = req.SrNo
		}
	}
	return max, nil
}

func (r *fakePaymentRepo) CreateReceipt(receipt *models.UnitPaymentReceipt) error {
	receipt.ID = r.nextReceiptID
	r.nextReceiptID++
	r.receipts[receipt.ID] = *receipt
	return nil
}

func (r *fakePaymentRepo) GetReceiptByID(id uint) (*models.UnitPaymentReceipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, apperrors.NewNotFound("payment receipt", id)
	}
	copied := rec
	return &copied, nil
}

func (r *fakePaymentRepo) GetReceiptsByUnit(unitID uint) ([]models.UnitPaymentReceipt, error) {
	var out []models.UnitPaymentReceipt
	for _, rec := range r.receipts {
		if rec.UnitID == unitID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SrNo < out[j].SrNo })
	return out, nil
}

func (r *fakePaymentRepo) UpdateReceipt(receipt *models.UnitPaymentReceipt) error {
	if _, ok := r.receipts[receipt.ID]; !ok {
		return apperrors.NewWriteConflict("payment receipt", receipt.ID)
	}
	r.receipts[receipt.ID] = *receipt
	return nil
}

func (r *fakePaymentRepo) DeleteReceipt(id uint) error {
	delete(r.receipts, id)
	return nil
}

func (r *fakePaymentRepo) SumReceiptsByUnit(unitID uint) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rec := range r.receipts {
		if rec.UnitID == unitID {
			sum = sum.Add(rec.Amount)
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) MaxReceiptSrNo(unitID uint) (int, error) {
	max := 0
	for _, rec := range r.receipts {
		if rec.UnitID == unitID && rec.SrNo > max {
			max = rec.SrNo
		}
	}
	return max, nil
}
