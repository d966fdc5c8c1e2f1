package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrahr/payroll-backend-go/internal/domain/attendance"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/domain/leave"
	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	leaveService "github.com/astrahr/payroll-backend-go/internal/service/leave"
	lookupService "github.com/astrahr/payroll-backend-go/internal/service/lookup"
)

// ========== FAKES ==========

type fakePayrollRepo struct {
	records []payroll.Record
	rules   []payroll.Rule
}

func (f *fakePayrollRepo) CreateRecord(_ context.Context, record payroll.Record) (payroll.Record, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID &&
			existing.PeriodStart.Equal(record.PeriodStart) &&
			existing.PeriodEnd.Equal(record.PeriodEnd) {
			return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakePayrollRepo) GetRecordByID(_ context.Context, id string) (payroll.Record, error) {
	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return payroll.Record{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) GetRecordByEmployeePeriod(_ context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.Record, error) {
	for _, record := range f.records {
		if record.EmployeeID == employeeID &&
			record.PeriodStart.Equal(periodStart) &&
			record.PeriodEnd.Equal(periodEnd) {
			return record, nil
		}
	}
	return payroll.Record{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) ListRecords(_ context.Context, filter payroll.RecordFilter) ([]payroll.Record, error) {
	var result []payroll.Record
	for _, record := range f.records {
		if filter.EmployeeID != nil && record.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.PaymentStatus != nil && record.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

func (f *fakePayrollRepo) MarkPaid(_ context.Context, id string, paymentDate time.Time) error {
	for i := range f.records {
		if f.records[i].ID != id {
			continue
		}
		if f.records[i].PaymentStatus == payroll.PaymentStatusPaid {
			return payroll.ErrPayrollRecordAlreadyPaid
		}
		f.records[i].PaymentStatus = payroll.PaymentStatusPaid
		f.records[i].PaymentDate = &paymentDate
		return nil
	}
	return payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) CreateRule(_ context.Context, rule payroll.Rule) (payroll.Rule, error) {
	rule.ID = uuid.NewString()
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakePayrollRepo) ListEffectiveRules(_ context.Context, employeeID string, periodStart, periodEnd time.Time) ([]payroll.Rule, error) {
	var result []payroll.Rule
	for _, rule := range f.rules {
		if !rule.IsActive {
			continue
		}
		if rule.EmployeeID != nil && *rule.EmployeeID != employeeID {
			continue
		}
		if rule.EffectiveFrom.After(periodEnd) {
			continue
		}
		if rule.EffectiveTo != nil && rule.EffectiveTo.Before(periodStart) {
			continue
		}
		result = append(result, rule)
	}
	return result, nil
}

func (f *fakePayrollRepo) ListRules(_ context.Context) ([]payroll.Rule, error) {
	return f.rules, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActiveWithMachineID(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetShiftByID(_ context.Context, _ string) (employee.Shift, error) {
	return employee.Shift{}, employee.ErrShiftNotFound
}

type fakeAttendanceRepo struct {
	// presentDates maps employee id to the set of present dates.
	presentDates map[string][]time.Time
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	return record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) CountPresentDays(_ context.Context, employeeID string, start, end time.Time) (int, error) {
	count := 0
	for _, date := range f.presentDates[employeeID] {
		if !date.Before(start) && !date.After(end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.Filter) ([]attendance.Attendance, error) {
	return nil, nil
}

type fakeLeaveRepo struct {
	requests []leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests = append(f.requests, request)
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, _ string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(_ context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	var result []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID != employeeID || request.Status != leave.StatusApproved {
			continue
		}
		if request.EndDate.Before(start) || request.StartDate.After(end) {
			continue
		}
		result = append(result, request)
	}
	return result, nil
}

func (f *fakeLeaveRepo) HasOverlap(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, _ string, _ leave.Status) error {
	return nil
}

func (f *fakeLeaveRepo) List(_ context.Context, _ string) ([]leave.LeaveRequest, error) {
	return f.requests, nil
}

type fakeLookupRepo struct {
	values []string
}

func (f *fakeLookupRepo) GetActiveValuesByCategory(_ context.Context, _ string) ([]string, error) {
	return f.values, nil
}

// ========== SETUP ==========

type serviceFixture struct {
	service        *PayrollService
	payrollRepo    *fakePayrollRepo
	attendanceRepo *fakeAttendanceRepo
	leaveRepo      *fakeLeaveRepo
}

const testEmployeeID = "emp-001"

func newServiceFixture(basicSalary int64, weekendDays []string) *serviceFixture {
	payrollRepo := &fakePayrollRepo{}
	attendanceRepo := &fakeAttendanceRepo{presentDates: map[string][]time.Time{}}
	leaveRepo := &fakeLeaveRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:           testEmployeeID,
			EmployeeCode: "EMP001",
			FullName:     "Test Employee",
			BasicSalary:  decimal.NewFromInt(basicSalary),
			Status:       employee.StatusActive,
		},
	}}

	service := NewPayrollService(
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		leaveService.NewAggregator(leaveRepo),
		lookupService.NewWeekendResolver(&fakeLookupRepo{values: weekendDays}),
	)

	return &serviceFixture{
		service:        service,
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
	}
}

func (f *serviceFixture) markPresent(employeeID string, dates ...string) {
	for _, d := range dates {
		parsed, _ := time.Parse("2006-01-02", d)
		f.presentDatesAppend(employeeID, parsed)
	}
}

func (f *serviceFixture) presentDatesAppend(employeeID string, date time.Time) {
	f.attendanceRepo.presentDates[employeeID] = append(f.attendanceRepo.presentDates[employeeID], date)
}

func (f *serviceFixture) markPresentRange(employeeID, start, end string, skip map[string]bool) {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if skip[d.Format("2006-01-02")] {
			continue
		}
		f.presentDatesAppend(employeeID, d)
	}
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

// ========== TESTS ==========

func TestGenerate_FullMonthFullAttendance(t *testing.T) {
	t.Parallel()

	// January 2025, Sundays only: the 5th, 12th, 19th and 26th.
	fixture := newServiceFixture(31000, []string{"Sunday"})
	sundays := map[string]bool{
		"2025-01-05": true, "2025-01-12": true, "2025-01-19": true, "2025-01-26": true,
	}
	fixture.markPresentRange(testEmployeeID, "2025-01-01", "2025-01-31", sundays)

	resp, err := fixture.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID:  testEmployeeID,
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 31, resp.TotalDays)
	assert.Equal(t, 27, resp.PresentDays)
	assert.Equal(t, 0, resp.PaidLeaveDays)
	assert.Equal(t, 0, resp.UnpaidLeaveDays)
	assert.Equal(t, 0, resp.AbsentDays)
	assert.Equal(t, 31, resp.PayableDays)
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(31000)), "got %s", resp.NetSalary)
	assert.Equal(t, string(payroll.PaymentStatusPending), resp.PaymentStatus)
	assert.Nil(t, resp.PaymentDate)
}

func TestGenerate_LeaveAndAbsence(t *testing.T) {
	t.Parallel()

	// January 2025, 4 Sundays, 27 working days. Two days of approved unpaid
	// leave, one day of approved annual leave, 22 present days: 2 absences.
	fixture := newServiceFixture(31000, []string{"Sunday"})
	fixture.leaveRepo.requests = []leave.LeaveRequest{
		{
			ID: "lr-1", EmployeeID: testEmployeeID, LeaveType: leave.TypeUnpaid,
			StartDate: date("2025-01-06"), EndDate: date("2025-01-07"),
			Status: leave.StatusApproved,
		},
		{
			ID: "lr-2", EmployeeID: testEmployeeID, LeaveType: "Annual",
			StartDate: date("2025-01-13"), EndDate: date("2025-01-13"),
			Status: leave.StatusApproved,
		},
	}
	skip := map[string]bool{
		"2025-01-05": true, "2025-01-12": true, "2025-01-19": true, "2025-01-26": true, // Sundays
		"2025-01-06": true, "2025-01-07": true, "2025-01-13": true, // leave
		"2025-01-20": true, "2025-01-21": true, // unexcused
	}
	fixture.markPresentRange(testEmployeeID, "2025-01-01", "2025-01-31", skip)

	resp, err := fixture.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID:  testEmployeeID,
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 22, resp.PresentDays)
	assert.Equal(t, 1, resp.PaidLeaveDays)
	assert.Equal(t, 2, resp.UnpaidLeaveDays)
	// expected = 27 - 1 - 2 = 24, absent = 24 - 22 = 2
	assert.Equal(t, 2, resp.AbsentDays)
	// payable = 31 - 2 - 2 = 27; 31000/31*27 = 27000
	assert.Equal(t, 27, resp.PayableDays)
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(27000)), "got %s", resp.NetSalary)
}

func TestGenerate_DuplicatePeriodRejected(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(31000, []string{"Sunday"})
	req := payroll.GeneratePayrollRequest{
		EmployeeID:  testEmployeeID,
		PeriodStart: "2025-02-01",
		PeriodEnd:   "2025-02-28",
	}

	_, err := fixture.service.Generate(context.Background(), req)
	require.NoError(t, err)

	_, err = fixture.service.Generate(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
	assert.Len(t, fixture.payrollRepo.records, 1)

	// The same employee may still be paid for a different period.
	_, err = fixture.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID:  testEmployeeID,
		PeriodStart: "2025-03-01",
		PeriodEnd:   "2025-03-31",
	})
	assert.NoError(t, err)
}

func TestGenerate_AllowanceThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		presentDays    int
		wantAllowances int64
		wantDeductions int64
	}{
		{name: "below threshold", presentDays: 6, wantAllowances: 0, wantDeductions: 200},
		{name: "at threshold", presentDays: 7, wantAllowances: 500, wantDeductions: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newServiceFixture(30000, nil)
			fixture.payrollRepo.rules = []payroll.Rule{
				{
					ID: "rule-a", Name: "Transport", Type: payroll.RuleTypeAllowance,
					Mode: payroll.CalcModeFixed, Amount: decimal.NewFromInt(500),
					EffectiveFrom: date("2025-01-01"), IsActive: true,
				},
				{
					ID: "rule-d", Name: "Insurance", Type: payroll.RuleTypeDeduction,
					Mode: payroll.CalcModeFixed, Amount: decimal.NewFromInt(200),
					EffectiveFrom: date("2025-01-01"), IsActive: true,
				},
			}
			for i := 0; i < tt.presentDays; i++ {
				fixture.presentDatesAppend(testEmployeeID, date("2025-04-01").AddDate(0, 0, i))
			}

			resp, err := fixture.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
				EmployeeID:  testEmployeeID,
				PeriodStart: "2025-04-01",
				PeriodEnd:   "2025-04-30",
			})
			require.NoError(t, err)

			assert.True(t, resp.TotalAllowances.Equal(decimal.NewFromInt(tt.wantAllowances)),
				"allowances: got %s", resp.TotalAllowances)
			assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(tt.wantDeductions)),
				"deductions: got %s", resp.TotalDeductions)
		})
	}
}

func TestGenerate_RuleScoping(t *testing.T) {
	t.Parallel()

	otherEmployee := "emp-999"
	fixture := newServiceFixture(30000, nil)
	fixture.payrollRepo.rules = []payroll.Rule{
		{
			ID: "rule-company", Name: "Meal", Type: payroll.RuleTypeAllowance,
			Mode: payroll.CalcModeFixed, Amount: decimal.NewFromInt(100),
			EffectiveFrom: date("2025-01-01"), IsActive: true,
		},
		{
			ID: "rule-other", Name: "Housing", Type: payroll.RuleTypeAllowance,
			Mode: payroll.CalcModeFixed, Amount: decimal.NewFromInt(1000),
			EmployeeID:    &otherEmployee,
			EffectiveFrom: date("2025-01-01"), IsActive: true,
		},
		{
			ID: "rule-inactive", Name: "Legacy", Type: payroll.RuleTypeAllowance,
			Mode: payroll.CalcModeFixed, Amount: decimal.NewFromInt(9999),
			EffectiveFrom: date("2025-01-01"), IsActive: false,
		},
		{
			ID: "rule-expired", Name: "Old bonus", Type: payroll.RuleTypeAllowance,
			Mode: payroll.CalcModeFixed, Amount: decimal.NewFromInt(9999),
			EffectiveFrom: date("2024-01-01"), EffectiveTo: timePtr(date("2024-12-31")),
			IsActive: true,
		},
	}
	for i := 0; i < 10; i++ {
		fixture.presentDatesAppend(testEmployeeID, date("2025-05-01").AddDate(0, 0, i))
	}

	resp, err := fixture.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID:  testEmployeeID,
		PeriodStart: "2025-05-01",
		PeriodEnd:   "2025-05-31",
	})
	require.NoError(t, err)

	// Only the company-wide, active, in-window rule applies.
	assert.True(t, resp.TotalAllowances.Equal(decimal.NewFromInt(100)),
		"got %s", resp.TotalAllowances)
}

func TestGenerate_UnknownEmployee(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(30000, nil)

	_, err := fixture.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID:  "nobody",
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-01-31",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, fixture.payrollRepo.records)
}

func TestGenerate_InvalidPeriod(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(30000, nil)

	_, err := fixture.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID:  testEmployeeID,
		PeriodStart: "2025-01-31",
		PeriodEnd:   "2025-01-01",
	})
	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	assert.Empty(t, fixture.payrollRepo.records)
}

func TestMarkPaid(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(30000, nil)
	created, err := fixture.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID:  testEmployeeID,
		PeriodStart: "2025-06-01",
		PeriodEnd:   "2025-06-30",
	})
	require.NoError(t, err)

	paid, err := fixture.service.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PaymentStatusPaid), paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)

	// Paying twice is rejected, and the original payment date stands.
	_, err = fixture.service.MarkPaid(context.Background(), created.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)

	after, err := fixture.service.GetRecord(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, paid.PaymentDate, after.PaymentDate)

	_, err = fixture.service.MarkPaid(context.Background(), "missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestCreateRule_ForceZeroing(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(30000, nil)
	stale := decimal.NewFromInt(12345)

	resp, err := fixture.service.CreateRule(context.Background(), payroll.CreateRuleRequest{
		Name:          "Transport",
		Type:          string(payroll.RuleTypeAllowance),
		Mode:          string(payroll.CalcModeFixed),
		Amount:        &stale,
		Percentage:    &stale, // inapplicable for Fixed, must be dropped
		EffectiveFrom: "2025-01-01",
	})
	require.NoError(t, err)

	assert.True(t, resp.Amount.Equal(stale))
	assert.True(t, resp.Percentage.IsZero(), "got %s", resp.Percentage)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
