package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/attendance"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/astrahr/payroll-backend-go/internal/pkg/dateutil"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	leaveService "github.com/astrahr/payroll-backend-go/internal/service/leave"
	lookupService "github.com/astrahr/payroll-backend-go/internal/service/lookup"
	"github.com/shopspring/decimal"
)

type PayrollService struct {
	payrollRepo     payroll.PayrollRepository
	employeeRepo    employee.EmployeeRepository
	attendanceRepo  attendance.AttendanceRepository
	leaveAggregator *leaveService.Aggregator
	weekendResolver *lookupService.WeekendResolver
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveAggregator *leaveService.Aggregator,
	weekendResolver *lookupService.WeekendResolver,
) *PayrollService {
	return &PayrollService{
		payrollRepo:     payrollRepo,
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		leaveAggregator: leaveAggregator,
		weekendResolver: weekendResolver,
	}
}

// Generate computes and persists the payroll record for one employee and pay
// period. The record is written exactly once; a period that already has a
// record yields ErrPayrollRecordAlreadyExists and no write. The existence
// check is best-effort, the unique index behind CreateRecord settles races.
func (s *PayrollService) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	start, _ := validator.IsValidDate(req.PeriodStart)
	end, _ := validator.IsValidDate(req.PeriodEnd)
	periodStart := dateutil.DateOnly(start)
	periodEnd := dateutil.DateOnly(end)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	_, err = s.payrollRepo.GetRecordByEmployeePeriod(ctx, emp.ID, periodStart, periodEnd)
	if err == nil {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordAlreadyExists
	}
	if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.RecordResponse{}, fmt.Errorf("failed to check existing payroll record: %w", err)
	}

	weekendSet, err := s.weekendResolver.Resolve(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	totalDays := dateutil.DaysInclusive(periodStart, periodEnd)
	weekendDays := weekendSet.CountInRange(periodStart, periodEnd)

	paidLeaveDays, unpaidLeaveDays, err := s.leaveAggregator.Days(ctx, emp.ID, periodStart, periodEnd)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	presentDays, err := s.attendanceRepo.CountPresentDays(ctx, emp.ID, periodStart, periodEnd)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to count present days: %w", err)
	}

	breakdown := ComputeDayBreakdown(totalDays, weekendDays, paidLeaveDays, unpaidLeaveDays, presentDays)
	proRated := ProRatedSalary(emp.BasicSalary, breakdown.TotalDays, breakdown.PayableDays)

	rules, err := s.payrollRepo.ListEffectiveRules(ctx, emp.ID, periodStart, periodEnd)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	totalAllowances, totalDeductions := EvaluateRules(rules, emp.BasicSalary, breakdown.PresentDays)

	netSalary := proRated.Add(totalAllowances).Sub(totalDeductions)

	record := payroll.Record{
		EmployeeID:      emp.ID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		TotalDays:       breakdown.TotalDays,
		PresentDays:     breakdown.PresentDays,
		PaidLeaveDays:   breakdown.PaidLeaveDays,
		UnpaidLeaveDays: breakdown.UnpaidLeaveDays,
		AbsentDays:      breakdown.AbsentDays,
		PayableDays:     breakdown.PayableDays,
		BasicSalary:     emp.BasicSalary,
		TotalAllowances: totalAllowances,
		TotalDeductions: totalDeductions,
		NetSalary:       netSalary,
		PaymentStatus:   payroll.PaymentStatusPending,
	}

	created, err := s.payrollRepo.CreateRecord(ctx, record)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return payroll.ToRecordResponse(created), nil
}

func (s *PayrollService) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return payroll.ToRecordResponse(record), nil
}

func (s *PayrollService) ListRecords(ctx context.Context, filter payroll.RecordFilter) ([]payroll.RecordResponse, error) {
	records, err := s.payrollRepo.ListRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.RecordResponse, 0, len(records))
	for _, record := range records {
		result = append(result, payroll.ToRecordResponse(record))
	}
	return result, nil
}

// MarkPaid stamps the payment date on a Pending record. Re-marking an
// already-Paid record is rejected, not re-applied.
func (s *PayrollService) MarkPaid(ctx context.Context, id string) (payroll.RecordResponse, error) {
	if err := s.payrollRepo.MarkPaid(ctx, id, time.Now().UTC()); err != nil {
		return payroll.RecordResponse{}, err
	}
	return s.GetRecord(ctx, id)
}

// ========== RULES ==========

func (s *PayrollService) CreateRule(ctx context.Context, req payroll.CreateRuleRequest) (payroll.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RuleResponse{}, err
	}

	effectiveFrom, _ := validator.IsValidDate(req.EffectiveFrom)
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		parsed, _ := validator.IsValidDate(*req.EffectiveTo)
		d := dateutil.DateOnly(parsed)
		effectiveTo = &d
	}

	// Amount and percentage are mutually exclusive; the inapplicable one is
	// force-zeroed so stale values can never leak into evaluation.
	amount := decimal.Zero
	percentage := decimal.Zero
	if req.Mode == string(payroll.CalcModeFixed) && req.Amount != nil {
		amount = *req.Amount
	}
	if req.Mode == string(payroll.CalcModePercentage) && req.Percentage != nil {
		percentage = *req.Percentage
	}

	rule := payroll.Rule{
		Name:          req.Name,
		Type:          payroll.RuleType(req.Type),
		Mode:          payroll.CalcMode(req.Mode),
		Amount:        amount,
		Percentage:    percentage,
		EmployeeID:    req.EmployeeID,
		EffectiveFrom: dateutil.DateOnly(effectiveFrom),
		EffectiveTo:   effectiveTo,
		IsActive:      true,
	}

	created, err := s.payrollRepo.CreateRule(ctx, rule)
	if err != nil {
		return payroll.RuleResponse{}, err
	}

	return payroll.ToRuleResponse(created), nil
}

func (s *PayrollService) ListRules(ctx context.Context) ([]payroll.RuleResponse, error) {
	rules, err := s.payrollRepo.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.RuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, payroll.ToRuleResponse(rule))
	}
	return result, nil
}
