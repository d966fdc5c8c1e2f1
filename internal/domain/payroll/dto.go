package payroll

import (
	"time"

	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RECORD DTOs ==========

type GeneratePayrollRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	TotalDays       int `json:"total_days"`
	PresentDays     int `json:"present_days"`
	PaidLeaveDays   int `json:"paid_leave_days"`
	UnpaidLeaveDays int `json:"unpaid_leave_days"`
	AbsentDays      int `json:"absent_days"`
	PayableDays     int `json:"payable_days"`

	BasicSalary     decimal.Decimal `json:"basic_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	PaymentStatus string  `json:"payment_status"`
	PaymentDate   *string `json:"payment_date,omitempty"`

	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
}

func ToRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		PeriodStart:     r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       r.PeriodEnd.Format("2006-01-02"),
		TotalDays:       r.TotalDays,
		PresentDays:     r.PresentDays,
		PaidLeaveDays:   r.PaidLeaveDays,
		UnpaidLeaveDays: r.UnpaidLeaveDays,
		AbsentDays:      r.AbsentDays,
		PayableDays:     r.PayableDays,
		BasicSalary:     r.BasicSalary,
		TotalAllowances: r.TotalAllowances,
		TotalDeductions: r.TotalDeductions,
		NetSalary:       r.NetSalary,
		PaymentStatus:   string(r.PaymentStatus),
		EmployeeName:    r.EmployeeName,
		EmployeeCode:    r.EmployeeCode,
	}
	if r.PaymentDate != nil {
		s := r.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &s
	}
	return resp
}

// ========== RULE DTOs ==========

type CreateRuleRequest struct {
	Name          string           `json:"name"`
	Type          string           `json:"type"` // "Allowance" or "Deduction"
	Mode          string           `json:"mode"` // "Fixed" or "Percentage"
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Percentage    *decimal.Decimal `json:"percentage,omitempty"`
	EmployeeID    *string          `json:"employee_id,omitempty"`
	EffectiveFrom string           `json:"effective_from"`
	EffectiveTo   *string          `json:"effective_to,omitempty"`
}

func (r *CreateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Type != string(RuleTypeAllowance) && r.Type != string(RuleTypeDeduction) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'Allowance' or 'Deduction'"})
	}
	switch r.Mode {
	case string(CalcModeFixed):
		if r.Amount == nil || r.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "is required and must be non-negative for Fixed rules"})
		}
	case string(CalcModePercentage):
		if r.Percentage == nil || r.Percentage.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "percentage", Message: "is required and must be non-negative for Percentage rules"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "must be 'Fixed' or 'Percentage'"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RuleResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Mode          string          `json:"mode"`
	Amount        decimal.Decimal `json:"amount"`
	Percentage    decimal.Decimal `json:"percentage"`
	EmployeeID    *string         `json:"employee_id,omitempty"`
	EffectiveFrom string          `json:"effective_from"`
	EffectiveTo   *string         `json:"effective_to,omitempty"`
	IsActive      bool            `json:"is_active"`
}

func ToRuleResponse(r Rule) RuleResponse {
	resp := RuleResponse{
		ID:            r.ID,
		Name:          r.Name,
		Type:          string(r.Type),
		Mode:          string(r.Mode),
		Amount:        r.Amount,
		Percentage:    r.Percentage,
		EmployeeID:    r.EmployeeID,
		EffectiveFrom: r.EffectiveFrom.Format("2006-01-02"),
		IsActive:      r.IsActive,
	}
	if r.EffectiveTo != nil {
		s := r.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &s
	}
	return resp
}
