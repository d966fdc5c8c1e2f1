package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleType enum
type RuleType string

const (
	RuleTypeAllowance RuleType = "Allowance"
	RuleTypeDeduction RuleType = "Deduction"
)

// CalcMode enum
type CalcMode string

const (
	CalcModeFixed      CalcMode = "Fixed"
	CalcModePercentage CalcMode = "Percentage"
)

// Rule - allowance/deduction master data. Amount and Percentage are mutually
// exclusive: the non-applicable one is force-zeroed at write time.
type Rule struct {
	ID         string
	Name       string
	Type       RuleType
	Mode       CalcMode
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	// EmployeeID is nil for company-wide rules.
	EmployeeID    *string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// Record - computed payroll result for one employee and pay period.
// At most one record exists per (employee, period); the storage layer backs
// the precondition check with a unique index.
type Record struct {
	ID          string
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time

	TotalDays       int
	PresentDays     int
	PaidLeaveDays   int
	UnpaidLeaveDays int
	AbsentDays      int
	PayableDays     int

	BasicSalary     decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal

	PaymentStatus PaymentStatus
	PaymentDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
