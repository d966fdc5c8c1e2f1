package payroll

import "github.com/shopspring/decimal"

// DayBreakdown is the day accounting for one employee and pay period.
// Absent and payable days are floored at zero, so the counts do not form an
// exact conservation identity when leave exceeds the working days.
type DayBreakdown struct {
	TotalDays          int
	WeekendDays        int
	WorkingDays        int
	ExpectedAttendance int
	PresentDays        int
	PaidLeaveDays      int
	UnpaidLeaveDays    int
	AbsentDays         int
	PayableDays        int
}

// ComputeDayBreakdown derives the day counts from the raw aggregates.
func ComputeDayBreakdown(totalDays, weekendDays, paidLeaveDays, unpaidLeaveDays, presentDays int) DayBreakdown {
	workingDays := totalDays - weekendDays

	expected := workingDays - paidLeaveDays - unpaidLeaveDays
	if expected < 0 {
		expected = 0
	}

	absent := expected - presentDays
	if absent < 0 {
		absent = 0
	}

	payable := totalDays - unpaidLeaveDays - absent
	if payable < 0 {
		payable = 0
	}

	return DayBreakdown{
		TotalDays:          totalDays,
		WeekendDays:        weekendDays,
		WorkingDays:        workingDays,
		ExpectedAttendance: expected,
		PresentDays:        presentDays,
		PaidLeaveDays:      paidLeaveDays,
		UnpaidLeaveDays:    unpaidLeaveDays,
		AbsentDays:         absent,
		PayableDays:        payable,
	}
}

// ProRatedSalary computes basicSalary / totalDays * payableDays, rounded to
// two decimal places. Rounding happens once, on the final figure.
func ProRatedSalary(basicSalary decimal.Decimal, totalDays, payableDays int) decimal.Decimal {
	if totalDays <= 0 {
		return decimal.Zero
	}
	return basicSalary.
		Mul(decimal.NewFromInt(int64(payableDays))).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(2)
}
