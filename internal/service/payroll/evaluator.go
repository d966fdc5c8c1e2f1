package payroll

import (
	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// minPresentDaysForAllowance is a fixed business rule: allowances are paid
// only when the employee was present at least this many days in the period.
// Deductions apply regardless of attendance.
const minPresentDaysForAllowance = 7

// EvaluateRules computes the allowance and deduction totals from the
// already-selected effective rules.
func EvaluateRules(rules []payroll.Rule, basicSalary decimal.Decimal, presentDays int) (totalAllowances, totalDeductions decimal.Decimal) {
	totalAllowances = decimal.Zero
	totalDeductions = decimal.Zero

	for _, rule := range rules {
		amount := ruleAmount(rule, basicSalary)
		switch rule.Type {
		case payroll.RuleTypeDeduction:
			totalDeductions = totalDeductions.Add(amount)
		case payroll.RuleTypeAllowance:
			if presentDays >= minPresentDaysForAllowance {
				totalAllowances = totalAllowances.Add(amount)
			}
		}
	}

	return totalAllowances, totalDeductions
}

func ruleAmount(rule payroll.Rule, basicSalary decimal.Decimal) decimal.Decimal {
	if rule.Mode == payroll.CalcModePercentage {
		// Percentage rules apply to the full basic salary, never the
		// period-prorated figure.
		return rule.Percentage.
			Mul(basicSalary).
			Div(decimal.NewFromInt(100)).
			Round(2)
	}
	return rule.Amount
}
