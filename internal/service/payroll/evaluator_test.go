package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
)

func fixedRule(ruleType payroll.RuleType, amount int64) payroll.Rule {
	return payroll.Rule{
		Type:   ruleType,
		Mode:   payroll.CalcModeFixed,
		Amount: decimal.NewFromInt(amount),
	}
}

func percentageRule(ruleType payroll.RuleType, pct string) payroll.Rule {
	return payroll.Rule{
		Type:       ruleType,
		Mode:       payroll.CalcModePercentage,
		Percentage: decimal.RequireFromString(pct),
	}
}

func TestEvaluateRules_AllowanceThreshold(t *testing.T) {
	t.Parallel()

	basic := decimal.NewFromInt(30000)
	rules := []payroll.Rule{
		fixedRule(payroll.RuleTypeAllowance, 500),
		fixedRule(payroll.RuleTypeDeduction, 200),
	}

	// At 6 present days the allowance is withheld but the deduction still applies.
	allow, deduct := EvaluateRules(rules, basic, 6)
	assert.True(t, allow.IsZero(), "got %s", allow)
	assert.True(t, deduct.Equal(decimal.NewFromInt(200)), "got %s", deduct)

	// At 7 present days both apply.
	allow, deduct = EvaluateRules(rules, basic, 7)
	assert.True(t, allow.Equal(decimal.NewFromInt(500)), "got %s", allow)
	assert.True(t, deduct.Equal(decimal.NewFromInt(200)), "got %s", deduct)
}

func TestEvaluateRules_PercentageOnFullSalary(t *testing.T) {
	t.Parallel()

	// Percentage rules are computed against the full basic salary, not the
	// pro-rated figure. 7.5% of 30001 = 2250.075 -> 2250.08.
	basic := decimal.NewFromInt(30001)
	rules := []payroll.Rule{percentageRule(payroll.RuleTypeDeduction, "7.5")}

	allow, deduct := EvaluateRules(rules, basic, 20)
	assert.True(t, allow.IsZero())
	assert.True(t, deduct.Equal(decimal.RequireFromString("2250.08")), "got %s", deduct)
}

func TestEvaluateRules_MixedRules(t *testing.T) {
	t.Parallel()

	basic := decimal.NewFromInt(10000)
	rules := []payroll.Rule{
		fixedRule(payroll.RuleTypeAllowance, 1000),
		percentageRule(payroll.RuleTypeAllowance, "10"), // 1000
		fixedRule(payroll.RuleTypeDeduction, 300),
		percentageRule(payroll.RuleTypeDeduction, "2"), // 200
	}

	allow, deduct := EvaluateRules(rules, basic, 15)
	assert.True(t, allow.Equal(decimal.NewFromInt(2000)), "got %s", allow)
	assert.True(t, deduct.Equal(decimal.NewFromInt(500)), "got %s", deduct)
}

func TestEvaluateRules_Empty(t *testing.T) {
	t.Parallel()

	allow, deduct := EvaluateRules(nil, decimal.NewFromInt(5000), 10)
	assert.True(t, allow.IsZero())
	assert.True(t, deduct.IsZero())
}
