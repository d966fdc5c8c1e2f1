package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// ========== RECORDS ==========

// CreateRecord implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreateRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, period_start, period_end,
			total_days, present_days, paid_leave_days, unpaid_leave_days, absent_days, payable_days,
			basic_salary, total_allowances, total_deductions, net_salary,
			payment_status, payment_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodStart, record.PeriodEnd,
		record.TotalDays, record.PresentDays, record.PaidLeaveDays, record.UnpaidLeaveDays,
		record.AbsentDays, record.PayableDays,
		record.BasicSalary, record.TotalAllowances, record.TotalDeductions, record.NetSalary,
		record.PaymentStatus, record.PaymentDate,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "uk_payroll_employee_period") {
			return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// GetRecordByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetRecordByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := selectRecordQuery + ` WHERE p.id = $1`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// GetRecordByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetRecordByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := selectRecordQuery + ` WHERE p.employee_id = $1 AND p.period_start = $2 AND p.period_end = $3`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, periodStart, periodEnd))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}

	return record, nil
}

// ListRecords implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListRecords(ctx context.Context, filter payroll.RecordFilter) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := selectRecordQuery + ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.PaymentStatus != nil {
		query += fmt.Sprintf(" AND p.payment_status = $%d", argIdx)
		args = append(args, *filter.PaymentStatus)
		argIdx++
	}
	query += " ORDER BY p.period_start DESC, e.full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// MarkPaid implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, id string, paymentDate time.Time) error {
	// The status predicate makes re-marking a Paid record a no-op at the
	// storage level; distinguishing which precondition failed needs a second
	// read, so both statements run in one transaction.
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE payroll_records
			SET payment_status = $1, payment_date = $2, updated_at = NOW()
			WHERE id = $3 AND payment_status = $4
			RETURNING id
		`

		var updatedID string
		err := q.QueryRow(txCtx, query, payroll.PaymentStatusPaid, paymentDate, id, payroll.PaymentStatusPending).Scan(&updatedID)
		if err != nil {
			if err == pgx.ErrNoRows {
				var status payroll.PaymentStatus
				checkErr := q.QueryRow(txCtx, `SELECT payment_status FROM payroll_records WHERE id = $1`, id).Scan(&status)
				if checkErr == pgx.ErrNoRows {
					return payroll.ErrPayrollRecordNotFound
				}
				if checkErr != nil {
					return fmt.Errorf("failed to check payroll record status: %w", checkErr)
				}
				if status == payroll.PaymentStatusPaid {
					return payroll.ErrPayrollRecordAlreadyPaid
				}
				return payroll.ErrPayrollRecordNotFound
			}
			return fmt.Errorf("failed to mark payroll record paid: %w", err)
		}

		return nil
	})
}

const selectRecordQuery = `
	SELECT p.id, p.employee_id, p.period_start, p.period_end,
		   p.total_days, p.present_days, p.paid_leave_days, p.unpaid_leave_days,
		   p.absent_days, p.payable_days,
		   p.basic_salary, p.total_allowances, p.total_deductions, p.net_salary,
		   p.payment_status, p.payment_date, p.created_at, p.updated_at,
		   e.full_name, e.employee_code
	FROM payroll_records p
	JOIN employees e ON e.id = p.employee_id
`

func scanRecord(row pgx.Row) (payroll.Record, error) {
	var record payroll.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.PeriodStart, &record.PeriodEnd,
		&record.TotalDays, &record.PresentDays, &record.PaidLeaveDays, &record.UnpaidLeaveDays,
		&record.AbsentDays, &record.PayableDays,
		&record.BasicSalary, &record.TotalAllowances, &record.TotalDeductions, &record.NetSalary,
		&record.PaymentStatus, &record.PaymentDate, &record.CreatedAt, &record.UpdatedAt,
		&record.EmployeeName, &record.EmployeeCode,
	)
	return record, err
}

// ========== RULES ==========

// CreateRule implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreateRule(ctx context.Context, rule payroll.Rule) (payroll.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO allowance_deduction_rules (
			name, type, mode, amount, percentage, employee_id,
			effective_from, effective_to, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rule.Name, rule.Type, rule.Mode, rule.Amount, rule.Percentage, rule.EmployeeID,
		rule.EffectiveFrom, rule.EffectiveTo, rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return payroll.Rule{}, fmt.Errorf("failed to create allowance/deduction rule: %w", err)
	}

	return rule, nil
}

// ListEffectiveRules implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListEffectiveRules(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) ([]payroll.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, mode, amount, percentage, employee_id,
			   effective_from, effective_to, is_active, created_at, updated_at
		FROM allowance_deduction_rules
		WHERE is_active = true
		  AND effective_from <= $1
		  AND (effective_to IS NULL OR effective_to >= $2)
		  AND (employee_id IS NULL OR employee_id = $3)
		ORDER BY type, name
	`

	rows, err := q.Query(ctx, query, periodEnd, periodStart, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list effective rules: %w", err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// ListRules implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListRules(ctx context.Context) ([]payroll.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, mode, amount, percentage, employee_id,
			   effective_from, effective_to, is_active, created_at, updated_at
		FROM allowance_deduction_rules
		ORDER BY type, name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	return scanRules(rows)
}

func scanRules(rows pgx.Rows) ([]payroll.Rule, error) {
	var rules []payroll.Rule
	for rows.Next() {
		var rule payroll.Rule
		if err := rows.Scan(
			&rule.ID, &rule.Name, &rule.Type, &rule.Mode, &rule.Amount, &rule.Percentage,
			&rule.EmployeeID, &rule.EffectiveFrom, &rule.EffectiveTo, &rule.IsActive,
			&rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
