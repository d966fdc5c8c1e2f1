package postgresql

import (
	"context"
	"fmt"

	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, basic_salary, status, machine_id, shift_id,
			   created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.BasicSalary, &emp.Status,
		&emp.MachineID, &emp.ShiftID, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ListActiveWithMachineID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActiveWithMachineID(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, basic_salary, status, machine_id, shift_id,
			   created_at, updated_at
		FROM employees
		WHERE status = $1 AND machine_id IS NOT NULL
	`

	rows, err := q.Query(ctx, query, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with machine id: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.BasicSalary, &emp.Status,
			&emp.MachineID, &emp.ShiftID, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// GetShiftByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetShiftByID(ctx context.Context, id string) (employee.Shift, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, name, start_time, end_time
		FROM shifts
		WHERE id = $1
	`

	var shift employee.Shift
	err := q.QueryRow(ctx, query, id).Scan(&shift.ID, &shift.Name, &shift.StartTime, &shift.EndTime)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Shift{}, employee.ErrShiftNotFound
		}
		return employee.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return shift, nil
}
