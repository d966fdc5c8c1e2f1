package employee

import "context"

// EmployeeRepository exposes the read surface this core needs. Employee CRUD
// is owned by an external collaborator; payroll snapshots salary and status
// at computation time through GetByID.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActiveWithMachineID returns active employees that have a time-clock
	// machine id assigned. Used by the punch reconciler to map device rows
	// to employees.
	ListActiveWithMachineID(ctx context.Context) ([]Employee, error)

	GetShiftByID(ctx context.Context, id string) (Shift, error)
}
