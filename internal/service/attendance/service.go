package attendance

import (
	"context"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/attendance"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/pkg/dateutil"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
)

type AttendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository) *AttendanceService {
	return &AttendanceService{attendanceRepo: attendanceRepo, employeeRepo: employeeRepo}
}

// Create handles manual attendance entry. Status, worked minutes and
// late/early offsets are derived against the employee's assigned shift when
// one exists; without a shift the record still gets a Present/Absent status
// from the punches alone.
func (s *AttendanceService) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	recordDate, _ := validator.IsValidDate(req.Date)
	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       dateutil.DateOnly(recordDate),
		Status:     attendance.StatusAbsent,
		ShiftID:    emp.ShiftID,
	}

	if req.ClockIn != nil {
		in, _ := validator.IsValidDateTime(*req.ClockIn)
		record.ClockIn = &in
		record.Status = attendance.StatusPresent
	}
	if req.ClockOut != nil {
		out, _ := validator.IsValidDateTime(*req.ClockOut)
		record.ClockOut = &out
	}

	if record.ClockIn != nil && record.ClockOut != nil {
		minutes := int(record.ClockOut.Sub(*record.ClockIn).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		record.WorkMinutes = &minutes
	}

	if emp.ShiftID != nil {
		shift, err := s.employeeRepo.GetShiftByID(ctx, *emp.ShiftID)
		if err == nil {
			applyShiftOffsets(&record, shift)
		}
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(created), nil
}

func (s *AttendanceService) List(ctx context.Context, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		result = append(result, attendance.ToResponse(record))
	}
	return result, nil
}

// applyShiftOffsets compares punches against the shift's scheduled times.
// Only minutes past the schedule count; early arrival and late departure are
// not tracked as offsets.
func applyShiftOffsets(record *attendance.Attendance, shift employee.Shift) {
	if record.ClockIn != nil {
		late := minutesOfDay(*record.ClockIn) - minutesOfDay(shift.StartTime)
		if late < 0 {
			late = 0
		}
		record.LateMinutes = &late
	}
	if record.ClockOut != nil {
		early := minutesOfDay(shift.EndTime) - minutesOfDay(*record.ClockOut)
		if early < 0 {
			early = 0
		}
		record.EarlyLeaveMinutes = &early
	}
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
