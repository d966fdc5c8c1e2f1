package punchimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/astrahr/payroll-backend-go/internal/domain/attendance"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/domain/importjob"
	"github.com/astrahr/payroll-backend-go/internal/pkg/dateutil"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	lookupService "github.com/astrahr/payroll-backend-go/internal/service/lookup"
)

const (
	// maxDiagnostics bounds the per-row diagnostic list stored on the job.
	maxDiagnostics = 50
	// progressEvery is the row interval between persisted progress updates.
	progressEvery = 200
)

// Service reconciles time-clock punch exports into attendance records. Each
// upload becomes an import job processed by a detached background worker;
// clients poll job status for completion.
type Service struct {
	jobRepo        importjob.JobRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	weekends       *lookupService.WeekendResolver
	runner         *Runner
}

func NewService(
	jobRepo importjob.JobRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	weekends *lookupService.WeekendResolver,
	runner *Runner,
) *Service {
	return &Service{
		jobRepo:        jobRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		weekends:       weekends,
		runner:         runner,
	}
}

// Enqueue stores the uploaded file as a Pending job and launches its worker.
// The returned status is what the client polls against.
func (s *Service) Enqueue(ctx context.Context, fileName string, data []byte) (importjob.JobStatusResponse, error) {
	if validator.IsEmpty(fileName) {
		fileName = "upload.xlsx"
	}
	if len(data) == 0 {
		return importjob.JobStatusResponse{}, importjob.ErrEmptyFile
	}

	job, err := s.jobRepo.Create(ctx, importjob.Job{
		ID:       uuid.NewString(),
		FileName: fileName,
		FileData: data,
		Status:   importjob.StatusPending,
	})
	if err != nil {
		return importjob.JobStatusResponse{}, fmt.Errorf("failed to create import job: %w", err)
	}

	if err := s.runner.Start(job.ID, func(ctx context.Context) {
		s.run(ctx, job)
	}); err != nil {
		return importjob.JobStatusResponse{}, err
	}

	slog.Info("Punch import enqueued", "job_id", job.ID, "file", fileName, "bytes", len(data))
	return importjob.ToStatusResponse(job), nil
}

// JobStatus returns the polling DTO for one job.
func (s *Service) JobStatus(ctx context.Context, id string) (importjob.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return importjob.JobStatusResponse{}, err
	}
	return importjob.ToStatusResponse(job), nil
}

// Wait blocks until the worker for the given job id has finished. Test hook.
func (s *Service) Wait(jobID string) {
	s.runner.Wait(jobID)
}

// punch is one accepted device punch after row validation.
type punch struct {
	EmployeeID string
	Date       time.Time
	At         time.Time
}

type dayKey struct {
	EmployeeID string
	Date       time.Time
}

// run is the worker body. It always leaves the job in a terminal status: any
// unhandled failure, panics included, transitions the job to Failed with the
// error and the diagnostics gathered so far.
func (s *Service) run(ctx context.Context, job importjob.Job) {
	var (
		total     int
		processed int
		diags     diagnostics
	)

	fail := func(cause string) {
		errorLog := diags.render(cause)
		if err := s.jobRepo.Finish(ctx, job.ID, importjob.StatusFailed, total, processed, &errorLog); err != nil {
			slog.Error("Failed to mark import job failed", "job_id", job.ID, "error", err)
		}
		slog.Warn("Punch import failed", "job_id", job.ID, "cause", cause)
	}

	defer func() {
		if r := recover(); r != nil {
			fail(fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := s.jobRepo.UpdateProgress(ctx, job.ID, importjob.StatusProcessing, 0, 0); err != nil {
		slog.Error("Failed to update import job progress", "job_id", job.ID, "error", err)
		return
	}

	rows, err := parseWorkbook(job.FileData)
	if err != nil {
		fail(err.Error())
		return
	}

	weekendSet, err := s.weekends.Resolve(ctx)
	if err != nil {
		fail(err.Error())
		return
	}

	machineMap, err := s.machineMap(ctx)
	if err != nil {
		fail(err.Error())
		return
	}

	// Work units are rows to scan plus day groups to save. The group count
	// is unknown until the scan finishes, so scan-phase updates budget one
	// save unit per row as an upper bound; the total is rebased downward
	// once the groups are known. Observed percentages never decrease.
	total = 2 * len(rows)
	punches := make([]punch, 0, len(rows))

	for i, row := range rows {
		if p, ok := s.acceptRow(row, weekendSet, machineMap, &diags); ok {
			punches = append(punches, p)
		}
		processed = i + 1
		if processed%progressEvery == 0 {
			s.progress(ctx, job.ID, importjob.StatusProcessing, total, processed)
		}
	}

	groups := groupByDay(punches)
	total = len(rows) + len(groups)
	s.progress(ctx, job.ID, importjob.StatusSaving, total, processed)

	for _, group := range groups {
		created, err := s.saveDay(ctx, group)
		if err != nil {
			fail(err.Error())
			return
		}
		if !created {
			slog.Debug("Attendance already recorded, skipping",
				"job_id", job.ID, "employee_id", group.Key.EmployeeID, "date", group.Key.Date.Format("2006-01-02"))
		}
		processed++
		if processed%progressEvery == 0 {
			s.progress(ctx, job.ID, importjob.StatusSaving, total, processed)
		}
	}

	errorLog := diags.renderOrNil()
	if err := s.jobRepo.Finish(ctx, job.ID, importjob.StatusCompleted, total, total, errorLog); err != nil {
		slog.Error("Failed to mark import job completed", "job_id", job.ID, "error", err)
		return
	}
	slog.Info("Punch import completed",
		"job_id", job.ID, "rows", len(rows), "days", len(groups), "diagnostics", diags.count)
}

// acceptRow validates one data row. Weekend-dated rows are dropped without a
// diagnostic; every other rejection is recorded.
func (s *Service) acceptRow(row punchRow, weekendSet dateutil.WeekendSet, machineMap map[int64]string, diags *diagnostics) (punch, bool) {
	machineID, err := strconv.ParseInt(row.Machine, 10, 64)
	if err != nil {
		diags.add(fmt.Sprintf("row %d: machine id %q is not a number", row.Number, row.Machine))
		return punch{}, false
	}

	date, ok := parseDateCell(row.DateCell)
	if !ok {
		diags.add(fmt.Sprintf("row %d: unparseable date %q", row.Number, row.DateCell))
		return punch{}, false
	}
	clock, ok := parseTimeCell(row.TimeCell)
	if !ok {
		diags.add(fmt.Sprintf("row %d: unparseable time %q", row.Number, row.TimeCell))
		return punch{}, false
	}

	if weekendSet.Contains(date.Weekday()) {
		return punch{}, false
	}

	employeeID, ok := machineMap[machineID]
	if !ok {
		diags.add(fmt.Sprintf("row %d: machine id %d has no active employee", row.Number, machineID))
		return punch{}, false
	}

	return punch{
		EmployeeID: employeeID,
		Date:       date,
		At:         date.Add(clock),
	}, true
}

func (s *Service) machineMap(ctx context.Context) (map[int64]string, error) {
	employees, err := s.employeeRepo.ListActiveWithMachineID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	result := make(map[int64]string, len(employees))
	for _, emp := range employees {
		if emp.MachineID != nil {
			result[*emp.MachineID] = emp.ID
		}
	}
	return result, nil
}

type dayGroup struct {
	Key     dayKey
	First   time.Time
	Last    time.Time
	Punches int
}

// groupByDay reduces punches to one group per (employee, date) carrying the
// earliest and latest punch. Groups come out in deterministic order so reruns
// write records in the same sequence.
func groupByDay(punches []punch) []dayGroup {
	byKey := make(map[dayKey]*dayGroup)
	for _, p := range punches {
		key := dayKey{EmployeeID: p.EmployeeID, Date: p.Date}
		group, ok := byKey[key]
		if !ok {
			byKey[key] = &dayGroup{Key: key, First: p.At, Last: p.At, Punches: 1}
			continue
		}
		if p.At.Before(group.First) {
			group.First = p.At
		}
		if p.At.After(group.Last) {
			group.Last = p.At
		}
		group.Punches++
	}

	result := make([]dayGroup, 0, len(byKey))
	for _, group := range byKey {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Key.EmployeeID != result[j].Key.EmployeeID {
			return result[i].Key.EmployeeID < result[j].Key.EmployeeID
		}
		return result[i].Key.Date.Before(result[j].Key.Date)
	})
	return result
}

// saveDay writes the attendance record for one group unless the day already
// has one. Import never overwrites: the read-side check skips known days and
// the unique index settles the race when two jobs touch the same day, with
// the resulting conflict tolerated as a skip.
func (s *Service) saveDay(ctx context.Context, group dayGroup) (bool, error) {
	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, group.Key.EmployeeID, group.Key.Date)
	if err != nil {
		return false, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	clockIn := group.First
	record := attendance.Attendance{
		EmployeeID: group.Key.EmployeeID,
		Date:       group.Key.Date,
		ClockIn:    &clockIn,
		Status:     attendance.StatusPresent,
	}
	// A single punch marks an incomplete day, not a zero-length one.
	if group.Punches > 1 && group.Last.After(group.First) {
		clockOut := group.Last
		record.ClockOut = &clockOut
	}

	if _, err := s.attendanceRepo.Create(ctx, record); err != nil {
		if errors.Is(err, attendance.ErrDuplicateDay) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return true, nil
}

func (s *Service) progress(ctx context.Context, jobID string, status importjob.Status, total, processed int) {
	// In-flight updates stay below the total; only Finish reports 100%.
	if total > 0 && processed >= total {
		processed = total - 1
	}
	if err := s.jobRepo.UpdateProgress(ctx, jobID, status, total, processed); err != nil {
		slog.Error("Failed to update import job progress", "job_id", jobID, "error", err)
	}
}

// diagnostics is the capped per-row issue list. Rows past the cap are counted
// but not retained.
type diagnostics struct {
	entries []string
	count   int
}

func (d *diagnostics) add(entry string) {
	d.count++
	if len(d.entries) < maxDiagnostics {
		d.entries = append(d.entries, entry)
	}
}

func (d *diagnostics) render(cause string) string {
	var b strings.Builder
	b.WriteString(cause)
	for _, entry := range d.entries {
		b.WriteString("\n")
		b.WriteString(entry)
	}
	if d.count > len(d.entries) {
		fmt.Fprintf(&b, "\n... and %d more", d.count-len(d.entries))
	}
	return b.String()
}

func (d *diagnostics) renderOrNil() *string {
	if d.count == 0 {
		return nil
	}
	log := d.render(fmt.Sprintf("%d row(s) skipped", d.count))
	return &log
}
