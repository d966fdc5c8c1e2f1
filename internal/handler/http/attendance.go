package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/astrahr/payroll-backend-go/internal/domain/attendance"
	"github.com/astrahr/payroll-backend-go/internal/handler/http/response"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	attendanceService "github.com/astrahr/payroll-backend-go/internal/service/attendance"
	"github.com/astrahr/payroll-backend-go/internal/service/punchimport"
)

type AttendanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)

	// Punch import
	Import(w http.ResponseWriter, r *http.Request)
	ImportStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceService.AttendanceService
	importService     *punchimport.Service
}

func NewAttendanceHandler(service *attendanceService.AttendanceService, importService *punchimport.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: service,
		importService:     importService,
	}
}

func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter attendance.Filter
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		parsed, ok := validator.IsValidDate(from)
		if !ok {
			response.BadRequest(w, "date_from must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		filter.DateFrom = &parsed
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		parsed, ok := validator.IsValidDate(to)
		if !ok {
			response.BadRequest(w, "date_to must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		filter.DateTo = &parsed
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Import accepts a punch-export spreadsheet and answers immediately with the
// job handle; reconciliation continues in the background and the client polls
// ImportStatus for completion.
func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Punch export file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}

	result, err := h.importService.Enqueue(r.Context(), fileHeader.Filename, data)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Accepted(w, "Import started", result)
}

func (h *attendanceHandlerImpl) ImportStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.importService.JobStatus(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
