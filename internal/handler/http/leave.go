package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/astrahr/payroll-backend-go/internal/domain/leave"
	"github.com/astrahr/payroll-backend-go/internal/handler/http/response"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	leaveService "github.com/astrahr/payroll-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	requestService *leaveService.RequestService
}

func NewLeaveHandler(requestService *leaveService.RequestService) LeaveHandler {
	return &leaveHandlerImpl{requestService: requestService}
}

func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	result, err := h.requestService.Create(r.Context(), req.EmployeeID, req.LeaveType, startDate, endDate, req.Remarks)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave.ToResponse(result))
}

func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req leave.DecideLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.requestService.Decide(r.Context(), id, leave.Status(req.Status)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"id": id, "status": req.Status})
}

func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id query parameter is required", nil)
		return
	}

	requests, err := h.requestService.List(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		result = append(result, leave.ToResponse(request))
	}
	response.Success(w, result)
}
