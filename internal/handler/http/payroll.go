package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/factorydesk/workforce-backend-go/internal/domain/wage"
	"github.com/factorydesk/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	ComputeDailyWage(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	wageService wage.WageService
}

func NewPayrollHandler(wageService wage.WageService) PayrollHandler {
	return &payrollHandlerImpl{
		wageService: wageService,
	}
}

// ComputeDailyWage implements PayrollHandler.
func (h *payrollHandlerImpl) ComputeDailyWage(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	date := chi.URLParam(r, "date")

	result, err := h.wageService.ComputeDailyWage(r.Context(), workerID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req wage.GeneratePayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.wageService.GeneratePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.wageService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter wage.PayrollFilter

	if month := r.URL.Query().Get("month"); month != "" {
		filter.Month = &month
	}
	if workerID := r.URL.Query().Get("worker_id"); workerID != "" {
		filter.WorkerID = &workerID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	result, err := h.wageService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Finalize implements PayrollHandler.
func (h *payrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	var req wage.FinalizePayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Finalize payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.wageService.FinalizePayroll(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll finalized", nil)
}
