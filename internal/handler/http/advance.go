package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/factorydesk/workforce-backend-go/internal/domain/advance"
	"github.com/factorydesk/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdvanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	MarkRepaid(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService advance.AdvanceService
}

func NewAdvanceHandler(advanceService advance.AdvanceService) AdvanceHandler {
	return &advanceHandlerImpl{
		advanceService: advanceService,
	}
}

// Create implements AdvanceHandler.
func (h *advanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req advance.CreateAdvanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create advance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.advanceService.CreateAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance recorded", result)
}

// Get implements AdvanceHandler.
func (h *advanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.advanceService.GetAdvance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AdvanceHandler.
func (h *advanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter advance.AdvanceFilter

	if workerID := r.URL.Query().Get("worker_id"); workerID != "" {
		filter.WorkerID = &workerID
	}
	if month := r.URL.Query().Get("month"); month != "" {
		filter.Month = &month
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

	result, err := h.advanceService.ListAdvances(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements AdvanceHandler.
func (h *advanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.advanceService.ApproveAdvance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance approved", result)
}

// MarkRepaid implements AdvanceHandler.
func (h *advanceHandlerImpl) MarkRepaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.advanceService.MarkRepaid(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance marked repaid", result)
}

// Delete implements AdvanceHandler.
func (h *advanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.advanceService.DeleteAdvance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance deleted", nil)
}
