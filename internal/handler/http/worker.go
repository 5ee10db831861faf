package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/factorydesk/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkerHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &workerHandlerImpl{
		workerService: workerService,
	}
}

// Create implements WorkerHandler.
func (h *workerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worker.CreateWorkerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create worker decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workerService.CreateWorker(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created", result)
}

// Get implements WorkerHandler.
func (h *workerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.workerService.GetWorker(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements WorkerHandler.
func (h *workerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter worker.WorkerFilter

	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if shiftID := r.URL.Query().Get("shift_id"); shiftID != "" {
		filter.ShiftID = &shiftID
	}
	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			filter.Active = &active
		}
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

	result, err := h.workerService.ListWorkers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements WorkerHandler.
func (h *workerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worker.UpdateWorkerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update worker decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.workerService.UpdateWorker(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated", result)
}

// Delete implements WorkerHandler.
func (h *workerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.workerService.DeleteWorker(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deleted", nil)
}
