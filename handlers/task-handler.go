package handlers

import (
	"encoding/json"
	"net/http"

	"task-tracker-api/apperrors"
	"task-tracker-api/models"
	"task-tracker-api/services"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		HandleError(w, apperrors.NewBadRequest("invalid request body"))
		return
	}

	created, err := h.service.CreateTask(r.Context(), task)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusCreated, created)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	var update models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		HandleError(w, apperrors.NewBadRequest("invalid request body"))
		return
	}

	task, err := h.service.UpdateTask(r.Context(), id, update)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	task, err := h.service.SoftDeleteTask(r.Context(), id)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondMessage(w, http.StatusOK, "Task deleted successfully", task)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		HandleError(w, err)
		return
	}
	opts := parseListOptions(r)

	tasks, total, err := h.service.ListTasks(r.Context(), filter, opts)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondList(w, tasks, NewPagination(opts.Page, opts.Limit, total))
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(r, "projectId")
	if err != nil {
		HandleError(w, err)
		return
	}

	q := r.URL.Query()
	tasks, err := h.service.GetTasksByProject(r.Context(), projectID, q.Get("status"), q.Get("priority"))
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondCount(w, tasks, len(tasks))
}

func (h *TaskHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	var body struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		HandleError(w, apperrors.NewBadRequest("invalid request body"))
		return
	}

	task, err := h.service.AddAttachment(r.Context(), id, body.Filename, body.URL)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondMessage(w, http.StatusOK, "Attachment added successfully", task)
}
