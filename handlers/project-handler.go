package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/apperrors"
	"task-tracker-api/models"
	"task-tracker-api/services"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		HandleError(w, apperrors.NewBadRequest("invalid request body"))
		return
	}

	created, err := h.service.CreateProject(r.Context(), project)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusCreated, created)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	project, err := h.service.GetProjectByID(r.Context(), id)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	var update models.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		HandleError(w, apperrors.NewBadRequest("invalid request body"))
		return
	}

	project, err := h.service.UpdateProject(r.Context(), id, update)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	project, err := h.service.SoftDeleteProject(r.Context(), id)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondMessage(w, http.StatusOK, "Project deleted successfully", project)
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProjectFilter(r)
	if err != nil {
		HandleError(w, err)
		return
	}
	opts := parseListOptions(r)

	projects, total, err := h.service.ListProjects(r.Context(), filter, opts)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondList(w, projects, NewPagination(opts.Page, opts.Limit, total))
}

func (h *ProjectHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	var body struct {
		UserID string            `json:"userId"`
		Role   models.MemberRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		HandleError(w, apperrors.NewBadRequest("invalid request body"))
		return
	}

	userID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		HandleError(w, apperrors.NewBadRequest("userId is not a valid identifier"))
		return
	}

	project, err := h.service.AddTeamMember(r.Context(), id, userID, body.Role)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondMessage(w, http.StatusOK, "Team member added successfully", project)
}

func (h *ProjectHandler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		HandleError(w, err)
		return
	}

	project, err := h.service.RemoveTeamMember(r.Context(), id, userID)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondMessage(w, http.StatusOK, "Team member removed successfully", project)
}
