package handlers

import (
	"encoding/json"
	"net/http"

	"task-tracker-api/apperrors"
	"task-tracker-api/models"
	"task-tracker-api/services"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		HandleError(w, apperrors.NewBadRequest("invalid request body"))
		return
	}

	created, err := h.service.CreateUser(r.Context(), user)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusCreated, created)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		HandleError(w, apperrors.NewBadRequest("invalid request body"))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, update)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondData(w, http.StatusOK, user)
}

func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	user, err := h.service.DeactivateUser(r.Context(), id)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondMessage(w, http.StatusOK, "User deactivated successfully", user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter, err := parseUserFilter(r)
	if err != nil {
		HandleError(w, err)
		return
	}
	opts := parseListOptions(r)

	users, total, err := h.service.ListUsers(r.Context(), filter, opts)
	if err != nil {
		HandleError(w, err)
		return
	}
	RespondList(w, users, NewPagination(opts.Page, opts.Limit, total))
}
