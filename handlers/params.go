package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/apperrors"
	"task-tracker-api/models"
	"task-tracker-api/services"
)

// pathObjectID parses a path parameter that the ObjectID middleware has
// already shape-checked.
func pathObjectID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		return primitive.NilObjectID, apperrors.NewBadRequest(fmt.Sprintf("%s is not a valid identifier", name))
	}
	return id, nil
}

// parseListOptions reads pagination and sorting from the query string. The
// pagination middleware has already bounds-checked page and limit.
func parseListOptions(r *http.Request) services.ListOptions {
	q := r.URL.Query()
	opts := services.ListOptions{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if page, err := strconv.ParseInt(q.Get("page"), 10, 64); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil {
		opts.Limit = limit
	}
	return opts.Normalized()
}

func parseUserFilter(r *http.Request) (services.UserFilter, error) {
	q := r.URL.Query()
	filter := services.UserFilter{
		Role:   q.Get("role"),
		Search: q.Get("search"),
	}
	if raw := q.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperrors.NewBadRequest("isActive must be true or false")
		}
		filter.IsActive = &active
	}
	return filter, nil
}

func parseProjectFilter(r *http.Request) (services.ProjectFilter, error) {
	q := r.URL.Query()
	filter := services.ProjectFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}

	if raw := q.Get("owner"); raw != "" {
		owner, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return filter, apperrors.NewBadRequest("owner is not a valid identifier")
		}
		filter.Owner = &owner
	}

	var err error
	if filter.MinBudget, err = queryFloat(q.Get("minBudget"), "minBudget"); err != nil {
		return filter, err
	}
	if filter.MaxBudget, err = queryFloat(q.Get("maxBudget"), "maxBudget"); err != nil {
		return filter, err
	}
	if filter.StartDateFrom, err = queryDate(q.Get("startDateFrom"), "startDateFrom"); err != nil {
		return filter, err
	}
	if filter.StartDateTo, err = queryDate(q.Get("startDateTo"), "startDateTo"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseTaskFilter(r *http.Request) (services.TaskFilter, error) {
	q := r.URL.Query()
	filter := services.TaskFilter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
		Overdue:  q.Get("overdue") == "true",
	}

	if raw := q.Get("project"); raw != "" {
		project, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return filter, apperrors.NewBadRequest("project is not a valid identifier")
		}
		filter.Project = &project
	}
	if raw := q.Get("assignedTo"); raw != "" {
		assignee, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return filter, apperrors.NewBadRequest("assignedTo is not a valid identifier")
		}
		filter.AssignedTo = &assignee
	}
	if raw := q.Get("tags"); raw != "" {
		filter.Tags = models.NormalizeTags(strings.Split(raw, ","))
	}

	var err error
	if filter.DueDateFrom, err = queryDate(q.Get("dueDateFrom"), "dueDateFrom"); err != nil {
		return filter, err
	}
	if filter.DueDateTo, err = queryDate(q.Get("dueDateTo"), "dueDateTo"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryFloat(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("%s must be a number", name))
	}
	return &value, nil
}

func queryDate(raw, name string) (*models.Date, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("%s is not a valid date", name))
	}
	return &date, nil
}
