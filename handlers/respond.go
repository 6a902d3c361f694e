package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"task-tracker-api/apperrors"
	"task-tracker-api/logging"
)

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes pages as ceil(total/limit).
func NewPagination(page, limit, total int64) *Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func WriteJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
	}
}

// RespondData writes a success envelope around a single entity or list.
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, Response{Success: true, Data: data})
}

// RespondMessage writes a success envelope with a human-readable message.
func RespondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// RespondList writes a success envelope with pagination metadata.
func RespondList(w http.ResponseWriter, data interface{}, pagination *Pagination) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data, Pagination: pagination})
}

// RespondCount writes a success envelope with an item count, used by the
// unpaginated per-project task listing.
func RespondCount(w http.ResponseWriter, data interface{}, count int) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Count: &count, Data: data})
}

// HandleError is the single place where store and validation errors become
// HTTP responses. Handlers and middleware forward errors here untranslated.
func HandleError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		WriteJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Validation error",
			Details: validationErr.Violations,
		})
		return
	}

	if mongo.IsDuplicateKeyError(err) {
		field := duplicateKeyField(err)
		WriteJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Duplicate value",
			Details: fmt.Sprintf("a record with that %s already exists", field),
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.StatusCode, Response{Success: false, Error: appErr.Message})
		return
	}

	logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: Unclassified error: %v", err)
	resp := Response{Success: false, Error: "Internal server error"}
	if os.Getenv("APP_ENV") == "development" {
		resp.Details = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, resp)
}

// RouteNotFound answers unmatched routes with the standard envelope.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, Response{
		Success: false,
		Error:   fmt.Sprintf("route not found: %s", r.URL.Path),
	})
}

// duplicateKeyField pulls the conflicting field name out of the driver's
// duplicate-key message ("... index: email_1 dup key: ...").
func duplicateKeyField(err error) string {
	msg := err.Error()
	marker := "index: "
	idx := strings.Index(msg, marker)
	if idx == -1 {
		return "field"
	}
	name := msg[idx+len(marker):]
	if end := strings.IndexAny(name, " \t"); end != -1 {
		name = name[:end]
	}
	// default index names carry a _<direction> suffix
	if cut := strings.LastIndex(name, "_"); cut > 0 {
		name = name[:cut]
	}
	if name == "" {
		return "field"
	}
	return name
}
