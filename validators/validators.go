package validators

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/logging"
	"task-tracker-api/models"
)

// Middleware is a standard wrapping middleware; validators reject with a
// 400 envelope and never call the next handler on failure.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares around h in declaration order: the first
// middleware listed is the first to run.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// reject writes the same 400 envelope the handlers produce for a bad
// request, without reaching into the handlers package.
func reject(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	resp := struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{Success: false, Error: message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode rejection: %v", err)
	}
}

// peekBody reads the JSON body as a generic map and puts the bytes back so
// downstream validators and the handler can read them again.
func peekBody(r *http.Request) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if r.Body == nil {
		return body, nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("request body is not valid JSON")
	}
	return body, nil
}

// ObjectID validates the shape of a path parameter.
func ObjectID(param string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := primitive.ObjectIDFromHex(mux.Vars(r)[param]); err != nil {
				reject(w, fmt.Sprintf("%s is not a valid identifier", param))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequiredFields rejects when any of the listed body fields is absent, null
// or an empty string.
func RequiredFields(fields ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := peekBody(r)
			if err != nil {
				reject(w, err.Error())
				return
			}

			var missing []string
			for _, field := range fields {
				value, ok := body[field]
				if !ok || value == nil {
					missing = append(missing, field)
					continue
				}
				if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
					missing = append(missing, field)
				}
			}
			if len(missing) > 0 {
				reject(w, fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Enum rejects when the body field is present but not one of the allowed
// values.
func Enum(field string, allowed []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := peekBody(r)
			if err != nil {
				reject(w, err.Error())
				return
			}

			if value, ok := body[field]; ok && value != nil {
				s, isString := value.(string)
				if !isString || !contains(allowed, s) {
					reject(w, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Dates rejects unparseable startDate/endDate/dueDate values and an endDate
// earlier than startDate.
func Dates() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := peekBody(r)
			if err != nil {
				reject(w, err.Error())
				return
			}

			parsed := map[string]models.Date{}
			for _, field := range []string{"startDate", "endDate", "dueDate"} {
				value, ok := body[field]
				if !ok || value == nil {
					continue
				}
				s, isString := value.(string)
				if !isString {
					reject(w, fmt.Sprintf("%s is not a valid date", field))
					return
				}
				date, err := models.ParseDate(s)
				if err != nil {
					reject(w, fmt.Sprintf("%s is not a valid date", field))
					return
				}
				parsed[field] = date
			}

			start, hasStart := parsed["startDate"]
			end, hasEnd := parsed["endDate"]
			if hasStart && hasEnd && end.Before(start.Time) {
				reject(w, "endDate cannot be earlier than startDate")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PositiveNumbers rejects listed body fields that are present but not
// numbers greater than or equal to zero.
func PositiveNumbers(fields ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := peekBody(r)
			if err != nil {
				reject(w, err.Error())
				return
			}

			for _, field := range fields {
				value, ok := body[field]
				if !ok || value == nil {
					continue
				}
				number, isNumber := value.(float64)
				if !isNumber || number < 0 {
					reject(w, fmt.Sprintf("%s must be a number greater than or equal to 0", field))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Pagination bounds the page and limit query parameters: page >= 1,
// 1 <= limit <= 100.
func Pagination() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()

			if raw := q.Get("page"); raw != "" {
				page, err := strconv.Atoi(raw)
				if err != nil || page < 1 {
					reject(w, "page must be a number greater than 0")
					return
				}
			}
			if raw := q.Get("limit"); raw != "" {
				limit, err := strconv.Atoi(raw)
				if err != nil || limit < 1 || limit > 100 {
					reject(w, "limit must be a number between 1 and 100")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
