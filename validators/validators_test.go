package validators

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func runRoute(t *testing.T, route, method, target, body string, middlewares ...Middleware) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.Handle(route, Chain(okHandler, middlewares...)).Methods(method)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	return resp.Error
}

func TestObjectIDAcceptsValidHex(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	w := runRoute(t, "/items/{id}", http.MethodGet, "/items/"+id, "", ObjectID("id"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestObjectIDRejectsMalformedHex(t *testing.T) {
	w := runRoute(t, "/items/{id}", http.MethodGet, "/items/not-hex", "", ObjectID("id"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id is not a valid identifier", errorMessage(t, w))
}

func TestRequiredFieldsAllPresent(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"name":"Ana","email":"ana@example.com"}`,
		RequiredFields("name", "email"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequiredFieldsMissing(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"name":"Ana"}`,
		RequiredFields("name", "email"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing required fields: email", errorMessage(t, w))
}

func TestRequiredFieldsEmptyString(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"name":"  ","email":null}`,
		RequiredFields("name", "email"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing required fields: name, email", errorMessage(t, w))
}

func TestRequiredFieldsRejectsInvalidJSON(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items", `{oops`, RequiredFields("name"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBodyIsRestoredForTheHandler(t *testing.T) {
	var decoded struct {
		Name string `json:"name"`
	}
	readingHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&decoded))
		w.WriteHeader(http.StatusOK)
	})

	router := mux.NewRouter()
	router.Handle("/items", Chain(readingHandler,
		RequiredFields("name"),
		Enum("role", []string{"admin"}),
		Dates(),
		PositiveNumbers("budget"),
	)).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"Ana","role":"admin"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", decoded.Name)
}

func TestEnumAllowsOmittedField(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items", `{}`, Enum("role", []string{"admin"}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEnumRejectsUnknownValue(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"role":"wizard"}`,
		Enum("role", []string{"admin", "manager"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "role must be one of: admin, manager", errorMessage(t, w))
}

func TestDatesRejectsBadValue(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items", `{"dueDate":"mañana"}`, Dates())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "dueDate is not a valid date", errorMessage(t, w))
}

func TestDatesRejectsEndBeforeStart(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"startDate":"2024-06-01","endDate":"2024-01-01"}`, Dates())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "endDate cannot be earlier than startDate", errorMessage(t, w))
}

func TestDatesAcceptsOrderedPair(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"startDate":"2024-01-01","endDate":"2024-06-01T12:00:00Z"}`, Dates())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPositiveNumbersRejectsNegative(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"budget":-5}`, PositiveNumbers("budget"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "budget must be a number greater than or equal to 0", errorMessage(t, w))
}

func TestPositiveNumbersRejectsNonNumber(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"budget":"lots"}`, PositiveNumbers("budget"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPositiveNumbersAcceptsZeroAndOmitted(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"budget":0}`, PositiveNumbers("budget", "other"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaginationBounds(t *testing.T) {
	cases := []struct {
		query string
		code  int
	}{
		{"", http.StatusOK},
		{"?page=1&limit=100", http.StatusOK},
		{"?page=0", http.StatusBadRequest},
		{"?page=abc", http.StatusBadRequest},
		{"?limit=0", http.StatusBadRequest},
		{"?limit=101", http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := runRoute(t, "/items", http.MethodGet, "/items"+tc.query, "", Pagination())
		assert.Equal(t, tc.code, w.Code, "query %q", tc.query)
	}
}

func TestChainShortCircuitsOnFirstFailure(t *testing.T) {
	w := runRoute(t, "/items", http.MethodPost, "/items",
		`{"role":"wizard"}`,
		RequiredFields("name"),
		Enum("role", []string{"admin"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// the first validator in the chain reports, not the second
	assert.Equal(t, "missing required fields: name", errorMessage(t, w))
}
