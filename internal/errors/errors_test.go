package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Constructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation error",
			err:        ErrValidation("sort", "must be one of revenue items"),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidationFailed,
			wantMsg:    "Request validation failed",
		},
		{
			name:       "view not found",
			err:        ViewNotFoundError("pie", []string{"overview"}),
			wantStatus: http.StatusNotFound,
			wantCode:   CodeViewNotFound,
			wantMsg:    `view "pie" not found`,
		},
		{
			name:       "summary not found",
			err:        SummaryNotFoundError("orders", []string{"categories", "reviews"}),
			wantStatus: http.StatusNotFound,
			wantCode:   CodeSummaryNotFound,
			wantMsg:    `summary "orders" not found`,
		},
		{
			name:       "unsupported format",
			err:        UnsupportedFormatError("pdf", []string{"csv", "xlsx"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeUnsupportedFormat,
			wantMsg:    `unsupported export format "pdf" (supported: csv, xlsx)`,
		},
		{
			name:       "export failure",
			err:        ExportError(errors.New("disk full")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeExportFailed,
			wantMsg:    "Failed to export summary",
		},
		{
			name:       "render failure",
			err:        RenderError(errors.New("bad view")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeRenderFailed,
			wantMsg:    "Failed to render view",
		},
		{
			name:       "generic not found",
			err:        NotFoundError("category"),
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNotFound,
			wantMsg:    "category not found",
		},
		{
			name:       "internal error",
			err:        NewInternalError("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternal,
			wantMsg:    "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestAPIError_JSON(t *testing.T) {
	apiErr := NewValidationErrors([]ValidationError{
		{Field: "limit", Message: "must be at most 100"},
		{Field: "direction", Message: "must be asc or desc"},
	})

	data, err := json.Marshal(apiErr)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, float64(http.StatusBadRequest), decoded["status_code"])
	assert.Equal(t, CodeValidationFailed, decoded["error_code"])

	details, ok := decoded["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, details["errors"], 2)
}

func TestAPIError_Render(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/data/views/pie", nil)

	apiErr := ViewNotFoundError("pie", nil)
	require.NoError(t, apiErr.Render(w, r))
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeViewNotFound,
		"Not Found",
		`view "pie" not found`,
		"/api/data/views/pie",
	).WithExtension("trace_id", "abc").WithExtension("type", "shadowed")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, TypeViewNotFound, decoded["type"])
	assert.Equal(t, "Not Found", decoded["title"])
	assert.Equal(t, float64(http.StatusNotFound), decoded["status"])
	assert.Equal(t, `view "pie" not found`, decoded["detail"])
	assert.Equal(t, "/api/data/views/pie", decoded["instance"])
	assert.Equal(t, "abc", decoded["trace_id"])
}

func TestProblemDetails_OmitsEmptyMembers(t *testing.T) {
	problem := &ProblemDetails{Type: TypeInternal, Title: "Internal Server Error", Status: 500}
	problem.WithExtension("trace_id", "t-1")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	_, hasDetail := decoded["detail"]
	_, hasInstance := decoded["instance"]
	assert.False(t, hasDetail)
	assert.False(t, hasInstance)
	assert.Equal(t, "t-1", decoded["trace_id"])
}
