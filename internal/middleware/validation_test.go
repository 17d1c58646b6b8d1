package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "ecomdash/internal/errors"
	"ecomdash/internal/shared/testutil"
)

type sampleQuery struct {
	Sort  string `json:"sort" validate:"required,oneof=revenue items"`
	Limit int    `json:"limit" validate:"gte=0,lte=100"`
	Skip  string `json:"-"`
}

func TestValidator_ValidateStruct(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		query      sampleQuery
		wantFields map[string]string
	}{
		{
			name:  "valid",
			query: sampleQuery{Sort: "revenue", Limit: 10},
		},
		{
			name:  "missing sort",
			query: sampleQuery{Limit: 5},
			wantFields: map[string]string{
				"sort": "sort is required",
			},
		},
		{
			name:  "bad enum and limit",
			query: sampleQuery{Sort: "price", Limit: 101},
			wantFields: map[string]string{
				"sort":  "sort must be one of: revenue, items",
				"limit": "limit must be less than or equal to 100",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.query)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			apiErr, ok := err.(*apierrors.APIError)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

			details, ok := apiErr.Details.(apierrors.ValidationErrors)
			require.True(t, ok)

			got := map[string]string{}
			for _, fe := range details.Errors {
				got[fe.Field] = fe.Message
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestQueryParamValidator(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	qv := NewQueryParamValidator(logger, apierrors.NewErrorHandler(logger, false))

	t.Run("int default", func(t *testing.T) {
		w := httptest.NewRecorder()
		v, ok := qv.ValidateInt(w, httptest.NewRequest(http.MethodGet, "/", nil), "limit", 0, 100, 10)
		assert.True(t, ok)
		assert.Equal(t, 10, v)
	})

	t.Run("int in range", func(t *testing.T) {
		w := httptest.NewRecorder()
		v, ok := qv.ValidateInt(w, httptest.NewRequest(http.MethodGet, "/?limit=25", nil), "limit", 0, 100, 10)
		assert.True(t, ok)
		assert.Equal(t, 25, v)
	})

	t.Run("int not a number", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := qv.ValidateInt(w, httptest.NewRequest(http.MethodGet, "/?limit=ten", nil), "limit", 0, 100, 10)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "limit must be a valid integer")
	})

	t.Run("int out of range", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := qv.ValidateInt(w, httptest.NewRequest(http.MethodGet, "/?limit=-1", nil), "limit", 0, 100, 10)
		assert.False(t, ok)
		assert.Contains(t, w.Body.String(), "limit must be between 0 and 100")
	})

	t.Run("enum case-insensitive", func(t *testing.T) {
		w := httptest.NewRecorder()
		v, ok := qv.ValidateEnum(w, httptest.NewRequest(http.MethodGet, "/?order=DESC", nil), "order", []string{"asc", "desc"}, "asc")
		assert.True(t, ok)
		assert.Equal(t, "desc", v)
	})

	t.Run("enum rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := qv.ValidateEnum(w, httptest.NewRequest(http.MethodGet, "/?order=up", nil), "order", []string{"asc", "desc"}, "asc")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apierrors.TypeValidation)
	})
}
