package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentpilot/pkg/calendar"
	apperrors "rentpilot/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDate(t *testing.T) {
	fallback := calendar.NewDate(2024, time.July, 1)

	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	d, err := ExtractDate(r, "date", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, d)

	r = httptest.NewRequest(http.MethodGet, "/x?date=2024-12-20", nil)
	d, err = ExtractDate(r, "date", fallback)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2024, time.December, 20), d)

	r = httptest.NewRequest(http.MethodGet, "/x?date=20-12-2024", nil)
	_, err = ExtractDate(r, "date", fallback)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestExtractMonth(t *testing.T) {
	fallback := calendar.Month{Year: 2024, Month: time.July}

	r := httptest.NewRequest(http.MethodGet, "/x?month=2025-02", nil)
	m, err := ExtractMonth(r, "month", fallback)
	require.NoError(t, err)
	assert.Equal(t, calendar.Month{Year: 2025, Month: time.February}, m)

	r = httptest.NewRequest(http.MethodGet, "/x?month=2025-13", nil)
	_, err = ExtractMonth(r, "month", fallback)
	require.Error(t, err)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", apperrors.NotFoundWithID("Property", "p1"), http.StatusNotFound, apperrors.CodeNotFound, "Property not found"},
		{"apply failed", apperrors.ApplyFailed("p1", errors.New("down")), http.StatusBadGateway, apperrors.CodeApplyFailed, "could not apply price"},
		{"internal hides cause", apperrors.Internal("Failed to load rules", errors.New("secret")), http.StatusInternalServerError, apperrors.CodeInternal, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, apperrors.CodeInternal, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteError(rec, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}
