package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "toro-admin/activity-svc/internal/api/http"
	"toro-admin/activity-svc/internal/domain"
	"toro-admin/activity-svc/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_Recent(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		events     []domain.ActivityEvent
		err        error
		wantStatus int
	}{
		{name: "default limit", query: "", wantLimit: 20, events: []domain.ActivityEvent{event("e1", "city.create", fixedNow)}, wantStatus: http.StatusOK},
		{name: "explicit limit", query: "?limit=5", wantLimit: 5, events: []domain.ActivityEvent{}, wantStatus: http.StatusOK},
		{name: "clamped limit", query: "?limit=5000", wantLimit: 100, events: []domain.ActivityEvent{}, wantStatus: http.StatusOK},
		{name: "invalid limit", query: "?limit=abc", wantLimit: 20, events: []domain.ActivityEvent{}, wantStatus: http.StatusOK},
		{name: "store error", query: "", wantLimit: 20, err: errors.New("postgres down"), wantStatus: http.StatusInternalServerError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			mockStore.On("Recent", mock.Anything, testCase.wantLimit).Return(testCase.events, testCase.err).Once()

			router := httpapi.NewRouter(httpapi.NewHandler(mockStore))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/activity"+testCase.query, nil))

			assert.Equal(t, testCase.wantStatus, rec.Code)
			if testCase.wantStatus == http.StatusOK {
				var got []domain.ActivityEvent
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Len(t, got, len(testCase.events))
			}
		})
	}
}

func TestHandler_Health(t *testing.T) {
	router := httpapi.NewRouter(httpapi.NewHandler(mocks.NewStoreInterface(t)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "activity-svc", body["service"])
}
