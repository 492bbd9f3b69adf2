package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"toro-admin/api-gateway/internal/gateway"
	"toro-admin/api-gateway/internal/mocks"
	"toro-admin/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = gateway.Config{
	AdminSvcURL:    "http://admin-svc",
	ActivitySvcURL: "http://activity-svc/",
	JWTSecret:      "gw-secret",
}

func adminCookie(t *testing.T, secret string, issued time.Time) *http.Cookie {
	t.Helper()
	raw, err := token.Issue(secret, time.Hour, issued)
	require.NoError(t, err)
	return &http.Cookie{Name: token.CookieName, Value: raw}
}

func upstream(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		wantURL string
	}{
		{name: "activity feed", method: http.MethodGet, target: "/api/activity?limit=5", wantURL: "http://activity-svc/api/activity?limit=5"},
		{name: "login", method: http.MethodPost, target: "/api/auth/admin", wantURL: "http://admin-svc/api/auth/admin"},
		{name: "landing", method: http.MethodGet, target: "/", wantURL: "http://admin-svc/"},
		{name: "admin table", method: http.MethodGet, target: "/admin/cities?q=tam&page=2", wantURL: "http://admin-svc/admin/cities?q=tam&page=2"},
		{name: "static asset", method: http.MethodGet, target: "/static/app.css", wantURL: "http://admin-svc/static/app.css"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(testConfig, mockClient)

			mockClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
				return r.Method == testCase.method && r.URL.String() == testCase.wantURL
			})).Return(upstream(http.StatusOK, "ok"), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.target, nil)
			req.AddCookie(adminCookie(t, testConfig.JWTSecret, time.Now()))
			rr := httptest.NewRecorder()
			gw.SetupRoutes().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "ok", rr.Body.String())
		})
	}
}

func TestGateway_RouteHandler_PassesRedirectAndCookie(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	resp := upstream(http.StatusSeeOther, "")
	resp.Header.Set("Location", "/admin")
	resp.Header.Set("Set-Cookie", "admin-token=abc; Path=/; HttpOnly")
	mockClient.On("Do", mock.Anything).Return(resp, nil).Once()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/admin", strings.NewReader("password=hunter2"))
	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "admin-token=abc")
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	req.AddCookie(adminCookie(t, testConfig.JWTSecret, time.Now()))
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_ActivityRequiresAdminToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie func(t *testing.T) *http.Cookie
	}{
		{name: "no cookie", cookie: func(*testing.T) *http.Cookie { return nil }},
		{name: "garbage token", cookie: func(*testing.T) *http.Cookie {
			return &http.Cookie{Name: token.CookieName, Value: "not-a-token"}
		}},
		{name: "wrong secret", cookie: func(t *testing.T) *http.Cookie {
			return adminCookie(t, "other-secret", time.Now())
		}},
		{name: "expired", cookie: func(t *testing.T) *http.Cookie {
			return adminCookie(t, testConfig.JWTSecret, time.Now().Add(-2*time.Hour))
		}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(testConfig, mockClient)

			req := httptest.NewRequest(http.MethodGet, "/api/activity?limit=5", nil)
			if c := testCase.cookie(t); c != nil {
				req.AddCookie(c)
			}
			rr := httptest.NewRecorder()
			gw.SetupRoutes().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.NotContains(t, rr.Body.String(), "action")
			mockClient.AssertNotCalled(t, "Do", mock.Anything)
		})
	}
}

func TestGateway_ProxyLogsTargetURL(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)
	mockClient.On("Do", mock.Anything).Return(upstream(http.StatusOK, "[]"), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/activity?limit=5", nil)
	req.AddCookie(adminCookie(t, testConfig.JWTSecret, time.Now()))
	gw.SetupRoutes().ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "PROXY: GET /api/activity -> http://activity-svc/api/activity?limit=5")
	assert.NotContains(t, buf.String(), "activity-svc//")
}
