package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodplan/api-gateway/internal/gateway"
	"foodplan/api-gateway/internal/mocks"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

var testConfig = gateway.Config{
	PlannerSvcURL: "http://planner-svc",
	PaymentSvcURL: "http://payment-svc",
	StatsSvcURL:   "http://stats-svc",
	JWTSecret:     testSecret,
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims gateway.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func okResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, zap.NewNop())

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RoutesToBackends(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		wantURL string
	}{
		{"plans", http.MethodGet, "/api/plans", "http://planner-svc/api/plans"},
		{"price", http.MethodPost, "/api/price", "http://planner-svc/api/price"},
		{"eligible dishes keep query", http.MethodGet, "/api/dishes/eligible?diet_type=keto", "http://planner-svc/api/dishes/eligible?diet_type=keto"},
		{"subscription", http.MethodGet, "/api/subscription", "http://planner-svc/api/subscription"},
		{"create subscription", http.MethodPost, "/api/subscriptions", "http://planner-svc/api/subscriptions"},
		{"menu", http.MethodPost, "/api/menus/today/regenerate", "http://planner-svc/api/menus/today/regenerate"},
		{"payments", http.MethodGet, "/api/payments/abc", "http://payment-svc/api/payments/abc"},
		{"stats", http.MethodGet, "/api/stats/diets", "http://stats-svc/api/stats/diets"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(testConfig, mockClient, zap.NewNop())

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.URL.String() == testCase.wantURL && req.Method == testCase.method
			})).Return(okResponse(`{}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, gateway.Claims{UserID: 5}))
			rr := httptest.NewRecorder()
			gw.SetupRoutes().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestGateway_ForwardsResolvedUser(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, zap.NewNop())

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get(gateway.UserHeader) == "42" && req.Header.Get("Authorization") == ""
	})).Return(okResponse(`{"id":1}`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/menus/today", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, gateway.Claims{UserID: 42}))
	req.Header.Set(gateway.UserHeader, "1")
	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1}`, rr.Body.String())
}

func TestGateway_PublicRouteStripsSpoofedUser(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, zap.NewNop())

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get(gateway.UserHeader) == ""
	})).Return(okResponse(`[]`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.Header.Set(gateway.UserHeader, "7")
	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGateway_RejectsUnauthenticated(t *testing.T) {
	expired := gateway.Claims{UserID: 5}
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		method string
		path   string
		header func(t *testing.T) string
	}{
		{"no token on private route", http.MethodGet, "/api/subscription", func(t *testing.T) string { return "" }},
		{"wrong secret", http.MethodGet, "/api/menus/today", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, "other", gateway.Claims{UserID: 5})
		}},
		{"expired token", http.MethodPost, "/api/payments", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, expired)
		}},
		{"token without user", http.MethodGet, "/api/payments", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, gateway.Claims{})
		}},
		{"garbage token on public route", http.MethodGet, "/api/plans", func(t *testing.T) string { return "Bearer nope" }},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			gw := gateway.NewGateway(testConfig, mocks.NewHTTPClient(t), zap.NewNop())

			req := httptest.NewRequest(testCase.method, testCase.path, nil)
			if h := testCase.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			rr := httptest.NewRecorder()
			gw.SetupRoutes().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestGateway_ParseTokenRejectsOtherAlgorithms(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, zap.NewNop())

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, gateway.Claims{UserID: 5}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = gw.ParseToken(token)
	assert.Error(t, err)

	id, err := gw.ParseToken(signToken(t, jwt.SigningMethodHS512, testSecret, gateway.Claims{UserID: 9}))
	require.NoError(t, err)
	assert.Equal(t, 9, id)
}

func TestGateway_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, gateway.Claims{UserID: 5}))
	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, zap.NewNop())

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dishes/3", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_PaymentCallbackForwardsSignature(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, zap.NewNop())

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("X-Payment-Signature") == "abc123" && req.Header.Get(gateway.UserHeader) == ""
	})).Return(okResponse(`{"status":"succeeded"}`), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/payments/6f1c/succeeded", nil)
	req.Header.Set("X-Payment-Signature", "abc123")
	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
