package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "foodplan/payment-svc/internal/api/http"
	"foodplan/payment-svc/internal/domain"
	"foodplan/payment-svc/internal/mocks"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const callbackSecret = "callback-secret"

func newTestRouter(t *testing.T) (*mux.Router, *mocks.PaymentServiceInterface) {
	svc := mocks.NewPaymentServiceInterface(t)
	r := mux.NewRouter()
	httpapi.NewHandler(svc, callbackSecret, zap.NewNop()).RegisterRoutes(r)
	return r, svc
}

func serve(r http.Handler, method, target, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(httpapi.UserHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderHandler(t *testing.T) {
	body := `{"diet_type":"keto","selected_meal_types":["breakfast","lunch"],"persons_count":2,"plan_duration":1,"allergies":[1]}`

	tests := []struct {
		name      string
		userID    string
		body      string
		setupMock func(m *mocks.PaymentServiceInterface)
		wantCode  int
	}{
		{
			name:   "created",
			userID: "5",
			body:   body,
			setupMock: func(m *mocks.PaymentServiceInterface) {
				m.On("CreateOrder", mock.Anything, 5, order).Return(pendingPayment(t), nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "anonymous",
			body:      body,
			setupMock: func(m *mocks.PaymentServiceInterface) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "invalid JSON",
			userID:    "5",
			body:      `{invalid}`,
			setupMock: func(m *mocks.PaymentServiceInterface) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "planner validation",
			userID: "5",
			body:   body,
			setupMock: func(m *mocks.PaymentServiceInterface) {
				m.On("CreateOrder", mock.Anything, 5, order).
					Return(nil, domain.ValidationErrors{{Field: "diet_type", Message: "unknown diet type"}}).Once()
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, svc := newTestRouter(t)
			testCase.setupMock(svc)

			w := serve(r, "POST", "/api/payments", testCase.body, testCase.userID)

			assert.Equal(t, testCase.wantCode, w.Code)
			if w.Code == http.StatusCreated {
				var got map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, paymentID.String(), got["payment_id"])
				assert.Equal(t, "500.00", got["amount"])
				assert.Equal(t, "pending", got["status"])
			}
		})
	}
}

func TestConfirmPaymentHandler(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		setupMock func(m *mocks.PaymentServiceInterface)
		wantCode  int
	}{
		{
			name: "succeeded",
			path: "/api/payments/" + paymentID.String() + "/succeeded",
			setupMock: func(m *mocks.PaymentServiceInterface) {
				p := pendingPayment(t)
				p.Status = domain.StatusSucceeded
				m.On("ConfirmPayment", mock.Anything, paymentID).Return(p, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "malformed id",
			path:      "/api/payments/not-a-uuid/succeeded",
			setupMock: func(m *mocks.PaymentServiceInterface) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "in progress",
			path: "/api/payments/" + paymentID.String() + "/succeeded",
			setupMock: func(m *mocks.PaymentServiceInterface) {
				m.On("ConfirmPayment", mock.Anything, paymentID).Return(nil, domain.ErrPaymentInProgress).Once()
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown payment",
			path: "/api/payments/" + paymentID.String() + "/succeeded",
			setupMock: func(m *mocks.PaymentServiceInterface) {
				m.On("ConfirmPayment", mock.Anything, paymentID).Return(nil, domain.ErrNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "planner down",
			path: "/api/payments/" + paymentID.String() + "/succeeded",
			setupMock: func(m *mocks.PaymentServiceInterface) {
				m.On("ConfirmPayment", mock.Anything, paymentID).Return(nil, errors.New("connection refused")).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, svc := newTestRouter(t)
			testCase.setupMock(svc)

			req := httptest.NewRequest("POST", testCase.path, nil)
			req.Header.Set(httpapi.SignatureHeader, httpapi.SignPayment(callbackSecret, paymentID))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestConfirmPaymentHandlerRejectsUnsignedCallbacks(t *testing.T) {
	path := "/api/payments/" + paymentID.String() + "/succeeded"
	otherID := uuid.MustParse("0b3e8a52-93f4-4c1e-a7d2-5a0c6e1f2b33")

	tests := []struct {
		name      string
		signature string
	}{
		{name: "missing signature", signature: ""},
		{name: "not hex", signature: "zz"},
		{name: "wrong secret", signature: httpapi.SignPayment("guessed", paymentID)},
		{name: "signature of another payment", signature: httpapi.SignPayment(callbackSecret, otherID)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, svc := newTestRouter(t)

			req := httptest.NewRequest("POST", path, nil)
			req.Header.Set(httpapi.UserHeader, "5")
			if testCase.signature != "" {
				req.Header.Set(httpapi.SignatureHeader, testCase.signature)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			svc.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
		})
	}
}

func TestConfirmPaymentHandlerWithoutConfiguredSecret(t *testing.T) {
	svc := mocks.NewPaymentServiceInterface(t)
	r := mux.NewRouter()
	httpapi.NewHandler(svc, "", zap.NewNop()).RegisterRoutes(r)

	req := httptest.NewRequest("POST", "/api/payments/"+paymentID.String()+"/succeeded", nil)
	req.Header.Set(httpapi.SignatureHeader, httpapi.SignPayment("", paymentID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
}

func TestListPaymentsHandler(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.On("ListUserPayments", mock.Anything, 5).Return([]domain.SubscriptionPayment{*pendingPayment(t)}, nil).Once()

	w := serve(r, "GET", "/api/payments", "", "5")

	assert.Equal(t, http.StatusOK, w.Code)
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "keto", got[0]["order"].(map[string]interface{})["diet_type"])
}

func TestGetPaymentHandler(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.On("GetPayment", mock.Anything, 6, paymentID).Return(nil, domain.ErrNotFound).Once()

	w := serve(r, "GET", "/api/payments/"+paymentID.String(), "", "6")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
