package httpapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodplan/payment-svc/internal/domain"
	"foodplan/payment-svc/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const UserHeader = "X-User-ID"

// SignatureHeader carries the hex HMAC-SHA256 of the payment id on success callbacks.
const SignatureHeader = "X-Payment-Signature"

type Handler struct {
	Payments       service.PaymentServiceInterface
	callbackSecret []byte
	log            *zap.Logger
}

func NewHandler(paymentSvc service.PaymentServiceInterface, callbackSecret string, log *zap.Logger) *Handler {
	return &Handler{Payments: paymentSvc, callbackSecret: []byte(callbackSecret), log: log}
}

// SignPayment returns the callback signature for paymentID.
func SignPayment(secret string, paymentID uuid.UUID) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(paymentID.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *Handler) validSignature(r *http.Request, paymentID uuid.UUID) bool {
	if len(h.callbackSecret) == 0 {
		return false
	}
	got, err := hex.DecodeString(r.Header.Get(SignatureHeader))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, h.callbackSecret)
	mac.Write([]byte(paymentID.String()))
	return hmac.Equal(got, mac.Sum(nil))
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/payments", h.createOrder).Methods("POST")
	r.HandleFunc("/api/payments", h.getPayments).Methods("GET")
	r.HandleFunc("/api/payments/{id}", h.getPayment).Methods("GET")
	r.HandleFunc("/api/payments/{id}/succeeded", h.confirmPayment).Methods("POST")
}

type paymentView struct {
	PaymentID      uuid.UUID            `json:"payment_id"`
	UserID         int                  `json:"user_id"`
	SubscriptionID *int                 `json:"subscription_id,omitempty"`
	Provider       string               `json:"provider"`
	Amount         string               `json:"amount"`
	Status         domain.PaymentStatus `json:"status"`
	Description    string               `json:"description"`
	Order          json.RawMessage      `json:"order,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

func newPaymentView(p *domain.SubscriptionPayment) paymentView {
	return paymentView{
		PaymentID:      p.PaymentID,
		UserID:         p.UserID,
		SubscriptionID: p.SubscriptionID,
		Provider:       p.Provider,
		Amount:         p.Amount.StringFixed(2),
		Status:         p.Status,
		Description:    p.Description,
		Order:          json.RawMessage(p.Order),
		CreatedAt:      p.CreatedAt,
	}
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "payment-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	var order domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON format: " + err.Error()})
		return
	}
	p, err := h.Payments.CreateOrder(r.Context(), userID, order)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newPaymentView(p))
}

func (h *Handler) getPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	payments, err := h.Payments.ListUserPayments(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]paymentView, 0, len(payments))
	for i := range payments {
		views = append(views, newPaymentView(&payments[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	paymentID, ok := paymentIDFromRequest(w, r)
	if !ok {
		return
	}
	p, err := h.Payments.GetPayment(r.Context(), userID, paymentID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPaymentView(p))
}

// confirmPayment is the provider's success callback.
func (h *Handler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := paymentIDFromRequest(w, r)
	if !ok {
		return
	}
	if !h.validSignature(r, paymentID) {
		h.log.Warn("rejected payment callback", zap.String("payment_id", paymentID.String()))
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid callback signature"})
		return
	}
	p, err := h.Payments.ConfirmPayment(r.Context(), paymentID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPaymentView(p))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verrs})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPaymentInProgress), errors.Is(err, domain.ErrPaymentClosed):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func userFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, err := strconv.Atoi(r.Header.Get(UserHeader))
	if err != nil || userID <= 0 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return 0, false
	}
	return userID, true
}

func paymentIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	paymentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
		return uuid.Nil, false
	}
	return paymentID, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
