package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodplan/planner-svc/internal/domain"
	"foodplan/planner-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// UserHeader carries the authenticated user id set by the gateway.
const UserHeader = "X-User-ID"

type Handler struct {
	Catalog       service.CatalogServiceInterface
	Pricing       service.PricingServiceInterface
	Subscriptions service.SubscriptionServiceInterface
	Menus         service.MenuServiceInterface
	log           *zap.Logger
}

func NewHandler(catalogSvc service.CatalogServiceInterface, pricingSvc service.PricingServiceInterface,
	subSvc service.SubscriptionServiceInterface, menuSvc service.MenuServiceInterface, log *zap.Logger) *Handler {
	return &Handler{
		Catalog:       catalogSvc,
		Pricing:       pricingSvc,
		Subscriptions: subSvc,
		Menus:         menuSvc,
		log:           log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/plans", h.getPlans).Methods("GET")
	r.HandleFunc("/api/price", h.computePrice).Methods("POST")
	r.HandleFunc("/api/allergies", h.getAllergies).Methods("GET")

	r.HandleFunc("/api/dishes/eligible", h.getEligibleDishes).Methods("GET")
	r.HandleFunc("/api/dishes/{id:[0-9]+}", h.getDish).Methods("GET")
	r.HandleFunc("/api/dishes/{id:[0-9]+}/qrcode", h.getDishQRCode).Methods("GET")

	r.HandleFunc("/api/subscriptions", h.createSubscription).Methods("POST")
	r.HandleFunc("/api/subscription", h.getSubscription).Methods("GET")
	r.HandleFunc("/api/subscription/dishes", h.getSubscriptionDishes).Methods("GET")

	r.HandleFunc("/api/menus/today", h.getTodaysMenu).Methods("GET")
	r.HandleFunc("/api/menus/today/regenerate", h.regenerateMenu).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "planner-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Pricing.ListPlans(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *Handler) computePrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON format: " + err.Error()})
		return
	}
	total, err := h.Pricing.ComputePrice(r.Context(), req.PlanDuration, req.SelectedMealTypes, req.PersonsCount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priceResponse{TotalPrice: total.StringFixed(2)})
}

func (h *Handler) getAllergies(w http.ResponseWriter, r *http.Request) {
	allergies, err := h.Catalog.ListAllergies(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, allergies)
}

func (h *Handler) getEligibleDishes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := domain.Criteria{DietType: domain.DietType(q.Get("diet_type"))}
	for _, v := range splitList(q.Get("meal_types")) {
		criteria.MealTypes = append(criteria.MealTypes, domain.MealType(v))
	}
	for _, v := range splitList(q.Get("allergies")) {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid allergy id " + strconv.Quote(v)})
			return
		}
		criteria.AllergyIDs = append(criteria.AllergyIDs, id)
	}

	dishes, err := h.Catalog.ListEligibleDishes(r.Context(), criteria)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDishViews(dishes))
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	dish, err := h.Catalog.GetDish(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDishView(*dish))
}

func (h *Handler) getDishQRCode(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	png, err := h.Catalog.DishQRCode(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) createSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	var req domain.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON format: " + err.Error()})
		return
	}
	sub, err := h.Subscriptions.CreateSubscription(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSubscriptionView(sub))
}

func (h *Handler) getSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	sub, err := h.Subscriptions.GetActiveSubscription(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if sub == nil {
		h.writeError(w, domain.ErrNoActiveSubscription)
		return
	}
	writeJSON(w, http.StatusOK, newSubscriptionView(sub))
}

func (h *Handler) getSubscriptionDishes(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	sub, err := h.Subscriptions.GetActiveSubscription(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if sub == nil {
		h.writeError(w, domain.ErrNoActiveSubscription)
		return
	}
	dishes, err := h.Catalog.ListEligibleDishes(r.Context(), sub.Criteria())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDishViews(dishes))
}

func (h *Handler) getTodaysMenu(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	menu, err := h.Menus.GetTodaysMenu(r.Context(), userID)
	h.writeMenu(w, menu, err)
}

func (h *Handler) regenerateMenu(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	menu, err := h.Menus.RegenerateMenu(r.Context(), userID)
	h.writeMenu(w, menu, err)
}

func (h *Handler) writeMenu(w http.ResponseWriter, menu *domain.Menu, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	if menu == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, newMenuView(menu))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verrs})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoActiveSubscription):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
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

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
