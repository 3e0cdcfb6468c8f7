package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"foodplan/stats-svc/internal/domain"
	"foodplan/stats-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Stats service.StatsServiceInterface
	log   *zap.Logger
}

func NewHandler(svc service.StatsServiceInterface, log *zap.Logger) *Handler {
	return &Handler{Stats: svc, log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/api/stats/dishes/top", h.getTopDishes).Methods("GET")
	r.HandleFunc("/api/stats/diets", h.getDietDistribution).Methods("GET")
}

func (h *Handler) getTopDishes(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = domain.PeriodToday
	}
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "10"
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		return
	}

	data, err := h.Stats.TopDishes(r.Context(), period, limit)
	if errors.Is(err, domain.ErrInvalidPeriod) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error("failed to load top dishes", zap.String("period", period), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getDietDistribution(w http.ResponseWriter, r *http.Request) {
	data, err := h.Stats.DietDistribution(r.Context())
	if err != nil {
		h.log.Error("failed to load diet distribution", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
