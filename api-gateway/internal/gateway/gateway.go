package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// UserHeader is the identity header trusted by the backend services.
const UserHeader = "X-User-ID"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	PlannerSvcURL string
	PaymentSvcURL string
	StatsSvcURL   string
	JWTSecret     string
}

type Gateway struct {
	config Config
	client HTTPClient
	log    *zap.Logger
}

func NewGateway(config Config, client HTTPClient, log *zap.Logger) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		log:    log,
	}
}

// Claims carries the user id issued by the account service.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

var errNoToken = errors.New("missing bearer token")

var publicRoutes = []struct {
	method  string
	pattern *regexp.Regexp
}{
	{"GET", regexp.MustCompile(`^/api/plans$`)},
	{"POST", regexp.MustCompile(`^/api/price$`)},
	{"GET", regexp.MustCompile(`^/api/allergies$`)},
	{"GET", regexp.MustCompile(`^/api/dishes(/.*)?$`)},
	{"GET", regexp.MustCompile(`^/api/stats(/.*)?$`)},
	// provider callback; payment-svc checks its signature header
	{"POST", regexp.MustCompile(`^/api/payments/[^/]+/succeeded$`)},
}

func isPublic(method, path string) bool {
	for _, route := range publicRoutes {
		if route.method == method && route.pattern.MatchString(path) {
			return true
		}
	}
	return false
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ParseToken validates an HS256 token and returns the user id it carries.
func (g *Gateway) ParseToken(tokenString string) (int, error) {
	if tokenString == "" {
		return 0, errNoToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(g.config.JWTSecret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, errors.New("invalid token")
	}
	return claims.UserID, nil
}

// Authenticate replaces any client supplied identity with the one from the bearer token.
func (g *Gateway) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del(UserHeader)

		header := r.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			tokenString = ""
		}

		userID, err := g.ParseToken(tokenString)
		switch {
		case err == nil:
			r.Header.Set(UserHeader, strconv.Itoa(userID))
		case isPublic(r.Method, r.URL.Path) && errors.Is(err, errNoToken):
		default:
			g.log.Warn("rejected request", zap.String("path", r.URL.Path), zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	g.log.Debug("proxy", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.String("target", targetURL))

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.log.Error("failed to create request", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	req.Header.Del("Authorization")

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("failed to proxy", zap.String("target", targetURL), zap.Error(err))
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.log.Error("failed to copy response", zap.Error(err))
	}
}

func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/api/plans", path == "/api/price", path == "/api/allergies",
		hasPrefix(path, "/api/dishes"), hasPrefix(path, "/api/subscription"),
		hasPrefix(path, "/api/subscriptions"), hasPrefix(path, "/api/menus"):
		g.ProxyRequest(w, r, g.config.PlannerSvcURL)
	case hasPrefix(path, "/api/payments"):
		g.ProxyRequest(w, r, g.config.PaymentSvcURL)
	case hasPrefix(path, "/api/stats"):
		g.ProxyRequest(w, r, g.config.StatsSvcURL)
	default:
		g.log.Info("unmatched api route", zap.String("path", path))
		http.Error(w, "API route not found", http.StatusNotFound)
	}
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").Handler(g.Authenticate(http.HandlerFunc(g.RouteHandler)))
	return r
}
