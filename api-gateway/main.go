package main

import (
	"log"
	"net/http"
	"time"

	"foodplan/api-gateway/internal/gateway"
	"foodplan/config"
	"foodplan/pkg/logger"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	lg := logger.L()
	defer lg.Sync()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		lg.Fatal("JWT_SECRET is required")
	}

	gw := gateway.NewGateway(gateway.Config{
		PlannerSvcURL: cfg.PlannerSvcURL,
		PaymentSvcURL: cfg.PaymentSvcURL,
		StatsSvcURL:   cfg.StatsSvcURL,
		JWTSecret:     cfg.JWTSecret,
	}, &http.Client{Timeout: 30 * time.Second}, lg)

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	addr := cfg.ListenAddr("8080")
	lg.Info("api gateway starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		lg.Fatal("api gateway stopped", zap.Error(err))
	}
}
