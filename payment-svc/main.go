package main

import (
	"log"
	"net/http"
	"time"

	"foodplan/config"
	httpapi "foodplan/payment-svc/internal/api/http"
	"foodplan/payment-svc/internal/client"
	"foodplan/payment-svc/internal/domain"
	"foodplan/payment-svc/internal/service"
	"foodplan/payment-svc/internal/storage"
	"foodplan/pkg/logger"
)

const confirmLockTTL = 30 * time.Second

func main() {
	if err := logger.Init(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	lg := logger.L()
	defer lg.Sync()

	cfg := config.Load()
	if cfg.CallbackSecret == "" {
		lg.Fatal("PAYMENT_CALLBACK_SECRET is required")
	}

	db := config.MustInitGorm(cfg, &domain.SubscriptionPayment{})
	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	repo := storage.NewGormRepository(db)
	locker := storage.NewRedisLocker(rdb, confirmLockTTL)
	planner := client.NewPlannerClient(cfg.PlannerSvcURL, &http.Client{Timeout: 10 * time.Second})

	paymentSvc := service.NewPaymentService(repo, locker, planner, lg)

	handler := httpapi.NewHandler(paymentSvc, cfg.CallbackSecret, lg)
	httpapi.StartServer(cfg.ListenAddr("8082"), httpapi.NewRouter(handler), lg)
}
