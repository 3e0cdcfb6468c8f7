package main

import (
	"log"
	"time"

	"foodplan/config"
	"foodplan/pkg/logger"
	httpapi "foodplan/planner-svc/internal/api/http"
	"foodplan/planner-svc/internal/service"
	"foodplan/planner-svc/internal/storage"

	"go.uber.org/zap"
)

const eventsTopic = "planner-events"

func main() {
	if err := logger.Init(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	lg := logger.L()
	defer lg.Sync()

	cfg := config.Load()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		lg.Fatal("failed to ensure schema", zap.Error(err))
	}

	writer := config.NewKafkaWriter(cfg, eventsTopic)
	defer writer.Close()
	publisher := storage.NewKafkaPublisher(writer)

	now := time.Now
	seed := uint64(time.Now().UnixNano())
	chooser := service.NewRandomChooser(seed, seed>>32|seed<<32)

	catalogSvc := service.NewCatalogService(repo, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL})
	pricingSvc := service.NewPricingService(repo)
	subSvc := service.NewSubscriptionService(repo, repo, repo, publisher, now, lg)
	menuSvc := service.NewMenuService(subSvc, repo, catalogSvc, chooser, publisher, now, lg)

	handler := httpapi.NewHandler(catalogSvc, pricingSvc, subSvc, menuSvc, lg)
	httpapi.StartServer(cfg.ListenAddr("8081"), httpapi.NewRouter(handler), lg)
}
