package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"foodplan/config"
	"foodplan/pkg/logger"
	httpapi "foodplan/stats-svc/internal/api/http"
	"foodplan/stats-svc/internal/service"
	"foodplan/stats-svc/internal/storage"
)

const (
	eventsTopic   = "planner-events"
	consumerGroup = "stats-svc"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	lg := logger.L()
	defer lg.Sync()

	cfg := config.Load()

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg, eventsTopic, consumerGroup)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storage.NewRedisStore(rdb)
	consumer := service.NewConsumer(reader, store, lg)
	go consumer.Start(ctx)

	statsSvc := service.NewStatsService(store, storage.NewDishNames(db), time.Now)
	handler := httpapi.NewHandler(statsSvc, lg)
	httpapi.StartServer(cfg.ListenAddr("8083"), httpapi.NewRouter(handler), lg)
}
