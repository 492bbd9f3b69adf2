package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	httpapi "toro-admin/activity-svc/internal/api/http"
	"toro-admin/activity-svc/internal/service"
	"toro-admin/activity-svc/internal/storage"
	"toro-admin/config"
)

func main() {
	var cfg config.Activity
	config.MustLoad(&cfg)

	db := config.MustInitPostgres(cfg.Postgres)
	defer db.Close()

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewStore(db, rdb, cfg.FeedSize)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to create schema:", err)
	}

	reader := config.NewKafkaReader(cfg.Kafka, cfg.GroupID)
	defer reader.Close()

	consumer := service.NewConsumer(reader, store)
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(store)
	httpapi.StartServer(":"+cfg.Port, httpapi.NewRouter(handler))
}
