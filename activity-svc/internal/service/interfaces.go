package service

import (
	"context"

	"toro-admin/activity-svc/internal/domain"
	"toro-admin/activity-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	SaveEvent(ctx context.Context, e domain.ActivityEvent) error
	PushFeed(ctx context.Context, e domain.ActivityEvent) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, e domain.ActivityEvent) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
