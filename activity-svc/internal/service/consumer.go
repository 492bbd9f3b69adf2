package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"toro-admin/activity-svc/internal/domain"

	"github.com/google/uuid"
)

var ErrNoAction = errors.New("activity event has no action")

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Now    func() time.Time
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Now:    time.Now,
	}
}

// Start reads activity messages until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("[activity-svc] starting consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("[activity-svc] consumer stopped")
				return
			}
			log.Printf("[activity-svc] error reading message: %v", err)
			continue
		}

		var event domain.ActivityEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("[activity-svc] error unmarshaling message: %v", err)
			continue
		}
		if event.Action == "" {
			event.Action = string(message.Key)
		}

		if err := c.ProcessEvent(ctx, event); err != nil {
			log.Printf("[activity-svc] error processing %q: %v", event.Action, err)
		}
	}
}

// ProcessEvent stores the event and adds it to the recent feed. Missing ids and
// timestamps are filled in.
func (c *Consumer) ProcessEvent(ctx context.Context, e domain.ActivityEvent) error {
	if e.Action == "" {
		return ErrNoAction
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = c.Now()
	}

	if err := c.Store.SaveEvent(ctx, e); err != nil {
		return err
	}
	if err := c.Store.PushFeed(ctx, e); err != nil {
		return err
	}

	log.Printf("[activity-svc] recorded %s (%s)", e.Action, e.ID)
	return nil
}
