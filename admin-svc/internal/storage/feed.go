package storage

import (
	"context"
	"encoding/json"
	"log"

	"toro-admin/admin-svc/internal/domain"
	"toro-admin/config"

	"github.com/redis/go-redis/v9"
)

// ActivityFeed reads the recent-activity list maintained by activity-svc.
type ActivityFeed struct {
	Client *redis.Client
}

func NewActivityFeed(client *redis.Client) *ActivityFeed {
	return &ActivityFeed{Client: client}
}

// Recent returns up to limit events, newest first. Undecodable entries are skipped.
func (f *ActivityFeed) Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 {
		return nil, nil
	}
	raw, err := f.Client.LRange(ctx, config.ActivityFeedKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	events := make([]domain.ActivityEvent, 0, len(raw))
	for _, item := range raw {
		var e domain.ActivityEvent
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			log.Printf("[admin-svc] skip activity entry: %v", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}
