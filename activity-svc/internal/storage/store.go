package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"toro-admin/activity-svc/internal/domain"
	"toro-admin/config"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	db       *sql.DB
	rdb      *redis.Client
	feedSize int
}

func NewStore(db *sql.DB, rdb *redis.Client, feedSize int) *Store {
	if feedSize <= 0 {
		feedSize = 50
	}
	return &Store{
		db:       db,
		rdb:      rdb,
		feedSize: feedSize,
	}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS activity_log (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create activity_log: %w", err)
	}
	return nil
}

// SaveEvent inserts the event once. Redelivered messages are ignored.
func (s *Store) SaveEvent(ctx context.Context, e domain.ActivityEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, action, details, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, e.Action, e.Details, e.UserID, e.Timestamp)
	if err != nil {
		return fmt.Errorf("insert activity %s: %w", e.ID, err)
	}
	return nil
}

// PushFeed prepends the event to the recent list and trims it to the feed size.
func (s *Store) PushFeed(ctx context.Context, e domain.ActivityEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, config.ActivityFeedKey, payload)
		pipe.LTrim(ctx, config.ActivityFeedKey, 0, int64(s.feedSize-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("push activity feed: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first. It reads the Redis feed and
// falls back to Postgres when the feed is empty or unreachable.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 {
		return []domain.ActivityEvent{}, nil
	}
	raw, err := s.rdb.LRange(ctx, config.ActivityFeedKey, 0, int64(limit-1)).Result()
	if err != nil || len(raw) == 0 {
		if err != nil {
			log.Printf("[activity-svc] feed unavailable, reading postgres: %v", err)
		}
		return s.recentFromDB(ctx, limit)
	}

	events := make([]domain.ActivityEvent, 0, len(raw))
	for _, item := range raw {
		var e domain.ActivityEvent
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (s *Store) recentFromDB(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, action, details, user_id, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity_log: %w", err)
	}
	defer rows.Close()

	events := []domain.ActivityEvent{}
	for rows.Next() {
		var e domain.ActivityEvent
		if err := rows.Scan(&e.ID, &e.Action, &e.Details, &e.UserID, &e.Timestamp); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
