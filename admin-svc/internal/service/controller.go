package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"toro-admin/admin-svc/internal/domain"

	"github.com/google/uuid"
)

// AdminUserID is recorded on every activity event.
const AdminUserID = "admin"

const placeholderPrefix = "tmp-"

var (
	ErrNotFound = errors.New("record not found")
	ErrUnsaved  = errors.New("record has not been saved yet")
)

// Deps is the infrastructure shared by every controller. Cache and Events may be nil.
type Deps struct {
	Cache  SnapshotCache
	Events ActivityPublisher
	Now    func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

type entity[T any] struct {
	// plural names the snapshot; singular prefixes activity actions.
	plural   string
	singular string
	id       func(T) string
	setID    func(*T, string)
	label    func(T) string
}

// Controller binds one backend collection to its cached copy.
type Controller[T any] struct {
	entity[T]
	res   Resource[T]
	items *Collection[T]
	deps  Deps
}

func newController[T any](e entity[T], res Resource[T], deps Deps) *Controller[T] {
	return &Controller[T]{entity: e, res: res, items: NewCollection(e.id), deps: deps}
}

// Refresh reloads the collection. On failure the last snapshot is restored when
// one exists; otherwise the current items are kept.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	defer c.items.begin()()

	list, err := c.res.List(ctx)
	if err != nil {
		log.Printf("[admin-svc] fetch %s: %v", c.plural, err)
		c.restore(ctx)
		return fmt.Errorf("fetch %s: %w", c.plural, err)
	}
	if list == nil {
		list = []T{}
	}
	c.items.Replace(list)
	if c.deps.Cache != nil {
		if err := c.deps.Cache.SaveSnapshot(ctx, c.plural, list); err != nil {
			log.Printf("[admin-svc] save %s snapshot: %v", c.plural, err)
		}
	}
	return nil
}

func (c *Controller[T]) restore(ctx context.Context) {
	if c.deps.Cache == nil {
		return
	}
	var snap []T
	found, err := c.deps.Cache.LoadSnapshot(ctx, c.plural, &snap)
	if err != nil {
		log.Printf("[admin-svc] load %s snapshot: %v", c.plural, err)
		return
	}
	if found {
		c.items.Replace(snap)
	}
}

func (c *Controller[T]) Items() []T {
	return c.items.Snapshot()
}

func (c *Controller[T]) Get(id string) (T, bool) {
	return c.items.Get(id)
}

func (c *Controller[T]) Loading() bool {
	return c.items.Loading()
}

// Create posts rec and appends the echoed record. A record echoed without an id
// gets a placeholder so the row stays addressable until the next refresh.
func (c *Controller[T]) Create(ctx context.Context, rec T) (T, error) {
	defer c.items.begin()()

	created, err := c.res.Create(ctx, rec)
	if err != nil {
		log.Printf("[admin-svc] create %s: %v", c.singular, err)
		return created, fmt.Errorf("create %s: %w", c.singular, err)
	}
	if c.id(created) == "" && c.setID != nil {
		c.setID(&created, placeholderPrefix+uuid.NewString())
	}
	c.items.Upsert(created)
	c.changed(ctx, "create", created)
	return created, nil
}

// Update sends the full record and swaps in the response.
func (c *Controller[T]) Update(ctx context.Context, rec T) (T, error) {
	id := c.id(rec)
	if id == "" || strings.HasPrefix(id, placeholderPrefix) {
		return rec, ErrUnsaved
	}
	defer c.items.begin()()

	updated, err := c.res.Update(ctx, id, rec)
	if err != nil {
		log.Printf("[admin-svc] update %s %s: %v", c.singular, id, err)
		return rec, fmt.Errorf("update %s: %w", c.singular, err)
	}
	if c.id(updated) == "" && c.setID != nil {
		c.setID(&updated, id)
	}
	c.items.Upsert(updated)
	c.changed(ctx, "update", updated)
	return updated, nil
}

// Delete removes the record remotely, then locally. Placeholders are only dropped locally.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if strings.HasPrefix(id, placeholderPrefix) {
		c.items.Remove(id)
		return nil
	}
	defer c.items.begin()()

	rec, _ := c.items.Get(id)
	if err := c.res.Delete(ctx, id); err != nil {
		log.Printf("[admin-svc] delete %s %s: %v", c.singular, id, err)
		return fmt.Errorf("delete %s: %w", c.singular, err)
	}
	c.items.Remove(id)
	if c.id(rec) == "" && c.setID != nil {
		c.setID(&rec, id)
	}
	c.changed(ctx, "delete", rec)
	return nil
}

// apply runs a secondary endpoint such as verify. When the backend answers
// without a record the cached one is patched locally instead.
func (c *Controller[T]) apply(ctx context.Context, id, verb string, patch func(*T), call func() (T, error)) (T, error) {
	defer c.items.begin()()

	got, err := call()
	if err != nil {
		log.Printf("[admin-svc] %s %s %s: %v", verb, c.singular, id, err)
		return got, fmt.Errorf("%s %s: %w", verb, c.singular, err)
	}
	if c.id(got) == "" {
		cached, ok := c.items.Get(id)
		if !ok && c.setID != nil {
			c.setID(&cached, id)
		}
		patch(&cached)
		got = cached
	}
	c.replace(ctx, verb, got)
	return got, nil
}

// replace swaps a record in the cache after a secondary action such as verify.
func (c *Controller[T]) replace(ctx context.Context, verb string, rec T) {
	c.items.Upsert(rec)
	c.changed(ctx, verb, rec)
}

func (c *Controller[T]) changed(ctx context.Context, verb string, rec T) {
	if c.deps.Cache != nil {
		if err := c.deps.Cache.Invalidate(ctx, c.plural); err != nil {
			log.Printf("[admin-svc] invalidate %s snapshot: %v", c.plural, err)
		}
	}
	c.publish(ctx, verb, c.describe(rec))
}

func (c *Controller[T]) describe(rec T) string {
	name := ""
	if c.label != nil {
		name = c.label(rec)
	}
	if name == "" {
		return c.singular + " " + c.id(rec)
	}
	return fmt.Sprintf("%s %q (%s)", c.singular, name, c.id(rec))
}

func (c *Controller[T]) publish(ctx context.Context, verb, details string) {
	if c.deps.Events == nil {
		return
	}
	event := domain.ActivityEvent{
		ID:        uuid.NewString(),
		Action:    c.singular + "." + verb,
		Details:   details,
		Timestamp: domain.At(c.deps.now()),
		UserID:    AdminUserID,
	}
	if err := c.deps.Events.PublishActivity(ctx, event); err != nil {
		log.Printf("[admin-svc] publish %s: %v", event.Action, err)
	}
}
