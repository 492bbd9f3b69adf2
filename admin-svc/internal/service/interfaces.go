package service

import (
	"context"

	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/storage"
)

// Resource is one backend collection.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
}

type Scraper interface {
	StartScraping(ctx context.Context, cityID string) error
	StopScraping(ctx context.Context, cityID string) error
}

type MenuSource interface {
	DishesByRestaurant(ctx context.Context, restaurantID string) ([]domain.Dish, error)
}

type RestaurantActions interface {
	VerifyRestaurant(ctx context.Context, id string) (domain.Restaurant, error)
	UpdateHours(ctx context.Context, id string, hours []string) (domain.Restaurant, error)
	UpdateLocation(ctx context.Context, id string, loc domain.Location) (domain.Restaurant, error)
}

type ReviewActions interface {
	ReviewsBy(ctx context.Context, kind, id string) ([]domain.Review, error)
	ReportReview(ctx context.Context, id, reason string) error
	VerifyReview(ctx context.Context, id string) (domain.Review, error)
	ReviewStats(ctx context.Context) (domain.BackendStats, error)
}

type UserActions interface {
	GetUser(ctx context.Context, uid string) (domain.User, error)
	UpdateUserStatus(ctx context.Context, uid, status string) (domain.User, error)
	UserStats(ctx context.Context) (domain.BackendStats, error)
}

type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, name string, v any) error
	LoadSnapshot(ctx context.Context, name string, out any) (bool, error)
	Invalidate(ctx context.Context, name string) error
}

type ActivityPublisher interface {
	PublishActivity(ctx context.Context, event domain.ActivityEvent) error
}

type ActivityFeed interface {
	Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}

var (
	_ Resource[domain.City] = storage.Resource[domain.City]{}
	_ Scraper               = (*storage.Backend)(nil)
	_ MenuSource            = (*storage.Backend)(nil)
	_ RestaurantActions     = (*storage.Backend)(nil)
	_ ReviewActions         = (*storage.Backend)(nil)
	_ UserActions           = (*storage.Backend)(nil)
	_ SnapshotCache         = (*storage.RedisCache)(nil)
	_ ActivityPublisher     = (*storage.KafkaPublisher)(nil)
	_ ActivityFeed          = (*storage.ActivityFeed)(nil)
)
