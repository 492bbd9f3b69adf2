package service

import (
	"context"
	"log"
	"sync"
	"time"

	"toro-admin/admin-svc/internal/domain"
)

// RecentActivityLimit is how many feed entries the dashboard shows.
const RecentActivityLimit = 10

type DashboardService struct {
	Cities      *CityService
	Restaurants *RestaurantService
	Dishes      *DishService
	Reviews     *ReviewService
	Users       *UserService
	Feed        ActivityFeed
	Now         func() time.Time
}

type refresher interface {
	Refresh(ctx context.Context) error
}

// Summary refreshes every collection in parallel and aggregates the results.
// Collections that fail to load contribute whatever they had cached.
func (d *DashboardService) Summary(ctx context.Context) domain.Dashboard {
	var wg sync.WaitGroup
	for _, r := range []refresher{d.Cities, d.Restaurants, d.Dishes, d.Reviews, d.Users} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Refresh(ctx)
		}()
	}
	wg.Wait()

	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}
	out := domain.Dashboard{
		Cities:      d.Cities.Stats(),
		Restaurants: d.Restaurants.Stats(now),
		Dishes:      d.Dishes.Stats(),
		Reviews:     d.Reviews.Stats(),
		Users:       d.Users.Stats(),
	}
	if d.Feed != nil {
		events, err := d.Feed.Recent(ctx, RecentActivityLimit)
		if err != nil {
			log.Printf("[admin-svc] read activity feed: %v", err)
		}
		out.Activity = events
	}
	return out
}
