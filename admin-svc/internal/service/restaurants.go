package service

import (
	"context"
	"strings"
	"time"

	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/hours"
	"toro-admin/admin-svc/internal/table"
)

type RestaurantService struct {
	*Controller[domain.Restaurant]
	actions RestaurantActions
	QR      QRGenerator
}

func NewRestaurantService(res Resource[domain.Restaurant], actions RestaurantActions, deps Deps) *RestaurantService {
	return &RestaurantService{
		Controller: newController(entity[domain.Restaurant]{
			plural:   "restaurants",
			singular: "restaurant",
			id:       func(r domain.Restaurant) string { return r.ID },
			setID:    func(r *domain.Restaurant, id string) { r.ID = id },
			label:    func(r domain.Restaurant) string { return r.Name },
		}, res, deps),
		actions: actions,
		QR:      DefaultQRGenerator{Size: 256},
	}
}

// Add creates an unverified, unrated restaurant from a dialog draft.
func (s *RestaurantService) Add(ctx context.Context, d table.Draft) (domain.Restaurant, error) {
	rest, err := table.Decode[domain.Restaurant](d)
	if err != nil {
		return rest, err
	}
	rest.CreatedAt = domain.At(s.deps.now())
	rest.Location = domain.Location{}
	rest.TotalRatings = 0
	rest.AverageRating = 0
	rest.BusinessHours = []string{}
	rest.IsClosed = false
	rest.Categories = []string{}
	rest.IsVerified = false
	return s.Create(ctx, rest)
}

// Save applies the detail form to rec. Categories arrive comma separated and
// business hours one entry per line.
func (s *RestaurantService) Save(ctx context.Context, rec domain.Restaurant, d table.Draft) (domain.Restaurant, error) {
	splitDraft(&d, "categories", ",")
	splitDraft(&d, "businessHours", "\n")
	edited, err := table.Merge(rec, d)
	if err != nil {
		return rec, err
	}
	edited.UpdatedAt = domain.At(s.deps.now())
	return s.Update(ctx, edited)
}

func (s *RestaurantService) Verify(ctx context.Context, id string) (domain.Restaurant, error) {
	return s.apply(ctx, id, "verify", func(r *domain.Restaurant) { r.IsVerified = true },
		func() (domain.Restaurant, error) { return s.actions.VerifyRestaurant(ctx, id) })
}

func (s *RestaurantService) UpdateHours(ctx context.Context, id string, entries []string) (domain.Restaurant, error) {
	return s.apply(ctx, id, "hours", func(r *domain.Restaurant) { r.BusinessHours = entries },
		func() (domain.Restaurant, error) { return s.actions.UpdateHours(ctx, id, entries) })
}

func (s *RestaurantService) UpdateLocation(ctx context.Context, id string, loc domain.Location) (domain.Restaurant, error) {
	return s.apply(ctx, id, "location", func(r *domain.Restaurant) { r.Location = loc },
		func() (domain.Restaurant, error) { return s.actions.UpdateLocation(ctx, id, loc) })
}

func (s *RestaurantService) Stats(now time.Time) domain.RestaurantStats {
	return RestaurantStats(s.Items(), now)
}

func RestaurantStats(list []domain.Restaurant, now time.Time) domain.RestaurantStats {
	st := domain.RestaurantStats{Total: len(list)}
	var rating float64
	for _, r := range list {
		rating += r.AverageRating
		st.TotalReviews += r.TotalRatings
		if r.IsVerified {
			st.Verified++
		}
		if !r.IsClosed && hours.IsOpenAt(r.BusinessHours, now) {
			st.OpenNow++
		}
	}
	if len(list) > 0 {
		st.AverageRating = rating / float64(len(list))
	}
	return st
}

func splitDraft(d *table.Draft, key, sep string) {
	v, ok := d.Get(key)
	if !ok {
		return
	}
	text, isText := v.(string)
	if !isText {
		return
	}
	parts := []string{}
	for _, p := range strings.Split(text, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	d.Set(key, parts)
}
