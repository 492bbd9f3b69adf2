package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"toro-admin/admin-svc/internal/domain"
)

type ReviewService struct {
	*Controller[domain.Review]
	actions ReviewActions
}

func NewReviewService(res Resource[domain.Review], actions ReviewActions, deps Deps) *ReviewService {
	return &ReviewService{
		Controller: newController(entity[domain.Review]{
			plural:   "reviews",
			singular: "review",
			id:       func(r domain.Review) string { return r.ID },
			setID:    func(r *domain.Review, id string) { r.ID = id },
			label:    func(r domain.Review) string { return r.RestaurantName },
		}, res, deps),
		actions: actions,
	}
}

// For lists reviews of a restaurant, dish or user.
func (s *ReviewService) For(ctx context.Context, kind, id string) ([]domain.Review, error) {
	list, err := s.actions.ReviewsBy(ctx, kind, id)
	if err != nil {
		log.Printf("[admin-svc] fetch reviews by %s %s: %v", kind, id, err)
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	return list, nil
}

func (s *ReviewService) Report(ctx context.Context, id, reason string) error {
	if err := s.actions.ReportReview(ctx, id, reason); err != nil {
		log.Printf("[admin-svc] report review %s: %v", id, err)
		return fmt.Errorf("report review: %w", err)
	}
	s.publish(ctx, "report", fmt.Sprintf("review %s: %s", id, reason))
	return nil
}

func (s *ReviewService) Verify(ctx context.Context, id string) (domain.Review, error) {
	return s.apply(ctx, id, "verify", func(r *domain.Review) { r.Author.IsVerified = true },
		func() (domain.Review, error) { return s.actions.VerifyReview(ctx, id) })
}

// BackendStats returns the backend's own review aggregates.
func (s *ReviewService) BackendStats(ctx context.Context) (domain.BackendStats, error) {
	st, err := s.actions.ReviewStats(ctx)
	if err != nil {
		log.Printf("[admin-svc] review stats: %v", err)
		return nil, fmt.Errorf("review stats: %w", err)
	}
	return st, nil
}

func (s *ReviewService) Stats() domain.ReviewStats {
	return ReviewStats(s.Items())
}

func ReviewStats(list []domain.Review) domain.ReviewStats {
	st := domain.ReviewStats{
		Total:    len(list),
		ByRating: map[int]int{},
		BySource: map[string]int{},
	}
	var rating float64
	for _, r := range list {
		rating += r.Rating
		source := strings.ToLower(r.Source)
		if source == "" {
			source = "unknown"
		}
		st.BySource[source]++
		if source == "app" {
			st.AppReviews++
		}
		if r.Author.IsVerified {
			st.Verified++
		}
		if star := int(math.Round(r.Rating)); star >= 1 {
			st.ByRating[min(star, 5)]++
		}
	}
	if len(list) > 0 {
		st.AverageRating = rating / float64(len(list))
	}
	return st
}
