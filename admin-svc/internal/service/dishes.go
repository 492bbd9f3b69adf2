package service

import (
	"context"
	"fmt"
	"log"

	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/table"
)

type DishService struct {
	*Controller[domain.Dish]
	menu MenuSource
}

func NewDishService(res Resource[domain.Dish], menu MenuSource, deps Deps) *DishService {
	return &DishService{
		Controller: newController(entity[domain.Dish]{
			plural:   "dishes",
			singular: "dish",
			id:       func(d domain.Dish) string { return d.ID },
			setID:    func(d *domain.Dish, id string) { d.ID = id },
			label:    func(d domain.Dish) string { return d.Name },
		}, res, deps),
		menu: menu,
	}
}

func (s *DishService) Add(ctx context.Context, d table.Draft) (domain.Dish, error) {
	dish, err := table.Decode[domain.Dish](d)
	if err != nil {
		return dish, err
	}
	dish.CreatedAt = domain.At(s.deps.now())
	dish.UpdatedAt = dish.CreatedAt
	return s.Create(ctx, dish)
}

// AddToMenu creates a dish bound to restaurantID.
func (s *DishService) AddToMenu(ctx context.Context, restaurantID string, d table.Draft) (domain.Dish, error) {
	d.Set("restaurant", restaurantID)
	return s.Add(ctx, d)
}

// Menu lists a restaurant's dishes straight from the backend.
func (s *DishService) Menu(ctx context.Context, restaurantID string) ([]domain.Dish, error) {
	dishes, err := s.menu.DishesByRestaurant(ctx, restaurantID)
	if err != nil {
		log.Printf("[admin-svc] fetch menu for %s: %v", restaurantID, err)
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	for _, dish := range dishes {
		if dish.ID != "" {
			s.items.Upsert(dish)
		}
	}
	return dishes, nil
}

func (s *DishService) Stats() domain.DishStats {
	return DishStats(s.Items())
}

func DishStats(dishes []domain.Dish) domain.DishStats {
	st := domain.DishStats{Total: len(dishes)}
	if len(dishes) == 0 {
		return st
	}
	var rating, price float64
	for _, d := range dishes {
		rating += d.Score()
		price += d.Price
		st.TotalReviews += d.ReviewCount
	}
	st.AverageRating = rating / float64(len(dishes))
	st.AveragePrice = price / float64(len(dishes))
	return st
}
