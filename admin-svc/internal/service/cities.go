package service

import (
	"context"
	"fmt"
	"log"

	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/table"
)

type CityService struct {
	*Controller[domain.City]
	scraper Scraper
}

func NewCityService(res Resource[domain.City], scraper Scraper, deps Deps) *CityService {
	return &CityService{
		Controller: newController(entity[domain.City]{
			plural:   "cities",
			singular: "city",
			id:       func(c domain.City) string { return c.ID },
			setID:    func(c *domain.City, id string) { c.ID = id },
			label:    func(c domain.City) string { return c.Name },
		}, res, deps),
		scraper: scraper,
	}
}

// Add creates a city from a dialog draft. New cities always start pending,
// at 0,0, with no restaurants and no scrape history.
func (s *CityService) Add(ctx context.Context, d table.Draft) (domain.City, error) {
	city, err := table.Decode[domain.City](d)
	if err != nil {
		return city, err
	}
	city.Location = domain.Location{}
	city.Restaurants = []domain.DocRef{}
	city.Status = domain.CityPending
	city.TotalRestaurants = 0
	city.LastScraped = domain.Timestamp{}
	return s.Create(ctx, city)
}

func (s *CityService) StartScraping(ctx context.Context, id string) error {
	if err := s.scraper.StartScraping(ctx, id); err != nil {
		log.Printf("[admin-svc] start scraping %s: %v", id, err)
		return fmt.Errorf("start scraping: %w", err)
	}
	s.setStatus(ctx, id, domain.CityScraping, "scrape_start")
	return nil
}

func (s *CityService) StopScraping(ctx context.Context, id string) error {
	if err := s.scraper.StopScraping(ctx, id); err != nil {
		log.Printf("[admin-svc] stop scraping %s: %v", id, err)
		return fmt.Errorf("stop scraping: %w", err)
	}
	s.setStatus(ctx, id, domain.CityActive, "scrape_stop")
	return nil
}

func (s *CityService) setStatus(ctx context.Context, id, status, verb string) {
	city, ok := s.Get(id)
	if !ok {
		s.publish(ctx, verb, "city "+id)
		return
	}
	city.Status = status
	s.replace(ctx, verb, city)
}

func (s *CityService) Stats() domain.CityStats {
	return CityStats(s.Items())
}

func CityStats(cities []domain.City) domain.CityStats {
	st := domain.CityStats{Total: len(cities)}
	for _, c := range cities {
		if c.Status == domain.CityActive {
			st.Active++
		}
		st.TotalRestaurants += len(c.Restaurants)
	}
	return st
}
