package main

import (
	"log"
	"net/http"

	httpapi "toro-admin/admin-svc/internal/api/http"
	"toro-admin/admin-svc/internal/auth"
	"toro-admin/admin-svc/internal/service"
	"toro-admin/admin-svc/internal/storage"
	"toro-admin/admin-svc/internal/views"
	"toro-admin/config"
)

func main() {
	var cfg config.Admin
	config.MustLoad(&cfg)

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg.Kafka)
	defer writer.Close()

	backend := storage.NewBackend(cfg.BackendURL, &http.Client{Timeout: cfg.BackendTimeout})
	deps := service.Deps{
		Cache:  storage.NewRedisCache(rdb, cfg.CacheTTL),
		Events: storage.NewKafkaPublisher(writer),
	}

	svc := httpapi.Services{
		Cities:      service.NewCityService(backend.Cities, backend, deps),
		Dishes:      service.NewDishService(backend.Dishes, backend, deps),
		Restaurants: service.NewRestaurantService(backend.Restaurants, backend, deps),
		Reviews:     service.NewReviewService(backend.Reviews, backend, deps),
		Users:       service.NewUserService(backend.Users, backend, deps),
	}
	svc.Dashboard = &service.DashboardService{
		Cities:      svc.Cities,
		Restaurants: svc.Restaurants,
		Dishes:      svc.Dishes,
		Reviews:     svc.Reviews,
		Users:       svc.Users,
		Feed:        storage.NewActivityFeed(rdb),
	}

	renderer, err := views.New()
	if err != nil {
		log.Fatal("Failed to parse templates:", err)
	}

	authHandler := auth.NewHandler(auth.Config{
		Password:   cfg.Password,
		Secret:     cfg.JWTSecret,
		TTL:        cfg.TokenTTL,
		Secure:     cfg.SecureCookies,
		SessionKey: cfg.SessionKey,
	})

	handler := httpapi.NewHandler(svc, authHandler, renderer, cfg.PageSize)
	httpapi.StartServer(":"+cfg.Port, httpapi.NewRouter(handler))
}
