package main

import (
	"log"
	"net/http"
	"time"

	"toro-admin/api-gateway/internal/gateway"
	"toro-admin/config"

	"github.com/rs/cors"
)

func main() {
	var cfg config.Gateway
	config.MustLoad(&cfg)

	gw := gateway.NewGateway(gateway.Config{
		AdminSvcURL:    cfg.AdminSvcURL,
		ActivitySvcURL: cfg.ActivitySvcURL,
		JWTSecret:      cfg.JWTSecret,
	}, &http.Client{
		Timeout: 30 * time.Second,
		// Redirects from admin-svc belong to the browser.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:" + cfg.Port, "http://127.0.0.1:" + cfg.Port},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.Printf("API Gateway starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
