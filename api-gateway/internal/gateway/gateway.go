package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"toro-admin/token"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	AdminSvcURL    string
	ActivitySvcURL string
	// JWTSecret verifies the admin-token cookie on routes only admins may read.
	JWTSecret string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ProxyRequest forwards r to targetURL and copies the response back as is.
// Redirects and cookies pass through to the browser.
func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := strings.TrimSuffix(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	log.Printf("PROXY: %s %s -> %s", r.Method, r.URL.Path, url)

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Printf("ERROR: Failed to create request: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	req.Header.Set("X-Forwarded-Host", r.Host)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("ERROR: Failed to proxy to %s: %v", targetURL, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("ERROR: Failed to copy response: %v", err)
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Printf("ROUTE: %s %s", r.Method, path)

	if path == "/api/activity" || strings.HasPrefix(path, "/api/activity/") {
		if !g.isAdmin(r) {
			log.Printf("[GATEWAY] Rejected unauthenticated %s %s", r.Method, path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		g.ProxyRequest(w, r, g.config.ActivitySvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/auth/") {
		g.ProxyRequest(w, r, g.config.AdminSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/") {
		log.Printf("[GATEWAY] Unmatched API route: %s", path)
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}

	g.ProxyRequest(w, r, g.config.AdminSvcURL)
}

// isAdmin reports whether r carries a valid admin-token cookie.
func (g *Gateway) isAdmin(r *http.Request) bool {
	if g.config.JWTSecret == "" {
		return false
	}
	c, err := r.Cookie(token.CookieName)
	if err != nil {
		return false
	}
	return token.Verify(g.config.JWTSecret, c.Value) == nil
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
