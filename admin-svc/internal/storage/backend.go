package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"toro-admin/admin-svc/internal/domain"
)

var ErrNotFound = errors.New("not found")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Backend is the client for the Toro Eats REST API.
type Backend struct {
	baseURL string
	client  HTTPClient

	Cities      Resource[domain.City]
	Dishes      Resource[domain.Dish]
	Restaurants Resource[domain.Restaurant]
	Reviews     Resource[domain.Review]
	Users       Resource[domain.User]
}

func NewBackend(baseURL string, client HTTPClient) *Backend {
	b := &Backend{baseURL: strings.TrimRight(baseURL, "/"), client: client}
	b.Cities = Resource[domain.City]{backend: b, path: "/cities"}
	b.Dishes = Resource[domain.Dish]{backend: b, path: "/dishes"}
	b.Restaurants = Resource[domain.Restaurant]{backend: b, path: "/restaurants"}
	b.Reviews = Resource[domain.Review]{backend: b, path: "/reviews"}
	b.Users = Resource[domain.User]{backend: b, path: "/users"}
	return b
}

// Resource is one REST collection: GET/POST on the path, PUT/DELETE on path/{id}.
type Resource[T any] struct {
	backend *Backend
	path    string
}

func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.backend.do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts rec and returns the record echoed back with server fields.
func (r Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	out := rec
	if err := r.backend.do(ctx, http.MethodPost, r.path, rec, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Update sends the full record. An empty response body keeps rec as sent.
func (r Resource[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	out := rec
	if err := r.backend.do(ctx, http.MethodPut, r.item(id), rec, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (r Resource[T]) Delete(ctx context.Context, id string) error {
	return r.backend.do(ctx, http.MethodDelete, r.item(id), nil, nil)
}

func (r Resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (b *Backend) StartScraping(ctx context.Context, cityID string) error {
	return b.do(ctx, http.MethodPost, "/scraping/start", map[string]string{"cityId": cityID}, nil)
}

func (b *Backend) StopScraping(ctx context.Context, cityID string) error {
	return b.do(ctx, http.MethodPost, "/scraping/stop", map[string]string{"cityId": cityID}, nil)
}

func (b *Backend) DishesByRestaurant(ctx context.Context, restaurantID string) ([]domain.Dish, error) {
	var out []domain.Dish
	err := b.do(ctx, http.MethodGet, "/dishes/restaurant/"+url.PathEscape(restaurantID), nil, &out)
	return out, err
}

func (b *Backend) VerifyRestaurant(ctx context.Context, id string) (domain.Restaurant, error) {
	var out domain.Restaurant
	err := b.do(ctx, http.MethodPut, "/restaurants/"+url.PathEscape(id)+"/verify", map[string]bool{"is_verified": true}, &out)
	return out, err
}

func (b *Backend) UpdateHours(ctx context.Context, id string, hours []string) (domain.Restaurant, error) {
	var out domain.Restaurant
	err := b.do(ctx, http.MethodPut, "/restaurants/"+url.PathEscape(id)+"/hours", map[string][]string{"businessHours": hours}, &out)
	return out, err
}

func (b *Backend) UpdateLocation(ctx context.Context, id string, loc domain.Location) (domain.Restaurant, error) {
	var out domain.Restaurant
	err := b.do(ctx, http.MethodPut, "/restaurants/"+url.PathEscape(id)+"/location", map[string]domain.Location{"location": loc}, &out)
	return out, err
}

// ReviewsBy lists reviews for a restaurant, dish or user.
func (b *Backend) ReviewsBy(ctx context.Context, kind, id string) ([]domain.Review, error) {
	switch kind {
	case "restaurant", "dish", "user":
	default:
		return nil, fmt.Errorf("unknown review filter %q", kind)
	}
	var out []domain.Review
	err := b.do(ctx, http.MethodGet, "/reviews/"+kind+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (b *Backend) ReportReview(ctx context.Context, id, reason string) error {
	return b.do(ctx, http.MethodPost, "/reviews/"+url.PathEscape(id)+"/report", map[string]string{"reason": reason}, nil)
}

func (b *Backend) VerifyReview(ctx context.Context, id string) (domain.Review, error) {
	var out domain.Review
	err := b.do(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id)+"/verify", map[string]bool{"author.is_verified": true}, &out)
	return out, err
}

func (b *Backend) ReviewStats(ctx context.Context) (domain.BackendStats, error) {
	var out domain.BackendStats
	err := b.do(ctx, http.MethodGet, "/reviews/stats", nil, &out)
	return out, err
}

func (b *Backend) GetUser(ctx context.Context, uid string) (domain.User, error) {
	var out domain.User
	err := b.do(ctx, http.MethodGet, "/users/"+url.PathEscape(uid), nil, &out)
	return out, err
}

func (b *Backend) UpdateUserStatus(ctx context.Context, uid, status string) (domain.User, error) {
	var out domain.User
	err := b.do(ctx, http.MethodPut, "/users/"+url.PathEscape(uid)+"/status", map[string]string{"status": status}, &out)
	return out, err
}

func (b *Backend) UserStats(ctx context.Context) (domain.BackendStats, error) {
	var out domain.BackendStats
	err := b.do(ctx, http.MethodGet, "/users/stats", nil, &out)
	return out, err
}

func (b *Backend) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
