package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"net/http"
	"slices"
	"time"

	"toro-admin/admin-svc/internal/auth"
	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/service"
	"toro-admin/admin-svc/internal/storage"
	"toro-admin/admin-svc/internal/table"
	"toro-admin/admin-svc/internal/views"

	"github.com/gorilla/mux"
	"github.com/iancoleman/strcase"
)

const defaultReportReason = "Inappropriate content"

// Services are the page controllers behind the admin pages.
type Services struct {
	Cities      *service.CityService
	Dishes      *service.DishService
	Restaurants *service.RestaurantService
	Reviews     *service.ReviewService
	Users       *service.UserService
	Dashboard   *service.DashboardService
}

type Handler struct {
	Services
	Auth     *auth.Handler
	Views    *views.Renderer
	PageSize int
	Now      func() time.Time

	cities      *page[domain.City]
	dishes      *page[domain.Dish]
	restaurants *page[domain.Restaurant]
	reviews     *page[domain.Review]
	users       *page[domain.User]
}

func NewHandler(svc Services, authHandler *auth.Handler, renderer *views.Renderer, pageSize int) *Handler {
	h := &Handler{
		Services: svc,
		Auth:     authHandler,
		Views:    renderer,
		PageSize: pageSize,
		Now:      time.Now,
	}

	h.cities = &page[domain.City]{
		name: "cities", title: "Cities", subtitle: "Manage cities and restaurant scraping",
		records: svc.Cities, build: cityTable, add: svc.Cities.Add,
		canEdit: true, canDelete: true,
		actions: []views.Action{
			{Label: "Start Scraping", Suffix: "scraping/start"},
			{Label: "Stop Scraping", Suffix: "scraping/stop"},
		},
		stats: func(items []domain.City) []views.Stat {
			st := service.CityStats(items)
			return []views.Stat{
				{Label: "Total Cities", Value: count(st.Total)},
				{Label: "Active Cities", Value: count(st.Active)},
				{Label: "Total Restaurants", Value: count(st.TotalRestaurants)},
			}
		},
		h: h,
	}
	h.dishes = &page[domain.Dish]{
		name: "dishes", title: "Dishes", subtitle: "Manage dishes across every menu",
		records: svc.Dishes, build: dishTable, add: svc.Dishes.Add,
		canEdit: true, canDelete: true,
		stats: func(items []domain.Dish) []views.Stat {
			st := service.DishStats(items)
			return []views.Stat{
				{Label: "Total Dishes", Value: count(st.Total)},
				{Label: "Average Rating", Value: rating(st.AverageRating)},
				{Label: "Total Reviews", Value: count(st.TotalReviews)},
				{Label: "Average Price", Value: fmt.Sprintf("$%.2f", st.AveragePrice)},
			}
		},
		h: h,
	}
	h.restaurants = &page[domain.Restaurant]{
		name: "restaurants", title: "Restaurants", subtitle: "Manage restaurants, hours and menus",
		records: svc.Restaurants, build: restaurantTable, add: svc.Restaurants.Add,
		canEdit: true, canDelete: true,
		stats: func(items []domain.Restaurant) []views.Stat {
			st := service.RestaurantStats(items, h.now())
			return []views.Stat{
				{Label: "Total Restaurants", Value: count(st.Total)},
				{Label: "Average Rating", Value: rating(st.AverageRating)},
				{Label: "Total Reviews", Value: count(st.TotalReviews)},
				{Label: "Verified", Value: count(st.Verified)},
				{Label: "Open Now", Value: count(st.OpenNow)},
			}
		},
		h: h,
	}
	h.reviews = &page[domain.Review]{
		name: "reviews", title: "Reviews", subtitle: "Moderate restaurant and dish reviews",
		records: svc.Reviews, build: reviewTable,
		canDelete: true,
		actions: []views.Action{
			{Label: "Verify", Suffix: "verify"},
			{Label: "Report", Suffix: "report", Field: "reason", Value: defaultReportReason},
		},
		stats: func(items []domain.Review) []views.Stat {
			st := service.ReviewStats(items)
			return []views.Stat{
				{Label: "Total Reviews", Value: count(st.Total)},
				{Label: "Average Rating", Value: rating(st.AverageRating)},
				{Label: "App Reviews", Value: count(st.AppReviews)},
				{Label: "Verified Reviews", Value: count(st.Verified)},
			}
		},
		scope: &scope[domain.Review]{
			kinds: []string{"restaurant", "dish", "user"},
			load:  svc.Reviews.For,
		},
		panels: func(ctx context.Context, items []domain.Review) []views.Panel {
			st := service.ReviewStats(items)
			panels := []views.Panel{ratingPanel(st.ByRating), sourcePanel(st.BySource)}
			if p, ok := backendPanel(ctx, svc.Reviews.BackendStats); ok {
				panels = append(panels, p)
			}
			return panels
		},
		h: h,
	}
	h.users = &page[domain.User]{
		name: "users", title: "Users", subtitle: "Manage app users",
		records: svc.Users, build: userTable,
		canDelete: true, fetch: svc.Users.Fetch,
		actions: []views.Action{
			{Label: "Enable", Suffix: "status", Field: "status", Value: "active"},
			{Label: "Disable", Suffix: "status", Field: "status", Value: "disabled"},
		},
		stats: func(items []domain.User) []views.Stat {
			st := service.UserStats(items)
			return []views.Stat{
				{Label: "Total Users", Value: count(st.Total)},
				{Label: "Location Enabled", Value: count(st.LocationEnabled)},
				{Label: "With Email", Value: count(st.WithEmail)},
				{Label: "With Phone", Value: count(st.WithPhone)},
			}
		},
		panels: func(ctx context.Context, _ []domain.User) []views.Panel {
			if p, ok := backendPanel(ctx, svc.Users.BackendStats); ok {
				return []views.Panel{p}
			}
			return nil
		},
		h: h,
	}
	return h
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/", h.landing).Methods("GET")
	r.PathPrefix("/static/").Handler(views.Static())
	h.Auth.RegisterRoutes(r)

	// Everything under /admin, matched or not, passes the gate.
	adminRoot := mux.NewRouter()
	admin := adminRoot.PathPrefix("/admin").Subrouter()
	r.PathPrefix("/admin").Handler(h.Auth.RequireAdmin(adminRoot))
	admin.HandleFunc("", h.dashboard).Methods("GET")
	admin.HandleFunc("/", h.dashboard).Methods("GET")
	admin.HandleFunc("/scraping/{op:start|stop}", h.scraping).Methods("POST")

	h.cities.register(admin)
	h.dishes.register(admin)
	h.restaurants.register(admin)
	h.reviews.register(admin)
	h.users.register(admin)

	admin.HandleFunc("/cities/{id}/scraping/{op:start|stop}", h.scraping).Methods("POST")

	admin.HandleFunc("/restaurants/{id}", h.restaurantDetail).Methods("GET")
	admin.HandleFunc("/restaurants/{id}/details", h.saveRestaurant).Methods("POST")
	admin.HandleFunc("/restaurants/{id}/verify", h.verifyRestaurant).Methods("POST")
	admin.HandleFunc("/restaurants/{id}/hours", h.updateHours).Methods("POST")
	admin.HandleFunc("/restaurants/{id}/location", h.updateLocation).Methods("POST")
	admin.HandleFunc("/restaurants/{id}/qrcode", h.restaurantQRCode).Methods("GET")
	admin.HandleFunc("/restaurants/{id}/dishes/export", h.exportMenu).Methods("GET")
	admin.HandleFunc("/restaurants/{id}/dishes", h.createMenuDish).Methods("POST")
	admin.HandleFunc("/restaurants/{id}/dishes/{dishId}", h.editMenuDish).Methods("POST")
	admin.HandleFunc("/restaurants/{id}/dishes/{dishId}/delete", h.deleteMenuDish).Methods("POST")

	admin.HandleFunc("/reviews/{id}/verify", h.verifyReview).Methods("POST")
	admin.HandleFunc("/reviews/{id}/report", h.reportReview).Methods("POST")
	admin.HandleFunc("/users/{id}/status", h.userStatus).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "admin-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// landing shows the login form, or the dashboard when already signed in.
func (h *Handler) landing(w http.ResponseWriter, r *http.Request) {
	if h.Auth.Authenticated(r) {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	h.render(w, "login", http.StatusOK, views.LoginPage{
		Layout: views.Layout{Title: "Admin Login", Toast: h.Auth.Flash(w, r)},
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	sum := h.Dashboard.Summary(r.Context())
	h.render(w, "dashboard", http.StatusOK, views.DashboardPage{
		Layout: views.Layout{Title: "Dashboard", Active: "dashboard"},
		Stats: []views.Stat{
			{Label: "Total Cities", Value: count(sum.Cities.Total), Hint: count(sum.Cities.Active) + " active"},
			{Label: "Total Restaurants", Value: count(sum.Restaurants.Total), Hint: count(sum.Restaurants.OpenNow) + " open now"},
			{Label: "Total Dishes", Value: count(sum.Dishes.Total)},
			{Label: "Total Users", Value: count(sum.Users.Total)},
			{Label: "Total Reviews", Value: count(sum.Reviews.Total)},
			{Label: "Average Rating", Value: rating(sum.Reviews.AverageRating)},
		},
		Activity: sum.Activity,
	})
}

// scraping starts or stops a city scrape. The city comes from the path or,
// on /admin/scraping, from the cityId form value.
func (h *Handler) scraping(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		id = r.FormValue("cityId")
	}
	if id == "" {
		http.Error(w, "cityId is required", http.StatusBadRequest)
		return
	}

	var err error
	if vars["op"] == "start" {
		err = h.Cities.StartScraping(r.Context(), id)
	} else {
		err = h.Cities.StopScraping(r.Context(), id)
	}
	if err != nil {
		h.cities.fail(w, r, err)
		return
	}
	http.Redirect(w, r, h.cities.path(), http.StatusSeeOther)
}

func (h *Handler) verifyReview(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Reviews.Verify(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.reviews.fail(w, r, err)
		return
	}
	h.reviews.redirect(w, r)
}

func (h *Handler) reportReview(w http.ResponseWriter, r *http.Request) {
	reason := r.PostFormValue("reason")
	if reason == "" {
		reason = defaultReportReason
	}
	if err := h.Reviews.Report(r.Context(), mux.Vars(r)["id"], reason); err != nil {
		h.reviews.fail(w, r, err)
		return
	}
	h.reviews.redirect(w, r)
}

func (h *Handler) userStatus(w http.ResponseWriter, r *http.Request) {
	status := r.PostFormValue("status")
	if status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	if _, err := h.users.find(r.Context(), id); err != nil {
		h.users.fail(w, r, err)
		return
	}
	if _, err := h.Users.SetStatus(r.Context(), id, status); err != nil {
		h.users.fail(w, r, err)
		return
	}
	h.users.redirect(w, r)
}

// render writes a full page with status. Output is buffered so a template
// error never leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, page string, status int, data any) {
	var buf bytes.Buffer
	if err := h.Views.Render(&buf, page, data); err != nil {
		log.Printf("[admin-svc] %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// statusFor maps a mutation error onto the response status.
func statusFor(err error) int {
	var apiErr *storage.APIError
	switch {
	case errors.Is(err, table.ErrRequired),
		errors.Is(err, table.ErrInvalidNumber),
		errors.Is(err, table.ErrInvalidURL),
		errors.Is(err, table.ErrInvalidOption),
		errors.Is(err, errInvalidLocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, table.ErrBusy), errors.Is(err, service.ErrUnsaved):
		return http.StatusConflict
	case errors.Is(err, table.ErrNoHandler):
		return http.StatusMethodNotAllowed
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, service.ErrNoWebsite):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func count(n int) string {
	return table.FormatNumber(float64(n))
}

func rating(f float64) string {
	return fmt.Sprintf("%.1f", f)
}

func ratingPanel(byRating map[int]int) views.Panel {
	p := views.Panel{Title: "Rating Distribution"}
	for star := 5; star >= 1; star-- {
		p.Rows = append(p.Rows, views.Stat{Label: fmt.Sprintf("%d stars", star), Value: count(byRating[star])})
	}
	return p
}

func sourcePanel(bySource map[string]int) views.Panel {
	p := views.Panel{Title: "Sources"}
	for _, source := range slices.Sorted(maps.Keys(bySource)) {
		p.Rows = append(p.Rows, views.Stat{Label: source, Value: count(bySource[source])})
	}
	return p
}

// backendPanel lists the backend's own aggregates. A failed call drops the
// panel; the page still renders from the cache.
func backendPanel(ctx context.Context, load func(context.Context) (domain.BackendStats, error)) (views.Panel, bool) {
	st, err := load(ctx)
	if err != nil {
		return views.Panel{}, false
	}
	p := views.Panel{Title: "Backend Stats"}
	for _, key := range slices.Sorted(maps.Keys(st)) {
		p.Rows = append(p.Rows, views.Stat{Label: strcase.ToDelimited(key, ' '), Value: table.Stringify(st[key])})
	}
	return p, true
}
