package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpapi "toro-admin/admin-svc/internal/api/http"
	"toro-admin/admin-svc/internal/auth"
	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/mocks"
	"toro-admin/admin-svc/internal/service"
	"toro-admin/admin-svc/internal/storage"
	"toro-admin/admin-svc/internal/views"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type adminFixture struct {
	router        http.Handler
	token         string
	cities        *mocks.Resource[domain.City]
	dishes        *mocks.Resource[domain.Dish]
	restaurants   *mocks.Resource[domain.Restaurant]
	reviews       *mocks.Resource[domain.Review]
	users         *mocks.Resource[domain.User]
	scraper       *mocks.Scraper
	menu          *mocks.MenuSource
	restActions   *mocks.RestaurantActions
	reviewActions *mocks.ReviewActions
	userActions   *mocks.UserActions
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	f := &adminFixture{
		cities:        mocks.NewResource[domain.City](t),
		dishes:        mocks.NewResource[domain.Dish](t),
		restaurants:   mocks.NewResource[domain.Restaurant](t),
		reviews:       mocks.NewResource[domain.Review](t),
		users:         mocks.NewResource[domain.User](t),
		scraper:       mocks.NewScraper(t),
		menu:          mocks.NewMenuSource(t),
		restActions:   mocks.NewRestaurantActions(t),
		reviewActions: mocks.NewReviewActions(t),
		userActions:   mocks.NewUserActions(t),
	}

	now := func() time.Time { return fixedNow }
	deps := service.Deps{Now: now}
	svc := httpapi.Services{
		Cities:      service.NewCityService(f.cities, f.scraper, deps),
		Dishes:      service.NewDishService(f.dishes, f.menu, deps),
		Restaurants: service.NewRestaurantService(f.restaurants, f.restActions, deps),
		Reviews:     service.NewReviewService(f.reviews, f.reviewActions, deps),
		Users:       service.NewUserService(f.users, f.userActions, deps),
	}
	svc.Dashboard = &service.DashboardService{
		Cities:      svc.Cities,
		Restaurants: svc.Restaurants,
		Dishes:      svc.Dishes,
		Reviews:     svc.Reviews,
		Users:       svc.Users,
		Now:         now,
	}

	authCfg := auth.Config{Password: "hunter2", Secret: "test-secret", SessionKey: "test-session-key"}
	renderer, err := views.New()
	require.NoError(t, err)

	h := httpapi.NewHandler(svc, auth.NewHandler(authCfg), renderer, 10)
	h.Now = now
	f.router = httpapi.NewRouter(h)

	f.token, err = authCfg.IssueToken(time.Now())
	require.NoError(t, err)
	return f
}

func (f *adminFixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: f.token})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func document(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

func someCities(n int) []domain.City {
	out := make([]domain.City, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.City{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("City %02d", i), Status: domain.CityActive})
	}
	return out
}

func luigis() domain.Restaurant {
	return domain.Restaurant{
		ID:            "r1",
		Name:          "Luigi's",
		AddressFull:   "100 Main St, Tampa, FL",
		Website:       "https://luigis.example.com",
		BusinessHours: []string{"Monday: 9:00 AM - 5:00 PM", "Tuesday: Closed"},
		Categories:    []string{"Pizza", "Italian"},
	}
}

func TestAdmin_RedirectsWithoutToken(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
	}{
		{name: "table page", method: http.MethodGet, target: "/admin/cities"},
		{name: "dashboard", method: http.MethodGet, target: "/admin"},
		{name: "unknown page", method: http.MethodGet, target: "/admin/nope"},
		{name: "get on a post route", method: http.MethodGet, target: "/admin/cities/c1/delete"},
		{name: "unsupported method", method: http.MethodDelete, target: "/admin/cities"},
		{name: "mutation", method: http.MethodPost, target: "/admin/users/u1/status"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newAdminFixture(t)

			req := httptest.NewRequest(testCase.method, testCase.target, nil)
			w := httptest.NewRecorder()
			f.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
		})
	}
}

func TestAdmin_UnknownPathWithToken(t *testing.T) {
	f := newAdminFixture(t)

	w := f.do(http.MethodGet, "/admin/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLanding(t *testing.T) {
	f := newAdminFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, document(t, w).Find(`form[action="/api/auth/admin"]`).Length())

	w = f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestHealth(t *testing.T) {
	f := newAdminFixture(t)

	w := f.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"admin-svc"`)
}

func TestCitiesPage_Rows(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("List", mock.Anything).Return([]domain.City{
		{ID: "c1", Name: "Tampa", State: "Florida", Status: domain.CityActive, Restaurants: []domain.DocRef{"r1", "r2"}},
		{ID: "c2", Name: "Orlando", State: "Florida", Status: domain.CityPending},
	}, nil)

	w := f.do(http.MethodGet, "/admin/cities", nil)

	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)
	rows := doc.Find("tbody tr[data-id]")
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "c1", rows.First().AttrOr("data-id", ""))
	assert.Equal(t, 1, rows.First().Find(".badge.badge-green").Length())
	assert.Equal(t, 1, rows.Last().Find(".badge.badge-yellow").Length())
	assert.Equal(t, "Never", strings.TrimSpace(rows.Last().Find(".cell-empty").Last().Text()))
	assert.Equal(t, "2", doc.Find(".stat .value").First().Text())
	assert.Equal(t, 2, rows.First().Find(`form[action^="/admin/cities/c1/scraping/"]`).Length())
}

func TestCitiesPage_SearchAndEmptyStates(t *testing.T) {
	tests := []struct {
		name   string
		cities []domain.City
		target string
		rows   int
		empty  string
	}{
		{name: "search matches", cities: someCities(3), target: "/admin/cities?q=city+02", rows: 1},
		{name: "search misses", cities: someCities(3), target: "/admin/cities?q=zzz", empty: "No results found"},
		{name: "no records", cities: []domain.City{}, target: "/admin/cities", empty: "No data"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newAdminFixture(t)
			f.cities.On("List", mock.Anything).Return(testCase.cities, nil)

			w := f.do(http.MethodGet, testCase.target, nil)

			require.Equal(t, http.StatusOK, w.Code)
			doc := document(t, w)
			assert.Equal(t, testCase.rows, doc.Find("tbody tr[data-id]").Length())
			assert.Equal(t, testCase.empty, strings.TrimSpace(doc.Find(".empty-row").Text()))
		})
	}
}

func TestCitiesPage_Pagination(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("List", mock.Anything).Return(someCities(25), nil)

	w := f.do(http.MethodGet, "/admin/cities?page=3", nil)

	doc := document(t, w)
	assert.Equal(t, 5, doc.Find("tbody tr[data-id]").Length())
	assert.Equal(t, "Showing 21 to 25 of 25 results", doc.Find(".pagination .summary").Text())
	assert.Equal(t, 1, doc.Find(".pagination .next.disabled").Length())
	assert.Equal(t, 0, doc.Find(".pagination .prev.disabled").Length())
}

func TestCitiesPage_EditDialogIsSeeded(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("List", mock.Anything).Return([]domain.City{{ID: "c1", Name: "Tampa", State: "Florida", Status: domain.CityActive}}, nil)

	w := f.do(http.MethodGet, "/admin/cities?modal=edit&edit=c1", nil)

	doc := document(t, w)
	form := doc.Find(".modal form")
	require.Equal(t, 1, form.Length())
	assert.Equal(t, "/admin/cities/c1", form.AttrOr("action", ""))
	assert.Equal(t, "Tampa", form.Find("#field-name").AttrOr("value", ""))
	assert.Equal(t, domain.CityActive, form.Find("#field-status option[selected]").AttrOr("value", ""))
}

func TestCitiesPage_AddRedirects(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("Create", mock.Anything, mock.MatchedBy(func(c domain.City) bool {
		return c.Name == "Tampa" && c.StateCode == "FL" && c.Status == domain.CityPending
	})).Return(domain.City{ID: "c1", Name: "Tampa"}, nil).Once()

	w := f.do(http.MethodPost, "/admin/cities", url.Values{
		"name": {"Tampa"}, "state": {"Florida"}, "state_code": {"FL"}, "q": {"tam"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/cities?q=tam", w.Header().Get("Location"))
}

func TestCitiesPage_AddKeepsDialogOpenOnError(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		setup    func(f *adminFixture)
		status   int
		contains string
	}{
		{
			name:     "missing name",
			form:     url.Values{"name": {""}, "state": {"Florida"}, "state_code": {"FL"}},
			status:   http.StatusUnprocessableEntity,
			contains: "Name: required",
		},
		{
			name: "backend rejects",
			form: url.Values{"name": {"Tampa"}, "state": {"Florida"}, "state_code": {"FL"}},
			setup: func(f *adminFixture) {
				f.cities.On("Create", mock.Anything, mock.Anything).
					Return(domain.City{}, &storage.APIError{Status: http.StatusInternalServerError, Body: "boom"}).Once()
			},
			status:   http.StatusBadGateway,
			contains: "create city",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newAdminFixture(t)
			if testCase.setup != nil {
				testCase.setup(f)
			}

			w := f.do(http.MethodPost, "/admin/cities", testCase.form)

			assert.Equal(t, testCase.status, w.Code)
			doc := document(t, w)
			assert.Equal(t, 1, doc.Find(".modal").Length())
			assert.Contains(t, doc.Find(".modal .form-error").Text(), testCase.contains)
			assert.Equal(t, "Florida", doc.Find("#field-state").AttrOr("value", ""))
		})
	}
}

func TestCitiesPage_EditMergesIntoRecord(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("List", mock.Anything).Return([]domain.City{
		{ID: "c1", Name: "Tampa", State: "Florida", StateCode: "FL", Status: domain.CityActive, Restaurants: []domain.DocRef{"r1"}},
	}, nil).Once()
	f.cities.On("Update", mock.Anything, "c1", mock.MatchedBy(func(c domain.City) bool {
		return c.Name == "Tampa Bay" && len(c.Restaurants) == 1 && c.Status == domain.CityScraping
	})).Return(func(_ context.Context, _ string, c domain.City) (domain.City, error) {
		return c, nil
	}).Once()

	w := f.do(http.MethodPost, "/admin/cities/c1", url.Values{
		"name": {"Tampa Bay"}, "state": {"Florida"}, "state_code": {"FL"}, "status": {domain.CityScraping},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/cities", w.Header().Get("Location"))
}

func TestCitiesPage_Delete(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("List", mock.Anything).Return(someCities(2), nil).Once()
	f.cities.On("Delete", mock.Anything, "c2").Return(nil).Once()

	w := f.do(http.MethodPost, "/admin/cities/c2/delete", url.Values{"page": {"1"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestCitiesPage_DeleteUnknownIsNotFound(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("List", mock.Anything).Return(someCities(1), nil)

	w := f.do(http.MethodPost, "/admin/cities/c9/delete", url.Values{})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, document(t, w).Find(".table-error").Text(), "record not found")
}

func TestScraping(t *testing.T) {
	f := newAdminFixture(t)
	f.scraper.On("StartScraping", mock.Anything, "c1").Return(nil).Once()
	f.scraper.On("StopScraping", mock.Anything, "c2").Return(nil).Once()

	w := f.do(http.MethodPost, "/admin/cities/c1/scraping/start", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/cities", w.Header().Get("Location"))

	w = f.do(http.MethodPost, "/admin/scraping/stop", url.Values{"cityId": {"c2"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = f.do(http.MethodPost, "/admin/scraping/stop", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCitiesPage_Export(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("List", mock.Anything).Return([]domain.City{
		{ID: "c1", Name: "Tampa", State: "Florida"},
		{ID: "c2", Name: "Orlando", State: "Florida"},
	}, nil)

	w := f.do(http.MethodGet, "/admin/cities/export?q=tam", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "cities.xlsx")
	book, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("cities")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Tampa", rows[1][0])
}

func TestRestaurantsPage_RowsLinkToDetail(t *testing.T) {
	f := newAdminFixture(t)
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis()}, nil)

	w := f.do(http.MethodGet, "/admin/restaurants", nil)

	doc := document(t, w)
	assert.Equal(t, "/admin/restaurants/r1", doc.Find("tbody tr[data-id] a").First().AttrOr("href", ""))
	assert.Equal(t, "No phone", strings.TrimSpace(doc.Find("tbody tr[data-id] .cell-empty").First().Text()))
}

func TestRestaurantDetail(t *testing.T) {
	f := newAdminFixture(t)
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis()}, nil).Once()
	f.menu.On("DishesByRestaurant", mock.Anything, "r1").Return([]domain.Dish{
		{ID: "d1", Name: "Margherita", Price: 12.5, Section: "Main Course"},
		{ID: "d2", Name: "Tiramisu", Price: 7, Section: "Dessert"},
	}, nil).Once()

	w := f.do(http.MethodGet, "/admin/restaurants/r1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)
	assert.Equal(t, "Luigi's", doc.Find("h1").Text())
	assert.Equal(t, "Open", doc.Find(".page-header .badge").First().Text())
	assert.Equal(t, "Pizza, Italian", doc.Find(`textarea[name="categories"]`).Text())
	assert.Equal(t, "/admin/restaurants/r1/qrcode", doc.Find(".qr img").AttrOr("src", ""))
	assert.Equal(t, "/admin/reviews?restaurant=r1", doc.Find("a.reviews-link").AttrOr("href", ""))

	menu := doc.Find("#table-menu tbody tr[data-id]")
	require.Equal(t, 2, menu.Length())
	assert.Contains(t, menu.First().Text(), "$12.50")
	assert.Equal(t, "/admin/restaurants/r1/dishes/d1/delete",
		menu.First().Find("form.inline").Last().AttrOr("action", ""))
}

func TestRestaurantDetail_Unknown(t *testing.T) {
	f := newAdminFixture(t)
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{}, nil)

	w := f.do(http.MethodGet, "/admin/restaurants/r9", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestaurantDetail_SaveSplitsCategories(t *testing.T) {
	f := newAdminFixture(t)
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis()}, nil).Once()
	f.restaurants.On("Update", mock.Anything, "r1", mock.MatchedBy(func(r domain.Restaurant) bool {
		return r.Name == "Luigi's Pizzeria" &&
			assert.ObjectsAreEqual([]string{"Pizza", "Italian", "Pasta"}, r.Categories) &&
			len(r.BusinessHours) == 2 && r.UpdatedAt.Equal(fixedNow)
	})).Return(func(_ context.Context, _ string, r domain.Restaurant) (domain.Restaurant, error) {
		return r, nil
	}).Once()

	w := f.do(http.MethodPost, "/admin/restaurants/r1/details", url.Values{
		"name":       {"Luigi's Pizzeria"},
		"website":    {"https://luigis.example.com"},
		"categories": {"Pizza, Italian , Pasta,"},
		"status":     {"active"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/restaurants/r1", w.Header().Get("Location"))
}

func TestRestaurantDetail_InvalidLocation(t *testing.T) {
	f := newAdminFixture(t)
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis()}, nil).Once()
	f.menu.On("DishesByRestaurant", mock.Anything, "r1").Return([]domain.Dish{}, nil).Once()

	w := f.do(http.MethodPost, "/admin/restaurants/r1/location", url.Values{"latitude": {"north"}, "longitude": {"-82.4"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, document(t, w).Find(".details .form-error").Text(), "latitude")
}

func TestRestaurantDetail_Actions(t *testing.T) {
	f := newAdminFixture(t)
	f.restActions.On("VerifyRestaurant", mock.Anything, "r1").Return(domain.Restaurant{}, nil).Once()
	f.restActions.On("UpdateHours", mock.Anything, "r1", []string{"Monday: 9:00 AM - 9:00 PM", "Sunday: Closed"}).
		Return(domain.Restaurant{}, nil).Once()
	f.restActions.On("UpdateLocation", mock.Anything, "r1", domain.Location{Latitude: 27.95, Longitude: -82.46}).
		Return(domain.Restaurant{}, nil).Once()

	tests := []struct {
		name   string
		target string
		form   url.Values
	}{
		{name: "verify", target: "/admin/restaurants/r1/verify", form: url.Values{}},
		{name: "hours", target: "/admin/restaurants/r1/hours",
			form: url.Values{"businessHours": {"Monday: 9:00 AM - 9:00 PM\r\n\r\nSunday: Closed\n"}}},
		{name: "location", target: "/admin/restaurants/r1/location",
			form: url.Values{"latitude": {"27.95"}, "longitude": {"-82.46"}}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := f.do(http.MethodPost, testCase.target, testCase.form)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/admin/restaurants/r1", w.Header().Get("Location"))
		})
	}
}

func TestRestaurantQRCode(t *testing.T) {
	f := newAdminFixture(t)
	noSite := luigis()
	noSite.ID, noSite.Website = "r2", ""
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis(), noSite}, nil).Once()

	w := f.do(http.MethodGet, "/admin/restaurants/r1/qrcode", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = f.do(http.MethodGet, "/admin/restaurants/r2/qrcode", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenu_AddDish(t *testing.T) {
	f := newAdminFixture(t)
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis()}, nil).Once()
	f.dishes.On("Create", mock.Anything, mock.MatchedBy(func(d domain.Dish) bool {
		return d.Name == "Calzone" && d.Price == 11 && d.Restaurant == "r1" && d.Section == "Main Course"
	})).Return(domain.Dish{ID: "d3", Name: "Calzone"}, nil).Once()

	w := f.do(http.MethodPost, "/admin/restaurants/r1/dishes", url.Values{
		"name": {"Calzone"}, "price": {"11"}, "section": {"Main Course"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/restaurants/r1", w.Header().Get("Location"))
}

func TestMenu_AddDishRejectsBadPrice(t *testing.T) {
	f := newAdminFixture(t)
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis()}, nil).Once()
	f.menu.On("DishesByRestaurant", mock.Anything, "r1").Return([]domain.Dish{}, nil).Once()

	w := f.do(http.MethodPost, "/admin/restaurants/r1/dishes", url.Values{"name": {"Calzone"}, "price": {"cheap"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	doc := document(t, w)
	assert.Contains(t, doc.Find("#table-menu .form-error").Text(), "Price: not a number")
	assert.Equal(t, "cheap", doc.Find("#table-menu #field-price").AttrOr("value", ""))
}

func TestMenu_EditAndDeleteDish(t *testing.T) {
	f := newAdminFixture(t)
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis()}, nil).Once()
	f.menu.On("DishesByRestaurant", mock.Anything, "r1").
		Return([]domain.Dish{{ID: "d1", Name: "Margherita", Price: 12.5, Restaurant: "r1"}}, nil)
	f.dishes.On("Update", mock.Anything, "d1", mock.MatchedBy(func(d domain.Dish) bool {
		return d.Name == "Margherita" && d.Price == 13 && d.Restaurant == "r1"
	})).Return(func(_ context.Context, _ string, d domain.Dish) (domain.Dish, error) {
		return d, nil
	}).Once()
	f.dishes.On("Delete", mock.Anything, "d1").Return(nil).Once()

	w := f.do(http.MethodPost, "/admin/restaurants/r1/dishes/d1", url.Values{"name": {"Margherita"}, "price": {"13"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = f.do(http.MethodPost, "/admin/restaurants/r1/dishes/d1/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = f.do(http.MethodPost, "/admin/restaurants/r1/dishes/d9/delete", url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviews_Moderation(t *testing.T) {
	f := newAdminFixture(t)
	f.reviewActions.On("VerifyReview", mock.Anything, "v1").Return(domain.Review{}, nil).Once()
	f.reviewActions.On("ReportReview", mock.Anything, "v1", "Spam").Return(nil).Once()
	f.reviewActions.On("ReportReview", mock.Anything, "v2", "Inappropriate content").
		Return(&storage.APIError{Status: http.StatusNotFound, Body: "no such review"}).Once()

	w := f.do(http.MethodPost, "/admin/reviews/v1/verify", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/reviews", w.Header().Get("Location"))

	w = f.do(http.MethodPost, "/admin/reviews/v1/report", url.Values{"reason": {"Spam"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = f.do(http.MethodPost, "/admin/reviews/v2/report", url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, document(t, w).Find(".table-error").Text(), "report review")
}

func TestReviewsPage_HasNoAddOrEdit(t *testing.T) {
	f := newAdminFixture(t)
	f.reviews.On("List", mock.Anything).Return([]domain.Review{
		{ID: "v1", Rating: 4, Comment: "Great", Author: domain.Author{Name: "Ana", IsVerified: true}, Source: "app"},
	}, nil)
	f.reviewActions.On("ReviewStats", mock.Anything).Return(domain.BackendStats{"totalReviews": 1}, nil)

	w := f.do(http.MethodGet, "/admin/reviews?modal=add", nil)

	doc := document(t, w)
	assert.Equal(t, 0, doc.Find(".add-new").Length())
	assert.Equal(t, 0, doc.Find(".modal").Length())
	assert.Equal(t, 0, doc.Find("a.edit").Length())
	assert.Equal(t, 1, doc.Find("button.delete").Length())
	assert.Equal(t, "1", doc.Find(".stat .value").Last().Text())

	w = f.do(http.MethodPost, "/admin/reviews", url.Values{"comment": {"x"}})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestUsers_Status(t *testing.T) {
	f := newAdminFixture(t)
	f.userActions.On("GetUser", mock.Anything, "u1").Return(domain.User{UID: "u1", Status: "active"}, nil).Once()
	f.userActions.On("UpdateUserStatus", mock.Anything, "u1", "disabled").
		Return(domain.User{UID: "u1", Status: "disabled"}, nil).Once()

	w := f.do(http.MethodPost, "/admin/users/u1/status", url.Values{"status": {"disabled"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/users", w.Header().Get("Location"))

	w = f.do(http.MethodPost, "/admin/users/u1/status", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsers_StatusUnknownUser(t *testing.T) {
	f := newAdminFixture(t)
	f.userActions.On("GetUser", mock.Anything, "ghost").
		Return(domain.User{}, &storage.APIError{Status: http.StatusNotFound, Body: "no such user"}).Once()

	w := f.do(http.MethodPost, "/admin/users/ghost/status", url.Values{"status": {"disabled"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, document(t, w).Find(".table-error").Text(), "fetch user")
	f.userActions.AssertNotCalled(t, "UpdateUserStatus", mock.Anything, "ghost", mock.Anything)
}

func TestUsersPage_BackendPanel(t *testing.T) {
	f := newAdminFixture(t)
	f.users.On("List", mock.Anything).Return([]domain.User{{UID: "u1", DisplayName: "Ana"}}, nil)
	f.userActions.On("UserStats", mock.Anything).Return(domain.BackendStats{"activeUsers": 7, "totalUsers": 9}, nil).Once()

	w := f.do(http.MethodGet, "/admin/users", nil)

	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)
	panel := doc.Find(".panel")
	require.Equal(t, 1, panel.Length())
	assert.Equal(t, "Backend Stats", panel.Find("h3").Text())
	assert.Equal(t, []string{"active users", "total users"}, panel.Find("dt").Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
	assert.Equal(t, []string{"7", "9"}, panel.Find("dd").Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
	assert.Equal(t, "/admin/reviews?user=u1", doc.Find("tbody tr td a").First().AttrOr("href", ""))
}

func TestReviewsPage_Panels(t *testing.T) {
	testCases := []struct {
		name     string
		backend  error
		expected []string
	}{
		{name: "with backend stats", expected: []string{"Rating Distribution", "Sources", "Backend Stats"}},
		{name: "backend down", backend: errors.New("connection refused"), expected: []string{"Rating Distribution", "Sources"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			f := newAdminFixture(t)
			f.reviews.On("List", mock.Anything).Return([]domain.Review{
				{ID: "v1", Rating: 5, Source: "app"},
				{ID: "v2", Rating: 4.6, Source: "Google"},
				{ID: "v3", Rating: 2, Source: "app"},
			}, nil)
			var stats domain.BackendStats
			if testCase.backend == nil {
				stats = domain.BackendStats{"averageRating": 3.9}
			}
			f.reviewActions.On("ReviewStats", mock.Anything).Return(stats, testCase.backend).Once()

			w := f.do(http.MethodGet, "/admin/reviews", nil)

			require.Equal(t, http.StatusOK, w.Code)
			doc := document(t, w)
			titles := doc.Find(".panel h3").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
			assert.Equal(t, testCase.expected, titles)

			ratings := doc.Find(".panel").First().Find("dd").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
			assert.Equal(t, []string{"2", "0", "0", "1", "0"}, ratings)
			sources := doc.Find(".panel").Eq(1).Find("dt").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
			assert.Equal(t, []string{"app", "google"}, sources)
		})
	}
}

func TestReviewsPage_ScopedToTarget(t *testing.T) {
	testCases := []struct {
		name   string
		target string
		kind   string
		id     string
	}{
		{name: "restaurant", target: "/admin/reviews?restaurant=r1", kind: "restaurant", id: "r1"},
		{name: "dish", target: "/admin/reviews?dish=d1", kind: "dish", id: "d1"},
		{name: "user", target: "/admin/reviews?user=u1", kind: "user", id: "u1"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			f := newAdminFixture(t)
			f.reviews.On("List", mock.Anything).Return([]domain.Review{{ID: "v1"}, {ID: "v2"}, {ID: "v3"}}, nil)
			f.reviewActions.On("ReviewsBy", mock.Anything, testCase.kind, testCase.id).
				Return([]domain.Review{{ID: "v2", Rating: 4, Comment: "Scoped"}}, nil).Once()
			f.reviewActions.On("ReviewStats", mock.Anything).Return(domain.BackendStats{}, nil).Once()

			w := f.do(http.MethodGet, testCase.target, nil)

			require.Equal(t, http.StatusOK, w.Code)
			doc := document(t, w)
			assert.Equal(t, "Reviews for "+testCase.kind+" "+testCase.id, doc.Find(".page-header .muted").Text())
			assert.Equal(t, 1, doc.Find("tbody tr[data-id]").Length())
			assert.Equal(t, "v2", doc.Find("tbody tr[data-id]").AttrOr("data-id", ""))
			assert.Equal(t, "1", doc.Find(".stat .value").First().Text())

			scope := doc.Find(`.table-search input[type="hidden"]`)
			assert.Equal(t, testCase.kind, scope.AttrOr("name", ""))
			assert.Equal(t, testCase.id, scope.AttrOr("value", ""))
			assert.Equal(t, 1, doc.Find(`form[action="/admin/reviews/v2/verify"] input[name="`+testCase.kind+`"]`).Length())
			assert.Contains(t, doc.Find(".table-toolbar a").First().AttrOr("href", ""), testCase.kind+"="+testCase.id)
		})
	}
}

func TestReviewsPage_ScopedActionKeepsScope(t *testing.T) {
	f := newAdminFixture(t)
	f.reviewActions.On("VerifyReview", mock.Anything, "v2").Return(domain.Review{}, nil).Once()

	w := f.do(http.MethodPost, "/admin/reviews/v2/verify", url.Values{"restaurant": {"r1"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/reviews?restaurant=r1", w.Header().Get("Location"))
}

func TestReviewsPage_ScopedLoadFailureWarns(t *testing.T) {
	f := newAdminFixture(t)
	f.reviews.On("List", mock.Anything).Return([]domain.Review{{ID: "v1"}}, nil)
	f.reviewActions.On("ReviewsBy", mock.Anything, "dish", "d9").Return(nil, errors.New("timeout")).Once()
	f.reviewActions.On("ReviewStats", mock.Anything).Return(domain.BackendStats{}, nil).Once()

	w := f.do(http.MethodGet, "/admin/reviews?dish=d9", nil)

	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)
	assert.Equal(t, 0, doc.Find("tbody tr[data-id]").Length())
	assert.Contains(t, w.Body.String(), "Could not load reviews")
}

func TestDashboard(t *testing.T) {
	f := newAdminFixture(t)
	f.cities.On("List", mock.Anything).Return(someCities(3), nil).Once()
	f.restaurants.On("List", mock.Anything).Return([]domain.Restaurant{luigis()}, nil).Once()
	f.dishes.On("List", mock.Anything).Return([]domain.Dish{{ID: "d1"}, {ID: "d2"}}, nil).Once()
	f.reviews.On("List", mock.Anything).Return([]domain.Review{{ID: "v1", Rating: 4}, {ID: "v2", Rating: 5}}, nil).Once()
	f.users.On("List", mock.Anything).Return([]domain.User{{UID: "u1"}}, nil).Once()

	w := f.do(http.MethodGet, "/admin", nil)

	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)
	var values []string
	doc.Find(".stat .value").Each(func(_ int, s *goquery.Selection) {
		values = append(values, s.Text())
	})
	assert.Equal(t, []string{"3", "1", "2", "1", "2", "4.5"}, values)
	assert.Equal(t, "1 open now", doc.Find(".stat .hint").Eq(1).Text())
	assert.Equal(t, "No recent activity", doc.Find(".activity .empty").Text())
	assert.Equal(t, 1, doc.Find(`nav a.active[href="/admin"]`).Length())
}
