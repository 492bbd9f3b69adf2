package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/hours"
	"toro-admin/admin-svc/internal/service"
	"toro-admin/admin-svc/internal/table"
	"toro-admin/admin-svc/internal/views"

	"github.com/gorilla/mux"
)

var errInvalidLocation = errors.New("latitude and longitude must be numbers")

// detail is the state of one restaurant page render.
type detail struct {
	rest    domain.Restaurant
	menu    *table.Table[domain.Dish]
	form    table.Draft
	formErr string
}

func (h *Handler) restaurantDetail(w http.ResponseWriter, r *http.Request) {
	rest, err := lookup[domain.Restaurant](r.Context(), h.Restaurants, mux.Vars(r)["id"])
	if err != nil {
		h.restaurants.fail(w, r, err)
		return
	}
	d := detail{rest: rest, menu: h.menuTable(r), form: detailDraft(rest)}

	switch table.Modal(r.FormValue("modal")) {
	case table.ModalAdd:
		d.menu.OpenAdd()
	case table.ModalEdit:
		dishes, _ := h.Dishes.Menu(r.Context(), rest.ID)
		if dish, ok := d.menu.Find(dishes, r.FormValue("edit")); ok {
			d.menu.OpenEdit(dish)
		}
	}
	h.renderRestaurant(w, r, d, http.StatusOK)
}

func (h *Handler) saveRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest, err := lookup[domain.Restaurant](r.Context(), h.Restaurants, mux.Vars(r)["id"])
	if err != nil {
		h.restaurants.fail(w, r, err)
		return
	}

	// Save rewrites list fields in the draft it is given, so the form keeps its own copy.
	form := table.DraftFromForm(restaurantDetailFields, r.PostForm)
	err = table.Validate(restaurantDetailFields, form)
	if err == nil {
		_, err = h.Restaurants.Save(r.Context(), rest, table.DraftFromForm(restaurantDetailFields, r.PostForm))
	}
	if err != nil {
		h.renderRestaurant(w, r, detail{rest: rest, menu: h.menuTable(r), form: form, formErr: err.Error()}, statusFor(err))
		return
	}
	h.backToRestaurant(w, r, rest.ID)
}

func (h *Handler) verifyRestaurant(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := h.Restaurants.Verify(r.Context(), id); err != nil {
		h.restaurantError(w, r, id, err)
		return
	}
	h.backToRestaurant(w, r, id)
}

// updateHours replaces the business hours with one entry per non-blank line.
func (h *Handler) updateHours(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var entries []string
	for _, line := range strings.Split(r.PostFormValue("businessHours"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	if entries == nil {
		entries = []string{}
	}
	if _, err := h.Restaurants.UpdateHours(r.Context(), id, entries); err != nil {
		h.restaurantError(w, r, id, err)
		return
	}
	h.backToRestaurant(w, r, id)
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("latitude")), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("longitude")), 64)
	if latErr != nil || lngErr != nil {
		h.restaurantError(w, r, id, errInvalidLocation)
		return
	}
	loc := domain.Location{Latitude: lat, Longitude: lng}
	if _, err := h.Restaurants.UpdateLocation(r.Context(), id, loc); err != nil {
		h.restaurantError(w, r, id, err)
		return
	}
	h.backToRestaurant(w, r, id)
}

func (h *Handler) restaurantQRCode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := lookup[domain.Restaurant](r.Context(), h.Restaurants, id); err != nil {
		http.Error(w, "Restaurant not found", statusFor(err))
		return
	}
	png, err := h.Restaurants.QRCode(id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) exportMenu(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	dishes, err := h.Dishes.Menu(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeWorkbook(w, "menu-"+id, h.menuTable(r), dishes)
}

func (h *Handler) createMenuDish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest, err := lookup[domain.Restaurant](r.Context(), h.Restaurants, mux.Vars(r)["id"])
	if err != nil {
		h.restaurants.fail(w, r, err)
		return
	}
	menu := h.menuTable(r)
	menu.OnAdd = func(ctx context.Context, d table.Draft) error {
		_, err := h.Dishes.AddToMenu(ctx, rest.ID, d)
		return err
	}
	if err := menu.SubmitAdd(r.Context(), table.DraftFromForm(menu.FormFields(), r.PostForm)); err != nil {
		h.renderRestaurant(w, r, detail{rest: rest, menu: menu, form: detailDraft(rest)}, statusFor(err))
		return
	}
	h.backToRestaurant(w, r, rest.ID)
}

func (h *Handler) editMenuDish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest, dish, err := h.menuDish(r)
	if err != nil {
		h.restaurantError(w, r, mux.Vars(r)["id"], err)
		return
	}
	menu := h.menuTable(r)
	menu.OnUpdate = func(ctx context.Context, d domain.Dish) error {
		_, err := h.Dishes.Update(ctx, d)
		return err
	}
	if err := menu.SubmitEdit(r.Context(), dish, table.DraftFromForm(menu.FormFields(), r.PostForm)); err != nil {
		h.renderRestaurant(w, r, detail{rest: rest, menu: menu, form: detailDraft(rest)}, statusFor(err))
		return
	}
	h.backToRestaurant(w, r, rest.ID)
}

func (h *Handler) deleteMenuDish(w http.ResponseWriter, r *http.Request) {
	rest, dish, err := h.menuDish(r)
	if err != nil {
		h.restaurantError(w, r, mux.Vars(r)["id"], err)
		return
	}
	menu := h.menuTable(r)
	menu.OnDelete = func(ctx context.Context, d domain.Dish) error {
		return h.Dishes.Delete(ctx, d.ID)
	}
	if err := menu.Delete(r.Context(), dish); err != nil {
		h.renderRestaurant(w, r, detail{rest: rest, menu: menu, form: detailDraft(rest)}, statusFor(err))
		return
	}
	h.backToRestaurant(w, r, rest.ID)
}

// menuDish resolves the restaurant and one of its dishes from the path.
func (h *Handler) menuDish(r *http.Request) (domain.Restaurant, domain.Dish, error) {
	vars := mux.Vars(r)
	rest, err := lookup[domain.Restaurant](r.Context(), h.Restaurants, vars["id"])
	if err != nil {
		return rest, domain.Dish{}, err
	}
	dishes, err := h.Dishes.Menu(r.Context(), rest.ID)
	if err != nil {
		return rest, domain.Dish{}, err
	}
	for _, d := range dishes {
		if d.ID == vars["dishId"] {
			return rest, d, nil
		}
	}
	return rest, domain.Dish{}, service.ErrNotFound
}

func (h *Handler) menuTable(r *http.Request) *table.Table[domain.Dish] {
	t := menuTable()
	t.PageSize = h.PageSize
	t.SetSearch(r.FormValue("q"))
	t.GoTo(pageNumber(r))
	return t
}

// restaurantError re-renders the detail page with err under the details form.
func (h *Handler) restaurantError(w http.ResponseWriter, r *http.Request, id string, err error) {
	rest, missing := lookup[domain.Restaurant](r.Context(), h.Restaurants, id)
	if missing != nil {
		h.restaurants.fail(w, r, missing)
		return
	}
	h.renderRestaurant(w, r, detail{rest: rest, menu: h.menuTable(r), form: detailDraft(rest), formErr: err.Error()}, statusFor(err))
}

func (h *Handler) backToRestaurant(w http.ResponseWriter, r *http.Request, id string) {
	http.Redirect(w, r, "/admin/restaurants/"+id, http.StatusSeeOther)
}

func (h *Handler) renderRestaurant(w http.ResponseWriter, r *http.Request, d detail, status int) {
	warning := ""
	dishes, err := h.Dishes.Menu(r.Context(), d.rest.ID)
	if err != nil {
		warning = "Could not load the menu."
	}

	now := h.now()
	today, _ := hours.Today(d.rest.BusinessHours, now)
	h.render(w, "restaurant", status, views.RestaurantPage{
		Layout:     views.Layout{Title: d.rest.Name, Active: "restaurants", Warning: warning},
		Restaurant: d.rest,
		OpenNow:    !d.rest.IsClosed && hours.IsOpenAt(d.rest.BusinessHours, now),
		Today:      today,
		Hours:      strings.Join(d.rest.BusinessHours, "\n"),
		Details:    table.Inputs(restaurantDetailFields, d.form),
		Error:      d.formErr,
		Menu: views.TablePage{
			Path:      "/admin/restaurants/" + d.rest.ID + "/dishes",
			Table:     d.menu.View(dishes),
			CanAdd:    true,
			CanEdit:   true,
			CanDelete: true,
		},
	})
}

// detailDraft seeds the details form. Categories are shown comma separated and
// a structured address falls back to its display line.
func detailDraft(rest domain.Restaurant) table.Draft {
	d := table.SeedDraft(restaurantDetailFields, rest)
	d.Set("categories", strings.Join(rest.Categories, ", "))
	if rest.AddressFull == "" {
		d.Set("addressFull", rest.Address.String())
	}
	return d
}
