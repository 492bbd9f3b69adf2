package httpapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"toro-admin/admin-svc/internal/service"
	"toro-admin/admin-svc/internal/table"
	"toro-admin/admin-svc/internal/views"

	"github.com/gorilla/mux"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// records is the slice of a page controller the table pages need.
type records[T any] interface {
	Refresh(ctx context.Context) error
	Items() []T
	Get(id string) (T, bool)
	Loading() bool
	Update(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id string) error
}

// scope narrows a page to the records of one related entity, as in
// /admin/reviews?restaurant=r1.
type scope[T any] struct {
	kinds []string
	load  func(ctx context.Context, kind, id string) ([]T, error)
}

// page serves one entity's table: list, dialogs, mutations and export.
type page[T any] struct {
	name     string
	title    string
	subtitle string
	records  records[T]
	build    func() *table.Table[T]
	stats    func(items []T) []views.Stat
	panels   func(ctx context.Context, items []T) []views.Panel
	actions  []views.Action
	scope    *scope[T]
	// fetch loads one record the cache does not hold.
	fetch func(ctx context.Context, id string) (T, error)

	add       func(ctx context.Context, d table.Draft) (T, error)
	canEdit   bool
	canDelete bool

	h *Handler
}

func (p *page[T]) path() string {
	return "/admin/" + p.name
}

// register adds the page routes to the /admin subrouter. Export goes first so
// it is not taken for an id.
func (p *page[T]) register(r *mux.Router) {
	base := "/" + p.name
	r.HandleFunc(base, p.list).Methods("GET")
	r.HandleFunc(base+"/export", p.export).Methods("GET")
	if p.add != nil {
		r.HandleFunc(base, p.create).Methods("POST")
	}
	if p.canEdit {
		r.HandleFunc(base+"/{id}", p.edit).Methods("POST")
	}
	if p.canDelete {
		r.HandleFunc(base+"/{id}/delete", p.remove).Methods("POST")
	}
}

// table builds the component with the search and page carried by r.
func (p *page[T]) table(r *http.Request) *table.Table[T] {
	t := p.build()
	t.PageSize = p.h.PageSize
	t.SetSearch(r.FormValue("q"))
	t.GoTo(pageNumber(r))
	return t
}

func (p *page[T]) list(w http.ResponseWriter, r *http.Request) {
	warning := ""
	if err := p.records.Refresh(r.Context()); err != nil {
		warning = "Could not reach the backend. Showing the last loaded data."
	}

	t := p.table(r)
	t.State.Loading = p.records.Loading()
	switch table.Modal(r.FormValue("modal")) {
	case table.ModalAdd:
		if p.add != nil {
			t.OpenAdd()
		}
	case table.ModalEdit:
		if rec, ok := p.records.Get(r.FormValue("edit")); ok && p.canEdit {
			t.OpenEdit(rec)
		}
	}
	p.render(w, r, t, http.StatusOK, warning)
}

func (p *page[T]) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t := p.table(r)
	t.OnAdd = func(ctx context.Context, d table.Draft) error {
		_, err := p.add(ctx, d)
		return err
	}
	d := table.DraftFromForm(t.FormFields(), r.PostForm)
	if err := t.SubmitAdd(r.Context(), d); err != nil {
		p.render(w, r, t, statusFor(err), "")
		return
	}
	p.back(w, r, t)
}

func (p *page[T]) edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := p.find(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		p.fail(w, r, err)
		return
	}
	t := p.table(r)
	t.OnUpdate = func(ctx context.Context, rec T) error {
		_, err := p.records.Update(ctx, rec)
		return err
	}
	d := table.DraftFromForm(t.FormFields(), r.PostForm)
	if err := t.SubmitEdit(r.Context(), rec, d); err != nil {
		p.render(w, r, t, statusFor(err), "")
		return
	}
	p.back(w, r, t)
}

func (p *page[T]) remove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := p.find(r.Context(), id)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	t := p.table(r)
	t.OnDelete = func(ctx context.Context, _ T) error {
		return p.records.Delete(ctx, id)
	}
	if err := t.Delete(r.Context(), rec); err != nil {
		p.render(w, r, t, statusFor(err), "")
		return
	}
	p.back(w, r, t)
}

func (p *page[T]) export(w http.ResponseWriter, r *http.Request) {
	_ = p.records.Refresh(r.Context())
	items, _, _, err := p.items(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeWorkbook(w, p.name, p.table(r), items)
}

// fail re-renders the list with err shown above the table.
func (p *page[T]) fail(w http.ResponseWriter, r *http.Request, err error) {
	t := p.table(r)
	t.State.Err = err.Error()
	p.render(w, r, t, statusFor(err), "")
}

// back redirects to the list, keeping the search and page.
func (p *page[T]) back(w http.ResponseWriter, r *http.Request, t *table.Table[T]) {
	_, carry := p.scoped(r)
	http.Redirect(w, r, p.path()+listQuery(carry, t.State), http.StatusSeeOther)
}

// redirect sends a row action back to the list it was posted from.
func (p *page[T]) redirect(w http.ResponseWriter, r *http.Request) {
	_, carry := p.scoped(r)
	st := table.State{Search: r.FormValue("q"), Page: pageNumber(r)}
	http.Redirect(w, r, p.path()+listQuery(carry, st), http.StatusSeeOther)
}

// render draws the list page. Backend figures are only fetched for plain page
// loads, not for re-renders after a failed mutation.
func (p *page[T]) render(w http.ResponseWriter, r *http.Request, t *table.Table[T], status int, warning string) {
	items, carry, subtitle, err := p.items(r)
	if err != nil && warning == "" {
		warning = fmt.Sprintf("Could not load %s: %v", p.name, err)
	}

	var stats []views.Stat
	if p.stats != nil {
		stats = p.stats(items)
	}
	var panels []views.Panel
	if p.panels != nil && r.Method == http.MethodGet {
		panels = p.panels(r.Context(), items)
	}
	p.h.render(w, "entity", status, views.EntityPage{
		Layout: views.Layout{
			Title:   p.title,
			Active:  p.name,
			Warning: warning,
			Poll:    t.State.Loading,
		},
		Subtitle: subtitle,
		Stats:    stats,
		Panels:   panels,
		TablePage: views.TablePage{
			Path:      p.path(),
			Scope:     carry,
			Table:     t.View(items),
			CanAdd:    p.add != nil,
			CanEdit:   p.canEdit,
			CanDelete: p.canDelete,
			Actions:   p.actions,
		},
	})
}

// scoped reports which related entity r narrows the page to, if any, and the
// query parameters that keep that scope on links.
func (p *page[T]) scoped(r *http.Request) (kind string, carry url.Values) {
	if p.scope == nil {
		return "", nil
	}
	for _, k := range p.scope.kinds {
		if id := r.FormValue(k); id != "" {
			return k, url.Values{k: {id}}
		}
	}
	return "", nil
}

// items returns the records the page shows: the cache, or the scoped listing.
func (p *page[T]) items(r *http.Request) ([]T, url.Values, string, error) {
	kind, carry := p.scoped(r)
	if kind == "" {
		return p.records.Items(), nil, p.subtitle, nil
	}
	id := carry.Get(kind)
	subtitle := fmt.Sprintf("%s for %s %s", p.title, kind, id)
	list, err := p.scope.load(r.Context(), kind, id)
	if err != nil {
		return []T{}, carry, subtitle, err
	}
	return list, carry, subtitle, nil
}

// find resolves id from the cache, then the single-record fetch, then a refresh.
func (p *page[T]) find(ctx context.Context, id string) (T, error) {
	if rec, ok := p.records.Get(id); ok {
		return rec, nil
	}
	if p.fetch != nil {
		return p.fetch(ctx, id)
	}
	return lookup(ctx, p.records, id)
}

// lookup finds id in the cache, refreshing once when it is missing.
func lookup[T any](ctx context.Context, recs records[T], id string) (T, error) {
	if rec, ok := recs.Get(id); ok {
		return rec, nil
	}
	if err := recs.Refresh(ctx); err != nil {
		var zero T
		return zero, err
	}
	if rec, ok := recs.Get(id); ok {
		return rec, nil
	}
	var zero T
	return zero, service.ErrNotFound
}

func writeWorkbook[T any](w http.ResponseWriter, name string, t *table.Table[T], items []T) {
	f, err := t.Export(items)
	if err != nil {
		log.Printf("[admin-svc] export %s: %v", name, err)
		http.Error(w, "Failed to export", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Printf("[admin-svc] write %s export: %v", name, err)
	}
}

func pageNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.FormValue("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func listQuery(scope url.Values, st table.State) string {
	q := url.Values{}
	for k, v := range scope {
		q[k] = v
	}
	if st.Search != "" {
		q.Set("q", st.Search)
	}
	if st.Page > 1 {
		q.Set("page", strconv.Itoa(st.Page))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
