// Package views renders the admin pages from embedded html/template files.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"

	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/table"
)

//go:embed templates/*.html static
var files embed.FS

// Static serves the stylesheet under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

var pages = []string{"login", "dashboard", "entity", "restaurant"}

// Layout is shared by every page.
type Layout struct {
	Title   string
	Active  string
	Toast   string
	Warning string
	// Poll reloads the page while a backend call is still running.
	Poll bool
}

type Stat struct {
	Label string
	Value string
	Hint  string
}

// Action is a per-row POST button, sent to {Path}/{row id}/{Suffix}.
type Action struct {
	Label  string
	Suffix string
	Field  string
	Value  string
}

// Panel is a titled list of figures shown beside a table.
type Panel struct {
	Title string
	Rows  []Stat
}

// TablePage is a record table with its surrounding controls. Scope holds query
// parameters that narrow the list and are kept on every link and form.
type TablePage struct {
	Path      string
	Scope     url.Values
	Table     table.View
	CanAdd    bool
	CanEdit   bool
	CanDelete bool
	Actions   []Action
}

type EntityPage struct {
	Layout
	Subtitle string
	Stats    []Stat
	Panels   []Panel
	TablePage
}

type DashboardPage struct {
	Layout
	Stats    []Stat
	Activity []domain.ActivityEvent
}

type LoginPage struct {
	Layout
}

type RestaurantPage struct {
	Layout
	Restaurant domain.Restaurant
	OpenNow    bool
	Today      string
	Hours      string
	Details    []table.Input
	Error      string
	Menu       TablePage
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
		"pageURL": func(scope url.Values, search string, page int) string {
			q := withScope(scope)
			if search != "" {
				q.Set("q", search)
			}
			q.Set("page", strconv.Itoa(page))
			return "?" + q.Encode()
		},
		"modalURL": func(scope url.Values, search string, page int, modal, id string) string {
			q := withScope(scope)
			q.Set("modal", modal)
			q.Set("page", strconv.Itoa(page))
			if search != "" {
				q.Set("q", search)
			}
			if id != "" {
				q.Set("edit", id)
			}
			return "?" + q.Encode()
		},
		"date": func(ts domain.Timestamp) string {
			if ts.IsZero() {
				return ""
			}
			return ts.Format("Jan 2, 2006 15:04")
		},
		"badge": table.StatusBadge,
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files,
			"templates/layout.html", "templates/table.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func withScope(scope url.Values) url.Values {
	q := url.Values{}
	for k, v := range scope {
		q[k] = append([]string(nil), v...)
	}
	return q
}

func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}
