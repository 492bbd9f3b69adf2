// Package table is the generic record table shared by every admin page: search,
// pagination, add/edit dialogs driven by field descriptors, and row actions.
//
// The table never talks to the backend itself. Mutations go through the OnAdd,
// OnUpdate and OnDelete callbacks supplied by the owning page controller.
package table

import (
	"context"
	"errors"
	"html/template"
	"strings"
)

// DefaultPageSize is used when a table does not set PageSize.
const DefaultPageSize = 25

var (
	ErrBusy      = errors.New("table is loading")
	ErrNoHandler = errors.New("no handler for this action")
)

// Modal is the dialog currently open over the table.
type Modal string

const (
	ModalNone Modal = ""
	ModalAdd  Modal = "add"
	ModalEdit Modal = "edit"
)

// State is the per-request component state of a table.
type State struct {
	Search  string
	Page    int
	Loading bool
	Modal   Modal
	EditID  string
	Draft   Draft
	Err     string
}

// Table renders and mutates a collection of T.
type Table[T any] struct {
	Name     string
	Columns  []Column[T]
	Fields   []Field
	PageSize int

	ID      func(T) string
	RowLink func(T) string

	OnAdd    func(ctx context.Context, d Draft) error
	OnUpdate func(ctx context.Context, rec T) error
	OnDelete func(ctx context.Context, rec T) error

	State State
}

func (t *Table[T]) pageSize() int {
	if t.PageSize <= 0 {
		return DefaultPageSize
	}
	return t.PageSize
}

// FormFields returns the dialog inputs, derived from the columns when none are set.
func (t *Table[T]) FormFields() []Field {
	if len(t.Fields) > 0 {
		return t.Fields
	}
	return FieldsFor(t.Columns)
}

// SetSearch changes the search term and returns to the first page.
func (t *Table[T]) SetSearch(term string) {
	t.State.Search = term
	t.State.Page = 1
}

func (t *Table[T]) GoTo(page int) {
	t.State.Page = page
}

// Filter keeps records where any column's value contains the search term,
// ignoring case. An empty term keeps everything.
func (t *Table[T]) Filter(records []T) []T {
	term := strings.ToLower(strings.TrimSpace(t.State.Search))
	if term == "" {
		return records
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		raw := encode(rec)
		for _, c := range t.Columns {
			if strings.Contains(strings.ToLower(Stringify(c.resolve(rec, raw))), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Visible returns the filtered records on the current page.
func (t *Table[T]) Visible(records []T) ([]T, Pagination) {
	filtered := t.Filter(records)
	p := Paginate(len(filtered), t.State.Page, t.pageSize())
	t.State.Page = p.Page
	return filtered[p.From:p.To], p
}

func (t *Table[T]) OpenAdd() {
	t.State.Modal = ModalAdd
	t.State.EditID = ""
	t.State.Draft = NewDraft()
	t.State.Err = ""
}

// OpenEdit seeds the draft from rec.
func (t *Table[T]) OpenEdit(rec T) {
	t.State.Modal = ModalEdit
	t.State.EditID = t.id(rec)
	t.State.Draft = SeedDraft(t.FormFields(), rec)
	t.State.Err = ""
}

func (t *Table[T]) Close() {
	t.State.Modal = ModalNone
	t.State.EditID = ""
	t.State.Draft = NewDraft()
	t.State.Err = ""
}

// SubmitAdd validates d and hands it to OnAdd. The dialog is cleared and closed
// only when OnAdd succeeds; otherwise it stays open with the draft and error.
func (t *Table[T]) SubmitAdd(ctx context.Context, d Draft) error {
	t.State.Modal = ModalAdd
	t.State.Draft = d
	if err := t.guard(t.OnAdd != nil); err != nil {
		return err
	}
	if err := Validate(t.FormFields(), d); err != nil {
		return t.fail(err)
	}
	if err := t.OnAdd(ctx, d); err != nil {
		return t.fail(err)
	}
	t.Close()
	return nil
}

// SubmitEdit merges d into rec and hands the edited record to OnUpdate.
func (t *Table[T]) SubmitEdit(ctx context.Context, rec T, d Draft) error {
	t.State.Modal = ModalEdit
	t.State.EditID = t.id(rec)
	t.State.Draft = d
	if err := t.guard(t.OnUpdate != nil); err != nil {
		return err
	}
	if err := Validate(t.FormFields(), d); err != nil {
		return t.fail(err)
	}
	edited, err := Merge(rec, d)
	if err != nil {
		return t.fail(err)
	}
	if err := t.OnUpdate(ctx, edited); err != nil {
		return t.fail(err)
	}
	t.Close()
	return nil
}

// Delete removes rec through OnDelete. There is no confirmation step.
func (t *Table[T]) Delete(ctx context.Context, rec T) error {
	if err := t.guard(t.OnDelete != nil); err != nil {
		return err
	}
	if err := t.OnDelete(ctx, rec); err != nil {
		return t.fail(err)
	}
	return nil
}

func (t *Table[T]) guard(hasHandler bool) error {
	if t.State.Loading {
		return t.fail(ErrBusy)
	}
	if !hasHandler {
		return t.fail(ErrNoHandler)
	}
	return nil
}

func (t *Table[T]) fail(err error) error {
	t.State.Err = err.Error()
	return err
}

func (t *Table[T]) id(rec T) string {
	if t.ID == nil {
		return ""
	}
	return t.ID(rec)
}

// Find returns the record whose id matches.
func (t *Table[T]) Find(records []T, id string) (T, bool) {
	for _, rec := range records {
		if t.id(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// View builds the template model for records under the current state.
func (t *Table[T]) View(records []T) View {
	v := View{
		Name:    t.Name,
		Search:  t.State.Search,
		Loading: t.State.Loading,
		Modal:   t.State.Modal,
		EditID:  t.State.EditID,
		Error:   t.State.Err,
		Total:   len(records),
	}
	for _, c := range t.Columns {
		v.Headers = append(v.Headers, c.Label)
	}
	v.Form = Inputs(t.FormFields(), t.State.Draft)

	visible, p := t.Visible(records)
	v.Pagination = p
	v.Filtered = p.Total

	if t.State.Loading {
		return v
	}
	if len(visible) == 0 {
		v.Empty = "No data"
		if len(records) > 0 {
			v.Empty = "No results found"
		}
		return v
	}

	for _, rec := range visible {
		raw := encode(rec)
		row := Row{ID: t.id(rec)}
		if t.RowLink != nil {
			row.Link = t.RowLink(rec)
		}
		for _, c := range t.Columns {
			row.Cells = append(row.Cells, c.cell(c.resolve(rec, raw)))
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// View is the non-generic model rendered by the table template.
type View struct {
	Name       string
	Headers    []string
	Rows       []Row
	Loading    bool
	Empty      string
	Search     string
	Pagination Pagination
	Modal      Modal
	EditID     string
	Form       []Input
	Error      string
	Total      int
	Filtered   int
}

// Row is one rendered record.
type Row struct {
	ID    string
	Link  string
	Cells []template.HTML
}

// Input is a form field paired with its current draft value.
type Input struct {
	Field
	Value   string
	Checked bool
}

// Inputs pairs fields with their current draft values.
func Inputs(fields []Field, d Draft) []Input {
	inputs := make([]Input, 0, len(fields))
	for _, f := range fields {
		in := Input{Field: f}
		if v, ok := d.Get(f.Key); ok {
			if b, isBool := v.(bool); isBool {
				in.Checked = b
			} else {
				in.Value = Stringify(v)
			}
		}
		inputs = append(inputs, in)
	}
	return inputs
}
