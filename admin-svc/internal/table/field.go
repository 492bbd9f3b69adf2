package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/iancoleman/strcase"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Kind is the input control used for a form field.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindURL      Kind = "url"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
	KindFile     Kind = "file"
)

var (
	ErrRequired      = errors.New("required")
	ErrInvalidNumber = errors.New("not a number")
	ErrInvalidURL    = errors.New("not a valid URL")
	ErrInvalidOption = errors.New("not an allowed option")
)

// Field describes one input of the add/edit dialog.
type Field struct {
	// Key is a dotted path into the record, e.g. "location.latitude".
	Key      string
	Label    string
	Kind     Kind
	Options  []string
	Required bool
}

// FieldsFor derives one input per column when a table has no explicit fields.
func FieldsFor[T any](columns []Column[T]) []Field {
	fields := make([]Field, 0, len(columns))
	for _, c := range columns {
		key := c.Field
		if key == "" {
			key = strcase.ToSnake(c.Label)
		}
		kind := KindText
		if c.Number {
			kind = KindNumber
		}
		fields = append(fields, Field{Key: key, Label: c.Label, Kind: kind})
	}
	return fields
}

// Draft is the in-progress record held by an open dialog, keyed by field path.
type Draft struct {
	keys   []string
	values map[string]any
}

func NewDraft() Draft {
	return Draft{values: map[string]any{}}
}

func (d *Draft) Set(key string, value any) {
	if d.values == nil {
		d.values = map[string]any{}
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d Draft) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d Draft) Keys() []string {
	return slices.Clone(d.keys)
}

func (d Draft) Len() int {
	return len(d.keys)
}

// JSON builds a nested document from the draft's dotted keys.
func (d Draft) JSON() ([]byte, error) {
	return d.applyTo([]byte(`{}`))
}

func (d Draft) applyTo(doc []byte) ([]byte, error) {
	var err error
	for _, key := range d.keys {
		doc, err = sjson.SetBytes(doc, key, d.values[key])
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}
	return doc, nil
}

// Decode unmarshals the draft into a fresh value of T.
func Decode[T any](d Draft) (T, error) {
	var out T
	doc, err := d.JSON()
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return out, fmt.Errorf("decode draft: %w", err)
	}
	return out, nil
}

// Merge overlays the draft onto rec, leaving fields the draft does not name untouched.
func Merge[T any](rec T, d Draft) (T, error) {
	var out T
	doc, err := d.applyTo(encode(rec))
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return out, fmt.Errorf("merge draft: %w", err)
	}
	return out, nil
}

// DraftFromForm collects submitted form values for fields.
// Unchecked checkboxes are recorded as false; blank numbers are left out.
func DraftFromForm(fields []Field, form url.Values) Draft {
	d := NewDraft()
	for _, f := range fields {
		raw := strings.TrimSpace(form.Get(f.Key))
		switch f.Kind {
		case KindCheckbox:
			d.Set(f.Key, raw == "on" || raw == "true" || raw == "1")
		case KindNumber:
			if raw == "" {
				continue
			}
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				d.Set(f.Key, n)
			} else {
				d.Set(f.Key, raw)
			}
		case KindFile:
			if raw != "" {
				d.Set(f.Key, raw)
			}
		default:
			if form.Has(f.Key) {
				d.Set(f.Key, raw)
			}
		}
	}
	return d
}

// SeedDraft copies the current values of fields out of rec.
func SeedDraft[T any](fields []Field, rec T) Draft {
	raw := encode(rec)
	d := NewDraft()
	for _, f := range fields {
		res := gjson.GetBytes(raw, f.Key)
		if !res.Exists() {
			continue
		}
		switch f.Kind {
		case KindCheckbox:
			d.Set(f.Key, res.Bool())
		case KindNumber:
			d.Set(f.Key, res.Float())
		default:
			d.Set(f.Key, res.String())
		}
	}
	return d
}

// Validate checks required fields and the syntax of number, url and select inputs.
func Validate(fields []Field, d Draft) error {
	var errs []error
	for _, f := range fields {
		if f.Kind == KindCheckbox {
			continue
		}
		v, ok := d.Get(f.Key)
		text := Stringify(v)
		if !ok || strings.TrimSpace(text) == "" {
			if f.Required {
				errs = append(errs, fmt.Errorf("%s: %w", f.Label, ErrRequired))
			}
			continue
		}

		switch f.Kind {
		case KindNumber:
			if _, isNum := v.(float64); !isNum && !govalidator.IsFloat(text) {
				errs = append(errs, fmt.Errorf("%s: %w", f.Label, ErrInvalidNumber))
			}
		case KindURL:
			if !govalidator.IsURL(text) {
				errs = append(errs, fmt.Errorf("%s: %w", f.Label, ErrInvalidURL))
			}
		case KindSelect:
			if len(f.Options) > 0 && !slices.Contains(f.Options, text) {
				errs = append(errs, fmt.Errorf("%s: %w", f.Label, ErrInvalidOption))
			}
		}
	}
	return errors.Join(errs...)
}
