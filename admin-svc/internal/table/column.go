package table

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultEmpty is shown for cells whose value is missing.
const DefaultEmpty = "—"

var printer = message.NewPrinter(language.English)

// Accessor extracts a display value from a record.
type Accessor[T any] func(T) any

// Column describes how one field of T is shown in the table.
type Column[T any] struct {
	Label string
	// Field is a dotted path into the record's JSON form, e.g. "author.name".
	Field string
	// Value, when set, takes priority over Field.
	Value Accessor[T]
	// Render, when set, takes priority over every display hint below.
	Render func(value any) template.HTML
	Status bool
	Number bool
	Icon   string
	Empty  string
}

func (c Column[T]) resolve(rec T, raw []byte) any {
	if c.Value != nil {
		return c.Value(rec)
	}
	if c.Field == "" {
		return nil
	}
	res := gjson.GetBytes(raw, c.Field)
	if !res.Exists() {
		return nil
	}
	return res.Value()
}

func (c Column[T]) cell(value any) template.HTML {
	if c.Render != nil {
		return c.Render(value)
	}
	if c.Status {
		return StatusBadge(Stringify(value))
	}
	if c.Number {
		if f, ok := toFloat(value); ok {
			return template.HTML(template.HTMLEscapeString(FormatNumber(f)))
		}
	}

	text := template.HTMLEscapeString(Stringify(value))
	if text == "" {
		empty := c.Empty
		if empty == "" {
			empty = DefaultEmpty
		}
		text = `<span class="cell-empty">` + template.HTMLEscapeString(empty) + `</span>`
	}
	if c.Icon != "" {
		return template.HTML(fmt.Sprintf(`<span class="cell-icon"><i class="icon icon-%s"></i><span>%s</span></span>`,
			template.HTMLEscapeString(c.Icon), text))
	}
	return template.HTML(text)
}

// Resolve looks up a dotted path on the JSON form of record.
func Resolve(record any, path string) any {
	res := gjson.GetBytes(encode(record), path)
	if !res.Exists() {
		return nil
	}
	return res.Value()
}

// Stringify is the text a value is searched and exported as.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// FormatNumber groups thousands and keeps up to three fraction digits.
func FormatNumber(f float64) string {
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(3)))
}

// StatusClass maps a status value to its badge colour.
func StatusClass(status string) string {
	switch strings.ToLower(status) {
	case "active", "open", "enabled", "verified":
		return "badge-green"
	case "pending":
		return "badge-yellow"
	case "scraping":
		return "badge-blue"
	case "closed", "disabled":
		return "badge-red"
	default:
		return "badge-gray"
	}
}

// StatusBadge renders status as a colour-coded pill.
func StatusBadge(status string) template.HTML {
	return Badge(StatusClass(status), status)
}

// Badge renders text inside a pill with the given colour class.
func Badge(class, text string) template.HTML {
	return template.HTML(`<span class="badge ` + template.HTMLEscapeString(class) + `">` +
		template.HTMLEscapeString(text) + `</span>`)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func encode(record any) []byte {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	return raw
}
