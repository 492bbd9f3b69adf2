package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var null = []byte("null")

// Timestamp accepts RFC 3339 strings, {_seconds,_nanoseconds} objects and null.
// The zero value marshals back to null.
type Timestamp struct {
	time.Time
}

func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return null, nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch res.Type {
	case gjson.Null:
		ts.Time = time.Time{}
	case gjson.String:
		if res.Str == "" {
			ts.Time = time.Time{}
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, res.Str)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", res.Str, err)
		}
		ts.Time = t
	case gjson.Number:
		ts.Time = time.UnixMilli(res.Int()).UTC()
	case gjson.JSON:
		sec := res.Get("_seconds")
		if !sec.Exists() {
			sec = res.Get("seconds")
		}
		if !sec.Exists() {
			return fmt.Errorf("timestamp object without seconds: %s", data)
		}
		nanos := res.Get("_nanoseconds")
		if !nanos.Exists() {
			nanos = res.Get("nanoseconds")
		}
		ts.Time = time.Unix(sec.Int(), nanos.Int()).UTC()
	default:
		return fmt.Errorf("timestamp: unexpected %s", data)
	}
	return nil
}

// Address is either a single display line or a structured postal address.
type Address struct {
	Line   string `json:"-"`
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

func (a Address) structured() bool {
	return a.Street != "" || a.City != "" || a.State != "" || a.Zip != ""
}

func (a Address) String() string {
	if !a.structured() {
		return a.Line
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, strings.TrimSpace(a.State + " " + a.Zip)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (a Address) MarshalJSON() ([]byte, error) {
	if !a.structured() {
		return json.Marshal(a.Line)
	}
	type plain Address
	return json.Marshal(plain(a))
}

func (a *Address) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, null) {
		*a = Address{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		*a = Address{}
		return json.Unmarshal(data, &a.Line)
	}
	type plain Address
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	*a = Address(p)
	return nil
}

// DocRef is the id of a referenced document. The backend sends either the
// bare id or a serialized reference carrying id or _path.segments.
type DocRef string

func (r *DocRef) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch res.Type {
	case gjson.Null:
		*r = ""
	case gjson.String:
		*r = DocRef(res.Str)
	case gjson.JSON:
		if id := res.Get("id"); id.Exists() {
			*r = DocRef(id.String())
			return nil
		}
		segments := res.Get("_path.segments").Array()
		if len(segments) == 0 {
			return fmt.Errorf("document reference without id: %s", data)
		}
		*r = DocRef(segments[len(segments)-1].String())
	default:
		*r = DocRef(res.Raw)
	}
	return nil
}

// UnmarshalJSON also accepts the flat author_name / profile_photo_url form.
func (rv *Review) UnmarshalJSON(data []byte) error {
	type plain Review
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Author.Name == "" {
		p.Author.Name = gjson.GetBytes(data, "author_name").String()
	}
	if p.Author.PhotoURL == "" {
		p.Author.PhotoURL = gjson.GetBytes(data, "profile_photo_url").String()
	}
	if p.RestaurantName == "" && p.Dish != nil {
		p.RestaurantName = p.Dish.Restaurant.Name
	}
	*rv = Review(p)
	return nil
}
