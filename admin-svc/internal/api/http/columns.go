package httpapi

import (
	"fmt"
	"html/template"
	"net/url"

	"toro-admin/admin-svc/internal/domain"
	"toro-admin/admin-svc/internal/table"
)

var restaurantStatuses = []string{"active", "inactive", "pending", "closed"}

func cityTable() *table.Table[domain.City] {
	return &table.Table[domain.City]{
		Name: "cities",
		Columns: []table.Column[domain.City]{
			{Label: "Name", Field: "name", Icon: "map-pin"},
			{Label: "State", Field: "state"},
			{Label: "State Code", Field: "state_code"},
			{Label: "Status", Field: "status", Status: true},
			{Label: "Restaurants", Value: func(c domain.City) any { return len(c.Restaurants) }, Number: true},
			{Label: "Last Scraped", Value: func(c domain.City) any { return c.LastScraped.Time }, Empty: "Never"},
		},
		Fields: []table.Field{
			{Key: "name", Label: "Name", Kind: table.KindText, Required: true},
			{Key: "state", Label: "State", Kind: table.KindText, Required: true},
			{Key: "state_code", Label: "State Code", Kind: table.KindText, Required: true},
			{Key: "status", Label: "Status", Kind: table.KindSelect,
				Options: []string{domain.CityActive, domain.CityPending, domain.CityScraping}},
		},
		ID: func(c domain.City) string { return c.ID },
	}
}

func dishColumns() []table.Column[domain.Dish] {
	return []table.Column[domain.Dish]{
		{Label: "Name", Field: "name", Icon: "utensils"},
		{Label: "Section", Field: "section"},
		{Label: "Price", Field: "price", Render: price},
		{Label: "Rating", Value: func(d domain.Dish) any { return d.Score() }, Number: true},
		{Label: "Reviews", Field: "review_count", Number: true},
	}
}

func dishFields() []table.Field {
	return []table.Field{
		{Key: "name", Label: "Name", Kind: table.KindText, Required: true},
		{Key: "description", Label: "Description", Kind: table.KindTextarea},
		{Key: "price", Label: "Price", Kind: table.KindNumber, Required: true},
		{Key: "section", Label: "Section", Kind: table.KindSelect, Options: domain.DishSections},
		{Key: "image_url", Label: "Image", Kind: table.KindFile},
	}
}

func dishTable() *table.Table[domain.Dish] {
	cols := append(dishColumns(),
		table.Column[domain.Dish]{Label: "Restaurant", Field: "restaurant"})
	fields := append(dishFields(),
		table.Field{Key: "restaurant", Label: "Restaurant ID", Kind: table.KindText, Required: true})
	return &table.Table[domain.Dish]{
		Name:    "dishes",
		Columns: cols,
		Fields:  fields,
		ID:      func(d domain.Dish) string { return d.ID },
		RowLink: func(d domain.Dish) string { return reviewsFor("dish", d.ID) },
	}
}

// menuTable lists one restaurant's dishes on its detail page.
func menuTable() *table.Table[domain.Dish] {
	return &table.Table[domain.Dish]{
		Name:    "menu",
		Columns: dishColumns(),
		Fields:  dishFields(),
		ID:      func(d domain.Dish) string { return d.ID },
	}
}

func restaurantTable() *table.Table[domain.Restaurant] {
	return &table.Table[domain.Restaurant]{
		Name: "restaurants",
		Columns: []table.Column[domain.Restaurant]{
			{Label: "Name", Field: "name", Icon: "store"},
			{Label: "Address", Value: restaurantAddress, Empty: "No address"},
			{Label: "Phone", Field: "phone", Icon: "phone", Empty: "No phone"},
			{Label: "Website", Field: "website", Empty: "No website"},
			{Label: "Rating", Field: "averageRating", Number: true},
			{Label: "Reviews", Field: "totalRatings", Number: true},
			{Label: "Verified", Value: func(r domain.Restaurant) any { return verified(r.IsVerified) }, Status: true},
			{Label: "Status", Field: "status", Status: true},
		},
		Fields: []table.Field{
			{Key: "name", Label: "Name", Kind: table.KindText, Required: true},
			{Key: "addressFull", Label: "Address", Kind: table.KindText},
			{Key: "phone", Label: "Phone", Kind: table.KindText},
			{Key: "website", Label: "Website", Kind: table.KindURL},
			{Key: "imageUrl", Label: "Image", Kind: table.KindFile},
			{Key: "price_level", Label: "Price Level", Kind: table.KindNumber},
			{Key: "status", Label: "Status", Kind: table.KindSelect, Options: restaurantStatuses},
			{Key: "is_sponsored", Label: "Sponsored", Kind: table.KindCheckbox},
		},
		ID:      func(r domain.Restaurant) string { return r.ID },
		RowLink: func(r domain.Restaurant) string { return "/admin/restaurants/" + r.ID },
	}
}

// restaurantDetailFields are edited on the detail page. Categories are typed
// comma separated.
var restaurantDetailFields = []table.Field{
	{Key: "name", Label: "Name", Kind: table.KindText, Required: true},
	{Key: "addressFull", Label: "Address", Kind: table.KindText},
	{Key: "phone", Label: "Phone", Kind: table.KindText},
	{Key: "website", Label: "Website", Kind: table.KindURL},
	{Key: "imageUrl", Label: "Image", Kind: table.KindFile},
	{Key: "categories", Label: "Categories", Kind: table.KindTextarea},
	{Key: "status", Label: "Status", Kind: table.KindSelect, Options: restaurantStatuses},
	{Key: "is_sponsored", Label: "Sponsored", Kind: table.KindCheckbox},
}

func reviewTable() *table.Table[domain.Review] {
	return &table.Table[domain.Review]{
		Name: "reviews",
		Columns: []table.Column[domain.Review]{
			{Label: "Author", Field: "author.name", Icon: "user", Empty: "Anonymous"},
			{Label: "Rating", Field: "rating", Number: true},
			{Label: "Comment", Field: "comment", Empty: "No comment"},
			{Label: "Restaurant", Field: "restaurant_name"},
			{Label: "Dish", Field: "dish.name"},
			{Label: "Source", Field: "source"},
			{Label: "Verified", Value: func(r domain.Review) any { return verified(r.Author.IsVerified) }, Status: true},
			{Label: "Date", Value: func(r domain.Review) any { return r.Timestamp.Time }},
		},
		ID: func(r domain.Review) string { return r.ID },
	}
}

func userTable() *table.Table[domain.User] {
	return &table.Table[domain.User]{
		Name: "users",
		Columns: []table.Column[domain.User]{
			{Label: "Name", Field: "display_name", Icon: "user", Empty: "Unnamed"},
			{Label: "Email", Field: "email", Empty: "No email"},
			{Label: "Phone", Field: "phone_number", Empty: "No phone"},
			{Label: "Location", Value: func(u domain.User) any {
				if u.LocationEnabled {
					return "Enabled"
				}
				return "Disabled"
			}, Status: true},
			{Label: "Status", Field: "status", Status: true},
			{Label: "Joined", Value: func(u domain.User) any { return u.CreatedTime.Time }},
		},
		ID:      func(u domain.User) string { return u.UID },
		RowLink: func(u domain.User) string { return reviewsFor("user", u.UID) },
	}
}

// reviewsFor links to the reviews page narrowed to one restaurant, dish or user.
func reviewsFor(kind, id string) string {
	return "/admin/reviews?" + url.Values{kind: {id}}.Encode()
}

func restaurantAddress(r domain.Restaurant) any {
	if s := r.Address.String(); s != "" {
		return s
	}
	return r.AddressFull
}

func verified(ok bool) string {
	if ok {
		return "Verified"
	}
	return "Unverified"
}

func price(v any) template.HTML {
	f, ok := v.(float64)
	if !ok {
		return template.HTML(`<span class="cell-empty">` + table.DefaultEmpty + `</span>`)
	}
	return template.HTML(template.HTMLEscapeString(fmt.Sprintf("$%.2f", f)))
}
