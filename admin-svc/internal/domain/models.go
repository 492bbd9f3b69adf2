package domain

// City statuses.
const (
	CityActive   = "Active"
	CityPending  = "Pending"
	CityScraping = "Scraping"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type City struct {
	ID               string    `json:"id,omitempty"`
	Name             string    `json:"name"`
	State            string    `json:"state"`
	StateCode        string    `json:"state_code"`
	Location         Location  `json:"location"`
	Restaurants      []DocRef  `json:"restaurants"`
	Status           string    `json:"status,omitempty"`
	TotalRestaurants int       `json:"totalRestaurants"`
	LastScraped      Timestamp `json:"lastScraped"`
}

type Restaurant struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name"`
	Address       Address   `json:"address"`
	AddressFull   string    `json:"addressFull,omitempty"`
	Phone         string    `json:"phone"`
	Website       string    `json:"website"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	PriceLevel    int       `json:"price_level"`
	IsVerified    bool      `json:"is_verified"`
	IsSponsored   bool      `json:"is_sponsored"`
	IsClosed      bool      `json:"isClosed"`
	BusinessHours []string  `json:"businessHours"`
	Categories    []string  `json:"categories"`
	Keywords      []string  `json:"searchKeywords,omitempty"`
	Location      Location  `json:"location"`
	State         string    `json:"state,omitempty"`
	Zip           string    `json:"zip,omitempty"`
	Status        string    `json:"status,omitempty"`
	YelpID        string    `json:"yelpId,omitempty"`
	CreatedAt     Timestamp `json:"createdAt"`
	UpdatedAt     Timestamp `json:"updatedAt"`
}

type Dish struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Section       string    `json:"section"`
	Restaurant    DocRef    `json:"restaurant"`
	ImageURL      string    `json:"image_url"`
	AverageRating float64   `json:"average_rating"`
	Rating        float64   `json:"rating,omitempty"`
	ReviewCount   int       `json:"review_count"`
	Keywords      []string  `json:"searchKeywords,omitempty"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

// Menu sections offered when adding a dish from a restaurant page.
var DishSections = []string{"Appetizer", "Main Course", "Dessert", "Beverage", "Side"}

type Author struct {
	Name       string `json:"name"`
	IsVerified bool   `json:"is_verified"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

type ReviewTarget struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Restaurant struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"restaurant"`
}

type Review struct {
	ID             string        `json:"id"`
	Rating         float64       `json:"rating"`
	Comment        string        `json:"comment"`
	Author         Author        `json:"author"`
	Source         string        `json:"source"`
	Type           string        `json:"type,omitempty"`
	RestaurantName string        `json:"restaurant_name,omitempty"`
	Dish           *ReviewTarget `json:"dish,omitempty"`
	Timestamp      Timestamp     `json:"timestamp"`
}

type User struct {
	UID             string    `json:"uid"`
	DisplayName     string    `json:"display_name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phone_number"`
	PhotoURL        string    `json:"photo_url"`
	LocationEnabled bool      `json:"location_enabled"`
	Status          string    `json:"status,omitempty"`
	CreatedTime     Timestamp `json:"created_time"`
}

// ActivityEvent records one admin mutation.
type ActivityEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp Timestamp `json:"timestamp"`
	UserID    string    `json:"userId,omitempty"`
}

// Score is the dish's rating, falling back to the aggregated average.
func (d Dish) Score() float64 {
	if d.Rating != 0 {
		return d.Rating
	}
	return d.AverageRating
}
