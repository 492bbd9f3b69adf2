package domain

type CityStats struct {
	Total            int
	Active           int
	TotalRestaurants int
}

type DishStats struct {
	Total         int
	AverageRating float64
	TotalReviews  int
	AveragePrice  float64
}

type RestaurantStats struct {
	Total         int
	AverageRating float64
	TotalReviews  int
	Verified      int
	OpenNow       int
}

type ReviewStats struct {
	Total         int
	AverageRating float64
	AppReviews    int
	Verified      int
	// ByRating counts reviews per whole star, 1 through 5.
	ByRating map[int]int
	BySource map[string]int
}

type UserStats struct {
	Total           int
	LocationEnabled int
	WithEmail       int
	WithPhone       int
}

// BackendStats is whatever the backend's stats endpoints return.
type BackendStats map[string]any

// Dashboard is the landing view after login.
type Dashboard struct {
	Cities      CityStats
	Restaurants RestaurantStats
	Dishes      DishStats
	Reviews     ReviewStats
	Users       UserStats
	Activity    []ActivityEvent
}
