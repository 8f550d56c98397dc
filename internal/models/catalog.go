package models

import "time"

// Attraction is a sightseeing spot listed in the catalog.
type Attraction struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // e.g. "museum", "park", "landmark"
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Accommodation is a hotel, hostel or guesthouse listing.
type Accommodation struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Description   string    `json:"description"`
	PricePerNight float64   `json:"pricePerNight"`
	Rating        float64   `json:"rating"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Restaurant is a dining listing. Restaurant bookings are subject to
// the availability computation.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Description string    `json:"description"`
	Cuisine     string    `json:"cuisine"`
	Price       float64   `json:"price"` // average price per person
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Guide is a local tour guide listing.
type Guide struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Bio         string    `json:"bio"`
	Languages   string    `json:"languages"` // comma separated, e.g. "en,es"
	PricePerDay float64   `json:"pricePerDay"`
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
