package models

import "time"

// Order statuses. Only pending and confirmed orders count against
// booking capacity.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// Resource types an order can target.
const (
	ResourceAttraction    = "attraction"
	ResourceAccommodation = "accommodation"
	ResourceRestaurant    = "restaurant"
	ResourceGuide         = "guide"
)

// Order represents a booking placed by a user against a catalog resource.
type Order struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ResourceID   string    `json:"resourceId"`
	ResourceType string    `json:"resourceType"`
	BookingTime  time.Time `json:"bookingTime"`
	PartySize    int       `json:"partySize"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidResourceType reports whether t names a bookable resource type.
func ValidResourceType(t string) bool {
	switch t {
	case ResourceAttraction, ResourceAccommodation, ResourceRestaurant, ResourceGuide:
		return true
	}
	return false
}
