package models

// Availability reports the remaining booking capacity for a resource
// within a requested time window.
type Availability struct {
	ResourceID     string `json:"resourceId"`
	Capacity       int    `json:"capacity"`
	ConfirmedCount int    `json:"confirmedCount"`
	PendingCount   int    `json:"pendingCount"`
	Available      int    `json:"available"`
}
