package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nvalverde/tourvia-be/internal/auth"
	"github.com/nvalverde/tourvia-be/internal/metrics"
	"github.com/nvalverde/tourvia-be/internal/services"
	"github.com/rs/zerolog/log"
)

// OrderHandler handles HTTP requests for booking orders. All routes are
// session-protected; the authenticated user comes from the request
// context.
type OrderHandler struct {
	service services.OrderServiceProvider
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service services.OrderServiceProvider) *OrderHandler {
	return &OrderHandler{service: service}
}

// CreateOrderPayload defines the structure for booking requests.
type CreateOrderPayload struct {
	ResourceID   string `json:"resourceId" validate:"required"`
	ResourceType string `json:"resourceType" validate:"required,oneof=attraction accommodation restaurant guide"`
	BookingTime  string `json:"bookingTime" validate:"required"`
	PartySize    int    `json:"partySize" validate:"required,gt=0"`
	Notes        string `json:"notes"`
}

// Create places a new booking for the authenticated user.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload CreateOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validatePayload(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bookingTime, err := time.Parse(time.RFC3339, payload.BookingTime)
	if err != nil {
		http.Error(w, "bookingTime must be an RFC 3339 timestamp", http.StatusBadRequest)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), user.ID, payload.ResourceID, payload.ResourceType, bookingTime, payload.PartySize, payload.Notes)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create order")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	metrics.OrdersCreatedTotal.WithLabelValues(order.ResourceType).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

// List returns the authenticated user's orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.service.GetOrdersForUser(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list orders")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, orders)
}

// Get returns a single order. Orders belonging to other users read as
// not found.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := h.service.GetOrderByID(r.Context(), chi.URLParam(r, "id"))
	if err == nil && order.UserID != user.ID {
		err = services.ErrNotFound
	}
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Failed to get order")
		}
		http.Error(w, msg, status)
		return
	}
	writeJSON(w, order)
}

// Cancel cancels one of the authenticated user's orders.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := h.service.CancelOrder(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to cancel order")
		}
		http.Error(w, msg, status)
		return
	}
	writeJSON(w, order)
}
