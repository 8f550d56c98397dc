package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nvalverde/tourvia-be/internal/metrics"
	"github.com/nvalverde/tourvia-be/internal/services"
	"github.com/rs/zerolog/log"
)

// CatalogHandler handles HTTP requests for catalog browsing and
// restaurant availability.
type CatalogHandler struct {
	catalog      services.CatalogServiceProvider
	availability services.AvailabilityServiceProvider
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog services.CatalogServiceProvider, availability services.AvailabilityServiceProvider) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, availability: availability}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *CatalogHandler) writeListing(w http.ResponseWriter, v any, err error, kind string) {
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("Failed to list catalog entries")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, v)
}

func (h *CatalogHandler) writeDetail(w http.ResponseWriter, v any, err error, kind string) {
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("kind", kind).Msg("Failed to get catalog entry")
		}
		http.Error(w, msg, status)
		return
	}
	writeJSON(w, v)
}

// ListAttractions handles GET /attractions.
func (h *CatalogHandler) ListAttractions(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.GetAttractions(r.Context(), r.URL.Query().Get("city"))
	h.writeListing(w, items, err, "attraction")
}

// GetAttraction handles GET /attractions/{id}.
func (h *CatalogHandler) GetAttraction(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetAttractionByID(r.Context(), chi.URLParam(r, "id"))
	h.writeDetail(w, item, err, "attraction")
}

// ListAccommodations handles GET /accommodations.
func (h *CatalogHandler) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.GetAccommodations(r.Context(), r.URL.Query().Get("city"))
	h.writeListing(w, items, err, "accommodation")
}

// GetAccommodation handles GET /accommodations/{id}.
func (h *CatalogHandler) GetAccommodation(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetAccommodationByID(r.Context(), chi.URLParam(r, "id"))
	h.writeDetail(w, item, err, "accommodation")
}

// ListRestaurants handles GET /restaurants.
func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.GetRestaurants(r.Context(), r.URL.Query().Get("city"))
	h.writeListing(w, items, err, "restaurant")
}

// GetRestaurant handles GET /restaurants/{id}.
func (h *CatalogHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetRestaurantByID(r.Context(), chi.URLParam(r, "id"))
	h.writeDetail(w, item, err, "restaurant")
}

// ListGuides handles GET /guides.
func (h *CatalogHandler) ListGuides(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.GetGuides(r.Context(), r.URL.Query().Get("city"))
	h.writeListing(w, items, err, "guide")
}

// GetGuide handles GET /guides/{id}.
func (h *CatalogHandler) GetGuide(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetGuideByID(r.Context(), chi.URLParam(r, "id"))
	h.writeDetail(w, item, err, "guide")
}

// GetAvailability handles GET /restaurants/{id}/availability?start=...&end=...
// with RFC 3339 timestamps. Unparseable or inverted windows are rejected
// before any store query runs.
func (h *CatalogHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		metrics.AvailabilityComputationsTotal.WithLabelValues("invalid_window").Inc()
		http.Error(w, "start must be an RFC 3339 timestamp", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		metrics.AvailabilityComputationsTotal.WithLabelValues("invalid_window").Inc()
		http.Error(w, "end must be an RFC 3339 timestamp", http.StatusBadRequest)
		return
	}

	result, err := h.availability.ComputeAvailability(r.Context(), resourceID, start, end)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			metrics.AvailabilityComputationsTotal.WithLabelValues("invalid_window").Inc()
		} else {
			metrics.AvailabilityComputationsTotal.WithLabelValues("error").Inc()
			log.Error().Err(err).Str("resource_id", resourceID).Msg("Failed to compute availability")
		}
		status, msg := statusForError(err)
		http.Error(w, msg, status)
		return
	}

	metrics.AvailabilityComputationsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, result)
}
