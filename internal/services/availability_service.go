package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/nvalverde/tourvia-be/internal/models"
	"golang.org/x/sync/errgroup"
)

// RestaurantCapacity is the seat capacity assumed for every restaurant.
// A fixed constant per resource type is a known simplification;
// per-resource capacity would live on the catalog rows instead.
const RestaurantCapacity = 40

// AvailabilityServiceProvider defines the interface for availability services.
type AvailabilityServiceProvider interface {
	ComputeAvailability(ctx context.Context, resourceID string, windowStart, windowEnd time.Time) (models.Availability, error)
}

// AvailabilityService computes remaining booking capacity for a resource
// within a time window.
type AvailabilityService struct {
	db *sql.DB
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(db *sql.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// ComputeAvailability counts confirmed and pending orders for the
// resource whose booking time falls within [windowStart, windowEnd]
// (inclusive on both ends) and subtracts the sum from the fixed
// capacity. The two counts are fetched concurrently; if either query
// fails the whole computation fails with no partial result. Overbooking
// is reported as zero available, never negative.
func (s *AvailabilityService) ComputeAvailability(ctx context.Context, resourceID string, windowStart, windowEnd time.Time) (models.Availability, error) {
	if windowStart.After(windowEnd) {
		return models.Availability{}, ErrInvalidWindow
	}

	capacity := RestaurantCapacity

	var confirmed, pending int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		confirmed, err = s.countOrders(gctx, resourceID, models.OrderStatusConfirmed, windowStart, windowEnd)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.countOrders(gctx, resourceID, models.OrderStatusPending, windowStart, windowEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Availability{}, err
	}

	available := capacity - confirmed - pending
	if available < 0 {
		available = 0
	}

	return models.Availability{
		ResourceID:     resourceID,
		Capacity:       capacity,
		ConfirmedCount: confirmed,
		PendingCount:   pending,
		Available:      available,
	}, nil
}

func (s *AvailabilityService) countOrders(ctx context.Context, resourceID, status string, windowStart, windowEnd time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM orders WHERE resource_id = ? AND status = ? AND booking_time BETWEEN ? AND ?",
		resourceID, status,
		windowStart.UTC().Format(time.RFC3339), windowEnd.UTC().Format(time.RFC3339),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
