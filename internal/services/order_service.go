package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nvalverde/tourvia-be/internal/models"
)

// OrderServiceProvider defines the interface for order services.
type OrderServiceProvider interface {
	CreateOrder(ctx context.Context, userID, resourceID, resourceType string, bookingTime time.Time, partySize int, notes string) (models.Order, error)
	GetOrdersForUser(ctx context.Context, userID string) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id string) (models.Order, error)
	CancelOrder(ctx context.Context, id, userID string) (models.Order, error)
}

// OrderService provides business logic for booking orders.
type OrderService struct {
	db           *sql.DB
	eventService EventServiceProvider
}

// NewOrderService creates a new OrderService.
func NewOrderService(db *sql.DB, eventService EventServiceProvider) *OrderService {
	return &OrderService{db: db, eventService: eventService}
}

// CreateOrder places a new booking in pending status. Admission control
// against capacity is not enforced here; the availability endpoint
// reports remaining capacity and confirmation is a separate step.
func (s *OrderService) CreateOrder(ctx context.Context, userID, resourceID, resourceType string, bookingTime time.Time, partySize int, notes string) (models.Order, error) {
	if !models.ValidResourceType(resourceType) {
		return models.Order{}, fmt.Errorf("unknown resource type %q", resourceType)
	}

	order := models.Order{
		ID:           uuid.New().String(),
		UserID:       userID,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		BookingTime:  bookingTime.UTC(),
		PartySize:    partySize,
		Status:       models.OrderStatusPending,
		Notes:        notes,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, resource_id, resource_type, booking_time, party_size, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.ResourceID, order.ResourceType,
		order.BookingTime.Format(time.RFC3339), order.PartySize, order.Status, order.Notes,
		order.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: inserting order: %v", ErrPersistence, err)
	}

	s.eventService.CreateEvent(ctx, "order.create", "info",
		fmt.Sprintf("Order placed for %s %s.", order.ResourceType, order.ResourceID), &order.UserID)
	return order, nil
}

// GetOrdersForUser lists a user's orders, most recent first.
func (s *OrderService) GetOrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, resource_id, resource_type, booking_time, party_size, status, notes, created_at
		FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// GetOrderByID retrieves a single order.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (models.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, resource_id, resource_type, booking_time, party_size, status, notes, created_at
		FROM orders WHERE id = ?`, id)
	return scanOrder(row)
}

// CancelOrder sets an order to cancelled. Only the owning user may
// cancel; a cancelled order no longer counts against capacity.
func (s *OrderService) CancelOrder(ctx context.Context, id, userID string) (models.Order, error) {
	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if order.UserID != userID {
		return models.Order{}, ErrNotFound
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE id = ?", models.OrderStatusCancelled, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: cancelling order: %v", ErrPersistence, err)
	}

	s.eventService.CreateEvent(ctx, "order.cancel", "info",
		fmt.Sprintf("Order %s cancelled.", id), &userID)
	order.Status = models.OrderStatusCancelled
	return order, nil
}

// scanOrder scans a single row into an Order.
func scanOrder(scanner interface{ Scan(...any) error }) (models.Order, error) {
	var order models.Order
	var notes sql.NullString
	var bookingTime, createdAt string
	err := scanner.Scan(
		&order.ID, &order.UserID, &order.ResourceID, &order.ResourceType,
		&bookingTime, &order.PartySize, &order.Status, &notes, &createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	order.Notes = notes.String
	order.BookingTime, _ = time.Parse(time.RFC3339, bookingTime)
	order.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return order, nil
}
