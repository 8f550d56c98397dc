package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nvalverde/tourvia-be/internal/database"
	"github.com/nvalverde/tourvia-be/internal/models"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated throwaway SQLite database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// seedUser inserts a user row directly and returns it.
func seedUser(t *testing.T, db *sql.DB, email, passwordHash string) models.User {
	t.Helper()

	user := models.User{
		ID:        uuid.New().String(),
		Name:      "Test User",
		Email:     email,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO users (id, name, email, phone, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, "", passwordHash, user.CreatedAt.Format(time.RFC3339))
	require.NoError(t, err)
	return user
}

// seedOrder inserts an order row with the given status and booking time.
func seedOrder(t *testing.T, db *sql.DB, userID, resourceID, status string, bookingTime time.Time) {
	t.Helper()

	_, err := db.ExecContext(context.Background(), `
		INSERT INTO orders (id, user_id, resource_id, resource_type, booking_time, party_size, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, 2, ?, '', ?)`,
		uuid.New().String(), userID, resourceID, models.ResourceRestaurant,
		bookingTime.UTC().Format(time.RFC3339), status, time.Now().UTC().Format(time.RFC3339))
	require.NoError(t, err)
}
