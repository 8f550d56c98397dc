package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRestaurants(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO restaurants (id, name, city, description, cuisine, price, rating, image_url, created_at)
		VALUES (?, 'La Terraza', 'Sevilla', 'Rooftop tapas', 'spanish', 25.0, 4.6, NULL, ?)`,
		id, time.Now().UTC().Format(time.RFC3339))
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO restaurants (id, name, city, description, cuisine, price, rating, image_url, created_at)
		VALUES (?, 'Nordlys', 'Oslo', 'Seafood', 'norwegian', 48.0, 4.8, NULL, ?)`,
		uuid.New().String(), time.Now().UTC().Format(time.RFC3339))
	require.NoError(t, err)

	all, err := svc.GetRestaurants(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sevilla, err := svc.GetRestaurants(ctx, "Sevilla")
	require.NoError(t, err)
	require.Len(t, sevilla, 1)
	assert.Equal(t, "La Terraza", sevilla[0].Name)

	got, err := svc.GetRestaurantByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "spanish", got.Cuisine)

	_, err = svc.GetRestaurantByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogGuides(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO guides (id, name, city, bio, languages, price_per_day, rating, image_url, created_at)
		VALUES (?, 'Marta', 'Sevilla', 'Historian', 'es,en', 120.0, 4.9, NULL, ?)`,
		id, time.Now().UTC().Format(time.RFC3339))
	require.NoError(t, err)

	guides, err := svc.GetGuides(ctx, "Sevilla")
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "es,en", guides[0].Languages)

	_, err = svc.GetGuideByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
