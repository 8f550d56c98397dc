package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/nvalverde/tourvia-be/internal/models"
)

// CatalogServiceProvider defines the interface for catalog browsing.
type CatalogServiceProvider interface {
	GetAttractions(ctx context.Context, city string) ([]models.Attraction, error)
	GetAttractionByID(ctx context.Context, id string) (models.Attraction, error)
	GetAccommodations(ctx context.Context, city string) ([]models.Accommodation, error)
	GetAccommodationByID(ctx context.Context, id string) (models.Accommodation, error)
	GetRestaurants(ctx context.Context, city string) ([]models.Restaurant, error)
	GetRestaurantByID(ctx context.Context, id string) (models.Restaurant, error)
	GetGuides(ctx context.Context, city string) ([]models.Guide, error)
	GetGuideByID(ctx context.Context, id string) (models.Guide, error)
}

// CatalogService serves the read-only tourism catalog: attractions,
// accommodations, restaurants and guides.
type CatalogService struct {
	db *sql.DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *sql.DB) *CatalogService {
	return &CatalogService{db: db}
}

// cityFilter appends an optional city constraint to a base query.
func cityFilter(base, city string) (string, []any) {
	if city == "" {
		return base + " ORDER BY rating DESC", nil
	}
	return base + " WHERE city = ? ORDER BY rating DESC", []any{city}
}

// GetAttractions lists attractions, optionally filtered by city.
func (s *CatalogService) GetAttractions(ctx context.Context, city string) ([]models.Attraction, error) {
	query, args := cityFilter("SELECT id, name, city, description, category, price, rating, image_url, created_at FROM attractions", city)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attractions []models.Attraction
	for rows.Next() {
		var a models.Attraction
		var imageURL sql.NullString
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.City, &a.Description, &a.Category, &a.Price, &a.Rating, &imageURL, &createdAt); err != nil {
			return nil, err
		}
		a.ImageURL = imageURL.String
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		attractions = append(attractions, a)
	}
	return attractions, rows.Err()
}

// GetAttractionByID retrieves a single attraction.
func (s *CatalogService) GetAttractionByID(ctx context.Context, id string) (models.Attraction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, city, description, category, price, rating, image_url, created_at FROM attractions WHERE id = ?", id)

	var a models.Attraction
	var imageURL sql.NullString
	var createdAt string
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.Description, &a.Category, &a.Price, &a.Rating, &imageURL, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.Attraction{}, ErrNotFound
		}
		return models.Attraction{}, err
	}
	a.ImageURL = imageURL.String
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return a, nil
}

// GetAccommodations lists accommodations, optionally filtered by city.
func (s *CatalogService) GetAccommodations(ctx context.Context, city string) ([]models.Accommodation, error) {
	query, args := cityFilter("SELECT id, name, city, description, price_per_night, rating, image_url, created_at FROM accommodations", city)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accommodations []models.Accommodation
	for rows.Next() {
		var a models.Accommodation
		var imageURL sql.NullString
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.City, &a.Description, &a.PricePerNight, &a.Rating, &imageURL, &createdAt); err != nil {
			return nil, err
		}
		a.ImageURL = imageURL.String
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		accommodations = append(accommodations, a)
	}
	return accommodations, rows.Err()
}

// GetAccommodationByID retrieves a single accommodation.
func (s *CatalogService) GetAccommodationByID(ctx context.Context, id string) (models.Accommodation, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, city, description, price_per_night, rating, image_url, created_at FROM accommodations WHERE id = ?", id)

	var a models.Accommodation
	var imageURL sql.NullString
	var createdAt string
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.Description, &a.PricePerNight, &a.Rating, &imageURL, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.Accommodation{}, ErrNotFound
		}
		return models.Accommodation{}, err
	}
	a.ImageURL = imageURL.String
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return a, nil
}

// GetRestaurants lists restaurants, optionally filtered by city.
func (s *CatalogService) GetRestaurants(ctx context.Context, city string) ([]models.Restaurant, error) {
	query, args := cityFilter("SELECT id, name, city, description, cuisine, price, rating, image_url, created_at FROM restaurants", city)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var r models.Restaurant
		var imageURL sql.NullString
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.City, &r.Description, &r.Cuisine, &r.Price, &r.Rating, &imageURL, &createdAt); err != nil {
			return nil, err
		}
		r.ImageURL = imageURL.String
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

// GetRestaurantByID retrieves a single restaurant.
func (s *CatalogService) GetRestaurantByID(ctx context.Context, id string) (models.Restaurant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, city, description, cuisine, price, rating, image_url, created_at FROM restaurants WHERE id = ?", id)

	var r models.Restaurant
	var imageURL sql.NullString
	var createdAt string
	if err := row.Scan(&r.ID, &r.Name, &r.City, &r.Description, &r.Cuisine, &r.Price, &r.Rating, &imageURL, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.Restaurant{}, ErrNotFound
		}
		return models.Restaurant{}, err
	}
	r.ImageURL = imageURL.String
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return r, nil
}

// GetGuides lists guides, optionally filtered by city.
func (s *CatalogService) GetGuides(ctx context.Context, city string) ([]models.Guide, error) {
	query, args := cityFilter("SELECT id, name, city, bio, languages, price_per_day, rating, image_url, created_at FROM guides", city)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []models.Guide
	for rows.Next() {
		var g models.Guide
		var imageURL sql.NullString
		var createdAt string
		if err := rows.Scan(&g.ID, &g.Name, &g.City, &g.Bio, &g.Languages, &g.PricePerDay, &g.Rating, &imageURL, &createdAt); err != nil {
			return nil, err
		}
		g.ImageURL = imageURL.String
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		guides = append(guides, g)
	}
	return guides, rows.Err()
}

// GetGuideByID retrieves a single guide.
func (s *CatalogService) GetGuideByID(ctx context.Context, id string) (models.Guide, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, city, bio, languages, price_per_day, rating, image_url, created_at FROM guides WHERE id = ?", id)

	var g models.Guide
	var imageURL sql.NullString
	var createdAt string
	if err := row.Scan(&g.ID, &g.Name, &g.City, &g.Bio, &g.Languages, &g.PricePerDay, &g.Rating, &imageURL, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.Guide{}, ErrNotFound
		}
		return models.Guide{}, err
	}
	g.ImageURL = imageURL.String
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return g, nil
}
