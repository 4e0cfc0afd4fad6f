package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/obs"
)

// SQL-backed implementation of the CatalogRepository port.
// The read queries are portable, so the same adapter serves the SQLite
// (modernc) and PostgreSQL (pgx) stores; only schema and seeding differ.
type SQLCatalogRepository struct{ DB *sql.DB }

func NewSQLCatalogRepository(db *sql.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{DB: db}
}

// Return all regions ordered by id.
func (s *SQLCatalogRepository) ListRegions(ctx context.Context) (_ []*domain.Region, err error) {
	defer obs.Time(ctx, "catalog.repo.ListRegions")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT region_id, name
	FROM regions
	ORDER BY region_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list regions: query regions table: %w", err)
	}
	defer rows.Close()

	regions := make([]*domain.Region, 0, 16)
	for rows.Next() {
		var r domain.Region
		if err := rows.Scan(&r.RegionID, &r.Name); err != nil {
			return nil, fmt.Errorf("list regions: scan row: %w", err)
		}
		regions = append(regions, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list regions: row iteration: %w", err)
	}

	return regions, nil
}

// Return all tours ordered by id. This order is the catalog iteration order
// the package search depends on.
func (s *SQLCatalogRepository) ListTours(ctx context.Context) (_ []*domain.Tour, err error) {
	defer obs.Time(ctx, "catalog.repo.ListTours")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		tour_id,
		name,
		region_id,
		days,
		cost
	FROM tours
	ORDER BY tour_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list tours: query tours table: %w", err)
	}
	defer rows.Close()

	tours := make([]*domain.Tour, 0, 64)
	for rows.Next() {
		var (
			id, name, region string
			days             int
			cost             float64
		)
		if err := rows.Scan(&id, &name, &region, &days, &cost); err != nil {
			return nil, fmt.Errorf("list tours: scan row: %w", err)
		}
		tours = append(tours, domain.NewTour(id, name, region, days, cost))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tours: row iteration: %w", err)
	}

	return tours, nil
}

// Return all attractions ordered by id.
func (s *SQLCatalogRepository) ListAttractions(ctx context.Context) (_ []*domain.Attraction, err error) {
	defer obs.Time(ctx, "catalog.repo.ListAttractions")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT attraction_id, name, cultural_value
	FROM attractions
	ORDER BY attraction_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list attractions: query attractions table: %w", err)
	}
	defer rows.Close()

	attractions := make([]*domain.Attraction, 0, 64)
	for rows.Next() {
		var (
			id, name string
			value    int
		)
		if err := rows.Scan(&id, &name, &value); err != nil {
			return nil, fmt.Errorf("list attractions: scan row: %w", err)
		}
		attractions = append(attractions, domain.NewAttraction(id, name, value))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attractions: row iteration: %w", err)
	}

	return attractions, nil
}

// Return every tour -> attraction relation.
func (s *SQLCatalogRepository) ListTourAttractions(ctx context.Context) (_ []domain.TourAttraction, err error) {
	defer obs.Time(ctx, "catalog.repo.ListTourAttractions")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT tour_id, attraction_id
	FROM tour_attractions
	ORDER BY tour_id, attraction_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list tour attractions: query tour_attractions table: %w", err)
	}
	defer rows.Close()

	edges := make([]domain.TourAttraction, 0, 128)
	for rows.Next() {
		var e domain.TourAttraction
		if err := rows.Scan(&e.TourID, &e.AttractionID); err != nil {
			return nil, fmt.Errorf("list tour attractions: scan row: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tour attractions: row iteration: %w", err)
	}

	return edges, nil
}
