package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the PostgreSQL catalog schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS regions (
		region_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS tours (
		tour_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		region_id TEXT NOT NULL REFERENCES regions(region_id),
		days INTEGER NOT NULL CHECK (days > 0),
		cost DOUBLE PRECISION NOT NULL CHECK (cost >= 0)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS attractions (
		attraction_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		cultural_value INTEGER NOT NULL CHECK (cultural_value >= 0)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS tour_attractions (
		tour_id TEXT NOT NULL REFERENCES tours(tour_id),
		attraction_id TEXT NOT NULL REFERENCES attractions(attraction_id),
		PRIMARY KEY (tour_id, attraction_id)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_tours_region
	ON tours(region_id);
	`,
	}

	return execInTx(db, "init postgres schema", statements)
}

// Populate the PostgreSQL database with catalog data from a JSON file.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
	seed, err := LoadSeed(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return SeedPostgres(db, seed)
}

// Replace the PostgreSQL catalog with a validated seed. Rows absent from
// the seed are removed.
func SeedPostgres(db *sql.DB, seed CatalogSeed) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}

	return writeSeed(db, seed, seedQueries{
		region: `
	INSERT INTO regions (region_id, name) VALUES ($1, $2)
	ON CONFLICT (region_id) DO UPDATE SET name = EXCLUDED.name;
	`,
		tour: `
	INSERT INTO tours (tour_id, name, region_id, days, cost) VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (tour_id) DO UPDATE
	SET name = EXCLUDED.name,
		region_id = EXCLUDED.region_id,
		days = EXCLUDED.days,
		cost = EXCLUDED.cost;
	`,
		attraction: `
	INSERT INTO attractions (attraction_id, name, cultural_value) VALUES ($1, $2, $3)
	ON CONFLICT (attraction_id) DO UPDATE
	SET name = EXCLUDED.name,
		cultural_value = EXCLUDED.cultural_value;
	`,
		tourAttraction: `
	INSERT INTO tour_attractions (tour_id, attraction_id) VALUES ($1, $2)
	ON CONFLICT (tour_id, attraction_id) DO NOTHING;
	`,
		deleteRegion:     `DELETE FROM regions WHERE region_id = $1;`,
		deleteTour:       `DELETE FROM tours WHERE tour_id = $1;`,
		deleteAttraction: `DELETE FROM attractions WHERE attraction_id = $1;`,
	})
}
