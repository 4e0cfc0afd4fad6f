package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite catalog schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
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
		cost REAL NOT NULL CHECK (cost >= 0)
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

	return execInTx(db, "init schema", statements)
}

// Populate the SQLite database with catalog data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	seed, err := LoadSeed(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return Seed(db, seed)
}

// Replace the SQLite catalog with a validated seed. Rows absent from the
// seed are removed, so the stored catalog always matches the seed file.
func Seed(db *sql.DB, seed CatalogSeed) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}

	return writeSeed(db, seed, seedQueries{
		region: `INSERT INTO regions (region_id, name) VALUES (?, ?)
			ON CONFLICT (region_id) DO UPDATE SET name = excluded.name;`,
		tour: `INSERT INTO tours (tour_id, name, region_id, days, cost) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (tour_id) DO UPDATE SET name = excluded.name, region_id = excluded.region_id,
			days = excluded.days, cost = excluded.cost;`,
		attraction: `INSERT INTO attractions (attraction_id, name, cultural_value) VALUES (?, ?, ?)
			ON CONFLICT (attraction_id) DO UPDATE SET name = excluded.name, cultural_value = excluded.cultural_value;`,
		tourAttraction:   `INSERT OR IGNORE INTO tour_attractions (tour_id, attraction_id) VALUES (?, ?);`,
		deleteRegion:     `DELETE FROM regions WHERE region_id = ?;`,
		deleteTour:       `DELETE FROM tours WHERE tour_id = ?;`,
		deleteAttraction: `DELETE FROM attractions WHERE attraction_id = ?;`,
	})
}

func execInTx(db *sql.DB, op string, statements []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("%s: exec statement #%d: %w", op, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, err)
	}

	return nil
}

type seedQueries struct {
	region         string
	tour           string
	attraction     string
	tourAttraction string

	deleteRegion     string
	deleteTour       string
	deleteAttraction string
}

// Write every seed row in one transaction, parents before relations.
// Relations are rebuilt from scratch; entities missing from the seed are
// deleted once nothing references them.
func writeSeed(db *sql.DB, seed CatalogSeed, q seedQueries) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := func(query string, n int, args func(i int) []any, label func(i int) string) error {
		stmt, err := tx.Prepare(query)
		if err != nil {
			return fmt.Errorf("seed catalog: prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < n; i++ {
			if _, err := stmt.Exec(args(i)...); err != nil {
				return fmt.Errorf("seed catalog: insert %s: %w", label(i), err)
			}
		}
		return nil
	}

	if _, err := tx.Exec(`DELETE FROM tour_attractions;`); err != nil {
		return fmt.Errorf("seed catalog: clear relations: %w", err)
	}

	if err := insert(q.region, len(seed.Regions),
		func(i int) []any {
			r := seed.Regions[i]
			return []any{r.RegionID, r.Name}
		},
		func(i int) string { return "region_id=" + seed.Regions[i].RegionID },
	); err != nil {
		return err
	}

	if err := insert(q.tour, len(seed.Tours),
		func(i int) []any {
			t := seed.Tours[i]
			return []any{t.TourID, t.Name, t.RegionID, t.Days, t.Cost}
		},
		func(i int) string { return "tour_id=" + seed.Tours[i].TourID },
	); err != nil {
		return err
	}

	if err := insert(q.attraction, len(seed.Attractions),
		func(i int) []any {
			a := seed.Attractions[i]
			return []any{a.AttractionID, a.Name, a.CulturalValue}
		},
		func(i int) string { return "attraction_id=" + seed.Attractions[i].AttractionID },
	); err != nil {
		return err
	}

	if err := insert(q.tourAttraction, len(seed.TourAttractions),
		func(i int) []any {
			e := seed.TourAttractions[i]
			return []any{e.TourID, e.AttractionID}
		},
		func(i int) string {
			e := seed.TourAttractions[i]
			return fmt.Sprintf("relation (%s, %s)", e.TourID, e.AttractionID)
		},
	); err != nil {
		return err
	}

	tourIDs := make(map[string]struct{}, len(seed.Tours))
	for _, t := range seed.Tours {
		tourIDs[t.TourID] = struct{}{}
	}
	attractionIDs := make(map[string]struct{}, len(seed.Attractions))
	for _, a := range seed.Attractions {
		attractionIDs[a.AttractionID] = struct{}{}
	}
	regionIDs := make(map[string]struct{}, len(seed.Regions))
	for _, r := range seed.Regions {
		regionIDs[r.RegionID] = struct{}{}
	}

	// Tours go before regions since tours reference them.
	if err := pruneStale(tx, `SELECT tour_id FROM tours;`, q.deleteTour, tourIDs); err != nil {
		return fmt.Errorf("seed catalog: prune tours: %w", err)
	}
	if err := pruneStale(tx, `SELECT attraction_id FROM attractions;`, q.deleteAttraction, attractionIDs); err != nil {
		return fmt.Errorf("seed catalog: prune attractions: %w", err)
	}
	if err := pruneStale(tx, `SELECT region_id FROM regions;`, q.deleteRegion, regionIDs); err != nil {
		return fmt.Errorf("seed catalog: prune regions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

// Delete every id returned by listQuery that is not in keep.
func pruneStale(tx *sql.Tx, listQuery, deleteQuery string, keep map[string]struct{}) error {
	rows, err := tx.Query(listQuery)
	if err != nil {
		return fmt.Errorf("list ids: %w", err)
	}

	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan id: %w", err)
		}
		if _, ok := keep[id]; !ok {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterate ids: %w", err)
	}
	_ = rows.Close()

	for _, id := range stale {
		if _, err := tx.Exec(deleteQuery, id); err != nil {
			return fmt.Errorf("delete %q: %w", id, err)
		}
	}
	return nil
}
