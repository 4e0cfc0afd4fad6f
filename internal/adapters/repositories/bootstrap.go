package repositories

import (
	"database/sql"
	"fmt"
)

// InitAndSeed creates the catalog schema for driver and loads the seed file
// at seedPath. Both steps are idempotent.
func InitAndSeed(db *sql.DB, driver, seedPath string) error {
	if err := InitSchemaFor(db, driver); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	var err error
	switch driver {
	case "sqlite":
		err = SeedFromJSON(db, seedPath)
	case "postgres":
		err = SeedPostgresFromJSON(db, seedPath)
	default:
		err = fmt.Errorf("seed: unknown driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func InitSchemaFor(db *sql.DB, driver string) error {
	switch driver {
	case "sqlite":
		return InitSchema(db)
	case "postgres":
		return InitPostgresSchema(db)
	default:
		return fmt.Errorf("init schema: unknown driver %q", driver)
	}
}
