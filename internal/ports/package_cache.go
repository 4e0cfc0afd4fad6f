package ports

import (
	"context"
	"time"
)

// Serializable form of a generated package. Tours are referenced by id and
// rehydrated from the loaded catalog on read.
type CachedPackage struct {
	RegionID   string    `json:"region_id"`
	TourIDs    []string  `json:"tour_ids"`
	TotalCost  float64   `json:"total_cost"`
	TotalDays  int       `json:"total_days"`
	TotalValue int       `json:"total_value"`
	Visited    int       `json:"visited"`
	StoredAt   time.Time `json:"stored_at"`
}

// Contract for memoizing generated packages by request key.
type PackageCache interface {
	// Return the cached package for key; ok is false on a miss.
	Get(ctx context.Context, key string) (pkg CachedPackage, ok bool, err error)
	// Store a package under key.
	Put(ctx context.Context, key string, pkg CachedPackage) error
}
