package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations. Values are
// stored and returned as JSON bytes so the in-memory implementation behaves
// the same as a Redis-backed one.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductClient defines the interface for looking up products by barcode
// in an external food database.
type ProductClient interface {
	GetProduct(ctx context.Context, barcode string) (*Product, error)
}

// ScanHistoryRepository defines the interface for scan-history persistence
// (Future use: the web app currently stores history in its own database)
type ScanHistoryRepository interface {
	Save(ctx context.Context, userID string, result *ScanResult) error
	ListByUser(ctx context.Context, userID string, limit int) ([]ScanResult, error)
}
