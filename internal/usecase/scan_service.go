package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/safeplate/backend/internal/domain"
)

const sourceOpenFoodFacts = "OpenFoodFacts"
const sourceCache = "Cache"

// ScanServiceConfig holds configuration for the scan service
type ScanServiceConfig struct {
	CacheTTL time.Duration
}

// ScanService handles barcode scans: product lookup with caching plus the
// safety verdict for the requesting user.
type ScanService struct {
	cache     domain.CacheRepository
	products  domain.ProductClient
	evaluator *SafetyEvaluator
	cacheTTL  time.Duration
}

// NewScanService creates a new scan service with dependencies
func NewScanService(
	cache domain.CacheRepository,
	products domain.ProductClient,
	config ScanServiceConfig,
) *ScanService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour // OFF product data changes rarely
	}

	return &ScanService{
		cache:     cache,
		products:  products,
		evaluator: NewSafetyEvaluator(),
		cacheTTL:  cacheTTL,
	}
}

// ScanBarcode looks up a product and classifies it for the user.
// Flow: check cache -> fetch from Open Food Facts -> evaluate -> cache -> return
func (s *ScanService) ScanBarcode(ctx context.Context, request *domain.ScanRequest) (*domain.ScanResult, error) {
	if request == nil || strings.TrimSpace(request.Barcode) == "" {
		return nil, domain.ErrInvalidRequest
	}
	barcode := strings.TrimSpace(request.Barcode)

	source := sourceOpenFoodFacts
	product, err := s.getCachedProduct(ctx, productCacheKey(barcode))
	if err == nil && product != nil {
		source = sourceCache
	} else {
		product, err = s.products.GetProduct(ctx, barcode)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrOFFAPIFailure, err)
		}

		if err := s.cache.Set(ctx, productCacheKey(barcode), product, s.cacheTTL); err != nil {
			// A cold cache is not worth failing the scan over.
			log.Printf("[SCAN] cache write failed for %s: %v", barcode, err)
		}
	}

	verdict := s.evaluator.Evaluate(product, domain.SafetyProfile{
		Allergens:  request.Allergens,
		Diet:       request.Diet,
		Conditions: request.Conditions,
	})

	return &domain.ScanResult{
		Barcode: barcode,
		Product: product,
		Verdict: verdict,
		Source:  source,
	}, nil
}

// productCacheKey builds the cache key for a barcode lookup.
// Format: "scan:product:{barcode}"
func productCacheKey(barcode string) string {
	return fmt.Sprintf("scan:product:%s", barcode)
}

// getCachedProduct retrieves a cached product record
func (s *ScanService) getCachedProduct(ctx context.Context, key string) (*domain.Product, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// Stale or corrupt entry; treat as a miss.
		return nil, domain.ErrCacheMiss
	}

	return &product, nil
}
