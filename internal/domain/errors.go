package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode cannot be found in Open Food Facts
	ErrProductNotFound = errors.New("product not found in Open Food Facts")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrOFFAPIFailure is returned when an Open Food Facts API request fails
	ErrOFFAPIFailure = errors.New("Open Food Facts API request failed")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
