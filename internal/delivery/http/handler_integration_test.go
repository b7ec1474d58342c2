package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/safeplate/backend/config"
	"github.com/safeplate/backend/internal/domain"
	"github.com/safeplate/backend/internal/infrastructure/cache"
	"github.com/safeplate/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

// stubProductClient serves canned products keyed by barcode.
type stubProductClient struct {
	products map[string]*domain.Product
}

func (s *stubProductClient) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	if product, ok := s.products[barcode]; ok {
		return product, nil
	}
	return nil, domain.ErrProductNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		OFF: config.OFFConfig{
			BaseURL:   "https://world.openfoodfacts.org",
			UserAgent: "SafePlate/1.0 (test)",
		},
		Cache: config.CacheConfig{
			Type: "memory",
		},
		RateLimit: config.RateLimitConfig{
			// High enough that tests never trip the per-IP limiter.
			PerIP: 100000,
		},
	}
}

// setupTestRouter wires a full router around a stub product client.
func setupTestRouter(products map[string]*domain.Product) *gin.Engine {
	client := &stubProductClient{products: products}
	scanService := usecase.NewScanService(cache.NewMemoryCache(), client, usecase.ScanServiceConfig{})
	return SetupRouter(testConfig(), NewHandler(scanService))
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(nil)

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "safeplate-backend" {
			t.Errorf("service = %v, want safeplate-backend", response["service"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(nil)

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestScanEndpoint(t *testing.T) {
	products := map[string]*domain.Product{
		"737628064502": {
			Code:            "737628064502",
			ProductName:     "Wheaty Crackers",
			IngredientsText: "wheat flour, milk, salt",
		},
		"111111111111": {
			Code:            "111111111111",
			ProductName:     "Rice Crackers",
			IngredientsText: "rice flour, salt",
		},
	}

	t.Run("returns a verdict for a known product", func(t *testing.T) {
		router := setupTestRouter(products)

		payload := `{"barcode":"737628064502","allergens":["dairy"]}`
		req, _ := http.NewRequest("POST", "/api/v1/scan", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		var result domain.ScanResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if result.Barcode != "737628064502" {
			t.Errorf("Barcode = %q, want 737628064502", result.Barcode)
		}
		if result.Verdict.Level != domain.LevelUnsafe {
			t.Errorf("Verdict.Level = %q, want unsafe", result.Verdict.Level)
		}
		if len(result.Verdict.Reasons) != 2 {
			t.Errorf("Reasons = %+v, want gluten and dairy", result.Verdict.Reasons)
		}
		if result.Source != "OpenFoodFacts" {
			t.Errorf("Source = %q, want OpenFoodFacts", result.Source)
		}
	})

	t.Run("safe product with empty profile", func(t *testing.T) {
		router := setupTestRouter(products)

		payload := `{"barcode":"111111111111"}`
		req, _ := http.NewRequest("POST", "/api/v1/scan", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var result domain.ScanResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if result.Verdict.Level != domain.LevelSafe {
			t.Errorf("Verdict.Level = %q, want safe", result.Verdict.Level)
		}
	})

	t.Run("second scan is served from cache", func(t *testing.T) {
		router := setupTestRouter(products)
		payload := `{"barcode":"111111111111"}`

		for i, wantSource := range []string{"OpenFoodFacts", "Cache"} {
			req, _ := http.NewRequest("POST", "/api/v1/scan", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("request %d: Status = %d, want %d", i, w.Code, http.StatusOK)
			}
			var result domain.ScanResult
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if result.Source != wantSource {
				t.Errorf("request %d: Source = %q, want %q", i, result.Source, wantSource)
			}
		}
	})

	t.Run("returns 404 for an unknown barcode", func(t *testing.T) {
		router := setupTestRouter(products)

		payload := `{"barcode":"000000000000"}`
		req, _ := http.NewRequest("POST", "/api/v1/scan", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["barcode"] != "000000000000" {
			t.Errorf("barcode = %v, want 000000000000", response["barcode"])
		}
	})

	t.Run("returns 400 for a missing barcode", func(t *testing.T) {
		router := setupTestRouter(products)

		payload := `{"allergens":["dairy"]}`
		req, _ := http.NewRequest("POST", "/api/v1/scan", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		router := setupTestRouter(products)

		req, _ := http.NewRequest("POST", "/api/v1/scan", strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 503 when the scan service is missing", func(t *testing.T) {
		router := SetupRouter(testConfig(), NewHandler(nil))

		payload := `{"barcode":"737628064502"}`
		req, _ := http.NewRequest("POST", "/api/v1/scan", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}
