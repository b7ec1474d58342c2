package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/safeplate/backend/internal/domain"
	"golang.org/x/time/rate"
)

// productFields limits the response to the fields the verdict engine
// consumes; full OFF records run to hundreds of kilobytes.
const productFields = "code,product_name,product_name_en,brands," +
	"ingredients_text,ingredients_text_en,ingredients_text_with_allergens,ingredients," +
	"allergens,allergens_from_ingredients,traces,traces_from_ingredients," +
	"allergens_tags,traces_tags,labels_tags,image_url,nutriscore_grade"

// Client handles communication with the Open Food Facts API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Open Food Facts API client. OFF asks clients to
// stay under 100 product queries per minute and to send an identifying
// User-Agent.
func NewClient(baseURL, userAgent string, perMinute int) *Client {
	if perMinute <= 0 {
		perMinute = 100
	}
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 10) // burst of 10 requests

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: limiter,
	}
}

// SetDebug toggles request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetTimeout overrides the default 30s request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.debug {
		log.Printf(format, args...)
	}
}

// productResponse is the OFF v2 product envelope. Unknown barcodes answer
// with status 0 rather than an empty body.
type productResponse struct {
	Code          string         `json:"code"`
	Status        int            `json:"status"`
	StatusVerbose string         `json:"status_verbose"`
	Product       domain.Product `json:"product"`
}

// exponentialBackoff returns the wait before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOFFAPIFailure, err)
	}

	return resp, nil
}

// GetProduct fetches a product record by barcode
func (c *Client) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	c.debugf("[OFF] GetProduct called with barcode: %q", barcode)

	endpoint := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, url.PathEscape(barcode))
	params := url.Values{}
	params.Add("fields", productFields)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.debugf("[OFF] request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// OFF answers unknown barcodes with 404 plus a status:0 JSON body
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			c.debugf("[OFF] API error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(body))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrOFFAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var productResp productResponse
		if err := json.Unmarshal(body, &productResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if productResp.Status == 0 {
			c.debugf("[OFF] no product found for barcode: %q (%s)", barcode, productResp.StatusVerbose)
			return nil, domain.ErrProductNotFound
		}

		product := productResp.Product
		if product.Code == "" {
			product.Code = barcode
		}

		c.debugf("[OFF] found product %q for barcode: %q", product.DisplayName(), barcode)
		return &product, nil
	}

	return nil, lastErr
}
