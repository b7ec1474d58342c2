package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safeplate/backend/internal/domain"
	"github.com/safeplate/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanService *usecase.ScanService
}

// NewHandler creates a new HTTP handler
func NewHandler(scanService *usecase.ScanService) *Handler {
	return &Handler{
		scanService: scanService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "safeplate-backend",
		"version": "1.0.0",
	})
}

// ScanBarcode handles barcode scan requests: it looks up the product and
// returns the safety verdict for the caller's profile.
func (h *Handler) ScanBarcode(c *gin.Context) {
	if h.scanService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "scan service not available",
		})
		return
	}

	var request domain.ScanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "barcode is required",
		})
		return
	}

	result, err := h.scanService.ScanBarcode(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "barcode is required",
			})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "product not found",
				"barcode": request.Barcode,
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "product lookup failed, try again later",
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
