package rest

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/pixelplot/tile-indexer/internal/api/rest/dto"
	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/identity"
	"github.com/pixelplot/tile-indexer/internal/reconcile"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetTile retrieves a single reconciled tile
	// GET /api/v1/tiles/:id (canonical numeric or legacy "x-y" form)
	GetTile(c *gin.Context)

	// GetPortfolio retrieves every tile held by an address
	// GET /api/v1/accounts/:address/tiles
	GetPortfolio(c *gin.Context)

	// GetMarketSummary retrieves marketplace-wide counts
	// GET /api/v1/market/summary
	GetMarketSummary(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	service reconcile.Service
}

// NewHandler creates a new REST API handler over the query service
func NewHandler(service reconcile.Service) Handler {
	return &handler{service: service}
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// GetTile retrieves a single reconciled tile
func (h *handler) GetTile(c *gin.Context) {
	rawID := c.Param("id")
	if rawID == "" {
		respondValidationError(c, "Tile identifier is required")
		return
	}

	id, err := identity.Normalize(rawID)
	if err != nil {
		respondValidationError(c, "Invalid tile identifier: "+rawID)
		return
	}

	tile, err := h.service.TileDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			respondUpstreamUnavailable(c, err, "Ledger unavailable")
		} else {
			respondInternalError(c, err, "Failed to get tile")
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromReconciledTile(tile))
}

// GetPortfolio retrieves every tile held by an address. An unknown
// address yields an empty portfolio, not an error.
func (h *handler) GetPortfolio(c *gin.Context) {
	address := c.Param("address")
	if !addressPattern.MatchString(address) {
		respondValidationError(c, "Invalid address: "+address)
		return
	}

	entries, err := h.service.UserPortfolio(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			respondUpstreamUnavailable(c, err, "Ledger unavailable")
		} else {
			respondInternalError(c, err, "Failed to get portfolio")
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromPortfolio(address, entries))
}

// GetMarketSummary retrieves marketplace-wide counts
func (h *handler) GetMarketSummary(c *gin.Context) {
	summary, err := h.service.MarketSummary(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			respondUpstreamUnavailable(c, err, "Ledger unavailable")
		} else {
			respondInternalError(c, err, "Failed to get market summary")
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromSummary(summary))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "tile-indexer-api",
	})
}
