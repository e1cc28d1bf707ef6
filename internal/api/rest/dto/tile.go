package dto

import (
	"time"

	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/identity"
	"github.com/pixelplot/tile-indexer/internal/reconcile"
)

// TileDTO is the wire shape of a reconciled tile
type TileDTO struct {
	TileID        uint64            `json:"tile_id"`
	Coordinates   string            `json:"coordinates"`
	Owner         string            `json:"owner"`
	NativePayment bool              `json:"native_payment"`
	Metadata      *MetadataDTO      `json:"metadata"`
	Market        *MarketDTO        `json:"market,omitempty"`
	Provenance    domain.Provenance `json:"provenance"`
}

// MetadataDTO is the wire shape of a tile metadata document
type MetadataDTO struct {
	CID             string            `json:"cid,omitempty"`
	Name            string            `json:"name"`
	Image           string            `json:"image,omitempty"`
	Website         string            `json:"website,omitempty"`
	ExternalAddress string            `json:"external_address,omitempty"`
	Socials         map[string]string `json:"socials,omitempty"`
	Placeholder     bool              `json:"placeholder"`
	Raw             map[string]any    `json:"raw,omitempty"`
}

// MarketDTO is the wire shape of a marketplace overlay. Prices are
// decimal strings in the chain's smallest unit.
type MarketDTO struct {
	ForSale         bool   `json:"for_sale"`
	ForRent         bool   `json:"for_rent"`
	Rented          bool   `json:"rented"`
	SalePrice       string `json:"sale_price,omitempty"`
	RentPricePerDay string `json:"rent_price_per_day,omitempty"`
	Renter          string `json:"renter,omitempty"`
	RentalEnd       string `json:"rental_end,omitempty"`
}

// PortfolioEntryDTO is one tile of a user portfolio response
type PortfolioEntryDTO struct {
	TileDTO
	AvailableForUse bool `json:"available_for_use"`
}

// PortfolioResponse wraps a user portfolio
type PortfolioResponse struct {
	Owner string              `json:"owner"`
	Count int                 `json:"count"`
	Tiles []PortfolioEntryDTO `json:"tiles"`
}

// SummaryResponse is the market summary wire shape
type SummaryResponse struct {
	TotalTiles           int `json:"total_tiles"`
	ForSaleCount         int `json:"for_sale_count"`
	ForRentCount         int `json:"for_rent_count"`
	CurrentlyRentedCount int `json:"currently_rented_count"`
}

// FromReconciledTile maps a domain tile to its wire shape
func FromReconciledTile(tile domain.ReconciledTile) TileDTO {
	dto := TileDTO{
		TileID:        uint64(tile.TileID),
		Coordinates:   identity.CoordinateString(tile.TileID),
		Owner:         tile.Owner,
		NativePayment: tile.NativePayment,
		Provenance:    tile.Provenance,
	}

	if tile.Metadata != nil {
		dto.Metadata = &MetadataDTO{
			CID:             tile.Metadata.CID,
			Name:            tile.Metadata.Name,
			Image:           tile.Metadata.Image,
			Website:         tile.Metadata.Website,
			ExternalAddress: tile.Metadata.ExternalAddress,
			Socials:         tile.Metadata.Socials,
			Placeholder:     tile.Metadata.Placeholder,
			Raw:             tile.Metadata.Raw,
		}
	}

	if tile.Market != nil {
		market := &MarketDTO{
			ForSale: tile.Market.ForSale,
			ForRent: tile.Market.ForRent,
			Rented:  tile.Market.Rented,
			Renter:  tile.Market.Renter,
		}
		if tile.Market.SalePrice != nil {
			market.SalePrice = tile.Market.SalePrice.String()
		}
		if tile.Market.RentPricePerDay != nil {
			market.RentPricePerDay = tile.Market.RentPricePerDay.String()
		}
		if !tile.Market.RentalEnd.IsZero() {
			market.RentalEnd = tile.Market.RentalEnd.Format(time.RFC3339)
		}
		dto.Market = market
	}

	return dto
}

// FromPortfolio maps a portfolio projection to its wire shape
func FromPortfolio(owner string, entries []reconcile.PortfolioEntry) PortfolioResponse {
	tiles := make([]PortfolioEntryDTO, 0, len(entries))
	for _, entry := range entries {
		tiles = append(tiles, PortfolioEntryDTO{
			TileDTO:         FromReconciledTile(entry.ReconciledTile),
			AvailableForUse: entry.AvailableForUse,
		})
	}
	return PortfolioResponse{
		Owner: owner,
		Count: len(tiles),
		Tiles: tiles,
	}
}

// FromSummary maps the market summary to its wire shape
func FromSummary(summary reconcile.Summary) SummaryResponse {
	return SummaryResponse(summary)
}
