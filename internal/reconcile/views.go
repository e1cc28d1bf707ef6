package reconcile

import (
	"sort"
	"strings"

	"github.com/pixelplot/tile-indexer/internal/domain"
)

// PortfolioEntry is one tile of a user portfolio
type PortfolioEntry struct {
	domain.ReconciledTile
	// AvailableForUse is true when the tile has no market engagement
	AvailableForUse bool `json:"available_for_use"`
}

// Summary holds the marketplace-wide counts for one snapshot. A tile may
// be both for sale and for rent, so the per-state counts overlap and
// never sum to TotalTiles.
type Summary struct {
	TotalTiles           int `json:"total_tiles"`
	ForSaleCount         int `json:"for_sale_count"`
	ForRentCount         int `json:"for_rent_count"`
	CurrentlyRentedCount int `json:"currently_rented_count"`
}

// UserPortfolio projects the snapshot onto one owner. Ordered by tile
// identity so repeated calls against the same snapshot are identical.
func UserPortfolio(snapshot *domain.Snapshot, owner string) []PortfolioEntry {
	portfolio := make([]PortfolioEntry, 0)
	for _, tile := range snapshot.Tiles {
		if !strings.EqualFold(tile.Owner, owner) {
			continue
		}
		portfolio = append(portfolio, PortfolioEntry{
			ReconciledTile:  tile,
			AvailableForUse: tile.AvailableForUse(),
		})
	}

	sort.Slice(portfolio, func(i, j int) bool {
		return portfolio[i].TileID < portfolio[j].TileID
	})

	return portfolio
}

// MarketSummary computes fresh counts over the snapshot, so the result
// is always consistent with the snapshot it derives from
func MarketSummary(snapshot *domain.Snapshot) Summary {
	summary := Summary{TotalTiles: len(snapshot.Tiles)}
	for _, tile := range snapshot.Tiles {
		if tile.Market == nil {
			continue
		}
		if tile.Market.ForSale {
			summary.ForSaleCount++
		}
		if tile.Market.ForRent {
			summary.ForRentCount++
		}
		if tile.Market.Rented {
			summary.CurrentlyRentedCount++
		}
	}
	return summary
}
