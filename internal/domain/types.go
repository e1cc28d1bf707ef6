package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// TileID is the canonical numeric identity of a tile. All legacy
// encodings normalize to exactly one TileID.
type TileID uint64

// TileCreationEvent is a single TileMinted event decoded from the ledger.
type TileCreationEvent struct {
	TileID        TileID `json:"tile_id"`
	Owner         string `json:"owner"`
	MetadataRef   string `json:"metadata_ref"`
	NativePayment bool   `json:"native_payment"`
	BlockNumber   uint64 `json:"block_number"`
	TxIndex       uint64 `json:"tx_index"`
	TxHash        string `json:"tx_hash"`
}

// After reports whether e was emitted after other in chain order.
func (e TileCreationEvent) After(other TileCreationEvent) bool {
	if e.BlockNumber != other.BlockNumber {
		return e.BlockNumber > other.BlockNumber
	}
	return e.TxIndex > other.TxIndex
}

// LedgerTileRecord is the point-lookup projection of a tile's on-chain
// state. Regenerated per query, owned by nobody.
type LedgerTileRecord struct {
	TileID        TileID `json:"tile_id"`
	Owner         string `json:"owner"`
	MetadataRef   string `json:"metadata_ref"`
	NativePayment bool   `json:"native_payment"`
	Exists        bool   `json:"exists"`
}

// ObjectHandle identifies one object in the pin store listing.
type ObjectHandle struct {
	CID         string    `json:"cid"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Created     time.Time `json:"created"`
}

// ObjectPage is one page of the pin store listing API.
type ObjectPage struct {
	Items      []ObjectHandle `json:"items"`
	NextCursor string         `json:"next_cursor"`
}

// TileMetadata is a parsed tile metadata document. Known fields are
// extracted; everything else is preserved verbatim in Raw.
type TileMetadata struct {
	TileID TileID `json:"tile_id"`
	// Declared is false for synthesized placeholders and for documents
	// that carry no self-declared tile field.
	Declared        bool              `json:"declared"`
	Placeholder     bool              `json:"placeholder"`
	CID             string            `json:"cid"`
	Name            string            `json:"name"`
	Image           string            `json:"image"`
	Website         string            `json:"website"`
	ExternalAddress string            `json:"external_address"`
	Socials         map[string]string `json:"socials,omitempty"`
	Raw             map[string]any    `json:"raw,omitempty"`
	// StoreCreated is the pin store upload timestamp of the backing
	// object, used as the deterministic tie-break for identity collisions.
	StoreCreated time.Time `json:"store_created"`
}

// MarketOverlay is the marketplace contract's view of a tile. Absence
// means "no market listing", not "unknown".
type MarketOverlay struct {
	TileID          TileID    `json:"tile_id"`
	ForSale         bool      `json:"for_sale"`
	ForRent         bool      `json:"for_rent"`
	Rented          bool      `json:"rented"`
	SalePrice       *big.Int  `json:"sale_price,omitempty"`
	RentPricePerDay *big.Int  `json:"rent_price_per_day,omitempty"`
	Renter          string    `json:"renter,omitempty"`
	RentalEnd       time.Time `json:"rental_end,omitzero"`
}

// Provenance records which sources contributed to a reconciled tile.
type Provenance struct {
	// LedgerState is true when the record reflects a fresh point lookup
	// rather than the (possibly stale) creation event payload.
	LedgerState bool `json:"ledger_state"`
	Metadata    bool `json:"metadata"`
	Market      bool `json:"market"`
	// Degraded is true when a point lookup for this tile failed and the
	// entry fell back to event-derived data.
	Degraded bool `json:"degraded"`
}

// ReconciledTile is the merged consumer-facing record. It is a pure
// function of the ledger record, the metadata document and the market
// overlay, recomputed per request and never mutated in place.
type ReconciledTile struct {
	TileID        TileID         `json:"tile_id"`
	Owner         string         `json:"owner"`
	NativePayment bool           `json:"native_payment"`
	Metadata      *TileMetadata  `json:"metadata"`
	Market        *MarketOverlay `json:"market,omitempty"`
	Provenance    Provenance     `json:"provenance"`
}

// AvailableForUse reports whether the tile is free of any market
// engagement.
func (t ReconciledTile) AvailableForUse() bool {
	m := t.Market
	if m == nil {
		return true
	}
	return !m.ForSale && !m.ForRent && !m.Rented
}

// Snapshot is the immutable output of one reconciliation cycle.
type Snapshot struct {
	ID          uuid.UUID               `json:"id"`
	GeneratedAt time.Time               `json:"generated_at"`
	WindowFrom  uint64                  `json:"window_from"`
	WindowTo    uint64                  `json:"window_to"`
	Tiles       map[TileID]ReconciledTile `json:"tiles"`
	// StoreDegraded is true when the pin store walk failed wholly and the
	// snapshot was built from ledger data alone.
	StoreDegraded bool `json:"store_degraded"`
	// DegradedCount is the number of tiles whose point lookup failed.
	DegradedCount int `json:"degraded_count"`
}
