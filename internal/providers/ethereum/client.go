package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/pixelplot/tile-indexer/internal/adapter"
	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/logger"
)

// tilesContractABI covers the slice of the tiles contract the reader
// consumes: the mint event and the two point-lookup views.
const tilesContractABI = `[
	{"anonymous":false,"inputs":[{"indexed":true,"name":"owner","type":"address"},{"indexed":true,"name":"tileId","type":"uint256"},{"indexed":false,"name":"metadataURI","type":"string"},{"indexed":false,"name":"nativePayment","type":"bool"}],"name":"TileMinted","type":"event"},
	{"constant":true,"inputs":[{"name":"tileId","type":"uint256"}],"name":"getTile","outputs":[{"name":"owner","type":"address"},{"name":"metadataURI","type":"string"},{"name":"nativePayment","type":"bool"},{"name":"exists","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tileId","type":"uint256"}],"name":"exists","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"}
]`

// marketplaceContractABI covers the marketplace listing view.
const marketplaceContractABI = `[
	{"constant":true,"inputs":[{"name":"tileId","type":"uint256"}],"name":"getListing","outputs":[{"name":"forSale","type":"bool"},{"name":"forRent","type":"bool"},{"name":"rented","type":"bool"},{"name":"salePrice","type":"uint256"},{"name":"rentPricePerDay","type":"uint256"},{"name":"renter","type":"address"},{"name":"rentalEnd","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
]`

// Client reads tile state from the ledger. It is stateless: every call
// is a fresh projection of chain truth.
//
//go:generate mockgen -source=client.go -destination=../../mocks/ledger_client.go -package=mocks -mock_names=Client=MockLedgerClient
type Client interface {
	// LatestBlock returns the current chain head number, used to anchor
	// the bounded scan window
	LatestBlock(ctx context.Context) (uint64, error)

	// FetchCreationEvents scans TileMinted events in [fromBlock, toBlock].
	// A failure of the range query is fatal for the reconciliation cycle
	FetchCreationEvents(ctx context.Context, fromBlock, toBlock uint64) ([]domain.TileCreationEvent, error)

	// FetchTile performs a point lookup of a tile's current on-chain state
	FetchTile(ctx context.Context, id domain.TileID) (domain.LedgerTileRecord, error)

	// TileExists reports whether the tile exists on the ledger
	TileExists(ctx context.Context, id domain.TileID) (bool, error)

	// FetchMarketListing returns the marketplace overlay for a tile, or
	// nil when no marketplace contract is configured
	FetchMarketListing(ctx context.Context, id domain.TileID) (*domain.MarketOverlay, error)

	// MarketConfigured reports whether a marketplace contract address is set
	MarketConfigured() bool

	// Close closes the underlying RPC connection
	Close()
}

type client struct {
	eth             adapter.EthClient
	tilesABI        abi.ABI
	marketABI       abi.ABI
	tilesAddress    common.Address
	marketAddress   common.Address
	marketSet       bool
	requestTimeout  time.Duration
	tileMintedTopic common.Hash
}

// NewClient creates a ledger reader bound to the tiles contract.
// marketplaceAddress may be empty, in which case market listings are
// reported as absent rather than failing.
func NewClient(eth adapter.EthClient, tilesAddress, marketplaceAddress string, requestTimeout time.Duration) (Client, error) {
	if tilesAddress == "" {
		return nil, fmt.Errorf("%w: tiles contract address", domain.ErrConfigurationMissing)
	}

	tilesABI, err := abi.JSON(strings.NewReader(tilesContractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse tiles ABI: %w", err)
	}

	marketABI, err := abi.JSON(strings.NewReader(marketplaceContractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse marketplace ABI: %w", err)
	}

	c := &client{
		eth:             eth,
		tilesABI:        tilesABI,
		marketABI:       marketABI,
		tilesAddress:    common.HexToAddress(tilesAddress),
		requestTimeout:  requestTimeout,
		tileMintedTopic: tilesABI.Events["TileMinted"].ID,
	}
	if marketplaceAddress != "" {
		c.marketAddress = common.HexToAddress(marketplaceAddress)
		c.marketSet = true
	}

	return c, nil
}

// LatestBlock returns the current chain head number
func (c *client) LatestBlock(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	header, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get chain head: %v", domain.ErrUpstreamUnavailable, err)
	}

	return header.Number.Uint64(), nil
}

// FetchCreationEvents scans TileMinted events in [fromBlock, toBlock]
func (c *client) FetchCreationEvents(ctx context.Context, fromBlock, toBlock uint64) ([]domain.TileCreationEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{c.tilesAddress},
		Topics:    [][]common.Hash{{c.tileMintedTopic}},
	}

	logs, err := c.eth.FilterLogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to filter logs for range %d-%d: %v",
			domain.ErrUpstreamUnavailable, fromBlock, toBlock, err)
	}

	events := make([]domain.TileCreationEvent, 0, len(logs))
	for _, vLog := range logs {
		event, err := c.parseTileMinted(vLog)
		if err != nil {
			// A malformed log is a data-quality problem with one entry,
			// not a reason to abort the scan
			logger.Warn("failed to parse TileMinted log",
				zap.Error(err),
				zap.String("txHash", vLog.TxHash.Hex()),
				zap.Uint64("block", vLog.BlockNumber))
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// parseTileMinted decodes a raw log into a creation event
func (c *client) parseTileMinted(vLog types.Log) (domain.TileCreationEvent, error) {
	if len(vLog.Topics) != 3 {
		return domain.TileCreationEvent{}, fmt.Errorf("invalid TileMinted event: expected 3 topics, got %d", len(vLog.Topics))
	}

	unpacked, err := c.tilesABI.Unpack("TileMinted", vLog.Data)
	if err != nil {
		return domain.TileCreationEvent{}, fmt.Errorf("failed to unpack TileMinted data: %w", err)
	}
	if len(unpacked) != 2 {
		return domain.TileCreationEvent{}, fmt.Errorf("invalid TileMinted data: expected 2 values, got %d", len(unpacked))
	}

	metadataURI, ok := unpacked[0].(string)
	if !ok {
		return domain.TileCreationEvent{}, fmt.Errorf("invalid TileMinted metadataURI type %T", unpacked[0])
	}
	nativePayment, ok := unpacked[1].(bool)
	if !ok {
		return domain.TileCreationEvent{}, fmt.Errorf("invalid TileMinted nativePayment type %T", unpacked[1])
	}

	tileID := new(big.Int).SetBytes(vLog.Topics[2].Bytes())
	if !tileID.IsUint64() {
		return domain.TileCreationEvent{}, fmt.Errorf("tile id out of range: %s", tileID.String())
	}

	return domain.TileCreationEvent{
		TileID:        domain.TileID(tileID.Uint64()),
		Owner:         common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
		MetadataRef:   metadataURI,
		NativePayment: nativePayment,
		BlockNumber:   vLog.BlockNumber,
		TxIndex:       uint64(vLog.TxIndex),
		TxHash:        vLog.TxHash.Hex(),
	}, nil
}

// FetchTile performs a point lookup of a tile's current on-chain state
func (c *client) FetchTile(ctx context.Context, id domain.TileID) (domain.LedgerTileRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	result, err := c.call(ctx, c.tilesAddress, c.tilesABI, "getTile", new(big.Int).SetUint64(uint64(id)))
	if err != nil {
		return domain.LedgerTileRecord{}, fmt.Errorf("%w: getTile(%d): %v", domain.ErrUpstreamUnavailable, id, err)
	}

	unpacked, err := c.tilesABI.Unpack("getTile", result)
	if err != nil {
		return domain.LedgerTileRecord{}, fmt.Errorf("failed to unpack getTile result: %w", err)
	}
	if len(unpacked) != 4 {
		return domain.LedgerTileRecord{}, fmt.Errorf("invalid getTile result: expected 4 values, got %d", len(unpacked))
	}

	owner, ok := unpacked[0].(common.Address)
	if !ok {
		return domain.LedgerTileRecord{}, fmt.Errorf("invalid getTile owner type %T", unpacked[0])
	}
	metadataURI, ok := unpacked[1].(string)
	if !ok {
		return domain.LedgerTileRecord{}, fmt.Errorf("invalid getTile metadataURI type %T", unpacked[1])
	}
	nativePayment, ok := unpacked[2].(bool)
	if !ok {
		return domain.LedgerTileRecord{}, fmt.Errorf("invalid getTile nativePayment type %T", unpacked[2])
	}
	exists, ok := unpacked[3].(bool)
	if !ok {
		return domain.LedgerTileRecord{}, fmt.Errorf("invalid getTile exists type %T", unpacked[3])
	}

	return domain.LedgerTileRecord{
		TileID:        id,
		Owner:         owner.Hex(),
		MetadataRef:   metadataURI,
		NativePayment: nativePayment,
		Exists:        exists,
	}, nil
}

// TileExists reports whether the tile exists on the ledger
func (c *client) TileExists(ctx context.Context, id domain.TileID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	result, err := c.call(ctx, c.tilesAddress, c.tilesABI, "exists", new(big.Int).SetUint64(uint64(id)))
	if err != nil {
		return false, fmt.Errorf("%w: exists(%d): %v", domain.ErrUpstreamUnavailable, id, err)
	}

	var exists bool
	if err := c.tilesABI.UnpackIntoInterface(&exists, "exists", result); err != nil {
		return false, fmt.Errorf("failed to unpack exists result: %w", err)
	}

	return exists, nil
}

// FetchMarketListing returns the marketplace overlay for a tile, or nil
// when no marketplace contract is configured or the tile has no listing
func (c *client) FetchMarketListing(ctx context.Context, id domain.TileID) (*domain.MarketOverlay, error) {
	if !c.marketSet {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	result, err := c.call(ctx, c.marketAddress, c.marketABI, "getListing", new(big.Int).SetUint64(uint64(id)))
	if err != nil {
		return nil, fmt.Errorf("%w: getListing(%d): %v", domain.ErrUpstreamUnavailable, id, err)
	}

	unpacked, err := c.marketABI.Unpack("getListing", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack getListing result: %w", err)
	}
	if len(unpacked) != 7 {
		return nil, fmt.Errorf("invalid getListing result: expected 7 values, got %d", len(unpacked))
	}

	forSale, _ := unpacked[0].(bool)
	forRent, _ := unpacked[1].(bool)
	rented, _ := unpacked[2].(bool)
	salePrice, _ := unpacked[3].(*big.Int)
	rentPrice, _ := unpacked[4].(*big.Int)
	renter, _ := unpacked[5].(common.Address)
	rentalEnd, _ := unpacked[6].(*big.Int)

	overlay := &domain.MarketOverlay{
		TileID:          id,
		ForSale:         forSale,
		ForRent:         forRent,
		Rented:          rented,
		SalePrice:       salePrice,
		RentPricePerDay: rentPrice,
	}
	if renter != (common.Address{}) {
		overlay.Renter = renter.Hex()
	}
	if rentalEnd != nil && rentalEnd.Sign() > 0 && rentalEnd.IsInt64() {
		overlay.RentalEnd = time.Unix(rentalEnd.Int64(), 0).UTC()
	}

	return overlay, nil
}

// MarketConfigured reports whether a marketplace contract address is set
func (c *client) MarketConfigured() bool {
	return c.marketSet
}

// call packs and executes a read-only contract call
func (c *client) call(ctx context.Context, to common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]byte, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	return result, nil
}

// Close closes the underlying RPC connection
func (c *client) Close() {
	c.eth.Close()
}
