// Package reconcile merges the ledger view and the pin store view of
// the tile grid into per-cycle snapshots and serves the aggregate
// queries derived from them.
package reconcile

import (
	"context"
	"strings"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pixelplot/tile-indexer/internal/adapter"
	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/logger"
	"github.com/pixelplot/tile-indexer/internal/metadata"
	"github.com/pixelplot/tile-indexer/internal/providers/ethereum"
)

// StoreWalker lists candidate metadata objects from the pin store
type StoreWalker interface {
	Walk(ctx context.Context) ([]domain.ObjectHandle, error)
}

// Config bounds one reconciliation cycle
type Config struct {
	// ScanWindow is the number of recent blocks covered by the event scan
	ScanWindow uint64
	// LookupWorkers bounds concurrent ledger point lookups
	LookupWorkers int
}

// Engine runs reconciliation cycles. Cycles are independent, stateless
// and idempotent; the engine holds no mutable state across them.
type Engine struct {
	ledger   ethereum.Client
	walker   StoreWalker
	resolver metadata.Resolver
	clock    adapter.Clock
	cfg      Config
}

// NewEngine creates a reconciliation engine
func NewEngine(ledger ethereum.Client, walker StoreWalker, resolver metadata.Resolver, clock adapter.Clock, cfg Config) *Engine {
	if cfg.ScanWindow == 0 {
		cfg.ScanWindow = domain.DefaultScanWindow
	}
	if cfg.LookupWorkers <= 0 {
		cfg.LookupWorkers = 10
	}
	return &Engine{
		ledger:   ledger,
		walker:   walker,
		resolver: resolver,
		clock:    clock,
		cfg:      cfg,
	}
}

// Reconcile runs one full cycle: scan the recent event window and walk
// the pin store concurrently, then merge both views keyed by tile
// identity. A ledger range-scan failure is fatal; a store walk failure
// degrades the snapshot to ledger data only.
func (e *Engine) Reconcile(ctx context.Context) (*domain.Snapshot, error) {
	start := e.clock.Now()

	latest, err := e.ledger.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}

	fromBlock := uint64(0)
	if latest > e.cfg.ScanWindow {
		fromBlock = latest - e.cfg.ScanWindow
	}

	type scanResult struct {
		events []domain.TileCreationEvent
		err    error
	}
	type walkResult struct {
		corpus map[domain.TileID]*domain.TileMetadata
		err    error
	}

	scanCh := make(chan scanResult, 1)
	walkCh := make(chan walkResult, 1)

	go func() {
		events, err := e.ledger.FetchCreationEvents(ctx, fromBlock, latest)
		scanCh <- scanResult{events: events, err: err}
	}()

	go func() {
		handles, err := e.walker.Walk(ctx)
		if err != nil {
			walkCh <- walkResult{err: err}
			return
		}
		walkCh <- walkResult{corpus: e.resolver.BuildCorpus(ctx, handles)}
	}()

	scan := <-scanCh
	walk := <-walkCh

	// No partial event window is ever treated as complete
	if scan.err != nil {
		return nil, scan.err
	}

	corpus := walk.corpus
	storeDegraded := false
	if walk.err != nil {
		logger.WarnCtx(ctx, "pin store walk failed, snapshot degraded to ledger data",
			zap.Error(walk.err))
		corpus = map[domain.TileID]*domain.TileMetadata{}
		storeDegraded = true
	}

	latestEvents := latestEventPerTile(scan.events)
	tiles, degraded := e.mergeTiles(ctx, latestEvents, corpus)

	snapshot := &domain.Snapshot{
		ID:            uuid.New(),
		GeneratedAt:   e.clock.Now().UTC(),
		WindowFrom:    fromBlock,
		WindowTo:      latest,
		Tiles:         tiles,
		StoreDegraded: storeDegraded,
		DegradedCount: degraded,
	}

	logger.InfoCtx(ctx, "reconciliation cycle completed",
		zap.String("snapshot_id", snapshot.ID.String()),
		zap.Uint64("window_from", fromBlock),
		zap.Uint64("window_to", latest),
		zap.Int("tiles", len(tiles)),
		zap.Int("degraded", degraded),
		zap.Bool("store_degraded", storeDegraded),
		zap.Duration("duration", e.clock.Since(start)))

	return snapshot, nil
}

// latestEventPerTile collapses the event window to one event per
// identity. Events are the creation record; when an identity reappears
// (a re-mint) the most recent one wins.
func latestEventPerTile(events []domain.TileCreationEvent) map[domain.TileID]domain.TileCreationEvent {
	latest := make(map[domain.TileID]domain.TileCreationEvent, len(events))
	for _, event := range events {
		if prev, ok := latest[event.TileID]; ok && !event.After(prev) {
			continue
		}
		latest[event.TileID] = event
	}
	return latest
}

// mergeTiles resolves current per-tile state with bounded fan-out and
// merges it with the metadata corpus. Event payloads go stale after
// transfers, so each identity is re-fetched; a failed point lookup keeps
// the event-derived entry, flagged as degraded.
func (e *Engine) mergeTiles(
	ctx context.Context,
	events map[domain.TileID]domain.TileCreationEvent,
	corpus map[domain.TileID]*domain.TileMetadata,
) (map[domain.TileID]domain.ReconciledTile, int) {
	tiles := make(map[domain.TileID]domain.ReconciledTile, len(events))
	if len(events) == 0 {
		return tiles, 0
	}
	degraded := 0
	var mu sync.Mutex

	pool := pond.NewPool(e.cfg.LookupWorkers, pond.WithContext(ctx), pond.WithQueueSize(len(events)))
	for id, event := range events {
		pool.Submit(func() {
			tile, entryDegraded, keep := e.resolveTile(ctx, id, event, corpus[id])
			if !keep {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			tiles[id] = tile
			if entryDegraded {
				degraded++
			}
		})
	}
	pool.StopAndWait()

	return tiles, degraded
}

// resolveTile builds one reconciled record. keep is false when the
// ledger says the tile does not exist or carries no owner, in which case
// the identity is omitted from every aggregation.
func (e *Engine) resolveTile(
	ctx context.Context,
	id domain.TileID,
	event domain.TileCreationEvent,
	doc *domain.TileMetadata,
) (domain.ReconciledTile, bool, bool) {
	tile := domain.ReconciledTile{
		TileID:        id,
		Owner:         event.Owner,
		NativePayment: event.NativePayment,
	}

	record, err := e.ledger.FetchTile(ctx, id)
	switch {
	case err != nil:
		// One failed point lookup degrades this entry, never the batch
		logger.WarnCtx(ctx, "point lookup failed, using event payload",
			zap.Error(err),
			zap.Uint64("tile_id", uint64(id)))
		tile.Provenance.Degraded = true
	case !record.Exists:
		return domain.ReconciledTile{}, false, false
	default:
		tile.Owner = record.Owner
		tile.NativePayment = record.NativePayment
		tile.Provenance.LedgerState = true
	}

	if emptyOwner(tile.Owner) {
		return domain.ReconciledTile{}, false, false
	}

	if doc != nil {
		tile.Metadata = doc
		tile.Provenance.Metadata = true
	} else {
		tile.Metadata = metadata.Placeholder(id)
	}

	// The overlay never blocks the merge: absence means no listing
	if e.ledger.MarketConfigured() {
		overlay, err := e.ledger.FetchMarketListing(ctx, id)
		if err != nil {
			logger.WarnCtx(ctx, "market listing lookup failed, overlay omitted",
				zap.Error(err),
				zap.Uint64("tile_id", uint64(id)))
		} else if overlay != nil {
			tile.Market = overlay
			tile.Provenance.Market = true
		}
	}

	return tile, tile.Provenance.Degraded, true
}

// TileDetail is the low-latency single-identity path. It bypasses the
// full cycle but applies the same merge rules, so its output matches
// what a full pass would yield for the identity.
func (e *Engine) TileDetail(ctx context.Context, id domain.TileID) (domain.ReconciledTile, error) {
	record, err := e.ledger.FetchTile(ctx, id)
	if err != nil {
		return domain.ReconciledTile{}, err
	}
	if !record.Exists || emptyOwner(record.Owner) {
		// Upload-before-mint, or a mint outside the scan window: the
		// identity has no ledger anchor but stays resolvable through
		// the store corpus, placeholder as the last resort
		doc := e.resolver.ResolveByIdentity(ctx, id)
		return domain.ReconciledTile{
			TileID:   id,
			Metadata: doc,
			Provenance: domain.Provenance{
				Metadata: !doc.Placeholder,
			},
		}, nil
	}

	doc := e.resolver.ResolveRef(ctx, id, record.MetadataRef)

	tile := domain.ReconciledTile{
		TileID:        id,
		Owner:         record.Owner,
		NativePayment: record.NativePayment,
		Metadata:      doc,
		Provenance: domain.Provenance{
			LedgerState: true,
			Metadata:    !doc.Placeholder,
		},
	}

	if e.ledger.MarketConfigured() {
		overlay, err := e.ledger.FetchMarketListing(ctx, id)
		if err != nil {
			logger.WarnCtx(ctx, "market listing lookup failed, overlay omitted",
				zap.Error(err),
				zap.Uint64("tile_id", uint64(id)))
		} else if overlay != nil {
			tile.Market = overlay
			tile.Provenance.Market = true
		}
	}

	return tile, nil
}

// emptyOwner reports whether an owner address is unset or the zero address
func emptyOwner(owner string) bool {
	return owner == "" || strings.EqualFold(owner, domain.EthereumZeroAddress)
}
