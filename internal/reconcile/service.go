package reconcile

import (
	"context"

	"github.com/pixelplot/tile-indexer/internal/cache"
	"github.com/pixelplot/tile-indexer/internal/domain"
)

// Service is the consumer-facing query surface over the engine
//
//go:generate mockgen -source=service.go -destination=../mocks/reconcile_service.go -package=mocks -mock_names=Service=MockService
type Service interface {
	// TileDetail returns the reconciled record for one tile
	TileDetail(ctx context.Context, id domain.TileID) (domain.ReconciledTile, error)

	// UserPortfolio returns every tile held by owner. An unknown owner
	// yields an empty portfolio, not an error
	UserPortfolio(ctx context.Context, owner string) ([]PortfolioEntry, error)

	// MarketSummary returns marketplace-wide counts
	MarketSummary(ctx context.Context) (Summary, error)
}

type service struct {
	engine *Engine
	cache  cache.SnapshotCache
}

// NewService creates the query service. snapshotCache may be nil, in
// which case every aggregate query runs a fresh reconciliation cycle.
func NewService(engine *Engine, snapshotCache cache.SnapshotCache) Service {
	return &service{engine: engine, cache: snapshotCache}
}

// TileDetail uses the direct single-identity path; it never triggers a
// full reconciliation cycle
func (s *service) TileDetail(ctx context.Context, id domain.TileID) (domain.ReconciledTile, error) {
	return s.engine.TileDetail(ctx, id)
}

// UserPortfolio projects the current snapshot onto one owner
func (s *service) UserPortfolio(ctx context.Context, owner string) ([]PortfolioEntry, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return UserPortfolio(snapshot, owner), nil
}

// MarketSummary computes counts over the current snapshot
func (s *service) MarketSummary(ctx context.Context) (Summary, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}
	return MarketSummary(snapshot), nil
}

// snapshot returns the cached snapshot when fresh, otherwise runs one
// reconciliation cycle and populates the cache
func (s *service) snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if s.cache != nil {
		if snapshot, ok := s.cache.Get(ctx); ok {
			return snapshot, nil
		}
	}

	snapshot, err := s.engine.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, snapshot)
	}

	return snapshot, nil
}
