// Package metadata turns pin store objects into typed tile metadata
// documents. The corpus is best-effort: whatever fetches and validates
// is kept, everything else is logged and skipped.
package metadata

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/identity"
	"github.com/pixelplot/tile-indexer/internal/logger"
	"github.com/pixelplot/tile-indexer/internal/providers/pinstore"
)

// ObjectLister lists candidate metadata objects from the pin store
type ObjectLister interface {
	Walk(ctx context.Context) ([]domain.ObjectHandle, error)
}

// Resolver fetches and parses tile metadata documents
//
//go:generate mockgen -source=resolver.go -destination=../mocks/metadata_resolver.go -package=mocks -mock_names=Resolver=MockMetadataResolver,ObjectLister=MockObjectLister
type Resolver interface {
	// Resolve fetches the object behind cid and parses it into a typed
	// document. Parse failures return ErrMalformedMetadata
	Resolve(ctx context.Context, cid string) (*domain.TileMetadata, error)

	// BuildCorpus resolves every candidate handle with bounded fan-out
	// and returns the corpus keyed by normalized self-declared identity.
	// Per-object failures are absorbed; identity collisions are settled
	// by most recent store upload timestamp, CID as the final tie-break
	BuildCorpus(ctx context.Context, handles []domain.ObjectHandle) map[domain.TileID]*domain.TileMetadata

	// ResolveRef resolves the document behind a ledger metadata
	// reference for one tile, falling back to the synthesized
	// placeholder so callers always receive a document shape
	ResolveRef(ctx context.Context, id domain.TileID, ref string) *domain.TileMetadata

	// ResolveByIdentity searches the store corpus for the document
	// self-declaring the identity, falling back to the synthesized
	// placeholder. It is the path for identities without a ledger
	// record, where no metadata reference exists to follow
	ResolveByIdentity(ctx context.Context, id domain.TileID) *domain.TileMetadata
}

type resolver struct {
	store   pinstore.Client
	lister  ObjectLister
	workers int
}

// NewResolver creates a resolver over the pin store. workers bounds the
// concurrent object fetches of a corpus build.
func NewResolver(store pinstore.Client, lister ObjectLister, workers int) Resolver {
	if workers <= 0 {
		workers = 10
	}
	return &resolver{store: store, lister: lister, workers: workers}
}

// Resolve fetches and parses a single metadata document
func (r *resolver) Resolve(ctx context.Context, cid string) (*domain.TileMetadata, error) {
	var raw map[string]any
	if err := r.store.FetchObject(ctx, cid, &raw); err != nil {
		return nil, err
	}

	return parseDocument(raw, cid)
}

// BuildCorpus resolves every candidate with bounded fan-out
func (r *resolver) BuildCorpus(ctx context.Context, handles []domain.ObjectHandle) map[domain.TileID]*domain.TileMetadata {
	corpus := make(map[domain.TileID]*domain.TileMetadata, len(handles))
	if len(handles) == 0 {
		return corpus
	}
	var mu sync.Mutex

	pool := pond.NewPool(r.workers, pond.WithContext(ctx), pond.WithQueueSize(len(handles)))
	for _, handle := range handles {
		pool.Submit(func() {
			doc, err := r.Resolve(ctx, handle.CID)
			if err != nil {
				// Best-effort corpus: a broken object is excluded, never fatal
				logger.Warn("excluding metadata object",
					zap.Error(err),
					zap.String("cid", handle.CID))
				return
			}
			if !doc.Declared {
				logger.Warn("excluding metadata object without tile identity",
					zap.String("cid", handle.CID),
					zap.String("name", handle.Name))
				return
			}
			doc.StoreCreated = handle.Created

			mu.Lock()
			defer mu.Unlock()
			if existing, ok := corpus[doc.TileID]; ok && !supersedes(doc, existing) {
				return
			}
			corpus[doc.TileID] = doc
		})
	}
	pool.StopAndWait()

	return corpus
}

// supersedes decides identity collisions across two store objects: the
// more recent upload wins, with CID ordering breaking exact timestamp
// ties so the result never depends on listing iteration order.
func supersedes(candidate, existing *domain.TileMetadata) bool {
	if !candidate.StoreCreated.Equal(existing.StoreCreated) {
		return candidate.StoreCreated.After(existing.StoreCreated)
	}
	return candidate.CID > existing.CID
}

// ResolveRef resolves a ledger metadata reference, with placeholder fallback
func (r *resolver) ResolveRef(ctx context.Context, id domain.TileID, ref string) *domain.TileMetadata {
	if ref == "" {
		return Placeholder(id)
	}

	doc, err := r.Resolve(ctx, ExtractCID(ref))
	if err != nil {
		logger.Warn("falling back to placeholder metadata",
			zap.Error(err),
			zap.Uint64("tile_id", uint64(id)),
			zap.String("ref", ref))
		return Placeholder(id)
	}

	// The ledger reference is authoritative for the direct path; a
	// document reached through it belongs to this tile even when its
	// self-declared identity is absent or disagrees
	doc.TileID = id
	return doc
}

// ResolveByIdentity finds the document self-declaring the identity,
// with placeholder fallback
func (r *resolver) ResolveByIdentity(ctx context.Context, id domain.TileID) *domain.TileMetadata {
	handles, err := r.lister.Walk(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "falling back to placeholder metadata",
			zap.Error(err),
			zap.Uint64("tile_id", uint64(id)))
		return Placeholder(id)
	}

	if doc, ok := r.BuildCorpus(ctx, handles)[id]; ok {
		return doc
	}
	return Placeholder(id)
}

// Placeholder synthesizes the minimal document used when no real
// metadata exists for an otherwise valid tile identity
func Placeholder(id domain.TileID) *domain.TileMetadata {
	return &domain.TileMetadata{
		TileID:      id,
		Placeholder: true,
		Name:        fmt.Sprintf("Tile #%d", id),
	}
}

// ExtractCID normalizes the historical content-reference encodings
// (bare CID, ipfs:// URI, gateway URL) to the bare content identifier
func ExtractCID(ref string) string {
	ref = strings.TrimSpace(ref)
	if after, ok := strings.CutPrefix(ref, "ipfs://"); ok {
		return after
	}
	if idx := strings.Index(ref, "/ipfs/"); idx >= 0 {
		return ref[idx+len("/ipfs/"):]
	}
	return ref
}

// parseDocument maps a decoded JSON object onto the typed document,
// keeping every field verbatim in Raw for pass-through
func parseDocument(raw map[string]any, cid string) (*domain.TileMetadata, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document %s", domain.ErrMalformedMetadata, cid)
	}

	doc := &domain.TileMetadata{
		CID: cid,
		Raw: raw,
	}

	if v, ok := raw["tile"]; ok {
		id, err := identity.NormalizeField(v)
		if err != nil {
			return nil, fmt.Errorf("%w: document %s: %v", domain.ErrInvalidIdentity, cid, err)
		}
		doc.TileID = id
		doc.Declared = true
	}

	if name, ok := raw["name"].(string); ok {
		doc.Name = name
	}
	if image, ok := raw["image"].(string); ok {
		doc.Image = image
	}
	if website, ok := raw["website"].(string); ok {
		doc.Website = website
	}
	if addr, ok := raw["external_address"].(string); ok {
		doc.ExternalAddress = addr
	}

	if socials, ok := raw["socials"].(map[string]any); ok {
		doc.Socials = make(map[string]string, len(socials))
		for network, handle := range socials {
			if h, ok := handle.(string); ok {
				doc.Socials[network] = h
			}
		}
	}

	return doc, nil
}
