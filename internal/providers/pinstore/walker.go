package pinstore

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/logger"
)

// Walker paginates through the whole pin listing and collects candidate
// metadata objects. No state survives a walk.
type Walker struct {
	client   Client
	pageSize int
}

// NewWalker creates a walker over the listing API
func NewWalker(client Client, pageSize int) *Walker {
	if pageSize <= 0 {
		pageSize = domain.DefaultListPageSize
	}
	return &Walker{client: client, pageSize: pageSize}
}

// Walk lists every object in the store and returns the candidates that
// look like tile metadata documents, in listing order. The listing may
// repeat handles across pages (store-side eventual consistency), so
// results are deduplicated by CID with the first occurrence kept.
// Termination follows the store's documented last-page signal: a page
// shorter than the requested size, or an empty one.
func (w *Walker) Walk(ctx context.Context) ([]domain.ObjectHandle, error) {
	var candidates []domain.ObjectHandle
	seen := make(map[string]struct{})
	cursor := ""
	pages := 0

	for {
		page, err := w.client.ListObjects(ctx, cursor, w.pageSize)
		if err != nil {
			return nil, err
		}
		pages++

		for _, handle := range page.Items {
			if _, dup := seen[handle.CID]; dup {
				continue
			}
			seen[handle.CID] = struct{}{}

			if !IsCandidate(handle) {
				continue
			}
			candidates = append(candidates, handle)
		}

		if len(page.Items) < w.pageSize || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	logger.Debug("pin store walk completed",
		zap.Int("pages", pages),
		zap.Int("candidates", len(candidates)),
		zap.Int("unique_objects", len(seen)))

	return candidates, nil
}

// IsCandidate reports whether a listed object looks like a structured
// metadata document. Binary assets (tile images) share the store, so
// filtering here avoids wasted fetch+parse cycles.
func IsCandidate(handle domain.ObjectHandle) bool {
	if strings.HasPrefix(handle.ContentType, "application/json") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(handle.Name), ".json")
}
