// Package identity canonicalizes the historical encodings of a tile
// identifier into one numeric TileID. Pure functions, no I/O.
package identity

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/pixelplot/tile-indexer/internal/domain"
)

// coordinatePattern matches the legacy "x-y" coordinate-pair encoding.
var coordinatePattern = regexp.MustCompile(`^(\d+)-(\d+)$`)

// Normalize canonicalizes a raw string identifier. Accepted forms, in
// order: a plain non-negative integer, and the legacy "x-y" coordinate
// pair which maps row-major onto the grid with
// id = x + (y-1)*GridWidth. Anything else fails with ErrInvalidIdentity;
// unrecognized encodings are a data-quality error and are never coerced.
func Normalize(raw string) (domain.TileID, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: empty identifier", domain.ErrInvalidIdentity)
	}

	if m := coordinatePattern.FindStringSubmatch(raw); m != nil {
		x, errX := strconv.ParseUint(m[1], 10, 64)
		y, errY := strconv.ParseUint(m[2], 10, 64)
		if errX != nil || errY != nil {
			return 0, fmt.Errorf("%w: coordinate out of range in %q", domain.ErrInvalidIdentity, raw)
		}
		return fromCoordinates(x, y)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unrecognized encoding %q", domain.ErrInvalidIdentity, raw)
	}
	return domain.TileID(id), nil
}

// NormalizeField canonicalizes a tile identifier as it appears inside a
// decoded JSON document, where numbers arrive as float64 and legacy
// documents carry strings.
func NormalizeField(v any) (domain.TileID, error) {
	switch raw := v.(type) {
	case string:
		return Normalize(raw)
	case float64:
		if raw < 0 || raw != math.Trunc(raw) {
			return 0, fmt.Errorf("%w: non-integral numeric identity %v", domain.ErrInvalidIdentity, raw)
		}
		return domain.TileID(raw), nil
	case int:
		if raw < 0 {
			return 0, fmt.Errorf("%w: negative identity %d", domain.ErrInvalidIdentity, raw)
		}
		return domain.TileID(raw), nil
	case uint64:
		return domain.TileID(raw), nil
	default:
		return 0, fmt.Errorf("%w: unsupported identity type %T", domain.ErrInvalidIdentity, v)
	}
}

// fromCoordinates converts a legacy coordinate pair to the canonical
// identity. Column x runs 1..GridWidth, row y starts at 1.
func fromCoordinates(x, y uint64) (domain.TileID, error) {
	if x < 1 || x > domain.GridWidth {
		return 0, fmt.Errorf("%w: column %d outside grid width %d", domain.ErrInvalidIdentity, x, domain.GridWidth)
	}
	if y < 1 {
		return 0, fmt.Errorf("%w: row %d below 1", domain.ErrInvalidIdentity, y)
	}
	// Uint64 wrap-around would coerce an absurd row into a small identity.
	if y-1 > (math.MaxUint64-x)/domain.GridWidth {
		return 0, fmt.Errorf("%w: row %d overflows the identity space", domain.ErrInvalidIdentity, y)
	}
	return domain.TileID(x + (y-1)*domain.GridWidth), nil
}

// CoordinateString renders the canonical identity back into the legacy
// "x-y" form for display. It is the inverse of Normalize for every legal
// coordinate-pair encoding.
func CoordinateString(id domain.TileID) string {
	if id == 0 {
		return "0-0"
	}
	x := (uint64(id)-1)%domain.GridWidth + 1
	y := (uint64(id)-1)/domain.GridWidth + 1
	return fmt.Sprintf("%d-%d", x, y)
}
