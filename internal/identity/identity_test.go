package identity_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/identity"
)

func TestNormalize_Numeric(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.TileID
	}{
		{"0", 0},
		{"1", 1},
		{"45", 45},
		{"1600", 1600},
		{"18446744073709551615", 18446744073709551615},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := identity.Normalize(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNormalize_CoordinatePair(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.TileID
	}{
		{"1-1", 1},
		{"5-2", 45},
		{"40-1", 40},
		{"1-2", 41},
		{"40-40", 1600},
		// largest row that still fits the identity space for column 1
		{"1-461168601842738791", 18446744073709551601},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := identity.Normalize(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []string{
		"",
		"abc",
		"12.5",
		"-1",
		"0-1",   // column below 1
		"41-1",  // column beyond grid width
		"5-0",   // row below 1
		"1-2-3", // too many components
		"0x2d",
		" 45",
		"5-922337203685477581",    // row wraps the identity space
		"40-18446744073709551615", // row at uint64 max
	}

	for _, raw := range tests {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			_, err := identity.Normalize(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
		})
	}
}

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    domain.TileID
		wantErr bool
	}{
		{"json number", float64(45), 45, false},
		{"string numeric", "45", 45, false},
		{"string coordinate", "5-2", 45, false},
		{"int", 45, 45, false},
		{"uint64", uint64(45), 45, false},
		{"fractional number", 45.5, 0, true},
		{"negative number", float64(-1), 0, true},
		{"negative int", -1, 0, true},
		{"bool", true, 0, true},
		{"nil", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := identity.NormalizeField(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestCoordinateString(t *testing.T) {
	tests := []struct {
		id   domain.TileID
		want string
	}{
		{1, "1-1"},
		{40, "40-1"},
		{41, "1-2"},
		{45, "5-2"},
		{1600, "40-40"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, identity.CoordinateString(tt.id))
	}
}

// CoordinateString must invert Normalize for every legal coordinate pair.
func TestCoordinateString_RoundTrip(t *testing.T) {
	for y := uint64(1); y <= 40; y++ {
		for x := uint64(1); x <= domain.GridWidth; x++ {
			raw := fmt.Sprintf("%d-%d", x, y)
			id, err := identity.Normalize(raw)
			assert.NoError(t, err)
			assert.Equal(t, raw, identity.CoordinateString(id))
		}
	}
}
