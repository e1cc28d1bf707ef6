package domain

import "errors"

var (
	// ErrInvalidIdentity is returned when a raw tile identifier cannot be
	// normalized to a TileID
	ErrInvalidIdentity = errors.New("invalid tile identity")

	// ErrUpstreamUnavailable is returned when the ledger RPC endpoint or
	// the pin store cannot be reached or times out
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedMetadata is returned when a fetched object cannot be
	// parsed as a tile metadata document
	ErrMalformedMetadata = errors.New("malformed metadata document")

	// ErrConfigurationMissing is returned when a required endpoint or
	// contract address is absent from the configuration
	ErrConfigurationMissing = errors.New("required configuration missing")
)
