package domain

const (
	// GridWidth is the width of the tile grid. Legacy "x-y" identifiers
	// are row-major coordinates on this grid.
	GridWidth = 40

	// DefaultScanWindow is the number of recent blocks covered by a
	// creation-event scan when no window is configured.
	DefaultScanWindow = 10000

	// DefaultListPageSize is the page size used against the pin store
	// listing API.
	DefaultListPageSize = 1000

	// EthereumZeroAddress marks mints and burns in transfer events.
	EthereumZeroAddress = "0x0000000000000000000000000000000000000000"
)
