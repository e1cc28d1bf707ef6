package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplot/tile-indexer/internal/config"
	"github.com/pixelplot/tile-indexer/internal/domain"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TILE_INDEXER_ETHEREUM_RPC_URL", "https://rpc.example.com")
	t.Setenv("TILE_INDEXER_ETHEREUM_TILES_CONTRACT", "0x1111111111111111111111111111111111111111")
	t.Setenv("TILE_INDEXER_STORE_LIST_URL", "https://api.example.com/pins")
	t.Setenv("TILE_INDEXER_STORE_GATEWAY_URL", "https://gateway.example.com")
}

func TestLoadAPIConfig_FromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TILE_INDEXER_DEBUG", "true")
	t.Setenv("TILE_INDEXER_SERVER_PORT", "9090")
	t.Setenv("TILE_INDEXER_ETHEREUM_MARKETPLACE_CONTRACT", "0x2222222222222222222222222222222222222222")
	t.Setenv("TILE_INDEXER_ETHEREUM_SCAN_WINDOW", "5000")
	t.Setenv("TILE_INDEXER_CACHE_REDIS_ADDR", "localhost:6379")
	t.Setenv("TILE_INDEXER_CACHE_SNAPSHOT_TTL", "45s")

	cfg, err := config.LoadAPIConfig("", "")
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://rpc.example.com", cfg.Ethereum.RPCURL)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", cfg.Ethereum.MarketplaceContract)
	assert.Equal(t, uint64(5000), cfg.Ethereum.ScanWindow)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 45*time.Second, cfg.Cache.SnapshotTTL)
}

func TestLoadAPIConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadAPIConfig("", "")
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, uint64(domain.DefaultScanWindow), cfg.Ethereum.ScanWindow)
	assert.Equal(t, 10*time.Second, cfg.Ethereum.RequestTimeout)
	assert.Equal(t, domain.DefaultListPageSize, cfg.Store.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Store.RequestTimeout)
	assert.Equal(t, 10, cfg.Worker.LookupPoolSize)
	assert.Equal(t, 10, cfg.Worker.FetchPoolSize)
	assert.Equal(t, 30*time.Second, cfg.Cache.SnapshotTTL)

	// Optional upstreams stay absent
	assert.Empty(t, cfg.Ethereum.MarketplaceContract)
	assert.Empty(t, cfg.Cache.RedisAddr)
}

func TestLoadAPIConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		skip string
	}{
		{"rpc url", "TILE_INDEXER_ETHEREUM_RPC_URL"},
		{"tiles contract", "TILE_INDEXER_ETHEREUM_TILES_CONTRACT"},
		{"store list url", "TILE_INDEXER_STORE_LIST_URL"},
		{"store gateway url", "TILE_INDEXER_STORE_GATEWAY_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.skip, "")

			_, err := config.LoadAPIConfig("", "")
			assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
		})
	}
}

func TestLoadSnapshotConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TILE_INDEXER_WORKER_FETCH_POOL_SIZE", "32")

	cfg, err := config.LoadSnapshotConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, "https://rpc.example.com", cfg.Ethereum.RPCURL)
	assert.Equal(t, 32, cfg.Worker.FetchPoolSize)
}
