package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pixelplot/tile-indexer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// EthereumConfig holds ledger access configuration
type EthereumConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	TilesContract       string        `mapstructure:"tiles_contract"`
	MarketplaceContract string        `mapstructure:"marketplace_contract"` // optional
	ScanWindow          uint64        `mapstructure:"scan_window"`          // recent blocks covered by the event scan
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
}

// StoreConfig holds pin store access configuration
type StoreConfig struct {
	ListURL        string        `mapstructure:"list_url"`
	GatewayURL     string        `mapstructure:"gateway_url"`
	PageSize       int           `mapstructure:"page_size"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// WorkerConfig holds fan-out bounds
type WorkerConfig struct {
	LookupPoolSize int `mapstructure:"lookup_pool_size"` // concurrent ledger point lookups
	FetchPoolSize  int `mapstructure:"fetch_pool_size"`  // concurrent metadata object fetches
}

// CacheConfig holds the optional snapshot cache configuration. An empty
// redis_addr disables the cache.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	SnapshotTTL   time.Duration `mapstructure:"snapshot_ttl"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Store      StoreConfig    `mapstructure:"store"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	Cache      CacheConfig    `mapstructure:"cache"`
}

// SnapshotConfig holds configuration for the one-shot snapshot tool
type SnapshotConfig struct {
	BaseConfig `mapstructure:",squash"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Store      StoreConfig    `mapstructure:"store"`
	Worker     WorkerConfig   `mapstructure:"worker"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	setUpstreamDefaults(v)
	v.SetDefault("cache.snapshot_ttl", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateUpstreams(config.Ethereum, config.Store); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSnapshotConfig loads configuration for the snapshot tool
func LoadSnapshotConfig(configFile string, envPath string) (*SnapshotConfig, error) {
	v := configureViper("snapshot", configFile, envPath)

	setUpstreamDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config SnapshotConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateUpstreams(config.Ethereum, config.Store); err != nil {
		return nil, err
	}

	return &config, nil
}

// setUpstreamDefaults sets defaults shared by every binary
func setUpstreamDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.scan_window", domain.DefaultScanWindow)
	v.SetDefault("ethereum.request_timeout", "10s")
	v.SetDefault("store.page_size", domain.DefaultListPageSize)
	v.SetDefault("store.request_timeout", "30s")
	v.SetDefault("worker.lookup_pool_size", 10)
	v.SetDefault("worker.fetch_pool_size", 10)
}

// validateUpstreams fails fast on absent required endpoints so
// misconfiguration never degrades silently
func validateUpstreams(eth EthereumConfig, store StoreConfig) error {
	if eth.RPCURL == "" {
		return fmt.Errorf("%w: ethereum.rpc_url", domain.ErrConfigurationMissing)
	}
	if eth.TilesContract == "" {
		return fmt.Errorf("%w: ethereum.tiles_contract", domain.ErrConfigurationMissing)
	}
	if store.ListURL == "" {
		return fmt.Errorf("%w: store.list_url", domain.ErrConfigurationMissing)
	}
	if store.GatewayURL == "" {
		return fmt.Errorf("%w: store.gateway_url", domain.ErrConfigurationMissing)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/snapshot/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("TILE_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.tiles_contract",
		"ethereum.marketplace_contract",
		"ethereum.scan_window",
		"ethereum.request_timeout",
		// Pin store
		"store.list_url",
		"store.gateway_url",
		"store.page_size",
		"store.request_timeout",
		// Worker
		"worker.lookup_pool_size",
		"worker.fetch_pool_size",
		// Cache
		"cache.redis_addr",
		"cache.redis_password",
		"cache.redis_db",
		"cache.snapshot_ttl",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
