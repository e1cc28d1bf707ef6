package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pixelplot/tile-indexer/internal/adapter"
	"github.com/pixelplot/tile-indexer/internal/api/server"
	"github.com/pixelplot/tile-indexer/internal/cache"
	"github.com/pixelplot/tile-indexer/internal/config"
	"github.com/pixelplot/tile-indexer/internal/logger"
	"github.com/pixelplot/tile-indexer/internal/metadata"
	"github.com/pixelplot/tile-indexer/internal/providers/ethereum"
	"github.com/pixelplot/tile-indexer/internal/providers/pinstore"
	"github.com/pixelplot/tile-indexer/internal/reconcile"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Tile Indexer API")

	// Connect to the ledger
	dialer := adapter.NewEthClientDialer()
	ethClient, err := dialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
	}

	ledger, err := ethereum.NewClient(ethClient, cfg.Ethereum.TilesContract, cfg.Ethereum.MarketplaceContract, cfg.Ethereum.RequestTimeout)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger client", zap.Error(err))
	}
	defer ledger.Close()
	logger.InfoCtx(ctx, "Connected to Ethereum RPC",
		zap.String("tiles_contract", cfg.Ethereum.TilesContract),
		zap.Bool("marketplace_configured", ledger.MarketConfigured()))

	// Pin store client and walker
	httpClient := adapter.NewHTTPClient(cfg.Store.RequestTimeout)
	storeClient, err := pinstore.NewClient(cfg.Store.ListURL, cfg.Store.GatewayURL, httpClient)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create pin store client", zap.Error(err))
	}
	walker := pinstore.NewWalker(storeClient, cfg.Store.PageSize)
	resolver := metadata.NewResolver(storeClient, walker, cfg.Worker.FetchPoolSize)

	// Reconciliation engine
	engine := reconcile.NewEngine(ledger, walker, resolver, adapter.NewClock(), reconcile.Config{
		ScanWindow:    cfg.Ethereum.ScanWindow,
		LookupWorkers: cfg.Worker.LookupPoolSize,
	})

	// Optional snapshot cache, owned here rather than by the engine
	var snapshotCache cache.SnapshotCache
	if cfg.Cache.RedisAddr != "" {
		redisClient := adapter.NewRedisClient(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis connection", zap.Error(err))
			}
		}()
		if err := redisClient.Ping(ctx); err != nil {
			logger.WarnCtx(ctx, "Redis unreachable, snapshot cache disabled", zap.Error(err))
		} else {
			snapshotCache = cache.NewRedisSnapshotCache(redisClient, adapter.NewJSON(), cfg.Cache.SnapshotTTL)
			logger.InfoCtx(ctx, "Snapshot cache enabled",
				zap.String("redis_addr", cfg.Cache.RedisAddr),
				zap.Duration("ttl", cfg.Cache.SnapshotTTL))
		}
	}

	service := reconcile.NewService(engine, snapshotCache)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Create and start server
	srv := server.New(serverConfig, service)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
