// Command snapshot runs a single reconciliation cycle against the configured
// ledger and pin store and prints the resulting market summary. It is meant
// for operational spot checks and cron-style exports.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pixelplot/tile-indexer/internal/adapter"
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
	fullDump   = flag.Bool("full", false, "Dump every reconciled tile instead of the summary only")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadSnapshotConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "snapshot",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

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

	httpClient := adapter.NewHTTPClient(cfg.Store.RequestTimeout)
	storeClient, err := pinstore.NewClient(cfg.Store.ListURL, cfg.Store.GatewayURL, httpClient)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create pin store client", zap.Error(err))
	}
	walker := pinstore.NewWalker(storeClient, cfg.Store.PageSize)
	resolver := metadata.NewResolver(storeClient, walker, cfg.Worker.FetchPoolSize)

	engine := reconcile.NewEngine(ledger, walker, resolver, adapter.NewClock(), reconcile.Config{
		ScanWindow:    cfg.Ethereum.ScanWindow,
		LookupWorkers: cfg.Worker.LookupPoolSize,
	})

	started := time.Now()
	snapshot, err := engine.Reconcile(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Reconciliation failed", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Reconciliation complete",
		zap.Uint64("from_block", snapshot.WindowFrom),
		zap.Uint64("to_block", snapshot.WindowTo),
		zap.Int("tiles", len(snapshot.Tiles)),
		zap.Int("degraded", snapshot.DegradedCount),
		zap.Bool("store_degraded", snapshot.StoreDegraded),
		zap.Duration("elapsed", time.Since(started)))

	var out any = reconcile.MarketSummary(snapshot)
	if *fullDump {
		out = snapshot
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		logger.FatalCtx(ctx, "Failed to encode output", zap.Error(err))
	}
}
