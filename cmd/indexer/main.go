package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sonobay/sonobay-indexer/internal/adapter"
	"github.com/sonobay/sonobay-indexer/internal/api/rest"
	"github.com/sonobay/sonobay-indexer/internal/api/server"
	"github.com/sonobay/sonobay-indexer/internal/burn"
	"github.com/sonobay/sonobay-indexer/internal/config"
	"github.com/sonobay/sonobay-indexer/internal/indexer"
	"github.com/sonobay/sonobay-indexer/internal/listener"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/messaging"
	"github.com/sonobay/sonobay-indexer/internal/metadata"
	"github.com/sonobay/sonobay-indexer/internal/providers/ethereum"
	"github.com/sonobay/sonobay-indexer/internal/providers/jetstream"
	"github.com/sonobay/sonobay-indexer/internal/queue"
	"github.com/sonobay/sonobay-indexer/internal/store"
	"github.com/sonobay/sonobay-indexer/internal/sweeper"
	"github.com/sonobay/sonobay-indexer/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "sonobay-indexer",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting SonoBay indexer", zap.String("chain", string(cfg.Ethereum.ChainID)))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		cfg.Database.ConnMaxIdleTime,
	); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to get database handle", zap.Error(err))
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	httpClient := adapter.NewHTTPClient(cfg.Metadata.HTTPTimeout, nil)

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	ethClient, err := ethDialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum websocket", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to Ethereum websocket")

	midiContract := ethereum.NewMidiContract(ethClient, ethereum.ContractConfig{
		MidiAddress:           cfg.Ethereum.MidiAddress,
		MintHistoryStartBlock: cfg.Ethereum.MintHistoryStartBlock,
		MaxBlockRange:         cfg.Ethereum.MaxBlockRange,
	})
	subscriber := ethereum.NewSubscriber(ethereum.SubscriberConfig{
		ChainID:       cfg.Ethereum.ChainID,
		MidiAddress:   cfg.Ethereum.MidiAddress,
		MarketAddress: cfg.Ethereum.MarketAddress,
	}, ethClient)

	// Change notifications are optional
	publisher := messaging.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter, clockAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream")
	}
	defer publisher.Close()

	// Indexing pipeline
	uriResolver := uri.NewResolver(&uri.Config{
		IPFSGateways:    cfg.Metadata.IPFSGateways,
		ArweaveGateways: cfg.Metadata.ArweaveGateways,
	})
	fetcher := metadata.NewFetcher(midiContract, httpClient, uriResolver, jsonAdapter)
	tokenIndexer := indexer.NewIndexer(fetcher, indexer.NewDeviceResolver(dataStore), dataStore, jcsAdapter, publisher)
	retryQueue := queue.NewRetryQueue(dataStore)
	burnHandler := burn.NewHandler(midiContract, dataStore, publisher)

	eventListener := listener.NewListener(listener.Config{
		StartBlock:      cfg.Ethereum.StartBlock,
		WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
		WorkerQueueSize: cfg.Worker.WorkerQueueSize,
	}, subscriber, midiContract, tokenIndexer, retryQueue, burnHandler, dataStore, publisher, clockAdapter)
	defer eventListener.Close()

	scheduler := sweeper.NewScheduler(clockAdapter,
		sweeper.Job{
			Sweeper:  sweeper.NewQueueDrain(sweeper.QueueDrainConfig{AttemptCeiling: cfg.Queue.AttemptCeiling}, retryQueue, tokenIndexer),
			Interval: cfg.Queue.DrainInterval,
		},
		sweeper.Job{
			Sweeper: sweeper.NewReconciler(sweeper.ReconcilerConfig{
				AbortOnMissingOperator: cfg.Reconcile.AbortOnMissingOperator,
			}, midiContract, dataStore, retryQueue, tokenIndexer),
			Interval:   cfg.Reconcile.Interval,
			RunOnStart: cfg.Reconcile.RunOnStart,
		},
	)

	apiServer := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, rest.NewHandler(rest.HandlerConfig{AttemptCeiling: cfg.Queue.AttemptCeiling},
		tokenIndexer, midiContract, burnHandler, retryQueue, dataStore))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eventListener.Run(gCtx)
	})
	g.Go(func() error {
		return scheduler.Start(gCtx)
	})
	g.Go(func() error {
		return apiServer.Start()
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return apiServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(err, zap.String("message", "Indexer stopped with error"))
	}

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("SonoBay indexer stopped")
}
