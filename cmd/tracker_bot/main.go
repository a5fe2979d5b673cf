package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"masonry_tracker/internal/app/command"
	"masonry_tracker/internal/app/service"
	coingecko "masonry_tracker/internal/client"
	"masonry_tracker/internal/infrastructure/configloader"
	clientprovider "masonry_tracker/internal/infrastructure/network/client"
	networkdefinition "masonry_tracker/internal/infrastructure/network/definition"
	"masonry_tracker/internal/infrastructure/restapi"
	"masonry_tracker/internal/infrastructure/telegram"
	"masonry_tracker/internal/infrastructure/tokenloader"
	"masonry_tracker/internal/infrastructure/walletloader"
	"masonry_tracker/internal/pkg/logger"
	"masonry_tracker/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := configloader.LoadEnvFile(""); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: %v\n", err)
		os.Exit(1)
	}

	configPath := os.Getenv(configloader.EnvConfigPath)
	if configPath == "" {
		configPath = configloader.DefaultConfigPath
	}
	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.Init(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	logger.Info("Masonry tracker starting", "config", configPath, "log_level", cfg.Logging.Level)
	if !cfg.Server.Enabled && cfg.Telegram.Token == "" {
		logger.Fatal("Nothing to run: set " + configloader.EnvTelegramToken + " or enable server")
	}

	metrics.MustRegisterMetrics()
	appLogger := logger.NewSlogAdapter()

	networkProvider, err := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.Network)
	if err != nil {
		logger.Fatal("Failed to initialize network definition", "error", err)
	}
	netDef := networkProvider.Active()
	if netDef.CoinGeckoPlatformID != "" && cfg.CoinGecko.PlatformID != netDef.CoinGeckoPlatformID {
		logger.Warn("CoinGecko platform differs from the network's platform",
			"configured", cfg.CoinGecko.PlatformID, "network", netDef.CoinGeckoPlatformID)
	}

	clientProvider := clientprovider.NewEVMClientProvider(cfg, logger.Info, logger.Error)

	var abiJSON string
	if cfg.Masonry.ABIFile != "" {
		data, err := os.ReadFile(cfg.Masonry.ABIFile)
		if err != nil {
			logger.Fatal("Failed to read masonry ABI file", "path", cfg.Masonry.ABIFile, "error", err)
		}
		abiJSON = string(data)
	}
	masonry, err := clientprovider.NewMasonryContract(cfg.Masonry.Address, abiJSON, netDef, clientProvider, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize masonry contract", "error", err)
	}

	priceClient := coingecko.NewCoinGeckoClient(cfg.CoinGecko, zapLogger)

	walletProvider := walletloader.NewWalletLoader(cfg.Tracker.WalletAddress, logger.Info)
	if _, err := walletProvider.GetWallet(); err != nil {
		logger.Fatal("Invalid tracked wallet", "error", err)
	}

	statsService, err := service.NewStatsService(masonry, priceClient, tokenloader.NewTokenLoader(cfg.Masonry, logger.Info), appLogger, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize stats service", "error", err)
	}
	dispatcher := command.NewDispatcher(statsService, walletProvider, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	if cfg.Server.Enabled {
		if cfg.Logging.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := restapi.SetupRouter(
			restapi.NewStatsHandler(statsService, walletProvider, appLogger),
			restapi.NewNetworkHandler(networkProvider),
			cfg.Server,
		)
		srv = &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		}
		go func() {
			logger.Info("Starting HTTP server", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("HTTP server failed", "error", err)
			}
		}()
	}

	var wg sync.WaitGroup
	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram, dispatcher, appLogger, telegram.NewLibraryLogger(cfg.Logging.Level))
		if err != nil {
			logger.Fatal("Failed to start telegram bot", "error", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.Run(ctx)
		}()
	}

	logger.Info("Masonry tracker running. Press Ctrl+C to stop.")
	<-ctx.Done()
	logger.Info("Shutdown signal received")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server stopped")
		}
		cancel()
	}
	wg.Wait()
	logger.Info("Masonry tracker stopped")
}
