package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chickentitle/titlehall/titlehall"
	"github.com/chickentitle/titlehall/titlehall/catalog"
	"github.com/chickentitle/titlehall/titlehall/database"
	"github.com/chickentitle/titlehall/titlehall/database/repositories"
	"github.com/chickentitle/titlehall/titlehall/economy"
	"github.com/chickentitle/titlehall/titlehall/logger"
	"github.com/chickentitle/titlehall/titlehall/services"
	"github.com/chickentitle/titlehall/titlehall/web"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := loadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	customHandler := logger.NewHandler("titlehall", cfg.Log.Level)
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting TitleHall",
		slog.String("version", version),
		slog.String("commit", commit))

	cat, err := loadCatalog(cfg)
	if err != nil {
		slog.Error("Failed to load catalog", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Catalog loaded",
		slog.Int("unlocks", len(cat.Unlocks())),
		slog.Int("objectives", len(cat.Objectives())))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize account store", slog.Any("error", err))
		os.Exit(-1)
	}
	defer closeStore()

	recorder := services.NewRecorder()
	notifier := services.Fanout{services.LogNotifier{}, recorder}

	ledger := economy.NewLedger(cat)
	tracker := services.NewTracker(cat, ledger, notifier)
	chat := services.NewChatFeed()
	session := services.NewSessionManager(
		store, cat, ledger, tracker, chat, notifier,
		cfg.Game.StartingGrant,
		time.Duration(cfg.Game.TickIntervalSeconds)*time.Second,
	)
	if cfg.Game.AutosaveSeconds > 0 {
		session.StartAutosave(ctx, time.Duration(cfg.Game.AutosaveSeconds)*time.Second)
	}

	app := web.NewApp(session, chat, cat, recorder)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.Server.ListenAddr)
	})
	g.Go(func() error {
		s := make(chan os.Signal, 1)
		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-gctx.Done():
			return gctx.Err()
		case sig := <-s:
			slog.Info("Shutting down", slog.String("signal", sig.String()))
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := session.Flush(shutdownCtx); err != nil {
			slog.Error("Failed to flush session on shutdown", slog.Any("error", err))
		}
		return app.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		slog.Error("Server exited with error", slog.Any("error", err))
		os.Exit(-1)
	}
	logger.LogSystem("Shutdown complete")
}

// loadConfig reads the TOML config, falling back to builtin defaults
// when no file exists at the given path.
func loadConfig(path string) (*titlehall.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return titlehall.DefaultConfig(), nil
	}
	return titlehall.LoadConfig(path)
}

func loadCatalog(cfg *titlehall.Config) (*catalog.Catalog, error) {
	if cfg.Game.CatalogPath != "" {
		return catalog.Load(cfg.Game.CatalogPath)
	}
	return catalog.Default(), nil
}

// buildStore selects the persistence backend. Postgres gets the pooled
// repository with schema bootstrap; anything else runs in-memory.
func buildStore(ctx context.Context, cfg *titlehall.Config) (repositories.AccountStore, func(), error) {
	if cfg.DB.Driver != "postgres" {
		logger.LogSystem("Using in-memory account store")
		return repositories.NewMemoryStore(), func() {}, nil
	}

	start := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	slog.Info("Database connected",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(start)))
	return repositories.NewAccountRepository(db.BunDB()), db.Close, nil
}
