// Package main runs the Lorcana companion REST API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/inkwellhq/lorcana-companion/internal/api"
	"github.com/inkwellhq/lorcana-companion/internal/collection"
	"github.com/inkwellhq/lorcana-companion/internal/config"
	"github.com/inkwellhq/lorcana-companion/internal/events"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/catalog"
	"github.com/inkwellhq/lorcana-companion/internal/session"
	"github.com/inkwellhq/lorcana-companion/internal/storage"
	"github.com/inkwellhq/lorcana-companion/internal/storage/repository"
	"github.com/inkwellhq/lorcana-companion/internal/version"
)

var (
	port    = flag.Int("port", 0, "API server port (overrides config)")
	dbPath  = flag.String("db-path", "", "Database path (overrides config)")
	dataset = flag.String("dataset", "", "Card dataset path (overrides bundled data)")
	userID  = flag.String("user", "", "User id (overrides config)")
	debug   = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *dataset != "" {
		cfg.Catalog.DatasetPath = *dataset
	}
	if *userID != "" {
		cfg.Session.UserID = *userID
	}
	if *debug {
		cfg.App.DebugMode = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	level := slog.LevelInfo
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	fmt.Printf("Lorcana Companion %s\n", version.GetVersion())
	fmt.Println("========================")

	// Card catalog, bundled unless the config points elsewhere.
	cat, err := catalog.NewService(logger)
	if err != nil {
		log.Fatalf("Failed to load card catalog: %v", err)
	}
	if cfg.Catalog.DatasetPath != "" {
		if err := cat.LoadFile(cfg.Catalog.DatasetPath); err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
	}

	dispatcher := events.NewDispatcher()
	if cfg.App.DebugMode {
		dispatcher.Register(events.NewLoggingObserver(true))
	}

	if cfg.Catalog.Watch && cfg.Catalog.DatasetPath != "" {
		watcher, err := catalog.NewWatcher(cat, cfg.Catalog.DatasetPath, logger, func() {
			dispatcher.Dispatch(events.Event{
				Type: events.TypeCatalogReloaded,
				Data: events.CatalogReloadedEvent{
					Prints: cat.PrintCount(),
					Cards:  len(cat.All()),
				},
			})
		})
		if err != nil {
			log.Fatalf("Failed to watch dataset: %v", err)
		}
		defer watcher.Close()
	}

	// Persistence and session. A signed-out session keeps everything in
	// memory.
	sessions := session.NewStaticProvider(cfg.Session.UserID, cfg.Session.DisplayName)

	path := cfg.Database.Path
	if path == "" {
		path, err = config.DefaultDatabasePath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
	}
	dbConfig := storage.DefaultConfig(path)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	fmt.Printf("Database: %s\n", path)

	var store collection.Store
	ledgerUser := ""
	if user := sessions.CurrentUser(); user != nil {
		store = repository.NewCollectionRepository(db.Conn())
		ledgerUser = user.ID
	}
	ledger := collection.NewLedger(collection.Config{
		UserID:     ledgerUser,
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger,
		QueueSize:  cfg.Sync.QueueSize,
		SyncRate:   rate.Limit(cfg.Sync.RatePerSecond),
	})
	defer ledger.Close()

	if store != nil {
		hydrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := ledger.Hydrate(hydrateCtx); err != nil {
			// The session continues with an empty ledger and error status.
			logger.Error("collection hydration failed", "error", err)
		}
		cancel()
	}

	server := api.NewServer(cfg.Addr(), api.Deps{
		Catalog:    cat,
		Ledger:     ledger,
		Decks:      repository.NewDeckRepository(db.Conn()),
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	server.Start()

	fmt.Printf("API server running at http://%s\n", cfg.Addr())
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	// Let pending collection writes reach the store before the db closes.
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFlush()
	if err := ledger.Flush(flushCtx); err != nil {
		log.Printf("Collection sync queue not drained: %v", err)
	}

	fmt.Println("API server stopped.")
}
