// Package main provides the main entry point for the library system
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vishu-0105/Library-Testing-System/api"
	"github.com/Vishu-0105/Library-Testing-System/pkg/activity"
	"github.com/Vishu-0105/Library-Testing-System/pkg/auth"
	"github.com/Vishu-0105/Library-Testing-System/pkg/catalog"
	"github.com/Vishu-0105/Library-Testing-System/pkg/config"
	"github.com/Vishu-0105/Library-Testing-System/pkg/contact"
	"github.com/Vishu-0105/Library-Testing-System/pkg/dashboard"
	"github.com/Vishu-0105/Library-Testing-System/pkg/directory"
	"github.com/Vishu-0105/Library-Testing-System/pkg/logger"
	"github.com/Vishu-0105/Library-Testing-System/pkg/metrics"
	"github.com/Vishu-0105/Library-Testing-System/pkg/storage"
)

// Version information (set by build process)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Command line flags
var (
	configFile  = flag.String("config", "", "Path to configuration file")
	logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	port        = flag.Int("port", 0, "HTTP listen port (overrides config)")
	dbPath      = flag.String("db", "", "SQLite database path (overrides config)")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Modern Library System %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, manager, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting Modern Library System", map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	})

	if *configFile != "" {
		manager.Watch(func(updated *config.Config) {
			appLogger.Info("Configuration file changed", map[string]interface{}{
				"log_level": updated.LogLevel,
			})
		})
	}

	db, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if closeErr := storage.Close(db); closeErr != nil {
			appLogger.Error("Failed to close storage", closeErr)
		}
	}()

	dir, err := directory.NewRepository(db)
	if err != nil {
		return fmt.Errorf("failed to initialize user directory: %w", err)
	}

	cat, err := catalog.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	activityLog := activity.NewLog(cfg.ActivityCapacity)
	counters := metrics.NewCounters()

	intake, err := contact.NewIntake(db, activityLog, counters)
	if err != nil {
		return fmt.Errorf("failed to initialize contact intake: %w", err)
	}

	server := api.NewServer(api.Deps{
		Config:    cfg,
		Logger:    appLogger,
		DB:        db,
		Auth:      auth.NewService(cfg, dir, activityLog, counters),
		Catalog:   cat,
		Directory: dir,
		Contact:   intake,
		Dashboard: dashboard.NewAggregator(cat, dir, activityLog, counters),
		Recorder:  activityLog,
		Counters:  counters,
	})

	return server.Start(ctx)
}

func loadConfig() (*config.Config, *config.Manager, error) {
	manager := config.NewManager()
	cfg, err := manager.Load(*configFile)
	if err != nil {
		return nil, nil, err
	}

	// Command line flags override file and environment settings
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *port != 0 {
		cfg.ServerPort = *port
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, manager, nil
}
