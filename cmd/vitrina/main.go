package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/vitrinashop/vitrina/internal/catalog"
	"github.com/vitrinashop/vitrina/internal/config"
	"github.com/vitrinashop/vitrina/internal/contact"
	"github.com/vitrinashop/vitrina/internal/log"
	"github.com/vitrinashop/vitrina/internal/rotation"
	"github.com/vitrinashop/vitrina/internal/search"
	"github.com/vitrinashop/vitrina/internal/store"
	"github.com/vitrinashop/vitrina/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// defaultCatalogURL serves the demo product documents
const defaultCatalogURL = "https://vitrinashop.github.io/catalog"

func main() {
	var showVersion bool
	var clearCache bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove the persisted catalog cache and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("vitrina %s\n", Version)
		return
	}

	if clearCache {
		if err := clearStore(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cache cleared.")
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// clearStore wipes the persisted store for the configured catalog URL.
func clearStore() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	catalogURL := cfg.Catalog.URL
	if catalogURL == "" {
		catalogURL = defaultCatalogURL
	}

	st, err := store.NewCatalogStore(config.GetCachePath(), catalogURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	st.InvalidateAll()
	return nil
}

func run() error {
	// Optional .env for local development overrides (VITRINA_*)
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting vitrina", "version", Version)

	// Write the defaults on first run so users have a file to edit.
	if _, err := os.Stat(config.ConfigFilePath()); os.IsNotExist(err) {
		if err := config.SaveConfig(cfg); err != nil {
			logger.Warn("failed to write default config", "error", err)
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("vitrina requires an interactive terminal")
	}

	catalogURL := cfg.Catalog.URL
	if catalogURL == "" {
		catalogURL = defaultCatalogURL
	}

	// Persisted catalog store; degraded to memory-only when the cache
	// directory is unusable.
	catalogStore, err := store.NewCatalogStore(config.GetCachePath(), catalogURL)
	if err != nil {
		logger.Warn("persistent cache unavailable, running in memory", "error", err)
		catalogStore, err = store.NewCatalogStore("", catalogURL)
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
	}
	defer catalogStore.Close()

	client := catalog.NewClient(catalogURL, logger)

	catalogSvc := catalog.NewService(client, catalogStore, cfg.Catalog.Countries, logger)
	searchSvc := search.NewService(logger)
	contactSvc := contact.NewService(catalogStore, logger)

	rotator := rotation.NewController(
		time.Duration(cfg.Rotation.IntervalMS)*time.Millisecond,
		cfg.Rotation.Enabled,
		logger,
	)

	model := tui.NewModel(cfg, catalogSvc, searchSvc, contactSvc, rotator, catalogStore, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
