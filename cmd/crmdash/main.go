package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/crmdash/internal/api"
	"github.com/tgienger/crmdash/internal/config"
	"github.com/tgienger/crmdash/internal/db"
	"github.com/tgienger/crmdash/internal/store"
	"github.com/tgienger/crmdash/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	logFile := flag.String("log", "", "write debug log to `file` (default $CRMDASH_LOG)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("crmdash %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "crmdash")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	// Initialize database
	database, err := db.New(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	client := api.NewClient(api.Config{
		BaseURL:         cfg.APIBaseURL,
		ProductsAddPath: cfg.ProductsAddPath,
		Timeout:         cfg.Timeout,
		MaxRetries:      cfg.MaxRetries,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
		UserAgent:       "crmdash/" + version,
	})
	log.Printf("crmdash %s starting, api %s", version, cfg.APIBaseURL)

	// Create and run the application
	app := ui.NewApp(database, store.New(client), cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
