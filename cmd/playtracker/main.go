package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"playtracker/internal/config"
	"playtracker/internal/orchestrator"
	"playtracker/internal/spotify"
	"playtracker/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
		verbose    = flag.Bool("v", false, "Verbose output")
		noEnrich   = flag.Bool("no-enrich", false, "Skip fetching the top-track/top-artist lists")
	)
	flag.Parse()

	logger := newLogger(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	client := spotify.NewClient(&cfg.Spotify)

	orch := orchestrator.New(cfg, client, st, logger, !*noEnrich)

	summary, err := orch.Run(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}

	fmt.Printf("✅ %s\n", summary.Message)
}

// newLogger builds a console logger on stderr; verbose enables debug level.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
