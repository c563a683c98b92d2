package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/plasma-remote/pkg/assistant"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/db"
	remotemcp "github.com/urmzd/plasma-remote/pkg/mcp"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/schema"
)

func main() {
	// Logging must go to stderr, stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env")
	}

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/plasma-remote/remote.db)")
	channelsPath := flag.String("channels", "", "YAML channel lineup (default: built-in French DTT)")
	profileName := flag.String("profile", "", "Profile to activate, created with defaults if missing (default: last active)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	if *profileName != "" {
		profile, err := database.UseProfile(ctx, *profileName)
		if err != nil {
			log.Fatal().Err(err).Str("profile", *profileName).Msg("Failed to activate profile")
		}
		log.Info().Str("profile", profile.Name).Int64("id", profile.ID).Msg("Profile activated")
	}

	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	lineup := channels.Default()
	if *channelsPath != "" {
		lineup, err = channels.LoadFile(*channelsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *channelsPath).Msg("Failed to load channel lineup")
		}
	}

	manager := bridge.NewManager()
	if err := manager.Configure(cfg.BridgeConfig()); err != nil {
		log.Warn().Err(err).Msg("Stored bridge config rejected, bridge disabled")
	}
	defer func() {
		manager.Wait()
		if err := manager.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close bridge")
		}
	}()

	dispatcher := remote.NewDispatcher(
		remote.WithSender(manager),
		remote.WithStoredProtocol(cfg.Protocol()),
	)
	defer dispatcher.Close()

	profileID := cfg.ProfileID()

	var interpreter assistant.Interpreter
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		g, err := assistant.NewGemini(schema.NewValidator(),
			assistant.WithAPIKey(key),
			assistant.WithModel(os.Getenv("GEMINI_MODEL")),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini interpreter")
		}
		interpreter = g
	}

	// Create and start MCP server
	mcpServer := remotemcp.NewServer(remotemcp.Deps{
		Dispatcher: dispatcher,
		Shortcuts:  remote.NewShortcuts(database.Shortcuts(), profileID, dispatcher),
		Bridge:     manager,
		Lineup:     lineup,
		Assistant:  assistant.New(interpreter, dispatcher, lineup, database.History(), profileID),
	})

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
