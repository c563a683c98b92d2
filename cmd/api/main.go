package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/plasma-remote/pkg/api"
	"github.com/urmzd/plasma-remote/pkg/assistant"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/clock"
	"github.com/urmzd/plasma-remote/pkg/db"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/scanner"
	"github.com/urmzd/plasma-remote/pkg/schema"
	"github.com/urmzd/plasma-remote/pkg/tv"

	_ "github.com/urmzd/plasma-remote/docs"
)

// @title           Plasma Remote API
// @version         1.0
// @description     REST API for a virtual Samsung plasma TV remote with an IR bridge

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env")
	}

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/plasma-remote/remote.db)")
	addrFlag := flag.String("addr", "", "Listen address, overrides the stored API server")
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

	// Load configuration
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("timezone", cfg.Timezone()).
		Str("api_address", cfg.APIAddress()).
		Str("protocol", cfg.Protocol()).
		Msg("Configuration loaded")

	lineup := channels.Default()
	if *channelsPath != "" {
		lineup, err = channels.LoadFile(*channelsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *channelsPath).Msg("Failed to load channel lineup")
		}
		log.Info().Int("channels", lineup.Len()).Msg("Channel lineup loaded")
	}

	// IR bridge; a broken stored config leaves the bridge disabled
	manager := bridge.NewManager()
	if err := manager.Configure(cfg.BridgeConfig()); err != nil {
		log.Warn().Err(err).Msg("Stored bridge config rejected, bridge disabled")
	}
	defer func() {
		if err := manager.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close bridge")
		}
	}()

	realClock := clock.NewReal()
	bus := remote.NewBus(realClock)
	dispatcher := remote.NewDispatcher(
		remote.WithClock(realClock),
		remote.WithBus(bus),
		remote.WithSender(manager),
		remote.WithFeedback(remote.NewEventFeedback(bus, func() string {
			return manager.Config().SoundEffect
		})),
		remote.WithStoredProtocol(cfg.Protocol()),
	)
	defer dispatcher.Close()

	profileID := cfg.ProfileID()
	saveProtocol := protocolSaver(database.Settings(), profileID, dispatcher)

	scan := scanner.New(realClock, scanner.DefaultStep, func(protocol string) error {
		return dispatcher.Dispatch(tv.KeyPower, remote.WithProtocol(protocol))
	}, saveProtocol)

	validator := schema.NewValidator()
	if err := validator.Precompile(bridge.ConfigSchema, assistant.IntentSchema); err != nil {
		log.Fatal().Err(err).Msg("Failed to compile JSON schemas")
	}

	// Assistant; without a key it answers 503
	var interpreter assistant.Interpreter
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		g, err := assistant.NewGemini(validator,
			assistant.WithAPIKey(key),
			assistant.WithModel(os.Getenv("GEMINI_MODEL")),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini interpreter")
		}
		log.Info().Str("model", g.Model()).Msg("Assistant enabled")
		interpreter = g
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, assistant disabled")
	}
	asst := assistant.New(interpreter, dispatcher, lineup, database.History(), profileID)

	// Create API router
	router := api.NewRouter(api.Deps{
		Dispatcher:    dispatcher,
		Shortcuts:     remote.NewShortcuts(database.Shortcuts(), profileID, dispatcher),
		Bridge:        manager,
		BridgeConfigs: database.BridgeConfigs(),
		Profiles:      database.Profiles(),
		Scanner:       scan,
		SaveProtocol:  saveProtocol,
		Lineup:        lineup,
		Assistant:     asst,
		Validator:     validator,
		ProfileID:     profileID,
	})

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		scan.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down server")
		}
	}()

	// Start server
	addr := cfg.APIAddress()
	if *addrFlag != "" {
		addr = *addrFlag
	}
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	manager.Wait()
}

// protocolSaver stores a confirmed protocol and makes it the default for
// later presses.
func protocolSaver(settings db.SettingStore, profileID int64, dispatcher *remote.Dispatcher) scanner.SaveFunc {
	return func(ctx context.Context, protocol string) error {
		if err := settings.Set(ctx, profileID, db.SettingIRProtocol, protocol); err != nil {
			return err
		}
		dispatcher.SetProtocol(protocol)
		dispatcher.Notify("Protocol saved!")
		log.Info().Str("protocol", protocol).Msg("IR protocol saved")
		return nil
	}
}
