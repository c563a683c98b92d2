package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urmzd/plasma-remote/pkg/api/handlers"
	"github.com/urmzd/plasma-remote/pkg/assistant"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/db"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/scanner"
	"github.com/urmzd/plasma-remote/pkg/schema"
)

// Deps are the services the API exposes
type Deps struct {
	Dispatcher    *remote.Dispatcher
	Shortcuts     *remote.Shortcuts
	Bridge        *bridge.Manager
	BridgeConfigs db.BridgeConfigStore
	Profiles      db.ProfileStore
	Scanner       *scanner.Scanner
	SaveProtocol  scanner.SaveFunc
	Lineup        *channels.Lineup
	Assistant     *assistant.Assistant
	Validator     *schema.Validator
	ProfileID     int64

	// Discover overrides mDNS discovery, for tests
	Discover handlers.DiscoverFunc
}

// Router holds the Gin engine and dependencies
type Router struct {
	engine *gin.Engine
	deps   Deps

	mu     sync.Mutex
	server *http.Server
}

// NewRouter creates a new API router
func NewRouter(deps Deps) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	if deps.Lineup == nil {
		deps.Lineup = channels.Default()
	}
	if deps.Validator == nil {
		deps.Validator = schema.NewValidator()
	}

	router := &Router{
		engine: engine,
		deps:   deps,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	d := r.deps

	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(d.Dispatcher, d.Bridge, d.Assistant)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		// Remote
		remoteHandler := handlers.NewRemoteHandler(d.Dispatcher, d.Lineup)
		rc := v1.Group("/remote")
		{
			rc.GET("/state", remoteHandler.GetState)
			rc.GET("/keys", remoteHandler.ListKeys)
			rc.POST("/keys/:key", remoteHandler.PressKey)
			rc.POST("/zap", remoteHandler.Zap)
			rc.GET("/events", remoteHandler.Events)
			rc.GET("/ws", remoteHandler.Socket)
		}

		// Shortcuts
		shortcutsHandler := handlers.NewShortcutsHandler(d.Shortcuts)
		shortcuts := v1.Group("/shortcuts")
		{
			shortcuts.GET("", shortcutsHandler.ListShortcuts)
			shortcuts.PUT("/:key", shortcutsHandler.AssignShortcut)
			shortcuts.DELETE("/:key", shortcutsHandler.ClearShortcut)
			shortcuts.POST("/:key/activate", shortcutsHandler.ActivateShortcut)
		}

		// Bridge
		bridgeHandler := handlers.NewBridgeHandler(d.Bridge, d.BridgeConfigs, d.ProfileID, d.Validator, d.Discover)
		br := v1.Group("/bridge")
		{
			br.GET("", bridgeHandler.GetBridge)
			br.PUT("", bridgeHandler.UpdateBridge)
			br.GET("/presets", bridgeHandler.ListPresets)
			br.GET("/discover", bridgeHandler.Discover)
		}

		// IR protocols
		protocolsHandler := handlers.NewProtocolsHandler(d.Dispatcher, d.Scanner, d.SaveProtocol)
		v1.GET("/protocol", protocolsHandler.GetProtocol)
		v1.PUT("/protocol", protocolsHandler.SetProtocol)
		protocols := v1.Group("/protocols")
		{
			protocols.GET("", protocolsHandler.ListProtocols)
			protocols.GET("/brands", protocolsHandler.ListBrands)
			protocols.GET("/scan", protocolsHandler.ScanStatus)
			protocols.POST("/scan/start", protocolsHandler.StartScan)
			protocols.POST("/scan/stop", protocolsHandler.StopScan)
			protocols.POST("/scan/confirm", protocolsHandler.ConfirmScan)
		}

		// Profiles
		profilesHandler := handlers.NewProfilesHandler(d.Profiles)
		v1.GET("/profiles", profilesHandler.ListProfiles)

		// Channels
		channelsHandler := handlers.NewChannelsHandler(d.Lineup)
		v1.GET("/channels", channelsHandler.ListChannels)

		// Assistant
		assistantHandler := handlers.NewAssistantHandler(d.Assistant)
		asst := v1.Group("/assistant")
		{
			asst.POST("/commands", assistantHandler.Command)
			asst.GET("/history", assistantHandler.History)
		}
	}
}

// Handler returns the router as an http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server and blocks until it stops. Shutdown makes Run
// return nil.
func (r *Router) Run(addr string) error {
	srv := &http.Server{Addr: addr, Handler: r.engine}
	r.mu.Lock()
	r.server = srv
	r.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a server started with Run
func (r *Router) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	srv := r.server
	r.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
