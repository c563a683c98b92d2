package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/db"
	"github.com/urmzd/plasma-remote/pkg/schema"
)

// maxScanSeconds caps GET /bridge/discover
const maxScanSeconds = 30

// DiscoverFunc browses the network for bridge candidates.
type DiscoverFunc func(ctx context.Context, timeout time.Duration) ([]bridge.Candidate, error)

// BridgeHandler handles IR bridge configuration endpoints
type BridgeHandler struct {
	manager   *bridge.Manager
	store     db.BridgeConfigStore
	profileID int64
	validator *schema.Validator
	discover  DiscoverFunc
}

// NewBridgeHandler creates a new bridge handler. A nil discover uses mDNS.
func NewBridgeHandler(manager *bridge.Manager, store db.BridgeConfigStore, profileID int64, validator *schema.Validator, discover DiscoverFunc) *BridgeHandler {
	if discover == nil {
		discover = bridge.Discover
	}
	return &BridgeHandler{
		manager:   manager,
		store:     store,
		profileID: profileID,
		validator: validator,
		discover:  discover,
	}
}

// GetBridge handles GET /bridge
// @Summary      Get bridge configuration
// @Tags         bridge
// @Produce      json
// @Success      200  {object}  types.BridgeResponse
// @Router       /bridge [get]
func (h *BridgeHandler) GetBridge(c *gin.Context) {
	cfg := h.manager.Config()
	c.JSON(http.StatusOK, types.BridgeResponse{Bridge: cfg, Active: cfg.Active()})
}

// UpdateBridge handles PUT /bridge
// @Summary      Update bridge configuration
// @Description  Validates, applies and persists the bridge settings. The URL may contain {KEY} and {PROTOCOL} placeholders; serial:// URLs drive a serial IR blaster.
// @Tags         bridge
// @Accept       json
// @Produce      json
// @Param        request  body      bridge.Config  true  "Bridge settings"
// @Success      200      {object}  types.BridgeResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid settings"
// @Failure      502      {object}  types.ErrorResponse  "Transport could not be opened"
// @Failure      500      {object}  types.ErrorResponse  "Database error"
// @Router       /bridge [put]
func (h *BridgeHandler) UpdateBridge(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to read request body",
		})
		return
	}

	if err := h.validator.ValidateJSON(bridge.ConfigSchema, body); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	var cfg bridge.Config
	if err := json.Unmarshal(body, &cfg); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}
	cfg = cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.manager.Configure(cfg); err != nil {
		if errors.Is(err, bridge.ErrInvalidURL) || errors.Is(err, bridge.ErrUnsupportedScheme) || errors.Is(err, bridge.ErrInvalidMethod) {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error:   "bridge_error",
			Message: err.Error(),
		})
		return
	}

	err = h.store.Save(c.Request.Context(), &db.BridgeConfig{
		ProfileID:   h.profileID,
		Enabled:     cfg.Enabled,
		URL:         cfg.URL,
		Method:      cfg.Method,
		SoundEffect: cfg.SoundEffect,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to persist bridge config")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.BridgeResponse{Bridge: cfg, Active: cfg.Active()})
}

// ListPresets handles GET /bridge/presets
// @Summary      List bridge presets
// @Description  Returns URL templates for common IR blasters and the available click sounds
// @Tags         bridge
// @Produce      json
// @Success      200  {object}  types.PresetsResponse
// @Router       /bridge/presets [get]
func (h *BridgeHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, types.PresetsResponse{
		Presets: bridge.Presets(),
		Sounds:  bridge.Sounds(),
	})
}

// Discover handles GET /bridge/discover
// @Summary      Discover bridges
// @Description  Browses mDNS for HTTP services that may be IR blasters and suggests a URL template for each
// @Tags         bridge
// @Produce      json
// @Param        timeout  query     int  false  "Scan duration in seconds (default 5, max 30)"
// @Success      200      {object}  types.DiscoverResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid timeout"
// @Failure      500      {object}  types.ErrorResponse  "Discovery failed"
// @Router       /bridge/discover [get]
func (h *BridgeHandler) Discover(c *gin.Context) {
	timeout := bridge.DefaultScanTimeout
	if raw := c.Query("timeout"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 || secs > maxScanSeconds {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_timeout",
				Message: "Timeout must be between 1 and 30 seconds",
			})
			return
		}
		timeout = time.Duration(secs) * time.Second
	}

	found, err := h.discover(c.Request.Context(), timeout)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "discovery_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DiscoverResponse{Candidates: found, Count: len(found)})
}
