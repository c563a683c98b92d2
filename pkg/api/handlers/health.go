package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/assistant"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/remote"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	dispatcher *remote.Dispatcher
	bridge     *bridge.Manager
	assistant  *assistant.Assistant
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(dispatcher *remote.Dispatcher, manager *bridge.Manager, asst *assistant.Assistant) *HealthHandler {
	return &HealthHandler{dispatcher: dispatcher, bridge: manager, assistant: asst}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the service status with the simulated power, bridge and assistant availability
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	bridgeStatus := "disabled"
	if h.bridge != nil && h.bridge.Enabled() {
		bridgeStatus = "enabled"
	}

	assistantStatus := "unavailable"
	if h.assistant != nil && h.assistant.Available() {
		assistantStatus = "available"
	}

	c.JSON(http.StatusOK, types.HealthResponse{
		Status:    "healthy",
		Power:     h.dispatcher.State().IsOn,
		Bridge:    bridgeStatus,
		Assistant: assistantStatus,
		Timestamp: time.Now(),
	})
}
