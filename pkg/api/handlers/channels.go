package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/channels"
)

// ChannelsHandler serves the channel lineup
type ChannelsHandler struct {
	lineup *channels.Lineup
}

// NewChannelsHandler creates a new channels handler
func NewChannelsHandler(lineup *channels.Lineup) *ChannelsHandler {
	return &ChannelsHandler{lineup: lineup}
}

// ListChannels handles GET /channels
// @Summary      List channels
// @Description  Returns the lineup, optionally filtered by name or number
// @Tags         channels
// @Produce      json
// @Param        q    query     string  false  "Case-insensitive name or number filter"
// @Success      200  {object}  types.ChannelsResponse
// @Router       /channels [get]
func (h *ChannelsHandler) ListChannels(c *gin.Context) {
	list := h.lineup.Search(c.Query("q"))
	c.JSON(http.StatusOK, types.ChannelsResponse{Channels: list, Count: len(list)})
}
