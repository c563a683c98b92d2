package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// ShortcutsHandler handles digit shortcut endpoints
type ShortcutsHandler struct {
	shortcuts *remote.Shortcuts
}

// NewShortcutsHandler creates a new shortcuts handler
func NewShortcutsHandler(shortcuts *remote.Shortcuts) *ShortcutsHandler {
	return &ShortcutsHandler{shortcuts: shortcuts}
}

// ListShortcuts handles GET /shortcuts
// @Summary      List shortcuts
// @Description  Returns every digit shortcut ordered by digit
// @Tags         shortcuts
// @Produce      json
// @Success      200  {object}  types.ListShortcutsResponse
// @Failure      500  {object}  types.ErrorResponse  "Database error"
// @Router       /shortcuts [get]
func (h *ShortcutsHandler) ListShortcuts(c *gin.Context) {
	list, err := h.shortcuts.List(c.Request.Context())
	if err != nil {
		respondShortcutError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ListShortcutsResponse{Shortcuts: list, Count: len(list)})
}

// AssignShortcut handles PUT /shortcuts/:key
// @Summary      Assign a shortcut
// @Description  Binds a digit key to a channel, replacing any previous binding
// @Tags         shortcuts
// @Accept       json
// @Produce      json
// @Param        key      path      string                        true  "Digit key 0-9"
// @Param        request  body      types.AssignShortcutRequest  true  "Channel to bind"
// @Success      200      {object}  types.ShortcutResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid key or channel"
// @Failure      500      {object}  types.ErrorResponse  "Database error"
// @Router       /shortcuts/{key} [put]
func (h *ShortcutsHandler) AssignShortcut(c *gin.Context) {
	var req types.AssignShortcutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	sc, err := h.shortcuts.Assign(c.Request.Context(), tv.Key(c.Param("key")), req.Number, req.Name)
	if err != nil {
		respondShortcutError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ShortcutResponse{Shortcut: sc})
}

// ClearShortcut handles DELETE /shortcuts/:key
// @Summary      Clear a shortcut
// @Tags         shortcuts
// @Param        key  path  string  true  "Digit key 0-9"
// @Success      204  "Shortcut cleared"
// @Failure      400  {object}  types.ErrorResponse  "Invalid key"
// @Failure      404  {object}  types.ErrorResponse  "No shortcut on this key"
// @Router       /shortcuts/{key} [delete]
func (h *ShortcutsHandler) ClearShortcut(c *gin.Context) {
	if err := h.shortcuts.Clear(c.Request.Context(), tv.Key(c.Param("key"))); err != nil {
		respondShortcutError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ActivateShortcut handles POST /shortcuts/:key/activate
// @Summary      Activate a shortcut
// @Description  Zaps to the channel bound to the digit
// @Tags         shortcuts
// @Produce      json
// @Param        key  path      string  true  "Digit key 0-9"
// @Success      202  {object}  types.ZapResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid key"
// @Failure      404  {object}  types.ErrorResponse  "No shortcut on this key"
// @Router       /shortcuts/{key}/activate [post]
func (h *ShortcutsHandler) ActivateShortcut(c *gin.Context) {
	job, err := h.shortcuts.Activate(c.Request.Context(), tv.Key(c.Param("key")))
	if err != nil {
		respondShortcutError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, types.ZapResponse{Zap: job.Status()})
}

func respondShortcutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, remote.ErrShortcutNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "No shortcut on this key",
		})
	case errors.Is(err, remote.ErrNotDigit), errors.Is(err, tv.ErrInvalidChannel):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	default:
		respondRemoteError(c, err)
	}
}
