package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/assistant"
)

// AssistantHandler handles free-text commands
type AssistantHandler struct {
	assistant *assistant.Assistant
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(asst *assistant.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: asst}
}

// Command handles POST /assistant/commands
// @Summary      Send a command
// @Description  Interprets free text with the LLM and zaps or presses a key accordingly
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        request  body      types.CommandRequest  true  "Command text"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Empty command"
// @Failure      503      {object}  types.ErrorResponse  "No interpreter configured"
// @Router       /assistant/commands [post]
func (h *AssistantHandler) Command(c *gin.Context) {
	if !h.assistant.Available() {
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "assistant_unavailable",
			Message: "No interpreter configured, set GEMINI_API_KEY",
		})
		return
	}

	var req types.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	out, err := h.assistant.Handle(c.Request.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Error:   "assistant_unavailable",
				Message: err.Error(),
			})
		case errors.Is(err, assistant.ErrEmptyCommand):
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Error:   "assistant_error",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, types.CommandResponse{Outcome: out})
}

// History handles GET /assistant/history
// @Summary      Command history
// @Description  Returns handled commands, most recent first
// @Tags         assistant
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (default 50)"
// @Success      200    {object}  types.HistoryResponse
// @Failure      400    {object}  types.ErrorResponse  "Invalid limit"
// @Failure      500    {object}  types.ErrorResponse  "Database error"
// @Router       /assistant/history [get]
func (h *AssistantHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_limit",
				Message: "Limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	rows, err := h.assistant.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	entries := make([]types.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, types.HistoryEntry{
			ID:        r.ID,
			Text:      r.Text,
			Action:    r.Action,
			Reply:     r.Reply,
			CreatedAt: r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, types.HistoryResponse{Entries: entries, Count: len(entries)})
}
