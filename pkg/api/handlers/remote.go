package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

const heartbeatInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RemoteHandler handles key presses, zaps and live remote updates
type RemoteHandler struct {
	dispatcher *remote.Dispatcher
	lineup     *channels.Lineup
}

// NewRemoteHandler creates a new remote handler
func NewRemoteHandler(dispatcher *remote.Dispatcher, lineup *channels.Lineup) *RemoteHandler {
	return &RemoteHandler{dispatcher: dispatcher, lineup: lineup}
}

// GetState handles GET /remote/state
// @Summary      Get remote state
// @Description  Returns the simulated TV state, pending digit entry, notification, protocol and running zap
// @Tags         remote
// @Produce      json
// @Success      200  {object}  types.StateResponse
// @Router       /remote/state [get]
func (h *RemoteHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, types.StateResponse{
		Snapshot:  h.dispatcher.Snapshot(),
		Timestamp: time.Now(),
	})
}

// ListKeys handles GET /remote/keys
// @Summary      List remote keys
// @Description  Returns the key vocabulary in keypad order
// @Tags         remote
// @Produce      json
// @Success      200  {object}  types.ListKeysResponse
// @Router       /remote/keys [get]
func (h *RemoteHandler) ListKeys(c *gin.Context) {
	keys := tv.Keys()
	infos := make([]types.KeyInfo, 0, len(keys))
	for _, k := range keys {
		infos = append(infos, types.KeyInfo{Key: k, Category: k.Category(), Digit: k.IsDigit()})
	}
	c.JSON(http.StatusOK, types.ListKeysResponse{Keys: infos, Count: len(infos)})
}

// PressKey handles POST /remote/keys/:key
// @Summary      Press a key
// @Description  Dispatches a key press. The optional protocol overrides the stored IR protocol for this press only.
// @Tags         remote
// @Produce      json
// @Param        key       path      string  true   "Key identifier, e.g. POWER, VOL_UP, 7"
// @Param        protocol  query     string  false  "IR protocol override"
// @Success      200       {object}  types.StateResponse
// @Failure      400       {object}  types.ErrorResponse  "Unknown key"
// @Failure      503       {object}  types.ErrorResponse  "Remote is shutting down"
// @Router       /remote/keys/{key} [post]
func (h *RemoteHandler) PressKey(c *gin.Context) {
	key, ok := tv.ParseKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_key",
			Message: fmt.Sprintf("Unknown key %q", c.Param("key")),
		})
		return
	}

	if err := h.dispatcher.Dispatch(key, remote.WithProtocol(c.Query("protocol"))); err != nil {
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StateResponse{
		Snapshot:  h.dispatcher.Snapshot(),
		Timestamp: time.Now(),
	})
}

// Zap handles POST /remote/zap
// @Summary      Zap to a channel
// @Description  Types the channel number digit by digit, then ENTER. A running zap is cancelled.
// @Tags         remote
// @Accept       json
// @Produce      json
// @Param        request  body      types.ZapRequest  true  "Target channel"
// @Success      202      {object}  types.ZapResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid channel"
// @Failure      503      {object}  types.ErrorResponse  "Remote is shutting down"
// @Router       /remote/zap [post]
func (h *RemoteHandler) Zap(c *gin.Context) {
	var req types.ZapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	name := req.Name
	if name == "" && h.lineup != nil {
		name = h.lineup.Name(req.Number)
	}

	job, err := h.dispatcher.Zap(req.Number, name)
	if err != nil {
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, types.ZapResponse{Zap: job.Status()})
}

// Events handles GET /remote/events (SSE stream)
// @Summary      Subscribe to remote events
// @Description  Server-Sent Events stream of state changes, notifications, digit entry, feedback and zap progress
// @Tags         remote
// @Produce      text/event-stream
// @Success      200  {string}  string  "SSE event stream"
// @Router       /remote/events [get]
func (h *RemoteHandler) Events(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	eventChan := h.dispatcher.Subscribe()
	defer h.dispatcher.Unsubscribe(eventChan)

	// Current state first so clients need no extra request
	sendSSEEvent(c.Writer, "snapshot", h.dispatcher.Snapshot())
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-clientGone:
			return

		case event, ok := <-eventChan:
			if !ok {
				return
			}
			sendSSEEvent(c.Writer, string(event.Type), event)
			c.Writer.Flush()

		case <-ticker.C:
			sendSSEEvent(c.Writer, "heartbeat", map[string]any{
				"timestamp": time.Now(),
			})
			c.Writer.Flush()
		}
	}
}

// socketFrame is written to websocket clients. Events are sent as-is.
type socketFrame struct {
	Type     string           `json:"type"`
	Snapshot *remote.Snapshot `json:"snapshot,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// Socket handles GET /remote/ws
// @Summary      Remote websocket
// @Description  Bidirectional session: clients send {"key": "...", "protocol": "..."} frames and receive the same events as the SSE stream
// @Tags         remote
// @Success      101  {string}  string  "Switching protocols"
// @Router       /remote/ws [get]
func (h *RemoteHandler) Socket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	events := h.dispatcher.Subscribe()
	defer h.dispatcher.Unsubscribe(events)

	// Only this goroutine writes to conn; the reader hands errors over
	replies := make(chan socketFrame, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg types.SocketMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Debug().Err(err).Msg("Websocket read ended")
				}
				return
			}
			if err := h.pressFromSocket(msg); err != nil {
				select {
				case replies <- socketFrame{Type: "error", Message: err.Error()}:
				default:
				}
			}
		}
	}()

	snap := h.dispatcher.Snapshot()
	if err := conn.WriteJSON(socketFrame{Type: "snapshot", Snapshot: &snap}); err != nil {
		return
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}

		case reply := <-replies:
			if err := conn.WriteJSON(reply); err != nil {
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}

func (h *RemoteHandler) pressFromSocket(msg types.SocketMessage) error {
	key, ok := tv.ParseKey(msg.Key)
	if !ok {
		return fmt.Errorf("%w: %q", remote.ErrUnknownKey, msg.Key)
	}
	return h.dispatcher.Dispatch(key, remote.WithProtocol(msg.Protocol))
}

func respondRemoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tv.ErrInvalidChannel):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_channel",
			Message: err.Error(),
		})
	case errors.Is(err, remote.ErrUnknownKey):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_key",
			Message: err.Error(),
		})
	case errors.Is(err, remote.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "remote_closed",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "remote_error",
			Message: err.Error(),
		})
	}
}

// sendSSEEvent writes an SSE event to the response
func sendSSEEvent(w io.Writer, eventType string, data any) {
	jsonData, _ := json.Marshal(data)
	io.WriteString(w, "event: "+eventType+"\n")
	io.WriteString(w, "data: "+string(jsonData)+"\n\n")
}
