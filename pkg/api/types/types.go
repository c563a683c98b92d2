package types

import (
	"time"

	"github.com/urmzd/plasma-remote/pkg/assistant"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/scanner"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// --- Request DTOs ---

// ZapRequest is the request body for POST /remote/zap
type ZapRequest struct {
	Number int    `json:"number" binding:"required,min=1"`
	Name   string `json:"name"`
}

// AssignShortcutRequest is the request body for PUT /shortcuts/:key
type AssignShortcutRequest struct {
	Number int    `json:"number" binding:"required,min=1"`
	Name   string `json:"name"`
}

// SetProtocolRequest is the request body for PUT /protocol
type SetProtocolRequest struct {
	Protocol string `json:"protocol" binding:"required"`
}

// ConfirmScanRequest is the request body for POST /protocols/scan/confirm
type ConfirmScanRequest struct {
	Protocol string `json:"protocol" binding:"required"`
}

// CommandRequest is the request body for POST /assistant/commands
type CommandRequest struct {
	Text string `json:"text" binding:"required"`
}

// SocketMessage is a key press sent over the remote websocket
type SocketMessage struct {
	Key      string `json:"key"`
	Protocol string `json:"protocol,omitempty"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Power     bool      `json:"power"`
	Bridge    string    `json:"bridge"`
	Assistant string    `json:"assistant"`
	Timestamp time.Time `json:"timestamp"`
}

// StateResponse is returned from GET /remote/state and key presses
type StateResponse struct {
	remote.Snapshot
	Timestamp time.Time `json:"timestamp"`
}

// KeyInfo describes one remote key
type KeyInfo struct {
	Key      tv.Key      `json:"key"`
	Category tv.Category `json:"category"`
	Digit    bool        `json:"digit"`
}

// ListKeysResponse is returned from GET /remote/keys
type ListKeysResponse struct {
	Keys  []KeyInfo `json:"keys"`
	Count int       `json:"count"`
}

// ZapResponse is returned from POST /remote/zap and shortcut activation
type ZapResponse struct {
	Zap remote.ZapStatus `json:"zap"`
}

// ShortcutResponse is returned for a single shortcut
type ShortcutResponse struct {
	Shortcut remote.Shortcut `json:"shortcut"`
}

// ListShortcutsResponse is returned from GET /shortcuts
type ListShortcutsResponse struct {
	Shortcuts []remote.Shortcut `json:"shortcuts"`
	Count     int               `json:"count"`
}

// BridgeResponse is returned from GET/PUT /bridge
type BridgeResponse struct {
	Bridge bridge.Config `json:"bridge"`
	Active bool          `json:"active"`
}

// PresetsResponse is returned from GET /bridge/presets
type PresetsResponse struct {
	Presets []bridge.Preset `json:"presets"`
	Sounds  []bridge.Sound  `json:"sounds"`
}

// DiscoverResponse is returned from GET /bridge/discover
type DiscoverResponse struct {
	Candidates []bridge.Candidate `json:"candidates"`
	Count      int                `json:"count"`
}

// ProtocolsResponse is returned from GET /protocols
type ProtocolsResponse struct {
	Protocols []scanner.Protocol `json:"protocols"`
	Current   string             `json:"current"`
}

// ProtocolResponse is returned from GET/PUT /protocol
type ProtocolResponse struct {
	Protocol string `json:"protocol"`
}

// BrandsResponse is returned from GET /protocols/brands
type BrandsResponse struct {
	Brands []scanner.Brand `json:"brands"`
	Count  int             `json:"count"`
}

// ScanResponse is returned from the scan endpoints
type ScanResponse struct {
	Scan scanner.Status `json:"scan"`
}

// ChannelsResponse is returned from GET /channels
type ChannelsResponse struct {
	Channels []channels.Channel `json:"channels"`
	Count    int                `json:"count"`
}

// CommandResponse is returned from POST /assistant/commands
type CommandResponse struct {
	Outcome assistant.Outcome `json:"outcome"`
}

// HistoryEntry is one assistant history row
type HistoryEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Action    string    `json:"action"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse is returned from GET /assistant/history
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Count   int            `json:"count"`
}

// ProfileInfo describes one stored profile
type ProfileInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Active   bool   `json:"active"`
}

// ProfilesResponse is returned from GET /profiles
type ProfilesResponse struct {
	Profiles []ProfileInfo `json:"profiles"`
	Count    int           `json:"count"`
}
