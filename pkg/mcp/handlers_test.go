package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/plasma-remote/pkg/assistant"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/clock"
	"github.com/urmzd/plasma-remote/pkg/db"
	"github.com/urmzd/plasma-remote/pkg/remote"
)

func newTestServer(t *testing.T) (*Server, *remote.Dispatcher, *clock.Mock) {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open(filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate(ctx))
	require.NoError(t, database.Bootstrap(ctx))
	cfg, err := database.ActiveConfig(ctx)
	require.NoError(t, err)

	c := clock.NewMock(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC))
	d := remote.NewDispatcher(remote.WithClock(c))
	t.Cleanup(d.Close)

	lineup := channels.Default()
	s := NewServer(Deps{
		Dispatcher: d,
		Shortcuts:  remote.NewShortcuts(database.Shortcuts(), cfg.ProfileID(), d),
		Bridge:     bridge.NewManager(),
		Lineup:     lineup,
		Assistant:  assistant.New(nil, d, lineup, database.History(), cfg.ProfileID()),
	})
	return s, d, c
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestGetHealth(t *testing.T) {
	s, _, _ := newTestServer(t)

	text, isErr := call(t, s.handleGetHealth, nil)
	require.False(t, isErr)

	var out GetHealthOutput
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, "healthy", out.Status)
	assert.Equal(t, "disabled", out.Bridge)
	assert.Equal(t, "unavailable", out.Assistant)
}

func TestPressKeyAndState(t *testing.T) {
	s, _, _ := newTestServer(t)

	text, isErr := call(t, s.handlePressKey, map[string]any{"key": "POWER"})
	require.False(t, isErr)
	var out TVStateOutput
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.True(t, out.State.IsOn)

	_, isErr = call(t, s.handlePressKey, map[string]any{"key": "JUMP"})
	assert.True(t, isErr)

	_, isErr = call(t, s.handlePressKey, map[string]any{})
	assert.True(t, isErr)

	text, _ = call(t, s.handleGetTVState, nil)
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.True(t, out.State.IsOn)
	assert.Equal(t, bridge.DefaultProtocol, out.Protocol)
}

func TestZapChannel(t *testing.T) {
	s, d, c := newTestServer(t)
	require.NoError(t, d.Dispatch("POWER"))

	text, isErr := call(t, s.handleZapChannel, map[string]any{"number": float64(15)})
	require.False(t, isErr)
	var out ZapOutput
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, 15, out.Zap.Number)
	assert.Equal(t, 2, out.Zap.Total)

	c.Advance(2 * time.Second)
	assert.Equal(t, 15, d.State().Channel)

	for _, bad := range []any{float64(0), float64(2.5), "7", nil} {
		_, isErr = call(t, s.handleZapChannel, map[string]any{"number": bad})
		assert.True(t, isErr, bad)
	}
}

func TestListChannels(t *testing.T) {
	s, _, _ := newTestServer(t)

	text, _ := call(t, s.handleListChannels, map[string]any{"query": "france"})
	var out ListChannelsOutput
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.GreaterOrEqual(t, out.Count, 2)
	for _, ch := range out.Channels {
		assert.Contains(t, ch.Name, "France")
	}
}

func TestShortcutTools(t *testing.T) {
	s, d, c := newTestServer(t)
	require.NoError(t, d.Dispatch("POWER"))

	text, isErr := call(t, s.handleSetShortcut, map[string]any{"key": "4", "number": float64(7)})
	require.False(t, isErr, text)
	var set ShortcutOutput
	require.NoError(t, json.Unmarshal([]byte(text), &set))
	require.NotNil(t, set.Shortcut)
	assert.Equal(t, "Arte", set.Shortcut.Name)

	text, _ = call(t, s.handleListShortcuts, nil)
	var list ListShortcutsOutput
	require.NoError(t, json.Unmarshal([]byte(text), &list))
	assert.Equal(t, 1, list.Count)

	_, isErr = call(t, s.handleActivateShortcut, map[string]any{"key": "4"})
	require.False(t, isErr)
	c.Advance(time.Second)
	assert.Equal(t, 7, d.State().Channel)

	_, isErr = call(t, s.handleSetShortcut, map[string]any{"key": "MENU", "number": float64(7)})
	assert.True(t, isErr)

	_, isErr = call(t, s.handleClearShortcut, map[string]any{"key": "4"})
	assert.False(t, isErr)

	_, isErr = call(t, s.handleActivateShortcut, map[string]any{"key": "4"})
	assert.True(t, isErr)
}

func TestAskAssistantUnavailable(t *testing.T) {
	s, _, _ := newTestServer(t)

	text, isErr := call(t, s.handleAskAssistant, map[string]any{"text": "louder"})
	assert.True(t, isErr)
	assert.Contains(t, text, "unavailable")
}
