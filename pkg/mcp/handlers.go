package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bridgeStatus := "disabled"
	if s.deps.Bridge != nil && s.deps.Bridge.Enabled() {
		bridgeStatus = "enabled"
	}
	assistantStatus := "unavailable"
	if s.deps.Assistant.Available() {
		assistantStatus = "available"
	}

	out := GetHealthOutput{
		Status:    "healthy",
		Bridge:    bridgeStatus,
		Assistant: assistantStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetTVState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := snapshotToOutput(s.deps.Dispatcher.Snapshot())
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handlePressKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := requiredString(request, "key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, ok := tv.ParseKey(raw)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown key %q", raw)), nil
	}
	protocol, _ := request.GetArguments()["protocol"].(string)

	if err := s.deps.Dispatcher.Dispatch(key, remote.WithProtocol(protocol)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to press key: %s", err)), nil
	}

	out := snapshotToOutput(s.deps.Dispatcher.Snapshot())
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleZapChannel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := requiredInt(request, "number")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	name := s.deps.Lineup.Name(number)
	job, err := s.deps.Dispatcher.Zap(number, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to zap: %s", err)), nil
	}

	out := ZapOutput{
		Zap:     job.Status(),
		Message: fmt.Sprintf("Zapping to channel %d", number),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListChannels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, _ := request.GetArguments()["query"].(string)
	list := s.deps.Lineup.Search(query)

	out := ListChannelsOutput{Channels: list, Count: len(list)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListShortcuts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.deps.Shortcuts.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list shortcuts: %s", err)), nil
	}

	out := ListShortcutsOutput{Shortcuts: list, Count: len(list)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetShortcut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := requiredString(request, "key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	number, err := requiredInt(request, "number")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, _ := request.GetArguments()["name"].(string)
	if name == "" {
		name = s.deps.Lineup.Name(number)
	}

	sc, err := s.deps.Shortcuts.Assign(ctx, tv.Key(key), number, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set shortcut: %s", err)), nil
	}

	out := ShortcutOutput{
		Success:  true,
		Message:  fmt.Sprintf("Key %s now zaps to channel %d", key, number),
		Shortcut: &sc,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleClearShortcut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := requiredString(request, "key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.deps.Shortcuts.Clear(ctx, tv.Key(key)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear shortcut: %s", err)), nil
	}

	out := ShortcutOutput{
		Success: true,
		Message: fmt.Sprintf("Shortcut on key %s cleared", key),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleActivateShortcut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := requiredString(request, "key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	job, err := s.deps.Shortcuts.Activate(ctx, tv.Key(key))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to activate shortcut: %s", err)), nil
	}

	out := ZapOutput{
		Zap:     job.Status(),
		Message: fmt.Sprintf("Zapping to channel %d", job.Number),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleAskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.deps.Assistant.Available() {
		return mcp.NewToolResultError("assistant unavailable: no interpreter configured"), nil
	}
	text, err := requiredString(request, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := s.deps.Assistant.Handle(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assistant failed: %s", err)), nil
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

// requiredInt reads a whole number. JSON numbers arrive as float64.
func requiredInt(request mcp.CallToolRequest, key string) (int, error) {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("required parameter %q is missing", key)
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, fmt.Errorf("parameter %q must be a positive integer", key)
	}
	return int(f), nil
}

func formatJSON(v any) string {
	b, err := encodeJSON(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}

func encodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
