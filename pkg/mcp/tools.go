package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health of the remote service, its IR bridge and the assistant"),
		),
		s.handleGetHealth,
	)

	// TV state
	s.mcpServer.AddTool(
		mcp.NewTool("get_tv_state",
			mcp.WithDescription("Get the simulated TV state: power, volume, channel, source, mute, pending digits"),
		),
		s.handleGetTVState,
	)

	// Key press
	s.mcpServer.AddTool(
		mcp.NewTool("press_key",
			mcp.WithDescription("Press one key on the remote. Digits typed while the TV is on are buffered and committed after 2 seconds or on ENTER."),
			mcp.WithString("key",
				mcp.Required(),
				mcp.Description("Key identifier"),
				mcp.Enum(keyNames()...),
			),
			mcp.WithString("protocol",
				mcp.Description("IR protocol override for this press only"),
			),
		),
		s.handlePressKey,
	)

	// Zap
	s.mcpServer.AddTool(
		mcp.NewTool("zap_channel",
			mcp.WithDescription("Change to a channel by typing its digits then ENTER"),
			mcp.WithNumber("number",
				mcp.Required(),
				mcp.Description("Channel number, 1 or more"),
			),
		),
		s.handleZapChannel,
	)

	// Channels
	s.mcpServer.AddTool(
		mcp.NewTool("list_channels",
			mcp.WithDescription("List the channel lineup, optionally filtered by name or number"),
			mcp.WithString("query",
				mcp.Description("Case-insensitive filter"),
			),
		),
		s.handleListChannels,
	)

	// Shortcuts
	s.mcpServer.AddTool(
		mcp.NewTool("list_shortcuts",
			mcp.WithDescription("List digit shortcuts to favourite channels"),
		),
		s.handleListShortcuts,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_shortcut",
			mcp.WithDescription("Bind a digit key to a channel, replacing any previous binding"),
			mcp.WithString("key",
				mcp.Required(),
				mcp.Description("Digit key 0-9"),
			),
			mcp.WithNumber("number",
				mcp.Required(),
				mcp.Description("Channel number"),
			),
			mcp.WithString("name",
				mcp.Description("Channel name (defaults to the lineup name)"),
			),
		),
		s.handleSetShortcut,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("clear_shortcut",
			mcp.WithDescription("Remove the shortcut on a digit key"),
			mcp.WithString("key",
				mcp.Required(),
				mcp.Description("Digit key 0-9"),
			),
		),
		s.handleClearShortcut,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("activate_shortcut",
			mcp.WithDescription("Zap to the channel bound to a digit key"),
			mcp.WithString("key",
				mcp.Required(),
				mcp.Description("Digit key 0-9"),
			),
		),
		s.handleActivateShortcut,
	)

	// Assistant
	s.mcpServer.AddTool(
		mcp.NewTool("ask_assistant",
			mcp.WithDescription("Send a free-text command to the TV assistant"),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Command, e.g. \"put on arte\" or \"louder\""),
			),
		),
		s.handleAskAssistant,
	)
}

func keyNames() []string {
	keys := tv.Keys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.String())
	}
	return names
}
