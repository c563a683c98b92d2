package mcp

import (
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status"`
	Bridge    string `json:"bridge" jsonschema:"description=IR bridge status (enabled or disabled)"`
	Assistant string `json:"assistant" jsonschema:"description=Assistant availability"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// TVStateOutput is the output for get_tv_state and press_key
type TVStateOutput struct {
	State        tv.State             `json:"state" jsonschema:"description=Simulated TV state"`
	Entry        remote.EntryStatus   `json:"entry" jsonschema:"description=Pending digit entry"`
	Notification *remote.Notification `json:"notification,omitempty" jsonschema:"description=Notification on screen"`
	Protocol     string               `json:"protocol" jsonschema:"description=IR protocol in use"`
}

// ZapOutput is the output for zap_channel and activate_shortcut
type ZapOutput struct {
	Zap     remote.ZapStatus `json:"zap" jsonschema:"description=Zap progress"`
	Message string           `json:"message" jsonschema:"description=Status message"`
}

// ListChannelsOutput is the output for the list_channels tool
type ListChannelsOutput struct {
	Channels []channels.Channel `json:"channels" jsonschema:"description=Matching channels"`
	Count    int                `json:"count" jsonschema:"description=Number of channels"`
}

// ListShortcutsOutput is the output for the list_shortcuts tool
type ListShortcutsOutput struct {
	Shortcuts []remote.Shortcut `json:"shortcuts" jsonschema:"description=Digit shortcuts"`
	Count     int               `json:"count" jsonschema:"description=Number of shortcuts"`
}

// ShortcutOutput is the output for set_shortcut and clear_shortcut
type ShortcutOutput struct {
	Success  bool             `json:"success" jsonschema:"description=Whether the change succeeded"`
	Message  string           `json:"message" jsonschema:"description=Status message"`
	Shortcut *remote.Shortcut `json:"shortcut,omitempty" jsonschema:"description=Shortcut after the change"`
}

func snapshotToOutput(s remote.Snapshot) TVStateOutput {
	return TVStateOutput{
		State:        s.State,
		Entry:        s.Entry,
		Notification: s.Notification,
		Protocol:     s.Protocol,
	}
}
