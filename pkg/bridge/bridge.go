// Package bridge forwards remote key presses to an external infrared
// blaster. The blaster is reached over HTTP (a Tasmota device, a Home
// Assistant webhook, any endpoint taking a URL template) or over a serial
// line for USB IR transmitters.
package bridge

import (
	"context"
	"time"

	"github.com/urmzd/plasma-remote/pkg/tv"
)

// DefaultProtocol is the IR protocol used when none has been stored.
const DefaultProtocol = "sam_legacy_1"

// Placeholders substituted in a bridge URL template.
const (
	PlaceholderKey      = "{KEY}"
	PlaceholderProtocol = "{PROTOCOL}"
)

// Bridge delivers a single key to the blaster.
// Implementations are transport specific; see HTTPBridge and SerialBridge.
type Bridge interface {
	// Send delivers key using the given IR protocol. Failures are reported
	// in the Result, never panicked.
	Send(ctx context.Context, key tv.Key, protocol string) Result

	// Close releases the transport
	Close() error
}

// Result describes one delivery attempt. It is only used for logging and
// diagnostics; callers never feed it back into the TV state.
type Result struct {
	Key        tv.Key        `json:"key"`
	Protocol   string        `json:"protocol"`
	Target     string        `json:"target"`
	StatusCode int           `json:"status_code,omitempty"`
	Err        error         `json:"-"`
	Latency    time.Duration `json:"latency"`
}

// OK reports whether the attempt reached the blaster.
func (r Result) OK() bool {
	if r.Err != nil {
		return false
	}
	return r.StatusCode == 0 || (r.StatusCode >= 200 && r.StatusCode < 300)
}
