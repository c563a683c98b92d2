package bridge

import (
	"context"

	"github.com/urmzd/plasma-remote/pkg/tv"
)

// NullBridge is used while no blaster is configured. Key presses still
// drive the simulated TV; they just never leave the process.
type NullBridge struct{}

// NewNullBridge creates a new NullBridge.
func NewNullBridge() *NullBridge {
	return &NullBridge{}
}

func (b *NullBridge) Send(ctx context.Context, key tv.Key, protocol string) Result {
	return Result{Key: key, Protocol: protocol, Err: ErrNotConfigured}
}

func (b *NullBridge) Close() error {
	return nil
}
