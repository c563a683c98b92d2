// Package remote turns key presses into TV state changes. It owns the
// simulated TV state, the digit entry buffer, transient notifications and
// multi-step zaps, and forwards every press to the IR bridge.
package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/clock"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// Timings groups the remote's delays.
type Timings struct {
	EntryDebounce time.Duration
	Notification  time.Duration

	// ZapDigit separates the digits of a zap; ZapEnter is added after the
	// last digit before ENTER is pressed
	ZapDigit time.Duration
	ZapEnter time.Duration
}

// DefaultTimings returns the delays used by the physical remote.
func DefaultTimings() Timings {
	return Timings{
		EntryDebounce: DefaultEntryDebounce,
		Notification:  DefaultNotificationTTL,
		ZapDigit:      400 * time.Millisecond,
		ZapEnter:      300 * time.Millisecond,
	}
}

// Sender forwards key presses to the IR blaster without blocking.
type Sender interface {
	Fire(key tv.Key, protocol string)
}

// Dispatcher is the single writer of the TV state. Every mutation, whether
// it comes from a key press, the entry debounce timer or a zap step, runs
// under its mutex.
type Dispatcher struct {
	mu       sync.Mutex
	state    tv.State
	protocol string
	zap      *ZapJob
	closed   bool

	entry    *ChannelEntry
	notifier *Notifier
	bus      *Bus
	clock    clock.Clock
	sender   Sender
	feedback Feedback
	timings  Timings

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock sets the clock driving every timer.
func WithClock(c clock.Clock) Option {
	return func(d *Dispatcher) { d.clock = c }
}

// WithSender sets the IR bridge.
func WithSender(s Sender) Option {
	return func(d *Dispatcher) { d.sender = s }
}

// WithFeedback replaces the default event feedback.
func WithFeedback(f Feedback) Option {
	return func(d *Dispatcher) { d.feedback = f }
}

// WithBus shares an existing event bus.
func WithBus(b *Bus) Option {
	return func(d *Dispatcher) { d.bus = b }
}

// WithInitialState starts from s instead of the factory defaults.
func WithInitialState(s tv.State) Option {
	return func(d *Dispatcher) { d.state = s }
}

// WithStoredProtocol sets the protocol learned by a previous scan.
func WithStoredProtocol(p string) Option {
	return func(d *Dispatcher) {
		if p != "" {
			d.protocol = p
		}
	}
}

// WithTimings overrides the remote's delays.
func WithTimings(t Timings) Option {
	return func(d *Dispatcher) { d.timings = t }
}

// NewDispatcher creates a Dispatcher with the TV off.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		state:    tv.DefaultState(),
		protocol: bridge.DefaultProtocol,
		clock:    clock.NewReal(),
		timings:  DefaultTimings(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.bus == nil {
		d.bus = NewBus(d.clock)
	}
	if d.feedback == nil {
		d.feedback = NewEventFeedback(d.bus, nil)
	}
	d.notifier = NewNotifier(d.clock, d.bus, d.timings.Notification)
	d.entry = NewChannelEntry(d.clock, &d.mu, d.timings.EntryDebounce, d.commitChannelLocked)
	d.ctx, d.cancel = context.WithCancel(context.Background())

	return d
}

// DispatchOption adjusts a single dispatch.
type DispatchOption func(*dispatchOptions)

type dispatchOptions struct {
	protocol string
}

// WithProtocol sends the press with protocol instead of the stored one.
// Protocol scans use it to try candidates.
func WithProtocol(protocol string) DispatchOption {
	return func(o *dispatchOptions) { o.protocol = protocol }
}

// Dispatch handles one key press.
func (d *Dispatcher) Dispatch(key tv.Key, opts ...DispatchOption) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}

	var o dispatchOptions
	for _, opt := range opts {
		opt(&o)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	d.dispatchLocked(key, o)
	return nil
}

func (d *Dispatcher) dispatchLocked(key tv.Key, o dispatchOptions) {
	log.Debug().Str("key", string(key)).Str("protocol", o.protocol).Msg("Dispatching key")

	// Feedback and the bridge fire whatever the simulated state
	d.emitFeedback(key)
	if d.sender != nil {
		d.sender.Fire(key, d.resolveProtocolLocked(o.protocol))
	}

	if key.IsDigit() && d.state.IsOn {
		d.entry.OnDigit(key)
		d.notifier.Show(d.entry.Buffer() + "-")
		d.publishEntryLocked()
		return
	}

	if key == tv.KeyEnter && d.entry.Pending() {
		d.entry.OnConfirm()
		return
	}

	res := tv.Transition(d.state, key)
	d.applyLocked(res)

	if res.ResetEntry {
		pending := d.entry.Pending()
		d.entry.OnPowerToggle()
		if pending {
			d.publishEntryLocked()
		}
		d.cancelZapLocked()
	}
}

// commitChannelLocked is the entry's commit callback.
func (d *Dispatcher) commitChannelLocked(n int) {
	d.publishEntryLocked()
	d.applyLocked(tv.SetChannel(d.state, n))
}

func (d *Dispatcher) applyLocked(res tv.Result) {
	if res.Next != d.state {
		d.state = res.Next
		s := d.state
		d.bus.Publish(Event{Type: EventStateChanged, State: &s})
	}
	d.notifier.Show(res.Message)
}

func (d *Dispatcher) publishEntryLocked() {
	status := d.entry.Status()
	d.bus.Publish(Event{Type: EventEntry, Entry: &status})
}

func (d *Dispatcher) emitFeedback(key tv.Key) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("key", string(key)).Msg("Feedback panicked")
		}
	}()

	if err := d.feedback.Emit(key); err != nil {
		log.Warn().Err(err).Str("key", string(key)).Msg("Feedback failed")
	}
}

func (d *Dispatcher) resolveProtocolLocked(override string) string {
	switch {
	case override != "":
		return override
	case d.protocol != "":
		return d.protocol
	default:
		return bridge.DefaultProtocol
	}
}

// State returns the current TV state.
func (d *Dispatcher) State() tv.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Snapshot is a consistent view of the remote.
type Snapshot struct {
	State        tv.State      `json:"state"`
	Entry        EntryStatus   `json:"entry"`
	Notification *Notification `json:"notification,omitempty"`
	Protocol     string        `json:"protocol"`
	Zap          *ZapStatus    `json:"zap,omitempty"`
}

// Snapshot returns the state, entry buffer, notification and running zap.
func (d *Dispatcher) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := Snapshot{
		State:    d.state,
		Entry:    d.entry.Status(),
		Protocol: d.resolveProtocolLocked(""),
	}
	if n, ok := d.notifier.Current(); ok {
		snap.Notification = &n
	}
	if d.zap != nil {
		z := d.zap.statusLocked()
		snap.Zap = &z
	}
	return snap
}

// Protocol returns the protocol sent with presses that carry no override.
func (d *Dispatcher) Protocol() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolveProtocolLocked("")
}

// SetProtocol changes the stored protocol. An empty protocol restores the
// default.
func (d *Dispatcher) SetProtocol(protocol string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.protocol = protocol
}

// Notify shows msg as a transient notification.
func (d *Dispatcher) Notify(msg string) {
	d.notifier.Show(msg)
}

// Subscribe returns a channel of remote events.
func (d *Dispatcher) Subscribe() chan Event {
	return d.bus.Subscribe()
}

// Unsubscribe removes a subscription.
func (d *Dispatcher) Unsubscribe(ch chan Event) {
	d.bus.Unsubscribe(ch)
}

// Close cancels the running zap and all timers. Further presses fail with
// ErrClosed.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.cancelZapLocked()
	d.entry.OnPowerToggle()
	d.notifier.Stop()
	d.cancel()
}
