package remote

import (
	"sync"
	"time"

	"github.com/urmzd/plasma-remote/pkg/clock"
)

// DefaultNotificationTTL is how long a notification stays on screen.
const DefaultNotificationTTL = 2500 * time.Millisecond

// Notification is a transient on-screen message.
type Notification struct {
	ID      uint64    `json:"id"`
	Message string    `json:"message"`
	ShownAt time.Time `json:"shown_at"`
}

// Notifier holds at most one notification. Showing a new one replaces the
// current one and cancels its expiry; an expiry only clears the
// notification that armed it.
type Notifier struct {
	mu      sync.Mutex
	clock   clock.Clock
	bus     *Bus
	ttl     time.Duration
	seq     uint64
	current *Notification
	timer   clock.Timer
}

// NewNotifier creates a Notifier publishing to bus.
func NewNotifier(c clock.Clock, bus *Bus, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{clock: c, bus: bus, ttl: ttl}
}

// Show displays msg, replacing any current notification.
func (n *Notifier) Show(msg string) {
	if msg == "" {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	n.seq++
	id := n.seq
	note := Notification{ID: id, Message: msg, ShownAt: n.clock.Now()}
	n.current = &note
	n.timer = n.clock.AfterFunc(n.ttl, func() { n.expire(id) })

	n.bus.Publish(Event{Type: EventNotification, Notification: &note})
}

func (n *Notifier) expire(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil || n.current.ID != id {
		return
	}
	cleared := *n.current
	n.current = nil
	n.timer = nil

	n.bus.Publish(Event{Type: EventNotificationCleared, Notification: &cleared})
}

// Current returns the displayed notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Stop cancels the pending expiry.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
