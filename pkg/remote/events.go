package remote

import (
	"sync"
	"time"

	"github.com/urmzd/plasma-remote/pkg/clock"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// EventType identifies what changed.
type EventType string

// Event types
const (
	EventStateChanged        EventType = "state_changed"
	EventNotification        EventType = "notification"
	EventNotificationCleared EventType = "notification_cleared"
	EventEntry               EventType = "entry"
	EventTypeFeedback        EventType = "feedback"
	EventZap                 EventType = "zap"
)

// Event is published to subscribers whenever the remote changes.
type Event struct {
	Type         EventType     `json:"type"`
	State        *tv.State     `json:"state,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Entry        *EntryStatus  `json:"entry,omitempty"`
	Feedback     *Signal       `json:"feedback,omitempty"`
	Zap          *ZapStatus    `json:"zap,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// EntryStatus reports the digit buffer. Buffer is empty when idle.
type EntryStatus struct {
	Buffer  string `json:"buffer"`
	Pending bool   `json:"pending"`
}

// Bus fans events out to subscribers. Slow subscribers drop events rather
// than block the publisher.
type Bus struct {
	clock clock.Clock

	subscribers   []chan Event
	subscribersMu sync.Mutex
}

// NewBus creates a Bus that stamps events with c.
func NewBus(c clock.Clock) *Bus {
	return &Bus{clock: c}
}

// Publish sends evt to all subscribers without blocking.
func (b *Bus) Publish(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = b.clock.Now()
	}

	b.subscribersMu.Lock()
	defer b.subscribersMu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Subscribe returns a channel that receives events.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, 32)
	b.subscribersMu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.subscribersMu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscription.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.subscribersMu.Lock()
	defer b.subscribersMu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Bus) Subscribers() int {
	b.subscribersMu.Lock()
	defer b.subscribersMu.Unlock()
	return len(b.subscribers)
}
