package remote

import (
	"time"

	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// LEDPulse is how long the remote's LED lights on a press.
const LEDPulse = 150 * time.Millisecond

// Feedback signals a key press to the user. Implementations are best
// effort: the dispatcher logs and ignores their errors.
type Feedback interface {
	Emit(key tv.Key) error
}

// Signal describes the feedback for one press.
type Signal struct {
	Key      tv.Key `json:"key"`
	HapticMs int64  `json:"haptic_ms"`
	LEDMs    int64  `json:"led_ms"`
	Sound    string `json:"sound,omitempty"`
}

// HapticPattern returns the vibration length for key.
func HapticPattern(key tv.Key) time.Duration {
	switch key.Category() {
	case tv.CategoryPower:
		return 40 * time.Millisecond
	case tv.CategoryRocker:
		return 10 * time.Millisecond
	case tv.CategoryDPad:
		return 15 * time.Millisecond
	case tv.CategoryColor:
		return 20 * time.Millisecond
	case tv.CategorySmall:
		return 8 * time.Millisecond
	case tv.CategoryEnter:
		return 25 * time.Millisecond
	default:
		return 12 * time.Millisecond
	}
}

// EventFeedback publishes a feedback event for clients to render.
type EventFeedback struct {
	bus   *Bus
	sound func() string
}

// NewEventFeedback creates an EventFeedback. sound returns the configured
// click URL; bridge.SoundNone silences it.
func NewEventFeedback(bus *Bus, sound func() string) *EventFeedback {
	return &EventFeedback{bus: bus, sound: sound}
}

// Emit publishes the signal for key.
func (f *EventFeedback) Emit(key tv.Key) error {
	sig := Signal{
		Key:      key,
		HapticMs: HapticPattern(key).Milliseconds(),
		LEDMs:    LEDPulse.Milliseconds(),
		Sound:    bridge.DefaultSound,
	}
	if f.sound != nil {
		if s := f.sound(); s != "" {
			sig.Sound = s
		}
	}
	if sig.Sound == bridge.SoundNone {
		sig.Sound = ""
	}

	f.bus.Publish(Event{Type: EventTypeFeedback, Feedback: &sig})
	return nil
}
