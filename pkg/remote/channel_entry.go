package remote

import (
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/plasma-remote/pkg/clock"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// DefaultEntryDebounce is the idle time after which a digit buffer commits.
const DefaultEntryDebounce = 2000 * time.Millisecond

// ChannelEntry accumulates digit presses into a channel number. The number
// commits when no digit arrives for the debounce window or on an explicit
// confirm, whichever happens first, and exactly once.
//
// ChannelEntry does no locking of its own. Callers invoke its methods while
// holding guard; the debounce timer acquires guard before committing, so
// commit always runs with guard held.
type ChannelEntry struct {
	clock    clock.Clock
	guard    sync.Locker
	debounce time.Duration
	commit   func(n int)

	buffer string
	timer  clock.Timer
	gen    uint64
}

// NewChannelEntry creates an idle ChannelEntry. commit receives the parsed
// channel number.
func NewChannelEntry(c clock.Clock, guard sync.Locker, debounce time.Duration, commit func(n int)) *ChannelEntry {
	if debounce <= 0 {
		debounce = DefaultEntryDebounce
	}
	return &ChannelEntry{
		clock:    c,
		guard:    guard,
		debounce: debounce,
		commit:   commit,
	}
}

// OnDigit appends d and re-arms the debounce timer.
func (e *ChannelEntry) OnDigit(d tv.Key) {
	if !d.IsDigit() {
		return
	}
	e.cancelTimer()
	e.buffer += string(d)

	gen := e.gen
	e.timer = e.clock.AfterFunc(e.debounce, func() { e.fire(gen) })
}

// OnConfirm commits the buffer immediately. It is a no-op when idle.
func (e *ChannelEntry) OnConfirm() {
	e.cancelTimer()
	e.confirm()
}

// OnPowerToggle discards the buffer.
func (e *ChannelEntry) OnPowerToggle() {
	e.Reset()
}

// Reset returns to idle without committing.
func (e *ChannelEntry) Reset() {
	e.cancelTimer()
	e.buffer = ""
}

// Pending reports whether digits are waiting to be committed.
func (e *ChannelEntry) Pending() bool {
	return e.buffer != ""
}

// Buffer returns the digits typed so far.
func (e *ChannelEntry) Buffer() string {
	return e.buffer
}

// Status snapshots the buffer for publishing.
func (e *ChannelEntry) Status() EntryStatus {
	return EntryStatus{Buffer: e.buffer, Pending: e.Pending()}
}

func (e *ChannelEntry) fire(gen uint64) {
	e.guard.Lock()
	defer e.guard.Unlock()

	// A digit, confirm or power press since arming makes this firing stale
	if gen != e.gen {
		return
	}
	e.timer = nil
	e.gen++
	e.confirm()
}

// cancelTimer stops the armed timer and invalidates any in-flight firing.
func (e *ChannelEntry) cancelTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
}

func (e *ChannelEntry) confirm() {
	if e.buffer == "" {
		return
	}
	buf := e.buffer
	e.buffer = ""

	n, err := strconv.Atoi(buf)
	if err != nil {
		log.Debug().Str("buffer", buf).Err(err).Msg("Discarding unparsable channel entry")
		return
	}
	e.commit(n)
}
