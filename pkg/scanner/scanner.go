// Package scanner finds the IR protocol a television answers to by sending
// POWER in every known protocol until the user confirms one.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/plasma-remote/pkg/clock"
)

// DefaultStep is the delay between two test signals.
const DefaultStep = 1200 * time.Millisecond

// ErrUnknownProtocol indicates an ID outside the catalogue.
var ErrUnknownProtocol = errors.New("unknown IR protocol")

// TestFunc sends a test signal using protocol.
type TestFunc func(protocol string) error

// SaveFunc persists the confirmed protocol.
type SaveFunc func(ctx context.Context, protocol string) error

// Status reports scan progress.
type Status struct {
	Running   bool      `json:"running"`
	Index     int       `json:"index"`
	Total     int       `json:"total"`
	Progress  float64   `json:"progress"`
	Current   *Protocol `json:"current,omitempty"`
	Confirmed string    `json:"confirmed,omitempty"`
}

// Scanner steps through the protocol catalogue. Start sends the first
// protocol at once and the next one every step until the catalogue is
// exhausted, Stop is called or a protocol is confirmed.
type Scanner struct {
	mu    sync.Mutex
	clock clock.Clock
	step  time.Duration
	test  TestFunc
	save  SaveFunc

	running   bool
	index     int
	timer     clock.Timer
	gen       uint64
	confirmed string
}

// New creates a Scanner. A zero step uses DefaultStep.
func New(c clock.Clock, step time.Duration, test TestFunc, save SaveFunc) *Scanner {
	if step <= 0 {
		step = DefaultStep
	}
	return &Scanner{clock: c, step: step, test: test, save: save}
}

// Start begins a scan, restarting any scan in progress.
func (s *Scanner) Start() Status {
	s.mu.Lock()
	s.stopLocked()
	s.running = true
	s.index = 0
	s.confirmed = ""
	gen := s.gen
	s.mu.Unlock()

	log.Info().Int("protocols", len(protocols)).Msg("IR protocol scan started")
	s.fire(gen)
	return s.Status()
}

// Stop ends the scan, leaving the last tested protocol in the status.
func (s *Scanner) Stop() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	return s.statusLocked()
}

// Confirm stops the scan and saves protocol id.
func (s *Scanner) Confirm(ctx context.Context, id string) (Status, error) {
	if _, ok := FindProtocol(id); !ok {
		return s.Status(), fmt.Errorf("%w: %q", ErrUnknownProtocol, id)
	}

	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()

	if s.save != nil {
		if err := s.save(ctx, id); err != nil {
			return s.Status(), fmt.Errorf("save protocol: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed = id
	log.Info().Str("protocol", id).Msg("IR protocol confirmed")
	return s.statusLocked(), nil
}

// Status returns the scan progress.
func (s *Scanner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// fire sends the current protocol and arms the next step.
func (s *Scanner) fire(gen uint64) {
	s.mu.Lock()
	if !s.running || gen != s.gen {
		s.mu.Unlock()
		return
	}
	p := protocols[s.index]
	if s.index+1 < len(protocols) {
		s.timer = s.clock.AfterFunc(s.step, func() { s.advance(gen) })
	} else {
		s.timer = s.clock.AfterFunc(s.step, func() { s.finish(gen) })
	}
	s.mu.Unlock()

	// Sent outside the lock; the test may block on the dispatcher
	if err := s.test(p.ID); err != nil {
		log.Warn().Err(err).Str("protocol", p.ID).Msg("Test signal failed")
	}
}

func (s *Scanner) advance(gen uint64) {
	s.mu.Lock()
	if !s.running || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.index++
	s.mu.Unlock()
	s.fire(gen)
}

func (s *Scanner) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	log.Info().Msg("IR protocol scan exhausted the catalogue")
	s.stopLocked()
}

func (s *Scanner) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.running = false
	s.gen++
}

func (s *Scanner) statusLocked() Status {
	st := Status{
		Running:   s.running,
		Index:     s.index,
		Total:     len(protocols),
		Confirmed: s.confirmed,
	}
	if s.running {
		p := protocols[s.index]
		st.Current = &p
		st.Progress = float64(s.index+1) / float64(len(protocols)) * 100
	}
	return st
}
