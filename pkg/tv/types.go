// Package tv models the simulated television and the pure state transitions
// driven by remote key presses.
package tv

import "errors"

// ErrInvalidChannel indicates a channel number below 1
var ErrInvalidChannel = errors.New("invalid channel number")

// Source is a TV input source.
type Source string

// Input sources, in cycle order
const (
	SourceTV    Source = "TV"
	SourceHDMI1 Source = "HDMI1"
	SourceHDMI2 Source = "HDMI2"
	SourceAV    Source = "AV"
)

var sourceCycle = []Source{SourceTV, SourceHDMI1, SourceHDMI2, SourceAV}

// Volume bounds
const (
	MinVolume = 0
	MaxVolume = 100
)

// MinChannel is the lowest valid channel number.
const MinChannel = 1

// State is an immutable snapshot of the simulated television.
type State struct {
	IsOn    bool   `json:"is_on"`
	Volume  int    `json:"volume"`  // 0..100
	Channel int    `json:"channel"` // >= 1
	Source  Source `json:"source"`
	IsMuted bool   `json:"is_muted"`
}

// DefaultState returns the state of a freshly plugged-in set.
func DefaultState() State {
	return State{
		IsOn:    false,
		Volume:  15,
		Channel: 1,
		Source:  SourceTV,
		IsMuted: false,
	}
}

// NextSource returns the source following s in the cycle.
// Unknown sources restart the cycle at TV.
func NextSource(s Source) Source {
	for i, src := range sourceCycle {
		if src == s {
			return sourceCycle[(i+1)%len(sourceCycle)]
		}
	}
	return sourceCycle[0]
}

// Result is the outcome of applying one input to a State.
type Result struct {
	Next    State
	Status  Status
	Message string

	// ResetEntry asks the caller to discard any partial channel entry.
	ResetEntry bool
}

// Changed reports whether the transition produced a different state.
func (r Result) Changed(prev State) bool {
	return r.Next != prev
}
