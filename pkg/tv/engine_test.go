package tv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleStates enumerates a spread of states covering the bounds.
func sampleStates() []State {
	var states []State
	for _, on := range []bool{false, true} {
		for _, vol := range []int{0, 1, 15, 99, 100} {
			for _, ch := range []int{1, 2, 15, 999} {
				for _, src := range sourceCycle {
					for _, muted := range []bool{false, true} {
						states = append(states, State{
							IsOn:    on,
							Volume:  vol,
							Channel: ch,
							Source:  src,
							IsMuted: muted,
						})
					}
				}
			}
		}
	}
	return states
}

func TestTransition_OffRejectsEverythingButPower(t *testing.T) {
	for _, s := range sampleStates() {
		if s.IsOn {
			continue
		}
		for _, k := range Keys() {
			if k == KeyPower {
				continue
			}
			r := Transition(s, k)
			assert.Equal(t, s, r.Next, "key %s changed an off TV", k)
			assert.Equal(t, StatusRejectedOff, r.Status)
			assert.False(t, r.ResetEntry)
		}
	}
}

func TestTransition_PowerToggles(t *testing.T) {
	for _, s := range sampleStates() {
		r := Transition(s, KeyPower)
		assert.Equal(t, !s.IsOn, r.Next.IsOn)
		assert.True(t, r.ResetEntry)

		// Nothing else moves
		want := s
		want.IsOn = !s.IsOn
		assert.Equal(t, want, r.Next)
	}
}

func TestTransition_PowerStatus(t *testing.T) {
	on := Transition(DefaultState(), KeyPower)
	assert.Equal(t, StatusPoweringOn, on.Status)

	off := Transition(on.Next, KeyPower)
	assert.Equal(t, StatusPoweringOff, off.Status)
	assert.NotEqual(t, on.Message, off.Message)
}

func TestTransition_VolumeBounds(t *testing.T) {
	tests := []struct {
		name       string
		volume     int
		key        Key
		wantVolume int
		wantStatus Status
	}{
		{"up at max", 100, KeyVolUp, 100, StatusVolumeMax},
		{"down at min", 0, KeyVolDown, 0, StatusVolumeMin},
		{"up below max", 99, KeyVolUp, 100, StatusVolume},
		{"down above min", 1, KeyVolDown, 0, StatusVolume},
		{"up from default", 15, KeyVolUp, 16, StatusVolume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultState()
			s.IsOn = true
			s.Volume = tt.volume

			r := Transition(s, tt.key)
			assert.Equal(t, tt.wantVolume, r.Next.Volume)
			assert.Equal(t, tt.wantStatus, r.Status)
		})
	}
}

func TestTransition_VolumeUpAlwaysUnmutes(t *testing.T) {
	for _, s := range sampleStates() {
		if !s.IsOn {
			continue
		}
		r := Transition(s, KeyVolUp)
		assert.False(t, r.Next.IsMuted)
		assert.LessOrEqual(t, r.Next.Volume, MaxVolume)
	}
}

func TestTransition_VolumeAtBoundUnmutesOnly(t *testing.T) {
	s := State{IsOn: true, Volume: 100, Channel: 1, Source: SourceTV, IsMuted: true}

	r := Transition(s, KeyVolUp)
	assert.Equal(t, 100, r.Next.Volume)
	assert.False(t, r.Next.IsMuted)
	assert.Equal(t, StatusVolumeMax, r.Status)

	s.Volume = 0
	r = Transition(s, KeyVolDown)
	assert.Equal(t, 0, r.Next.Volume)
	assert.False(t, r.Next.IsMuted)
	assert.Equal(t, StatusVolumeMin, r.Status)
}

func TestTransition_VolumeDownUnmutes(t *testing.T) {
	s := State{IsOn: true, Volume: 40, Channel: 1, Source: SourceTV, IsMuted: true}

	r := Transition(s, KeyVolDown)
	assert.Equal(t, 39, r.Next.Volume)
	assert.False(t, r.Next.IsMuted)
}

func TestTransition_MuteIndependentOfVolume(t *testing.T) {
	s := State{IsOn: true, Volume: 0, Channel: 3, Source: SourceAV}

	r := Transition(s, KeyMute)
	assert.True(t, r.Next.IsMuted)
	assert.Equal(t, 0, r.Next.Volume)
	assert.Equal(t, StatusMuted, r.Status)

	r = Transition(r.Next, KeyMute)
	assert.False(t, r.Next.IsMuted)
	assert.Equal(t, StatusUnmuted, r.Status)
}

func TestTransition_Channels(t *testing.T) {
	s := State{IsOn: true, Volume: 10, Channel: 1, Source: SourceTV}

	r := Transition(s, KeyChDown)
	assert.Equal(t, 1, r.Next.Channel, "channel must not go below 1")

	r = Transition(s, KeyChUp)
	assert.Equal(t, 2, r.Next.Channel)
	assert.Equal(t, "Channel 2", r.Message)

	s.Channel = 9999
	r = Transition(s, KeyChUp)
	assert.Equal(t, 10000, r.Next.Channel)
}

func TestTransition_SourceCycle(t *testing.T) {
	for _, s := range sampleStates() {
		if !s.IsOn {
			continue
		}
		cur := s
		for i := 0; i < 4; i++ {
			cur = Transition(cur, KeySource).Next
		}
		assert.Equal(t, s.Source, cur.Source)
	}

	s := DefaultState()
	s.IsOn = true
	want := []Source{SourceHDMI1, SourceHDMI2, SourceAV, SourceTV}
	for _, src := range want {
		s = Transition(s, KeySource).Next
		assert.Equal(t, src, s.Source)
	}
}

func TestTransition_OtherKeysAcknowledge(t *testing.T) {
	s := DefaultState()
	s.IsOn = true

	for _, k := range []Key{KeyMenu, KeyGuide, KeyUp, KeyRed, KeyPreCh, KeySmartHub, KeyEnter} {
		r := Transition(s, k)
		assert.Equal(t, s, r.Next)
		assert.Equal(t, StatusAcknowledged, r.Status)
		assert.Contains(t, r.Message, string(k))
	}
}

func TestSetChannel(t *testing.T) {
	s := DefaultState()

	r := SetChannel(s, 15)
	assert.Equal(t, StatusRejectedOff, r.Status)
	assert.Equal(t, s, r.Next)

	s.IsOn = true
	r = SetChannel(s, 15)
	assert.Equal(t, 15, r.Next.Channel)
	assert.Equal(t, StatusChannel, r.Status)

	r = SetChannel(s, 0)
	assert.Equal(t, StatusInvalid, r.Status)
	assert.Equal(t, s, r.Next)
}

func TestEndToEndScenario(t *testing.T) {
	s := DefaultState()

	s = Transition(s, KeyPower).Next
	require.True(t, s.IsOn)
	require.Equal(t, 15, s.Volume)
	require.Equal(t, 1, s.Channel)

	for i := 0; i < 5; i++ {
		s = Transition(s, KeyVolUp).Next
	}
	require.Equal(t, 20, s.Volume)

	s = Transition(s, KeyMute).Next
	require.True(t, s.IsMuted)

	s = Transition(s, KeyVolUp).Next
	assert.False(t, s.IsMuted)
	assert.Equal(t, 21, s.Volume)
}
