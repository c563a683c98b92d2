package tv

// Transition computes the state following a key press.
// It performs no I/O and never fails: rejected inputs yield the unchanged
// state with an informational status.
func Transition(current State, key Key) Result {
	// Power is accepted whatever the current state
	if key == KeyPower {
		next := current
		next.IsOn = !current.IsOn
		status := StatusPoweringOff
		if next.IsOn {
			status = StatusPoweringOn
		}
		return result(next, status, key, true)
	}

	if !current.IsOn {
		return result(current, StatusRejectedOff, key, false)
	}

	next := current
	switch key {
	case KeyVolUp:
		// At a bound the volume holds but the press still unmutes
		next.IsMuted = false
		if current.Volume >= MaxVolume {
			return result(next, StatusVolumeMax, key, false)
		}
		next.Volume = current.Volume + 1
		return result(next, StatusVolume, key, false)

	case KeyVolDown:
		next.IsMuted = false
		if current.Volume <= MinVolume {
			return result(next, StatusVolumeMin, key, false)
		}
		next.Volume = current.Volume - 1
		return result(next, StatusVolume, key, false)

	case KeyMute:
		next.IsMuted = !current.IsMuted
		if next.IsMuted {
			return result(next, StatusMuted, key, false)
		}
		return result(next, StatusUnmuted, key, false)

	case KeyChUp:
		next.Channel = current.Channel + 1
		return result(next, StatusChannel, key, false)

	case KeyChDown:
		next.Channel = max(MinChannel, current.Channel-1)
		return result(next, StatusChannel, key, false)

	case KeySource:
		next.Source = NextSource(current.Source)
		return result(next, StatusSource, key, false)

	default:
		// Menu, navigation and color keys only acknowledge
		return result(current, StatusAcknowledged, key, false)
	}
}

// SetChannel jumps straight to channel n, as a confirmed digit entry does.
// It is rejected when the set is off or n is not a valid channel.
func SetChannel(current State, n int) Result {
	if !current.IsOn {
		return result(current, StatusRejectedOff, "", false)
	}
	if n < MinChannel {
		return result(current, StatusInvalid, "", false)
	}
	next := current
	next.Channel = n
	return result(next, StatusChannel, "", false)
}

func result(next State, status Status, key Key, resetEntry bool) Result {
	return Result{
		Next:       next,
		Status:     status,
		Message:    status.Format(next, key),
		ResetEntry: resetEntry,
	}
}
