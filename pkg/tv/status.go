package tv

import "fmt"

// Status identifies the outcome of a transition independently of any
// localized text.
type Status string

// Transition statuses
const (
	StatusPoweringOn   Status = "powering_on"
	StatusPoweringOff  Status = "powering_off"
	StatusRejectedOff  Status = "rejected_tv_off"
	StatusVolume       Status = "volume"
	StatusVolumeMax    Status = "volume_max"
	StatusVolumeMin    Status = "volume_min"
	StatusMuted        Status = "muted"
	StatusUnmuted      Status = "unmuted"
	StatusChannel      Status = "channel"
	StatusSource       Status = "source"
	StatusAcknowledged Status = "acknowledged"
	StatusInvalid      Status = "invalid"
)

// Format renders the status as a short English notification for the given
// resulting state. key is only used by StatusAcknowledged.
func (s Status) Format(next State, key Key) string {
	switch s {
	case StatusPoweringOn:
		return "Powering on..."
	case StatusPoweringOff:
		return "Powering off"
	case StatusRejectedOff:
		return "TV is off"
	case StatusVolume:
		return fmt.Sprintf("Volume %d", next.Volume)
	case StatusVolumeMax:
		return fmt.Sprintf("Volume max (%d)", MaxVolume)
	case StatusVolumeMin:
		return fmt.Sprintf("Volume min (%d)", MinVolume)
	case StatusMuted:
		return "Muted"
	case StatusUnmuted:
		return "Sound on"
	case StatusChannel:
		return fmt.Sprintf("Channel %d", next.Channel)
	case StatusSource:
		return fmt.Sprintf("Source: %s", next.Source)
	case StatusAcknowledged:
		return fmt.Sprintf("Command: %s", key)
	case StatusInvalid:
		return "Invalid channel"
	default:
		return string(s)
	}
}
