package bridge

import "net/http"

// Preset is a ready-made URL template for a common blaster.
type Preset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"bridge_url"`
	Method string `json:"method"`
}

// Presets lists the built-in templates. Hosts are placeholders to edit.
func Presets() []Preset {
	return []Preset{
		{
			ID:     "tasmota",
			Name:   "Tasmota IR",
			URL:    `http://192.168.1.XX/cm?cmnd=IrSend {"Protocol":"{PROTOCOL}","Bits":32,"Data":0x{KEY}}`,
			Method: http.MethodGet,
		},
		{
			ID:     "ha",
			Name:   "Home Assistant webhook",
			URL:    "http://homeassistant.local:8123/api/webhook/samsung_remote?key={KEY}&proto={PROTOCOL}",
			Method: http.MethodPost,
		},
		{
			ID:     "generic",
			Name:   "Generic HTTP",
			URL:    "http://192.168.1.XX/remote?cmd={KEY}&p={PROTOCOL}",
			Method: http.MethodGet,
		},
		{
			ID:     "serial",
			Name:   "USB IR blaster",
			URL:    "serial:///dev/ttyUSB0?baud=9600",
			Method: http.MethodGet,
		},
	}
}

// FindPreset returns the preset with the given id.
func FindPreset(id string) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// SoundNone disables the key click.
const SoundNone = "none"

// DefaultSound is the standard click.
const DefaultSound = "https://assets.mixkit.co/active_storage/sfx/2571/2571-preview.mp3"

// Sound is a selectable key click.
type Sound struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Sounds lists the selectable key clicks.
func Sounds() []Sound {
	return []Sound{
		{ID: "standard", Name: "Standard (click)", URL: DefaultSound},
		{ID: "modern", Name: "Modern (pop)", URL: "https://assets.mixkit.co/active_storage/sfx/2568/2568-preview.mp3"},
		{ID: "retro", Name: "Retro (beep)", URL: "https://assets.mixkit.co/active_storage/sfx/2580/2580-preview.mp3"},
		{ID: "none", Name: "Silent", URL: SoundNone},
	}
}
