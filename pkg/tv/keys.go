package tv

import (
	"fmt"
	"strconv"
)

// Key is a canonical remote key identifier. The string values are the wire
// contract shared with the bridge URL templates and the assistant.
type Key string

// Remote key vocabulary
const (
	KeyPower    Key = "POWER"
	KeySource   Key = "SOURCE"
	Key1        Key = "1"
	Key2        Key = "2"
	Key3        Key = "3"
	Key4        Key = "4"
	Key5        Key = "5"
	Key6        Key = "6"
	Key7        Key = "7"
	Key8        Key = "8"
	Key9        Key = "9"
	Key0        Key = "0"
	KeyPreCh    Key = "PRE-CH"
	KeyMute     Key = "MUTE"
	KeyVolUp    Key = "VOL_UP"
	KeyVolDown  Key = "VOL_DOWN"
	KeyChUp     Key = "CH_UP"
	KeyChDown   Key = "CH_DOWN"
	KeyMenu     Key = "MENU"
	KeyGuide    Key = "GUIDE"
	KeyTools    Key = "TOOLS"
	KeyInfo     Key = "INFO"
	KeyUp       Key = "UP"
	KeyDown     Key = "DOWN"
	KeyLeft     Key = "LEFT"
	KeyRight    Key = "RIGHT"
	KeyEnter    Key = "ENTER"
	KeyReturn   Key = "RETURN"
	KeyExit     Key = "EXIT"
	KeyRed      Key = "RED"
	KeyGreen    Key = "GREEN"
	KeyYellow   Key = "YELLOW"
	KeyBlue     Key = "BLUE"
	KeyEManual  Key = "E-MANUAL"
	KeySmartHub Key = "SMART_HUB"
	KeyProgram  Key = "PROGRAM"
)

// allKeys lists the vocabulary in remote layout order.
var allKeys = []Key{
	KeyPower, KeySource,
	Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9, Key0,
	KeyPreCh, KeyMute, KeyVolUp, KeyVolDown, KeyChUp, KeyChDown,
	KeyMenu, KeyGuide, KeyTools, KeyInfo,
	KeyUp, KeyDown, KeyLeft, KeyRight, KeyEnter, KeyReturn, KeyExit,
	KeyRed, KeyGreen, KeyYellow, KeyBlue,
	KeyEManual, KeySmartHub, KeyProgram,
}

var knownKeys = func() map[Key]struct{} {
	m := make(map[Key]struct{}, len(allKeys))
	for _, k := range allKeys {
		m[k] = struct{}{}
	}
	return m
}()

// digitKeys maps a decimal digit to its key.
var digitKeys = [10]Key{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9}

// Keys returns a copy of the full key vocabulary.
func Keys() []Key {
	out := make([]Key, len(allKeys))
	copy(out, allKeys)
	return out
}

// ParseKey returns the key for s if it belongs to the vocabulary.
func ParseKey(s string) (Key, bool) {
	k := Key(s)
	if _, ok := knownKeys[k]; !ok {
		return "", false
	}
	return k, true
}

// Valid reports whether k is part of the vocabulary.
func (k Key) Valid() bool {
	_, ok := knownKeys[k]
	return ok
}

// IsDigit reports whether k is one of the "0"-"9" keys.
func (k Key) IsDigit() bool {
	return len(k) == 1 && k[0] >= '0' && k[0] <= '9'
}

// String returns the canonical identifier.
func (k Key) String() string {
	return string(k)
}

// DigitKey returns the key for a single decimal digit.
func DigitKey(d int) (Key, bool) {
	if d < 0 || d > 9 {
		return "", false
	}
	return digitKeys[d], true
}

// DigitsOf decomposes a channel number into the digit keys a viewer would press.
func DigitsOf(number int) ([]Key, error) {
	if number < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannel, number)
	}
	s := strconv.Itoa(number)
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		k, _ := DigitKey(int(r - '0'))
		keys = append(keys, k)
	}
	return keys, nil
}

// Category groups keys by the physical button type on the remote.
type Category string

// Key categories
const (
	CategoryPower    Category = "power"
	CategoryRocker   Category = "rocker"
	CategoryDPad     Category = "dpad"
	CategoryColor    Category = "color"
	CategorySmall    Category = "small"
	CategoryEnter    Category = "enter"
	CategoryStandard Category = "standard"
)

// Category returns the button category for k.
func (k Key) Category() Category {
	switch k {
	case KeyPower:
		return CategoryPower
	case KeyVolUp, KeyVolDown, KeyChUp, KeyChDown:
		return CategoryRocker
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return CategoryDPad
	case KeyRed, KeyGreen, KeyYellow, KeyBlue:
		return CategoryColor
	case KeySource, KeyPreCh, KeyInfo, KeyMute, KeyMenu, KeyGuide, KeyTools,
		KeyEManual, KeyProgram, KeyReturn, KeyExit:
		return CategorySmall
	case KeyEnter:
		return CategoryEnter
	default:
		return CategoryStandard
	}
}
