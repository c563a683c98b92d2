package tv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	for _, k := range Keys() {
		got, ok := ParseKey(string(k))
		assert.True(t, ok, k)
		assert.Equal(t, k, got)
	}

	for _, bad := range []string{"", "power", "VOLUME_UP", "10", "PRE_CH", "E_MANUAL"} {
		_, ok := ParseKey(bad)
		assert.False(t, ok, bad)
	}
}

func TestKeys_Vocabulary(t *testing.T) {
	want := []string{
		"POWER", "SOURCE", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0",
		"PRE-CH", "MUTE", "VOL_UP", "VOL_DOWN", "CH_UP", "CH_DOWN",
		"MENU", "GUIDE", "TOOLS", "INFO", "UP", "DOWN", "LEFT", "RIGHT",
		"ENTER", "RETURN", "EXIT", "RED", "GREEN", "YELLOW", "BLUE",
		"E-MANUAL", "SMART_HUB", "PROGRAM",
	}
	got := make([]string, 0, len(want))
	for _, k := range Keys() {
		got = append(got, k.String())
	}
	assert.Equal(t, want, got)
}

func TestDigitKey(t *testing.T) {
	for d := 0; d <= 9; d++ {
		k, ok := DigitKey(d)
		require.True(t, ok)
		assert.True(t, k.IsDigit())
		assert.Equal(t, string(rune('0'+d)), string(k))
	}

	_, ok := DigitKey(10)
	assert.False(t, ok)
	_, ok = DigitKey(-1)
	assert.False(t, ok)
}

func TestDigitsOf(t *testing.T) {
	keys, err := DigitsOf(15)
	require.NoError(t, err)
	assert.Equal(t, []Key{Key1, Key5}, keys)

	keys, err = DigitsOf(100)
	require.NoError(t, err)
	assert.Equal(t, []Key{Key1, Key0, Key0}, keys)

	_, err = DigitsOf(0)
	assert.True(t, errors.Is(err, ErrInvalidChannel))
}

func TestKeyCategory(t *testing.T) {
	tests := []struct {
		key  Key
		want Category
	}{
		{KeyPower, CategoryPower},
		{KeyVolUp, CategoryRocker},
		{KeyChDown, CategoryRocker},
		{KeyLeft, CategoryDPad},
		{KeyBlue, CategoryColor},
		{KeySource, CategorySmall},
		{KeyMute, CategorySmall},
		{KeyEnter, CategoryEnter},
		{Key7, CategoryStandard},
		{KeySmartHub, CategoryStandard},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.key.Category(), tt.key)
	}
}
