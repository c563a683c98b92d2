package channels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	l := Default()
	assert.Equal(t, 27, l.Len())
	assert.Equal(t, "BFM TV", l.Name(15))
	assert.Equal(t, "Paris Première", l.Name(41))
	assert.Equal(t, "", l.Name(19))

	_, err := l.Get(19)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSearch(t *testing.T) {
	l := Default()

	tests := []struct {
		term string
		want []int
	}{
		{"bfm", []int{15}},
		{"FRANCE", []int{2, 3, 5, 14, 27}},
		{"tf1", []int{1, 20}},
		{"4", []int{4, 14, 24, 41}},
		{"rmc", []int{23, 24}},
		{"nothing", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := []int{}
			for _, c := range l.Search(tt.term) {
				got = append(got, c.Number)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Len(t, l.Search(""), l.Len())
}

func TestParse(t *testing.T) {
	l, err := Parse([]byte(`
channels:
  - number: 5
    name: Arte HD
  - number: 2
    name: "  BBC Two "
`))
	require.NoError(t, err)
	assert.Equal(t, []Channel{{2, "BBC Two"}, {5, "Arte HD"}}, l.All())
	assert.Equal(t, "BBC Two (Ch 2), Arte HD (Ch 5)", l.Describe())
}

func TestParse_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"not yaml":   "channels: [",
		"empty":      "channels: []",
		"zero":       "channels: [{number: 0, name: X}]",
		"no name":    "channels: [{number: 3}]",
		"duplicates": "channels: [{number: 3, name: A}, {number: 3, name: B}]",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.True(t, errors.Is(err, ErrInvalidLineup), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels:\n  - {number: 1, name: One}\n"), 0o600))

	l, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "One", l.Name(1))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
