// Package channels holds the broadcast channel lineup used for search,
// shortcuts and the assistant's context.
package channels

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound indicates no channel carries the requested number
	ErrNotFound = errors.New("channel not found")

	// ErrInvalidLineup indicates a lineup file that cannot be used
	ErrInvalidLineup = errors.New("invalid channel lineup")
)

// Channel is a numbered broadcast channel.
type Channel struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
}

// Lineup is an ordered, immutable set of channels.
type Lineup struct {
	channels []Channel
	byNumber map[int]Channel
}

// New builds a lineup sorted by number. Numbers must be unique and >= 1.
func New(chs []Channel) (*Lineup, error) {
	l := &Lineup{
		channels: make([]Channel, 0, len(chs)),
		byNumber: make(map[int]Channel, len(chs)),
	}
	for _, c := range chs {
		c.Name = strings.TrimSpace(c.Name)
		if c.Number < 1 {
			return nil, fmt.Errorf("%w: channel number %d", ErrInvalidLineup, c.Number)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("%w: channel %d has no name", ErrInvalidLineup, c.Number)
		}
		if _, dup := l.byNumber[c.Number]; dup {
			return nil, fmt.Errorf("%w: duplicate channel %d", ErrInvalidLineup, c.Number)
		}
		l.byNumber[c.Number] = c
		l.channels = append(l.channels, c)
	}
	sort.Slice(l.channels, func(i, j int) bool { return l.channels[i].Number < l.channels[j].Number })
	return l, nil
}

// Default returns the French DTT lineup.
func Default() *Lineup {
	l, err := New(frenchDTT)
	if err != nil {
		panic(err)
	}
	return l
}

var frenchDTT = []Channel{
	{1, "TF1"},
	{2, "France 2"},
	{3, "France 3"},
	{4, "Canal+"},
	{5, "France 5"},
	{6, "M6"},
	{7, "Arte"},
	{8, "C8"},
	{9, "W9"},
	{10, "TMC"},
	{11, "TFX"},
	{12, "NRJ 12"},
	{13, "LCP"},
	{14, "France 4"},
	{15, "BFM TV"},
	{16, "CNEWS"},
	{17, "CSTAR"},
	{18, "Gulli"},
	{20, "TF1 Séries Films"},
	{21, "L'Équipe"},
	{22, "6ter"},
	{23, "RMC Story"},
	{24, "RMC Découverte"},
	{25, "Chérie 25"},
	{26, "LCI"},
	{27, "France Info"},
	{41, "Paris Première"},
}

// All returns a copy of the lineup.
func (l *Lineup) All() []Channel {
	return append([]Channel(nil), l.channels...)
}

// Len returns the number of channels.
func (l *Lineup) Len() int {
	return len(l.channels)
}

// Get returns the channel numbered n.
func (l *Lineup) Get(n int) (Channel, error) {
	c, ok := l.byNumber[n]
	if !ok {
		return Channel{}, fmt.Errorf("%w: %d", ErrNotFound, n)
	}
	return c, nil
}

// Name returns the name of channel n, or "" when unknown.
func (l *Lineup) Name(n int) string {
	return l.byNumber[n].Name
}

// Search returns channels whose name contains term, ignoring case, or
// whose number contains it as a substring. An empty term matches all.
func (l *Lineup) Search(term string) []Channel {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []Channel{}
	for _, c := range l.channels {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strconv.Itoa(c.Number), term) {
			out = append(out, c)
		}
	}
	return out
}

// Describe renders the lineup as "Name (Ch N)" pairs for prompts.
func (l *Lineup) Describe() string {
	parts := make([]string, 0, len(l.channels))
	for _, c := range l.channels {
		parts = append(parts, fmt.Sprintf("%s (Ch %d)", c.Name, c.Number))
	}
	return strings.Join(parts, ", ")
}

type lineupFile struct {
	Channels []Channel `yaml:"channels"`
}

// Parse decodes a YAML lineup:
//
//	channels:
//	  - number: 1
//	    name: TF1
func Parse(data []byte) (*Lineup, error) {
	var f lineupFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLineup, err)
	}
	if len(f.Channels) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidLineup)
	}
	return New(f.Channels)
}

// LoadFile reads a YAML lineup from path.
func LoadFile(path string) (*Lineup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lineup %s: %w", path, err)
	}
	return Parse(data)
}
