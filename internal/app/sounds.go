package app

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
)

// builtinSoundlist is the fallback catalog used when no soundlist file is
// configured. Entries mirror the soundlist.json the client assets ship
// with: an audio clip plus an optional timeline icon.
var builtinSoundlist = []domain.Sound{
	{Audio: "sounds/bass_pluck.wav", Icon: "sounds/bass_pluck__icon.png"},
	{Audio: "sounds/bell.wav", Icon: "sounds/bell__icon.png"},
	{Audio: "sounds/clap.wav", Icon: "sounds/clap__icon.png"},
	{Audio: "sounds/cowbell.wav", Icon: "sounds/cowbell__icon.svg"},
	{Audio: "sounds/guitar_chord.wav", Icon: "sounds/guitar_chord__icon.png"},
	{Audio: "sounds/hihat_closed.wav", Icon: "sounds/hihat_closed__icon.png"},
	{Audio: "sounds/hihat_open.wav", Icon: "sounds/hihat_open__icon.png"},
	{Audio: "sounds/kick.wav", Icon: "sounds/kick__icon.png"},
	{Audio: "sounds/marimba.wav", Icon: "sounds/marimba__icon.png"},
	{Audio: "sounds/meow.wav", Icon: "sounds/meow__icon.png"},
	{Audio: "sounds/piano_c4.wav", Icon: "sounds/piano_c4__icon.png"},
	{Audio: "sounds/shaker.wav"},
	{Audio: "sounds/snare.wav", Icon: "sounds/snare__icon.png"},
	{Audio: "sounds/synth_stab.wav", Icon: "sounds/synth_stab__icon.png"},
	{Audio: "sounds/vibraslap.wav"},
	{Audio: "sounds/whistle.wav", Icon: "sounds/whistle__icon.png"},
}

// SoundCatalog holds the sounds available to new games
type SoundCatalog struct {
	sounds []domain.Sound
}

// NewSoundCatalog returns a catalog backed by the builtin soundlist
func NewSoundCatalog() *SoundCatalog {
	return &SoundCatalog{sounds: builtinSoundlist}
}

// LoadSoundCatalog reads a soundlist.json file
func LoadSoundCatalog(path string) (*SoundCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read soundlist: %w", err)
	}

	var sounds []domain.Sound
	if err := json.Unmarshal(data, &sounds); err != nil {
		return nil, fmt.Errorf("parse soundlist: %w", err)
	}
	if len(sounds) == 0 {
		return nil, fmt.Errorf("soundlist %s is empty", path)
	}

	return &SoundCatalog{sounds: sounds}, nil
}

// Size returns the number of sounds in the catalog
func (c *SoundCatalog) Size() int {
	return len(c.sounds)
}

// Pick draws up to n random sounds for one game, sorted by audio path so
// every client renders the palette in the same order.
func (c *SoundCatalog) Pick(n int) []domain.Sound {
	if n <= 0 || n >= len(c.sounds) {
		selection := make([]domain.Sound, len(c.sounds))
		copy(selection, c.sounds)
		return selection
	}

	shuffled := make([]domain.Sound, len(c.sounds))
	copy(shuffled, c.sounds)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	selection := shuffled[:n]
	sort.Slice(selection, func(i, j int) bool {
		return selection[i].Audio < selection[j].Audio
	})
	return selection
}
