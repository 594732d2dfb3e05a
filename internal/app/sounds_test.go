package app

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestPickDrawsSortedSubset(t *testing.T) {
	catalog := NewSoundCatalog()

	selection := catalog.Pick(4)
	if len(selection) != 4 {
		t.Fatalf("want 4 sounds, got %d", len(selection))
	}
	if !sort.SliceIsSorted(selection, func(i, j int) bool {
		return selection[i].Audio < selection[j].Audio
	}) {
		t.Fatalf("selection is not sorted by audio path: %v", selection)
	}

	seen := make(map[string]bool)
	for _, sound := range selection {
		if seen[sound.Audio] {
			t.Fatalf("duplicate sound in selection: %s", sound.Audio)
		}
		seen[sound.Audio] = true
	}
}

func TestPickWholeCatalog(t *testing.T) {
	catalog := NewSoundCatalog()

	if got := catalog.Pick(0); len(got) != catalog.Size() {
		t.Fatalf("pick(0) should return the whole catalog, got %d", len(got))
	}
	if got := catalog.Pick(catalog.Size() + 10); len(got) != catalog.Size() {
		t.Fatalf("oversized pick should return the whole catalog, got %d", len(got))
	}
}

func TestLoadSoundCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soundlist.json")
	content := `[
		{"audio": "sounds/kick.wav", "icon": "sounds/kick__icon.png"},
		{"audio": "sounds/snare.wav", "icon": null}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write soundlist: %v", err)
	}

	catalog, err := LoadSoundCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if catalog.Size() != 2 {
		t.Fatalf("want 2 sounds, got %d", catalog.Size())
	}
	if catalog.sounds[0].Audio != "sounds/kick.wav" || catalog.sounds[0].Icon != "sounds/kick__icon.png" {
		t.Fatalf("unexpected first sound: %+v", catalog.sounds[0])
	}
}

func TestLoadSoundCatalogErrors(t *testing.T) {
	if _, err := LoadSoundCatalog("does/not/exist.json"); err == nil {
		t.Fatalf("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "empty.json")
	os.WriteFile(path, []byte(`[]`), 0o644)
	if _, err := LoadSoundCatalog(path); err == nil {
		t.Fatalf("empty soundlist should fail")
	}
}
