package domain

import (
	"encoding/json"
	"testing"
)

func TestAppendSegmentRejectsSameRound(t *testing.T) {
	c := NewComposition("owner")

	if !c.AppendSegment("owner", json.RawMessage(`{"n":1}`), 0, 3) {
		t.Fatalf("first append should succeed")
	}
	if c.AppendSegment("other", json.RawMessage(`{"n":2}`), 0, 3) {
		t.Fatalf("second append for the same round should fail")
	}
	if len(c.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(c.Segments))
	}
}

func TestAppendSegmentRejectsWhenComplete(t *testing.T) {
	c := NewComposition("owner")
	c.AppendSegment("owner", json.RawMessage(`{}`), 0, 2)
	c.AppendSegment("p2", json.RawMessage(`{}`), 1, 2)

	if c.AppendSegment("p3", json.RawMessage(`{}`), 2, 2) {
		t.Fatalf("append beyond total rounds should fail")
	}
	if !c.IsComplete(2) {
		t.Fatalf("composition should be complete")
	}
}

func TestContributorsAreUnique(t *testing.T) {
	c := NewComposition("owner")
	c.AppendSegment("owner", json.RawMessage(`{}`), 0, 3)

	if len(c.Contributors) != 1 {
		t.Fatalf("owner should not be recorded twice, got %v", c.Contributors)
	}

	c.AppendSegment("p2", json.RawMessage(`{}`), 1, 3)
	if len(c.Contributors) != 2 || !c.HasContributor("p2") {
		t.Fatalf("expected contributors [owner p2], got %v", c.Contributors)
	}
}

func TestFixSoundSelectionOnlyOnce(t *testing.T) {
	c := NewComposition("owner")

	c.FixSoundSelection(json.RawMessage(`["kick","snare"]`))
	c.FixSoundSelection(json.RawMessage(`["bell"]`))

	if string(c.SoundSelection) != `["kick","snare"]` {
		t.Fatalf("selection was overwritten: %s", c.SoundSelection)
	}
}

func TestLastContributor(t *testing.T) {
	c := NewComposition("owner")
	if c.LastContributor() != "" {
		t.Fatalf("empty composition has no last contributor")
	}

	c.AppendSegment("owner", json.RawMessage(`{}`), 0, 3)
	c.AppendSegment("p2", json.RawMessage(`{}`), 1, 3)
	if c.LastContributor() != "p2" {
		t.Fatalf("want p2, got %s", c.LastContributor())
	}
}
