package app

import (
	"strings"
	"testing"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
)

func testHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(NewSoundCatalog(), domain.DefaultSessionSettings(), 4, testLogger())
	t.Cleanup(hub.Close)
	return hub
}

func TestCreateAndGetSession(t *testing.T) {
	hub := testHub(t)

	created, err := hub.CreateSession()
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	code := created.Code()
	if len(code) != DefaultSessionCodeLength {
		t.Fatalf("code %q has length %d, want %d", code, len(code), DefaultSessionCodeLength)
	}
	for _, r := range code {
		if !strings.ContainsRune(SessionCodeChars, r) {
			t.Fatalf("code %q contains invalid character %q", code, r)
		}
	}

	got, err := hub.GetSession(code)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != created {
		t.Fatalf("lookup returned a different session")
	}
}

func TestGetUnknownSession(t *testing.T) {
	hub := testHub(t)

	if _, err := hub.GetSession("NOPE42"); err != domain.ErrSessionNotFound {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
}

func TestSessionCodesAreUnique(t *testing.T) {
	hub := testHub(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := hub.CreateSession()
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[session.Code()] {
			t.Fatalf("duplicate session code %q", session.Code())
		}
		seen[session.Code()] = true
	}
	if hub.SessionCount() != 50 {
		t.Fatalf("want 50 sessions, got %d", hub.SessionCount())
	}
}

func TestRemoveIfEmpty(t *testing.T) {
	hub := testHub(t)

	session, _ := hub.CreateSession()
	code := session.Code()

	// A populated session survives.
	player, err := session.Join("ana")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	hub.RemoveIfEmpty(code)
	if _, err := hub.GetSession(code); err != nil {
		t.Fatalf("populated session was torn down: %v", err)
	}

	// Once the last player leaves, it goes.
	session.Leave(player.ID)
	hub.RemoveIfEmpty(code)
	if _, err := hub.GetSession(code); err != domain.ErrSessionNotFound {
		t.Fatalf("empty session should be torn down, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	hub := testHub(t)

	session, _ := hub.CreateSession()
	hub.DeleteSession(session.Code())

	if _, err := hub.GetSession(session.Code()); err != domain.ErrSessionNotFound {
		t.Fatalf("deleted session still resolvable: %v", err)
	}
}

func TestTotalPlayerCount(t *testing.T) {
	hub := testHub(t)

	s1, _ := hub.CreateSession()
	s2, _ := hub.CreateSession()
	s1.Join("ana")
	s1.Join("bo")
	s2.Join("cy")

	if got := hub.TotalPlayerCount(); got != 3 {
		t.Fatalf("want 3 players across sessions, got %d", got)
	}
}
