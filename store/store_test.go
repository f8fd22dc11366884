package store

import (
	"path/filepath"
	"testing"

	"humordrop/feed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	user := feed.User{
		ID:            "u1",
		Handle:        "SarcasmSorcerer",
		Bio:           "Fluent in sarcasm.",
		ProfilePicURL: "https://example.com/u1.png",
		HumorTag:      feed.TagSarcastic,
	}
	if err := s.SaveSession(user, "tok-123"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, token, err := s.LoadSession()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a session")
	}
	if *got != user {
		t.Errorf("expected %+v, got %+v", user, *got)
	}
	if token != "tok-123" {
		t.Errorf("expected token tok-123, got %q", token)
	}
}

func TestLoadSession_EmptyStore(t *testing.T) {
	s := newTestStore(t)

	user, token, err := s.LoadSession()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if user != nil || token != "" {
		t.Errorf("expected logged-out state, got %+v %q", user, token)
	}
}

func TestSaveSession_ReplacesPrevious(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveSession(feed.User{ID: "u1", Handle: "first"}, "tok-1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.SaveSession(feed.User{ID: "u2", Handle: "second"}, "tok-2"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	user, token, err := s.LoadSession()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if user.ID != "u2" || token != "tok-2" {
		t.Errorf("expected replaced session, got %+v %q", user, token)
	}
}

func TestClearSession(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveSession(feed.User{ID: "u1", Handle: "someone"}, "tok"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.ClearSession(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	user, token, err := s.LoadSession()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if user != nil || token != "" {
		t.Error("expected cleared session")
	}

	// Clearing twice is fine.
	if err := s.ClearSession(); err != nil {
		t.Errorf("second clear failed: %v", err)
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	if v, err := s.GetSetting("theme"); err != nil || v != "" {
		t.Errorf("expected empty value for unset key, got %q (err %v)", v, err)
	}

	if err := s.SetSetting("theme", "dark"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.SetSetting("theme", "light"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, err := s.GetSetting("theme")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if v != "light" {
		t.Errorf("expected light, got %q", v)
	}
}
