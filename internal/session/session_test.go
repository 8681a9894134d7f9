package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewInMemory_StartsUnauthenticated(t *testing.T) {
	s := NewInMemory()

	if s.Authenticated() {
		t.Error("new session should not be authenticated")
	}

	if tok, ok := s.Token(); ok || tok != "" {
		t.Errorf("Token() = (%q, %v), want (\"\", false)", tok, ok)
	}
}

func TestSetToken_InMemory(t *testing.T) {
	s := NewInMemory()

	if err := s.SetToken("T1"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	tok, ok := s.Token()
	if !ok || tok != "T1" {
		t.Errorf("Token() = (%q, %v), want (\"T1\", true)", tok, ok)
	}
}

func TestSetToken_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	s := New(path)
	if err := s.SetToken("T1"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	// A fresh instance reading the same file sees the token
	restored := New(path)
	tok, ok := restored.Token()
	if !ok || tok != "T1" {
		t.Errorf("restored Token() = (%q, %v), want (\"T1\", true)", tok, ok)
	}
}

func TestClear_RemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	s := New(path)
	if err := s.SetToken("T1"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if s.Authenticated() {
		t.Error("session should be unauthenticated after Clear")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file should be removed, stat err = %v", err)
	}
}

func TestNew_CorruptFileYieldsEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte(": not yaml ["), 0600); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	if s.Authenticated() {
		t.Error("corrupt session file should yield an unauthenticated session")
	}
}
