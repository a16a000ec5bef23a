package cmd

import (
	"testing"

	"github.com/rsso-project/rsso/internal/store"
)

func TestSub_AddsSubscription(t *testing.T) {
	statePath := setupCmdTest(t)

	if err := runCommand(t, "sub", "https://example.com/feed.xml", "--alias", "example"); err != nil {
		t.Fatalf("sub failed: %v", err)
	}

	reg, err := store.New(statePath).Load()
	if err != nil {
		t.Fatalf("loading state: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 feed, got %d", reg.Len())
	}
	c, ok := reg.Lookup("example")
	if !ok {
		t.Fatal("alias 'example' did not resolve")
	}
	if c.URL != "https://example.com/feed.xml" {
		t.Errorf("resolved URL = %q", c.URL)
	}
}

func TestSub_DuplicateURLFails(t *testing.T) {
	statePath := setupCmdTest(t)

	if err := runCommand(t, "sub", "https://example.com/feed.xml"); err != nil {
		t.Fatalf("first sub failed: %v", err)
	}
	if err := runCommand(t, "sub", "https://example.com/feed.xml"); err == nil {
		t.Fatal("expected duplicate subscription to fail")
	}

	reg, err := store.New(statePath).Load()
	if err != nil {
		t.Fatalf("loading state: %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("expected state to still hold 1 feed, got %d", reg.Len())
	}
}

func TestUnsub_RemovesSubscription(t *testing.T) {
	statePath := setupCmdTest(t)

	if err := runCommand(t, "sub", "https://example.com/feed.xml", "--alias", "example"); err != nil {
		t.Fatalf("sub failed: %v", err)
	}
	if err := runCommand(t, "unsub", "example"); err != nil {
		t.Fatalf("unsub failed: %v", err)
	}

	reg, err := store.New(statePath).Load()
	if err != nil {
		t.Fatalf("loading state: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d feeds", reg.Len())
	}
}

func TestUnsub_UnknownFeedFails(t *testing.T) {
	setupCmdTest(t)

	if err := runCommand(t, "unsub", "nope"); err == nil {
		t.Fatal("expected unsub of unknown feed to fail")
	}
}

func TestRename_SetsAlias(t *testing.T) {
	statePath := setupCmdTest(t)

	if err := runCommand(t, "sub", "https://example.com/feed.xml", "--alias", "example"); err != nil {
		t.Fatalf("sub failed: %v", err)
	}
	if err := runCommand(t, "rename", "example", "daily"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	reg, err := store.New(statePath).Load()
	if err != nil {
		t.Fatalf("loading state: %v", err)
	}
	if _, ok := reg.Lookup("daily"); !ok {
		t.Error("new alias 'daily' did not resolve")
	}
	if _, ok := reg.Lookup("example"); ok {
		t.Error("old alias 'example' still resolves")
	}
}
