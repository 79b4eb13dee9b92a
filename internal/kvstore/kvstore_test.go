package kvstore

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
)

func newMemStore(t *testing.T) *Store {
	t.Helper()

	fsys, err := mem.NewFS()
	if err != nil {
		t.Fatalf("mem.NewFS: %v", err)
	}
	s, err := Open(fsys, DefaultFileName)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := newMemStore(t)

	_, ok, err := s.GetItem("missing")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if ok {
		t.Error("expected missing key to be absent")
	}

	if err := s.SetItem("crm_current_pipeline", "p1"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	got, ok, err := s.GetItem("crm_current_pipeline")
	if err != nil || !ok || got != "p1" {
		t.Errorf("GetItem = %q, %v, %v; want p1, true, nil", got, ok, err)
	}

	// Last write wins.
	if err := s.SetItem("crm_current_pipeline", "p2"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	got, _, _ = s.GetItem("crm_current_pipeline")
	if got != "p2" {
		t.Errorf("expected last write to win, got %q", got)
	}
}

func TestStore_RemoveItem(t *testing.T) {
	s := newMemStore(t)

	if err := s.SetItem("k", "v"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := s.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := s.GetItem("k"); ok {
		t.Error("removed key still present")
	}

	// Removing an absent key is a no-op.
	if err := s.RemoveItem("never_set"); err != nil {
		t.Errorf("RemoveItem on absent key: %v", err)
	}
}

// Values survive reopening the store over the same filesystem.
func TestStore_Persistence(t *testing.T) {
	fsys, err := mem.NewFS()
	if err != nil {
		t.Fatalf("mem.NewFS: %v", err)
	}

	s, err := Open(fsys, DefaultFileName)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SetItem("a", "1"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := s.SetItem("b", `{"nested":"json"}`); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	reopened, err := Open(fsys, DefaultFileName)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Len() != 2 {
		t.Fatalf("expected 2 keys after reopen, got %d", reopened.Len())
	}
	got, ok, _ := reopened.GetItem("b")
	if !ok || got != `{"nested":"json"}` {
		t.Errorf("value lost across reopen: %q, %v", got, ok)
	}
}
