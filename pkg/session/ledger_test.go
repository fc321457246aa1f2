package session

import (
	"path/filepath"
	"testing"
)

func TestLedgerAddPreservesOrder(t *testing.T) {
	l := NewLedger()
	l.Add(Entry{Expr: "1 1 +"})
	l.Add(Entry{Expr: "2 3 +"})
	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() len = %d, want 2", len(entries))
	}
	if entries[0].Expr != "1 1 +" || entries[1].Expr != "2 3 +" {
		t.Errorf("Entries() = %v, want recorded order preserved", entries)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	r := compileAndRun(t, "1 1 +", 24)
	l := NewLedger()
	l.Add(Entry{Expr: "1 1 +", Export: r.ToExport()})

	path := filepath.Join(t.TempDir(), "session.ckpt")
	want := &Checkpoint{Entries: l.Entries(), Egests: 24}
	if err := SaveCheckpoint(path, want); err != nil {
		t.Fatalf("SaveCheckpoint() error = %v", err)
	}

	got, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint() error = %v", err)
	}
	if got.Egests != want.Egests {
		t.Errorf("Egests = %d, want %d", got.Egests, want.Egests)
	}
	if len(got.Entries) != 1 || got.Entries[0].Expr != "1 1 +" {
		t.Errorf("Entries = %v, want one entry for \"1 1 +\"", got.Entries)
	}
	if got.Entries[0].Export.Trunc == nil || *got.Entries[0].Export.Trunc != "2" {
		t.Errorf("Entries[0].Export.Trunc = %v, want \"2\"", got.Entries[0].Export.Trunc)
	}
}

func TestLoadCheckpointMissingFileErrors(t *testing.T) {
	if _, err := LoadCheckpoint(filepath.Join(t.TempDir(), "missing.ckpt")); err == nil {
		t.Error("LoadCheckpoint on a nonexistent path did not error")
	}
}
