//go:build windows

package snapshot

import (
	"os"
	"testing"
)

func TestProcessSnapshotWalk(t *testing.T) {
	cursor, err := OpenProcesses(nil)
	if err != nil {
		t.Fatalf("OpenProcesses: %v", err)
	}
	defer cursor.Close()

	entries, err := cursor.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one process")
	}
}

func TestProcessSnapshotRestart(t *testing.T) {
	self := uint32(os.Getpid())
	cursor, err := OpenProcesses(func(e ProcessEntry) bool { return e.PID == self })
	if err != nil {
		t.Fatalf("OpenProcesses: %v", err)
	}
	defer cursor.Close()

	if _, ok, err := cursor.First(); !ok || err != nil {
		t.Fatalf("First = (%v, %v)", ok, err)
	}
	if err := cursor.Restart(); err != nil {
		t.Fatalf("Toolhelp snapshots should restart: %v", err)
	}
	entry, ok, err := cursor.First()
	if !ok || err != nil {
		t.Fatalf("First after restart = (%v, %v)", ok, err)
	}
	if entry.PID != self {
		t.Fatalf("pid %d, want %d", entry.PID, self)
	}
}

func TestThreadSnapshotScoped(t *testing.T) {
	self := uint32(os.Getpid())
	cursor, err := OpenThreads(func(e ThreadEntry) bool { return e.OwnerPID == self })
	if err != nil {
		t.Fatalf("OpenThreads: %v", err)
	}
	defer cursor.Close()

	entries, err := cursor.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected the test process to have threads")
	}
}
