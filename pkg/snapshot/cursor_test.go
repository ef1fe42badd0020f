package snapshot

import (
	"errors"
	"testing"
)

// fakeSource simulates the boundary over a fixed entry list, counting how
// often the cursor actually reaches it.
type fakeSource struct {
	entries     []ProcessEntry
	pos         int
	restartable bool
	firstCalls  int
	nextCalls   int
	closed      int
}

func (f *fakeSource) First() (ProcessEntry, bool, error) {
	f.firstCalls++
	f.pos = 0
	return f.yield()
}

func (f *fakeSource) Next() (ProcessEntry, bool, error) {
	f.nextCalls++
	return f.yield()
}

func (f *fakeSource) yield() (ProcessEntry, bool, error) {
	if f.pos >= len(f.entries) {
		return ProcessEntry{}, false, nil
	}
	entry := f.entries[f.pos]
	f.pos++
	return entry, true, nil
}

func (f *fakeSource) Restart() error {
	if !f.restartable {
		return ErrRestartUnsupported
	}
	f.pos = 0
	return nil
}

func (f *fakeSource) Close() error {
	f.closed++
	return nil
}

func procs(pids ...uint32) []ProcessEntry {
	out := make([]ProcessEntry, len(pids))
	for i, pid := range pids {
		out[i] = ProcessEntry{PID: pid}
	}
	return out
}

func TestNextBeforeFirstFails(t *testing.T) {
	c := NewCursor[ProcessEntry](&fakeSource{entries: procs(1)})
	_, _, err := c.Next()
	if !errors.Is(err, ErrIteratorNotStarted) {
		t.Fatalf("expected ErrIteratorNotStarted, got %v", err)
	}
}

func TestExhaustionIsSticky(t *testing.T) {
	src := &fakeSource{entries: procs(10, 20)}
	c := NewCursor[ProcessEntry](src)

	entry, ok, err := c.First()
	if err != nil || !ok || entry.PID != 10 {
		t.Fatalf("First = (%v, %v, %v)", entry, ok, err)
	}
	entry, ok, err = c.Next()
	if err != nil || !ok || entry.PID != 20 {
		t.Fatalf("Next = (%v, %v, %v)", entry, ok, err)
	}
	if _, ok, _ := c.Next(); ok {
		t.Fatal("expected exhaustion after last entry")
	}

	boundaryCalls := src.nextCalls
	for i := 0; i < 3; i++ {
		if _, ok, err := c.Next(); ok || err != nil {
			t.Fatalf("exhausted cursor yielded (%v, %v)", ok, err)
		}
	}
	if src.nextCalls != boundaryCalls {
		t.Fatalf("exhausted cursor still reached the boundary: %d extra calls", src.nextCalls-boundaryCalls)
	}
}

func TestEmptySnapshot(t *testing.T) {
	c := NewCursor[ProcessEntry](&fakeSource{})

	if _, ok, err := c.First(); ok || err != nil {
		t.Fatalf("First on empty = (%v, %v)", ok, err)
	}
	for i := 0; i < 2; i++ {
		if _, ok, err := c.Next(); ok || err != nil {
			t.Fatalf("Next on empty = (%v, %v)", ok, err)
		}
	}
}

func TestRestartBeginsNewPass(t *testing.T) {
	src := &fakeSource{entries: procs(1, 2), restartable: true}
	c := NewCursor[ProcessEntry](src)

	if _, err := c.Collect(); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if err := c.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	entry, ok, err := c.First()
	if err != nil || !ok || entry.PID != 1 {
		t.Fatalf("First after restart = (%v, %v, %v)", entry, ok, err)
	}
}

func TestRestartUnsupported(t *testing.T) {
	src := &fakeSource{entries: procs(1), restartable: false}
	c := NewCursor[ProcessEntry](src)
	if _, err := c.Collect(); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if err := c.Restart(); !errors.Is(err, ErrRestartUnsupported) {
		t.Fatalf("expected ErrRestartUnsupported, got %v", err)
	}
	// Failed restart leaves the cursor in its terminal state.
	if _, ok, err := c.Next(); ok || err != nil {
		t.Fatalf("cursor state changed by failed restart: (%v, %v)", ok, err)
	}
}

func TestCollect(t *testing.T) {
	c := NewCursor[ProcessEntry](&fakeSource{entries: procs(1, 2, 3)})
	out, err := c.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 3 || out[0].PID != 1 || out[2].PID != 3 {
		t.Fatalf("unexpected entries %v", out)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	src := &fakeSource{entries: procs(1, 2, 3, 4, 5)}
	c := NewCursor(WithFilter[ProcessEntry](src, func(e ProcessEntry) bool { return e.PID%2 == 0 }))

	out, err := c.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 2 || out[0].PID != 2 || out[1].PID != 4 {
		t.Fatalf("unexpected filtered entries %v", out)
	}
}

func TestCloseReachesSource(t *testing.T) {
	src := &fakeSource{}
	c := NewCursor[ProcessEntry](src)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if src.closed != 1 {
		t.Fatalf("expected one close, got %d", src.closed)
	}
}
