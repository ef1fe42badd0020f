// Package snapshot implements stateful first/next enumeration over a
// point-in-time view of live processes or threads. A Cursor tracks whether
// the walk has started and whether it has hit the terminal no-more-entries
// state, so the Toolhelp first/next idiom cannot be misused.
package snapshot

import "winproc/pkg/winerr"

// Errors the cursor protocol can return. Both match errors.Is against
// winerr sentinels of the same kind.
var (
	ErrIteratorNotStarted = winerr.New(winerr.KindIteratorNotStarted, "next called before first")
	ErrRestartUnsupported = winerr.New(winerr.KindRestartUnsupported, "source cannot restart, reopen the snapshot")
)

// Source is a boundary that yields entries of one kind from a snapshot.
// First positions at the first entry and Next advances; both report ok=false
// when there is no entry, which is terminal, not an error. Restart returns
// ErrRestartUnsupported when the boundary cannot re-walk the same snapshot.
type Source[E any] interface {
	First() (entry E, ok bool, err error)
	Next() (entry E, ok bool, err error)
	Restart() error
	Close() error
}

// Cursor walks a Source. It is single-goroutine state: advancing the same
// cursor from two goroutines concurrently is undefined and must be prevented
// by the caller.
type Cursor[E any] struct {
	src     Source[E]
	started bool
	done    bool
}

// NewCursor wraps src in a fresh, not-yet-started cursor.
func NewCursor[E any](src Source[E]) *Cursor[E] {
	return &Cursor[E]{src: src}
}

// First positions the cursor at the first entry. An empty snapshot reports
// ok=false with no error and still counts as a successful start.
func (c *Cursor[E]) First() (E, bool, error) {
	entry, ok, err := c.src.First()
	if err != nil {
		var zero E
		return zero, false, winerr.Wrap(err)
	}
	c.started = true
	c.done = !ok
	return entry, ok, nil
}

// Next yields the entry after the current one. Calling it before First has
// succeeded fails with ErrIteratorNotStarted. Once the source reports no
// more entries the cursor stays exhausted: every later Next reports ok=false
// without touching the boundary again.
func (c *Cursor[E]) Next() (E, bool, error) {
	var zero E
	if !c.started {
		return zero, false, ErrIteratorNotStarted
	}
	if c.done {
		return zero, false, nil
	}
	entry, ok, err := c.src.Next()
	if err != nil {
		return zero, false, winerr.Wrap(err)
	}
	if !ok {
		c.done = true
		return zero, false, nil
	}
	return entry, true, nil
}

// Restart begins a new pass over the same snapshot without recreating it.
// On sources that cannot re-walk it fails with ErrRestartUnsupported and the
// cursor state is left untouched; the caller needs a fresh open instead.
func (c *Cursor[E]) Restart() error {
	if err := c.src.Restart(); err != nil {
		return winerr.Wrap(err)
	}
	c.started = false
	c.done = false
	return nil
}

// Close releases the underlying snapshot.
func (c *Cursor[E]) Close() error {
	return c.src.Close()
}

// Collect drains the remainder of the cursor into a slice, starting the walk
// if it has not started yet.
func (c *Cursor[E]) Collect() ([]E, error) {
	var out []E
	entry, ok, err := c.first()
	for {
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, entry)
		entry, ok, err = c.Next()
	}
}

func (c *Cursor[E]) first() (E, bool, error) {
	if c.started {
		return c.Next()
	}
	return c.First()
}

// filtered applies a caller predicate after retrieval, preserving the
// boundary's own ordering.
type filtered[E any] struct {
	src  Source[E]
	keep func(E) bool
}

// WithFilter wraps src so only entries satisfying keep are yielded. A nil
// keep returns src unchanged.
func WithFilter[E any](src Source[E], keep func(E) bool) Source[E] {
	if keep == nil {
		return src
	}
	return &filtered[E]{src: src, keep: keep}
}

func (f *filtered[E]) First() (E, bool, error) {
	return f.scan(f.src.First())
}

func (f *filtered[E]) Next() (E, bool, error) {
	return f.scan(f.src.Next())
}

func (f *filtered[E]) scan(entry E, ok bool, err error) (E, bool, error) {
	for {
		if err != nil || !ok {
			var zero E
			return zero, false, err
		}
		if f.keep(entry) {
			return entry, true, nil
		}
		entry, ok, err = f.src.Next()
	}
}

func (f *filtered[E]) Restart() error { return f.src.Restart() }
func (f *filtered[E]) Close() error   { return f.src.Close() }
