// Package handle provides exclusive ownership of opaque OS handles with a
// guaranteed single release. A Guard pairs one raw handle with the strategy
// that gives it back to the OS; whichever of explicit release or deferred
// cleanup runs first wins, the other is a no-op.
package handle

import (
	"github.com/rs/zerolog/log"

	"winproc/pkg/winerr"
)

// Strategy releases one raw handle. CloseHandle covers kernel objects
// (process, thread, snapshot, token); LocalFree covers system-allocated
// result blocks; NoClose covers pseudo-handles the OS never hands out for
// real.
type Strategy func(raw uintptr) error

// NoClose is the strategy for pseudo-handles such as the current-process
// handle, which must not be closed.
func NoClose(raw uintptr) error { return nil }

// invalidHandleValue is the INVALID_HANDLE_VALUE sentinel.
const invalidHandleValue = ^uintptr(0)

// Guard owns exactly one raw handle. It must have at most one owner at any
// instant; to use a handle from two goroutines, Duplicate it first. The zero
// Guard is released.
type Guard struct {
	raw      uintptr
	release  Strategy
	released bool
}

// Acquire wraps raw under the given release strategy. Both null and
// INVALID_HANDLE_VALUE are rejected, so a live Guard always holds a handle
// the strategy can act on.
func Acquire(raw uintptr, release Strategy) (*Guard, error) {
	if raw == 0 || raw == invalidHandleValue {
		return nil, winerr.New(winerr.KindInvalidHandle, "refusing to guard a sentinel handle value")
	}
	return &Guard{raw: raw, release: release}, nil
}

// Borrow exposes the raw handle for a boundary call without transferring
// ownership. After release it returns zero.
func (g *Guard) Borrow() uintptr {
	return g.raw
}

// Release gives the handle back to the OS. It is idempotent: only the first
// call invokes the strategy, later calls and a deferred Close after it are
// no-ops. A strategy failure is reported on the log side channel and
// swallowed, because release runs during cleanup where the operation's own
// result must still propagate.
func (g *Guard) Release() {
	if g.released || g.release == nil {
		return
	}
	g.released = true
	raw := g.raw
	g.raw = 0
	if err := g.release(raw); err != nil {
		log.Warn().Uint64("handle", uint64(raw)).Err(err).Msg("handle release failed")
	}
}

// Close releases the guard and always returns nil. It exists so a Guard can
// sit directly in a defer.
func (g *Guard) Close() error {
	g.Release()
	return nil
}

// IntoRaw consumes the guard without releasing, handing the caller the raw
// handle and with it the release responsibility. Used at explicit hand-off
// boundaries only.
func (g *Guard) IntoRaw() uintptr {
	raw := g.raw
	g.released = true
	g.raw = 0
	return raw
}
