//go:build windows

package handle

import (
	"golang.org/x/sys/windows"

	"winproc/pkg/winerr"
)

// CloseHandle releases kernel object handles: processes, threads, snapshots,
// tokens.
func CloseHandle(raw uintptr) error {
	return windows.CloseHandle(windows.Handle(raw))
}

// LocalFree releases system-allocated result blocks, such as the string
// GetThreadDescription hands back.
func LocalFree(raw uintptr) error {
	_, err := windows.LocalFree(windows.Handle(raw))
	return err
}

// Duplicate creates a second, independently owned guard over the same
// underlying object, for handing a handle to another goroutine or caller.
// access zero requests the same access as the source handle.
func (g *Guard) Duplicate(access uint32, inheritable bool) (*Guard, error) {
	options := uint32(windows.DUPLICATE_SAME_ACCESS)
	if access != 0 {
		options = 0
	}

	self := windows.CurrentProcess()
	var dup windows.Handle
	err := windows.DuplicateHandle(self, windows.Handle(g.Borrow()), self, &dup, access, inheritable, options)
	if err != nil {
		return nil, winerr.Wrap(err)
	}
	return Acquire(uintptr(dup), CloseHandle)
}
