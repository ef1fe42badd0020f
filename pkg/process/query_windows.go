//go:build windows

package process

import (
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"winproc/pkg/buffered"
	"winproc/pkg/security"
	"winproc/pkg/snapshot"
	"winproc/pkg/winerr"
)

// PathFormat selects the image path style ImagePath returns.
type PathFormat uint32

const (
	// PathWin32 is the drive-letter form, C:\...
	PathWin32 PathFormat = 0
	// PathNative is the NT namespace form, \Device\...
	PathNative PathFormat = processNameNative
)

// ImagePath returns the full image path of the process executable. The path
// length is unknown up front, so the query runs through the buffered
// protocol with the given policy (zero value for defaults).
func (p *Process) ImagePath(format PathFormat, policy buffered.Policy) (string, error) {
	out, err := buffered.Retrieve(policy, func(buf []uint16) (int, error) {
		size := uint32(len(buf))
		err := windows.QueryFullProcessImageName(windows.Handle(p.Handle()), uint32(format), &buf[0], &size)
		if err != nil {
			if errno, ok := err.(syscall.Errno); ok && errno == windows.ERROR_INSUFFICIENT_BUFFER {
				return 0, &buffered.TooSmallError{}
			}
			return 0, err
		}
		return int(size), nil
	})
	if err != nil {
		return "", winerr.Wrap(err)
	}
	return windows.UTF16ToString(out), nil
}

// WaitForInputIdle blocks until the process is waiting for user input with
// no input pending, or the timeout elapses (ErrWaitTimeout). A negative
// timeout waits forever. Only meaningful for GUI processes.
func (p *Process) WaitForInputIdle(timeout time.Duration) error {
	ms := uintptr(infinite)
	if timeout >= 0 {
		ms = uintptr(timeout.Milliseconds())
	}
	r1, _, e1 := procWaitForInputIdle.Call(p.Handle(), ms)
	switch uint32(r1) {
	case 0:
		return nil
	case waitTimeout:
		return ErrWaitTimeout
	default:
		return winerr.Wrap(e1)
	}
}

// IsElevated reports whether the process runs with an elevated token. It is
// a pure composition of the token primitives: open the token under a guard,
// query elevation, release.
func (p *Process) IsElevated() (bool, error) {
	token, err := security.OpenProcessToken(p.Handle(), 0)
	if err != nil {
		return false, err
	}
	defer token.Close()
	return token.IsElevated()
}

// PIDs returns the ids of every live process. EnumProcesses never reports a
// required size: it silently fills whatever fits, so a full buffer is
// treated as a growth request until the result no longer saturates it.
func PIDs(policy buffered.Policy) ([]uint32, error) {
	out, err := buffered.Retrieve(policy, func(buf []uint32) (int, error) {
		var bytesReturned uint32
		if err := windows.EnumProcesses(buf, &bytesReturned); err != nil {
			return 0, err
		}
		n := int(bytesReturned / 4)
		if n == len(buf) {
			return 0, &buffered.TooSmallError{}
		}
		return n, nil
	})
	if err != nil {
		return nil, winerr.Wrap(err)
	}
	return out, nil
}

// List enumerates all live processes from a fresh snapshot, in the order the
// boundary yields them.
func List() ([]snapshot.ProcessEntry, error) {
	cursor, err := snapshot.OpenProcesses(nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()
	return cursor.Collect()
}

// FindByID looks the process up in a fresh snapshot. ok is false when no
// process has that id; that is not an error.
func FindByID(pid uint32) (snapshot.ProcessEntry, bool, error) {
	cursor, err := snapshot.OpenProcesses(func(e snapshot.ProcessEntry) bool { return e.PID == pid })
	if err != nil {
		return snapshot.ProcessEntry{}, false, err
	}
	defer cursor.Close()
	return cursor.First()
}
