//go:build windows

package winerr

import (
	"strings"
	"syscall"

	"golang.org/x/sys/windows"

	"winproc/pkg/buffered"
)

func init() {
	lookupMessage = formatMessage
}

// LastStatus reads the calling thread's last-error slot. The slot is per OS
// thread: callers that need it must stay on the thread that made the failing
// call (runtime.LockOSThread) and read it before any other boundary call.
// The facades do not depend on this ordering because the x/sys wrappers
// capture the errno into the returned error at call time; LastStatus exists
// for code driving the boundary directly.
func LastStatus() uint32 {
	err := windows.GetLastError()
	if err == nil {
		return 0
	}
	if errno, ok := err.(syscall.Errno); ok {
		return uint32(errno)
	}
	return 0
}

// formatMessage fetches the system message table text for code. The text
// length is unknown up front, so the lookup itself runs through the buffered
// protocol. Lookup failure is absorbed: translation must not fail because its
// message could not be resolved.
func formatMessage(code uint32) string {
	const flags = windows.FORMAT_MESSAGE_FROM_SYSTEM | windows.FORMAT_MESSAGE_IGNORE_INSERTS

	out, err := buffered.Retrieve(buffered.Policy{}, func(buf []uint16) (int, error) {
		n, err := windows.FormatMessage(flags, 0, code, 0, buf, nil)
		if err != nil {
			if errno, ok := err.(syscall.Errno); ok && errno == windows.ERROR_INSUFFICIENT_BUFFER {
				return 0, &buffered.TooSmallError{}
			}
			return 0, err
		}
		return int(n), nil
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(windows.UTF16ToString(out))
}
