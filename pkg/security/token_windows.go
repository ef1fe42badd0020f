//go:build windows

// Package security wraps process security token queries.
package security

import (
	"encoding/binary"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"winproc/pkg/buffered"
	"winproc/pkg/handle"
	"winproc/pkg/winerr"
)

// Token owns an opened access token handle.
type Token struct {
	guard *handle.Guard
}

// OpenProcessToken opens the access token of the process behind the given
// raw process handle. access zero defaults to TOKEN_QUERY.
func OpenProcessToken(process uintptr, access uint32) (*Token, error) {
	if access == 0 {
		access = windows.TOKEN_QUERY
	}
	var tok windows.Token
	if err := windows.OpenProcessToken(windows.Handle(process), access, &tok); err != nil {
		return nil, winerr.Wrap(err)
	}
	guard, err := handle.Acquire(uintptr(tok), handle.CloseHandle)
	if err != nil {
		return nil, err
	}
	return &Token{guard: guard}, nil
}

// Close releases the token handle.
func (t *Token) Close() error {
	return t.guard.Close()
}

// IsElevated reports whether the token is elevated. The TOKEN_ELEVATION
// block is a single fixed-size DWORD, so this uses the no-growth buffered
// variant.
func (t *Token) IsElevated() (bool, error) {
	out, err := buffered.Fixed(4, func(buf []byte) (int, error) {
		var used uint32
		err := windows.GetTokenInformation(windows.Token(t.guard.Borrow()),
			windows.TokenElevation, &buf[0], uint32(len(buf)), &used)
		return int(used), err
	})
	if err != nil {
		return false, winerr.Wrap(err)
	}
	return binary.LittleEndian.Uint32(out) != 0, nil
}

// User resolves the token's user as DOMAIN\name, falling back to the SID in
// string form when the account cannot be looked up.
func (t *Token) User() (string, error) {
	out, err := buffered.Retrieve(buffered.Policy{}, func(buf []byte) (int, error) {
		var used uint32
		err := windows.GetTokenInformation(windows.Token(t.guard.Borrow()),
			windows.TokenUser, &buf[0], uint32(len(buf)), &used)
		if err != nil {
			if errno, ok := err.(syscall.Errno); ok && errno == windows.ERROR_INSUFFICIENT_BUFFER {
				return 0, &buffered.TooSmallError{Required: int(used)}
			}
			return 0, err
		}
		return int(used), nil
	})
	if err != nil {
		return "", winerr.Wrap(err)
	}

	sid := (*windows.Tokenuser)(unsafe.Pointer(&out[0])).User.Sid
	account, domain, _, err := sid.LookupAccount("")
	if err != nil {
		return sid.String(), nil
	}
	if domain != "" {
		return domain + `\` + account, nil
	}
	return account, nil
}
