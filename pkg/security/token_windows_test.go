//go:build windows

package security

import (
	"testing"

	"golang.org/x/sys/windows"
)

func openSelfToken(t *testing.T) *Token {
	t.Helper()
	self, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION, false, windows.GetCurrentProcessId())
	if err != nil {
		t.Fatalf("open self: %v", err)
	}
	t.Cleanup(func() { _ = windows.CloseHandle(self) })

	tok, err := OpenProcessToken(uintptr(self), 0)
	if err != nil {
		t.Fatalf("OpenProcessToken: %v", err)
	}
	t.Cleanup(func() { _ = tok.Close() })
	return tok
}

func TestIsElevatedQueries(t *testing.T) {
	// The answer depends on how the tests run; only the query may not fail.
	if _, err := openSelfToken(t).IsElevated(); err != nil {
		t.Fatalf("IsElevated: %v", err)
	}
}

func TestUserNonEmpty(t *testing.T) {
	user, err := openSelfToken(t).User()
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if user == "" {
		t.Fatal("expected a user name or SID")
	}
}
