//go:build windows

package winerr

import "testing"

func TestTranslateCarriesSystemMessage(t *testing.T) {
	e := Translate(5) // ERROR_ACCESS_DENIED
	if e.Message == "" {
		t.Fatal("expected a system message for a well-known code")
	}
}

func TestLastStatusReadable(t *testing.T) {
	// Whatever the slot holds, the read itself must not fail or panic.
	_ = LastStatus()
}
