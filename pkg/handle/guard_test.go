package handle

import (
	"errors"
	"testing"

	"winproc/pkg/winerr"
)

func countingStrategy(count *int) Strategy {
	return func(raw uintptr) error {
		*count++
		return nil
	}
}

func TestReleaseExactlyOnce(t *testing.T) {
	releases := 0
	g, err := Acquire(42, countingStrategy(&releases))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	g.Release()
	g.Release()
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if releases != 1 {
		t.Fatalf("expected exactly one release, got %d", releases)
	}
}

func TestDeferredCloseAfterExplicitRelease(t *testing.T) {
	releases := 0
	func() {
		g, err := Acquire(7, countingStrategy(&releases))
		if err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		defer g.Close()
		g.Release()
	}()
	if releases != 1 {
		t.Fatalf("expected exactly one release, got %d", releases)
	}
}

func TestAcquireRejectsSentinels(t *testing.T) {
	for _, raw := range []uintptr{0, ^uintptr(0)} {
		_, err := Acquire(raw, NoClose)
		if !errors.Is(err, winerr.New(winerr.KindInvalidHandle, "")) {
			t.Fatalf("raw %#x: expected InvalidHandle, got %v", raw, err)
		}
	}
}

func TestIntoRawTransfersOwnership(t *testing.T) {
	releases := 0
	g, err := Acquire(99, countingStrategy(&releases))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	raw := g.IntoRaw()
	if raw != 99 {
		t.Fatalf("expected raw 99, got %d", raw)
	}
	g.Release()
	if releases != 0 {
		t.Fatalf("guard released a handed-off handle %d times", releases)
	}
}

func TestNoRawHandleAfterRelease(t *testing.T) {
	g, err := Acquire(11, NoClose)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	g.Release()
	if g.Borrow() != 0 {
		t.Fatalf("raw handle still reachable after release: %d", g.Borrow())
	}
	if g.IntoRaw() != 0 {
		t.Fatal("IntoRaw exposed a released handle")
	}
}

func TestReleaseFailureIsSwallowed(t *testing.T) {
	g, err := Acquire(5, func(raw uintptr) error {
		return errors.New("os declined")
	})
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("release failure must not surface, got %v", err)
	}
}
