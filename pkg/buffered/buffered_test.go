package buffered

import (
	"errors"
	"testing"
)

func TestRetrieveGrowsToReportedSize(t *testing.T) {
	required := []int{50, 200, 1000}
	var caps []int
	calls := 0

	out, err := Retrieve(Policy{InitialCapacity: 16}, func(buf []byte) (int, error) {
		calls++
		caps = append(caps, len(buf))
		if len(buf) < 1000 {
			return 0, &TooSmallError{Required: required[calls-1]}
		}
		return 1000, nil
	})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(out) != 1000 {
		t.Fatalf("expected 1000 elements, got %d", len(out))
	}
	if calls != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}
	final := caps[len(caps)-1]
	if final < 1000 {
		t.Fatalf("final capacity %d below required 1000", final)
	}
	for i := 1; i < len(caps); i++ {
		if caps[i] < caps[i-1] {
			t.Fatalf("capacity shrank from %d to %d", caps[i-1], caps[i])
		}
	}
}

func TestRetrieveRetryLimit(t *testing.T) {
	calls := 0
	_, err := Retrieve(Policy{InitialCapacity: 16, MaxGrowthAttempts: 5}, func(buf []byte) (int, error) {
		calls++
		return 0, &TooSmallError{Required: len(buf) * 2}
	})

	var limit *RetryLimitError
	if !errors.As(err, &limit) {
		t.Fatalf("expected RetryLimitError, got %v", err)
	}
	if calls != 5 {
		t.Fatalf("expected exactly 5 attempts, got %d", calls)
	}
}

func TestRetrieveTruncatesToUsedLength(t *testing.T) {
	out, err := Retrieve(Policy{InitialCapacity: 32}, func(buf []byte) (int, error) {
		if len(buf) < 256 {
			return 0, &TooSmallError{Required: 256}
		}
		return 250, nil
	})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(out) != 250 {
		t.Fatalf("expected used length 250, got %d", len(out))
	}
	if cap(out) != 250 {
		t.Fatalf("over-allocated capacity %d leaked past the used length", cap(out))
	}
}

func TestRetrieveForwardProgressWithoutReportedSize(t *testing.T) {
	var caps []int
	_, err := Retrieve(Policy{InitialCapacity: 8, MaxGrowthAttempts: 4}, func(buf []byte) (int, error) {
		caps = append(caps, len(buf))
		return 0, &TooSmallError{}
	})
	if err == nil {
		t.Fatal("expected retry limit error")
	}
	for i := 1; i < len(caps); i++ {
		if caps[i] <= caps[i-1] {
			t.Fatalf("no forward progress: %v", caps)
		}
	}
}

func TestRetrieveAbortsOnOtherErrors(t *testing.T) {
	boom := errors.New("boundary rejected the call")
	calls := 0
	_, err := Retrieve(Policy{}, func(buf []byte) (int, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boundary error back, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no retry on a non-size error, got %d calls", calls)
	}
}

func TestFixedNoGrowth(t *testing.T) {
	out, err := Fixed(8, func(buf []uint16) (int, error) {
		if len(buf) != 8 {
			t.Fatalf("expected caller-sized buffer, got %d", len(buf))
		}
		return 3, nil
	})
	if err != nil {
		t.Fatalf("Fixed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(out))
	}

	calls := 0
	_, err = Fixed(8, func(buf []uint16) (int, error) {
		calls++
		return 0, &TooSmallError{Required: 64}
	})
	var tooSmall *TooSmallError
	if !errors.As(err, &tooSmall) || tooSmall.Required != 64 {
		t.Fatalf("expected TooSmallError with required 64, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("Fixed must not retry, got %d calls", calls)
	}
}
