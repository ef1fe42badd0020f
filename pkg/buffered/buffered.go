// Package buffered implements the grow-and-retry protocol for boundary calls
// whose output size is unknown until attempted. A single audited growth policy
// replaces the per-call-site retry loops the Win32 surface otherwise invites.
package buffered

import (
	"errors"
	"fmt"
)

// Op invokes the boundary once against buf. On success it reports the number
// of elements actually written. To request a larger buffer it returns a
// *TooSmallError carrying the required size the boundary reported, or zero
// when the boundary does not say.
type Op[E any] func(buf []E) (used int, err error)

// TooSmallError signals that the buffer handed to an Op was not large enough.
// It never escapes Retrieve; Fixed returns it to the caller unchanged.
type TooSmallError struct {
	Required int
}

func (e *TooSmallError) Error() string {
	if e.Required > 0 {
		return fmt.Sprintf("buffer too small, %d required", e.Required)
	}
	return "buffer too small"
}

// RetryLimitError reports that an Op kept demanding a larger buffer past the
// policy's growth bound.
type RetryLimitError struct {
	Attempts int
}

func (e *RetryLimitError) Error() string {
	return fmt.Sprintf("buffer retry limit exceeded after %d growth attempts", e.Attempts)
}

// Policy controls the growth behaviour of Retrieve. The zero value of any
// field falls back to the matching default.
type Policy struct {
	InitialCapacity   int `yaml:"initial_capacity"`
	MaxGrowthAttempts int `yaml:"max_growth_attempts"`
	GrowthFactor      int `yaml:"growth_factor"`
}

// Conservative defaults: 256 elements covers a MAX_PATH-sized result on the
// first attempt, and eight doublings from there clear 64Ki elements, more
// than any single entry on this surface returns.
const (
	DefaultInitialCapacity   = 256
	DefaultMaxGrowthAttempts = 8
	DefaultGrowthFactor      = 2
)

func (p Policy) normalized() Policy {
	if p.InitialCapacity <= 0 {
		p.InitialCapacity = DefaultInitialCapacity
	}
	if p.MaxGrowthAttempts <= 0 {
		p.MaxGrowthAttempts = DefaultMaxGrowthAttempts
	}
	if p.GrowthFactor < 2 {
		p.GrowthFactor = DefaultGrowthFactor
	}
	return p
}

// Retrieve runs op with a growable buffer until it succeeds, fails with a
// non-size error, or exhausts the growth bound. The returned slice is
// truncated to the length op reported on the successful attempt; its backing
// capacity is not reused across calls. Capacity only ever grows: when op
// reports a required size at or below the current capacity the buffer still
// grows by the policy factor, so a misbehaving boundary cannot stall the loop.
func Retrieve[E any](p Policy, op Op[E]) ([]E, error) {
	p = p.normalized()

	buf := make([]E, p.InitialCapacity)
	for attempt := 0; ; attempt++ {
		used, err := op(buf)
		if err == nil {
			if used > len(buf) {
				used = len(buf)
			}
			return buf[:used:used], nil
		}

		var tooSmall *TooSmallError
		if !errors.As(err, &tooSmall) {
			return nil, err
		}
		if attempt+1 >= p.MaxGrowthAttempts {
			return nil, &RetryLimitError{Attempts: p.MaxGrowthAttempts}
		}

		next := len(buf) * p.GrowthFactor
		if tooSmall.Required > next {
			next = tooSmall.Required
		}
		buf = make([]E, next)
	}
}

// Fixed runs op exactly once with a caller-sized buffer. There is no retry: a
// too-small report comes back to the caller as the *TooSmallError itself.
func Fixed[E any](capacity int, op Op[E]) ([]E, error) {
	buf := make([]E, capacity)
	used, err := op(buf)
	if err != nil {
		return nil, err
	}
	if used > len(buf) {
		used = len(buf)
	}
	return buf[:used:used], nil
}
