// Package topology models processor affinity masks and processor identity.
// The mask arithmetic is plain bit twiddling and works anywhere; the queries
// that ask the OS live behind the windows build tag.
package topology

import "math/bits"

// MaxProcessorsPerGroup is the Win32 limit on processors in one group, and
// therefore on bits in an affinity mask.
const MaxProcessorsPerGroup = 64

// AffinityInfo pairs the system affinity mask with one process's mask. Bit i
// set in SystemMask means processor i exists in the group; set in
// ProcessMask means the process may run on it.
type AffinityInfo struct {
	SystemMask  uint64
	ProcessMask uint64
}

// ValidProcessor reports whether processor index exists on the system.
func (a AffinityInfo) ValidProcessor(index int) bool {
	if index < 0 || index >= MaxProcessorsPerGroup {
		return false
	}
	return a.SystemMask&(1<<index) != 0
}

// EnabledProcessor reports whether the process may run on processor index.
// valid is false when the index does not name a processor the system has, in
// which case enabled is meaningless.
func (a AffinityInfo) EnabledProcessor(index int) (enabled, valid bool) {
	if !a.ValidProcessor(index) {
		return false, false
	}
	return a.ProcessMask&(1<<index) != 0, true
}

// Count is the number of processors the process may run on.
func (a AffinityInfo) Count() int {
	return bits.OnesCount64(a.ProcessMask)
}

// Highest is the largest enabled processor index, or -1 when the mask is
// empty.
func (a AffinityInfo) Highest() int {
	return bits.Len64(a.ProcessMask) - 1
}

// List expands the process mask into a per-processor enabled flag, covering
// every processor the system mask names.
func (a AffinityInfo) List() []bool {
	n := bits.Len64(a.SystemMask)
	out := make([]bool, n)
	for i := range out {
		out[i] = a.ProcessMask&(1<<i) != 0
	}
	return out
}

// Processor identifies one logical processor by group and in-group index.
type Processor struct {
	Group uint16
	Index uint8
}

// Mask is the single-bit affinity mask selecting this processor within its
// group.
func (p Processor) Mask() uint64 {
	return 1 << p.Index
}
