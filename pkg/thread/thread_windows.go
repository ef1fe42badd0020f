//go:build windows

// Package thread wraps the Win32 thread surface: open, suspend/resume,
// priority, affinity, and the thread description string. Same ownership
// rules as pkg/process: one goroutine per Thread unless duplicated.
package thread

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"winproc/pkg/handle"
	"winproc/pkg/snapshot"
	"winproc/pkg/topology"
	"winproc/pkg/winerr"
)

// DefaultAccess covers every operation this package exposes.
const DefaultAccess = threadQueryInformation |
	threadSetInformation |
	threadSuspendResume |
	threadTerminate

// Narrower access masks for callers that cannot get DefaultAccess on
// threads of other processes.
const (
	AccessQueryLimited  = threadQueryLimitedInfo
	AccessSetLimited    = threadSetLimitedInfo
	AccessSuspendResume = threadSuspendResume
	AccessTerminate     = threadTerminate
)

// Priority levels accepted by SetPriority, mirroring THREAD_PRIORITY_*.
const (
	PriorityIdle         = -15
	PriorityLowest       = -2
	PriorityBelowNormal  = -1
	PriorityNormal       = 0
	PriorityAboveNormal  = 1
	PriorityHighest      = 2
	PriorityTimeCritical = 15
)

// Thread owns one opened thread handle.
type Thread struct {
	guard *handle.Guard
	tid   uint32
}

// Open opens the thread with the given id. access zero means DefaultAccess.
func Open(tid uint32, access uint32) (*Thread, error) {
	if access == 0 {
		access = DefaultAccess
	}
	h, err := windows.OpenThread(access, false, tid)
	if err != nil {
		return nil, winerr.Wrap(err)
	}
	guard, err := handle.Acquire(uintptr(h), handle.CloseHandle)
	if err != nil {
		return nil, err
	}
	return &Thread{guard: guard, tid: tid}, nil
}

// CurrentID is the calling thread's id.
func CurrentID() uint32 {
	return windows.GetCurrentThreadId()
}

// Close releases the thread handle. Safe to call more than once.
func (t *Thread) Close() error {
	return t.guard.Close()
}

// TID is the thread id this handle was opened for.
func (t *Thread) TID() uint32 {
	return t.tid
}

// Handle exposes the raw handle without transferring ownership.
func (t *Thread) Handle() uintptr {
	return t.guard.Borrow()
}

// Duplicate produces an independently owned Thread over the same OS thread.
func (t *Thread) Duplicate() (*Thread, error) {
	guard, err := t.guard.Duplicate(0, false)
	if err != nil {
		return nil, err
	}
	return &Thread{guard: guard, tid: t.tid}, nil
}

// Suspend suspends the thread, returning its previous suspend count.
func (t *Thread) Suspend() (uint32, error) {
	r1, _, e1 := procSuspendThread.Call(t.Handle())
	count := uint32(r1)
	if count == ^uint32(0) {
		return 0, winerr.Wrap(e1)
	}
	return count, nil
}

// Resume decrements the thread's suspend count, returning the previous
// count. The thread runs again once the count reaches zero.
func (t *Thread) Resume() (uint32, error) {
	count, err := windows.ResumeThread(windows.Handle(t.Handle()))
	if count == ^uint32(0) {
		return 0, winerr.Wrap(err)
	}
	return count, nil
}

// Terminate forcefully ends the thread with the given exit code. The target
// gets no chance to clean up; prefer cooperative shutdown where possible.
func (t *Thread) Terminate(exitCode uint32) error {
	r1, _, e1 := procTerminateThread.Call(t.Handle(), uintptr(exitCode))
	if r1 == 0 {
		return winerr.Wrap(e1)
	}
	return nil
}

// ExitCode returns the thread exit code, or the STILL_ACTIVE marker while it
// runs.
func (t *Thread) ExitCode() (uint32, error) {
	var code uint32
	r1, _, e1 := procGetExitCodeThread.Call(t.Handle(), uintptr(unsafe.Pointer(&code)))
	if r1 == 0 {
		return 0, winerr.Wrap(e1)
	}
	return code, nil
}

// IsAlive reports whether the thread has not yet exited.
func (t *Thread) IsAlive() (bool, error) {
	code, err := t.ExitCode()
	if err != nil {
		return false, err
	}
	return code == stillActive, nil
}

// Priority returns the thread's priority level.
func (t *Thread) Priority() (int32, error) {
	r1, _, e1 := procGetThreadPriority.Call(t.Handle())
	if int32(r1) == priorityErrorReturn {
		return 0, winerr.Wrap(e1)
	}
	return int32(r1), nil
}

// SetPriority sets the thread's priority level, one of the Priority*
// constants.
func (t *Thread) SetPriority(priority int32) error {
	r1, _, e1 := procSetThreadPriority.Call(t.Handle(), uintptr(priority))
	if r1 == 0 {
		return winerr.Wrap(e1)
	}
	return nil
}

// PriorityBoost reports whether dynamic priority boosting is enabled.
func (t *Thread) PriorityBoost() (bool, error) {
	var disabled uint32
	r1, _, e1 := procGetThreadPriorityBoost.Call(t.Handle(), uintptr(unsafe.Pointer(&disabled)))
	if r1 == 0 {
		return false, winerr.Wrap(e1)
	}
	return disabled == 0, nil
}

// SetPriorityBoost enables or disables dynamic priority boosting.
func (t *Thread) SetPriorityBoost(enable bool) error {
	var disable uintptr
	if !enable {
		disable = 1
	}
	r1, _, e1 := procSetThreadPriorityBoost.Call(t.Handle(), disable)
	if r1 == 0 {
		return winerr.Wrap(e1)
	}
	return nil
}

// MemoryPriority returns the thread's page priority, one of the
// process.MemoryPriority* levels.
func (t *Thread) MemoryPriority() (uint32, error) {
	var priority uint32
	r1, _, e1 := procGetThreadInformation.Call(t.Handle(), threadMemoryPriority,
		uintptr(unsafe.Pointer(&priority)), unsafe.Sizeof(priority))
	if r1 == 0 {
		return 0, winerr.Wrap(e1)
	}
	return priority, nil
}

// SetMemoryPriority sets the thread's page priority.
func (t *Thread) SetMemoryPriority(priority uint32) error {
	r1, _, e1 := procSetThreadInformation.Call(t.Handle(), threadMemoryPriority,
		uintptr(unsafe.Pointer(&priority)), unsafe.Sizeof(priority))
	if r1 == 0 {
		return winerr.Wrap(e1)
	}
	return nil
}

// SetAffinityMask restricts the thread to the processors in mask, returning
// the previous mask.
func (t *Thread) SetAffinityMask(mask uint64) (uint64, error) {
	r1, _, e1 := procSetThreadAffinityMask.Call(t.Handle(), uintptr(mask))
	if r1 == 0 {
		return 0, winerr.Wrap(e1)
	}
	return uint64(r1), nil
}

// IdealProcessor returns the thread's preferred processor.
func (t *Thread) IdealProcessor() (topology.Processor, error) {
	var pn processorNumber
	r1, _, e1 := procGetThreadIdealProcessorEx.Call(t.Handle(), uintptr(unsafe.Pointer(&pn)))
	if r1 == 0 {
		return topology.Processor{}, winerr.Wrap(e1)
	}
	return topology.Processor{Group: pn.Group, Index: pn.Number}, nil
}

// SetIdealProcessor sets the thread's preferred processor, returning the
// previous one.
func (t *Thread) SetIdealProcessor(p topology.Processor) (topology.Processor, error) {
	target := processorNumber{Group: p.Group, Number: p.Index}
	var previous processorNumber
	r1, _, e1 := procSetThreadIdealProcessorEx.Call(t.Handle(),
		uintptr(unsafe.Pointer(&target)), uintptr(unsafe.Pointer(&previous)))
	if r1 == 0 {
		return topology.Processor{}, winerr.Wrap(e1)
	}
	return topology.Processor{Group: previous.Group, Index: previous.Number}, nil
}

// Description returns the thread's description string. The OS hands the
// string back in a block it allocated; that block is owned by a guard with
// the free strategy until the copy out is done.
func (t *Thread) Description() (string, error) {
	var data *uint16
	r1, _, _ := procGetThreadDescription.Call(t.Handle(), uintptr(unsafe.Pointer(&data)))
	if hr := int32(r1); hr < 0 {
		return "", winerr.Translate(uint32(hr) & 0xffff)
	}
	if data == nil {
		return "", nil
	}
	guard, err := handle.Acquire(uintptr(unsafe.Pointer(data)), handle.LocalFree)
	if err != nil {
		return "", err
	}
	defer guard.Close()
	return windows.UTF16PtrToString(data), nil
}

// SetDescription sets the thread's description string.
func (t *Thread) SetDescription(description string) error {
	data, err := windows.UTF16PtrFromString(description)
	if err != nil {
		return winerr.Wrap(err)
	}
	r1, _, _ := procSetThreadDescription.Call(t.Handle(), uintptr(unsafe.Pointer(data)))
	if hr := int32(r1); hr < 0 {
		return winerr.Translate(uint32(hr) & 0xffff)
	}
	return nil
}

// List enumerates threads from a fresh system-wide snapshot. ownerPID zero
// lists every thread; otherwise only the threads of that process.
func List(ownerPID uint32) ([]snapshot.ThreadEntry, error) {
	var keep func(snapshot.ThreadEntry) bool
	if ownerPID != 0 {
		keep = func(e snapshot.ThreadEntry) bool { return e.OwnerPID == ownerPID }
	}
	cursor, err := snapshot.OpenThreads(keep)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()
	return cursor.Collect()
}

// FindByID looks the thread up in a fresh snapshot. ok is false when no
// thread has that id.
func FindByID(tid uint32) (snapshot.ThreadEntry, bool, error) {
	cursor, err := snapshot.OpenThreads(func(e snapshot.ThreadEntry) bool { return e.TID == tid })
	if err != nil {
		return snapshot.ThreadEntry{}, false, err
	}
	defer cursor.Close()
	return cursor.First()
}
