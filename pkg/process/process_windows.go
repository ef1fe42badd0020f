//go:build windows

// Package process wraps the Win32 process surface behind guarded handles and
// typed errors. Every operation is a synchronous call to the OS; nothing here
// spawns background work, and only WaitForInputIdle takes a timeout because
// it is the only wait-shaped call on this surface.
package process

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"winproc/pkg/handle"
	"winproc/pkg/topology"
	"winproc/pkg/winerr"
)

// DefaultAccess covers every query and control operation this package
// exposes. Pass a narrower mask to Open when the target process denies it.
const DefaultAccess = windows.PROCESS_QUERY_INFORMATION |
	processSetInformation |
	windows.PROCESS_TERMINATE |
	processSetQuota |
	windows.SYNCHRONIZE

// ErrWaitTimeout is returned by WaitForInputIdle when the wait elapsed
// before the process went idle.
var ErrWaitTimeout = &winerr.Error{Code: waitTimeout, Kind: winerr.KindUnknown, Message: "wait timed out"}

// Process owns one opened process handle. It must not be shared across
// goroutines without duplicating the handle first.
type Process struct {
	guard *handle.Guard
	pid   uint32
}

// Open opens the process with the given id. access zero means DefaultAccess.
func Open(pid uint32, access uint32) (*Process, error) {
	if access == 0 {
		access = DefaultAccess
	}
	h, err := windows.OpenProcess(access, false, pid)
	if err != nil {
		return nil, winerr.Wrap(err)
	}
	guard, err := handle.Acquire(uintptr(h), handle.CloseHandle)
	if err != nil {
		return nil, err
	}
	return &Process{guard: guard, pid: pid}, nil
}

// Current opens a real (not pseudo) handle to the calling process.
func Current(access uint32) (*Process, error) {
	return Open(windows.GetCurrentProcessId(), access)
}

// CurrentID is the calling process's id.
func CurrentID() uint32 {
	return windows.GetCurrentProcessId()
}

// Close releases the process handle. Safe to call more than once.
func (p *Process) Close() error {
	return p.guard.Close()
}

// PID is the process id this handle was opened for.
func (p *Process) PID() uint32 {
	return p.pid
}

// Handle exposes the raw handle for boundary calls outside this package.
// Ownership stays with the Process.
func (p *Process) Handle() uintptr {
	return p.guard.Borrow()
}

// Duplicate produces an independently owned Process over the same OS
// process, for handing to another goroutine.
func (p *Process) Duplicate() (*Process, error) {
	guard, err := p.guard.Duplicate(0, false)
	if err != nil {
		return nil, err
	}
	return &Process{guard: guard, pid: p.pid}, nil
}

// ExitCode returns the process exit code. While the process runs it reports
// the STILL_ACTIVE marker; use IsAlive to distinguish.
func (p *Process) ExitCode() (uint32, error) {
	var code uint32
	if err := windows.GetExitCodeProcess(windows.Handle(p.Handle()), &code); err != nil {
		return 0, winerr.Wrap(err)
	}
	return code, nil
}

// IsAlive reports whether the process has not yet exited.
func (p *Process) IsAlive() (bool, error) {
	code, err := p.ExitCode()
	if err != nil {
		return false, err
	}
	return code == stillActive, nil
}

// Terminate forcefully ends the process with the given exit code.
func (p *Process) Terminate(exitCode uint32) error {
	return winerr.Wrap(windows.TerminateProcess(windows.Handle(p.Handle()), exitCode))
}

// PriorityClass returns the scheduling priority class, one of the
// *_PRIORITY_CLASS values.
func (p *Process) PriorityClass() (uint32, error) {
	class, err := windows.GetPriorityClass(windows.Handle(p.Handle()))
	if err != nil {
		return 0, winerr.Wrap(err)
	}
	return class, nil
}

// SetPriorityClass sets the scheduling priority class.
func (p *Process) SetPriorityClass(class uint32) error {
	return winerr.Wrap(windows.SetPriorityClass(windows.Handle(p.Handle()), class))
}

// PriorityBoost reports whether dynamic priority boosting is enabled.
func (p *Process) PriorityBoost() (bool, error) {
	var disabled uint32
	r1, _, e1 := procGetProcessPriorityBoost.Call(p.Handle(), uintptr(unsafe.Pointer(&disabled)))
	if r1 == 0 {
		return false, winerr.Wrap(e1)
	}
	return disabled == 0, nil
}

// SetPriorityBoost enables or disables dynamic priority boosting.
func (p *Process) SetPriorityBoost(enable bool) error {
	var disable uintptr
	if !enable {
		disable = 1
	}
	r1, _, e1 := procSetProcessPriorityBoost.Call(p.Handle(), disable)
	if r1 == 0 {
		return winerr.Wrap(e1)
	}
	return nil
}

// AffinityMask returns the process and system affinity masks.
func (p *Process) AffinityMask() (topology.AffinityInfo, error) {
	var processMask, systemMask uintptr
	r1, _, e1 := procGetProcessAffinityMask.Call(p.Handle(),
		uintptr(unsafe.Pointer(&processMask)), uintptr(unsafe.Pointer(&systemMask)))
	if r1 == 0 {
		return topology.AffinityInfo{}, winerr.Wrap(e1)
	}
	return topology.AffinityInfo{SystemMask: uint64(systemMask), ProcessMask: uint64(processMask)}, nil
}

// SetAffinityMask restricts the process to the processors in mask.
func (p *Process) SetAffinityMask(mask uint64) error {
	r1, _, e1 := procSetProcessAffinityMask.Call(p.Handle(), uintptr(mask))
	if r1 == 0 {
		return winerr.Wrap(e1)
	}
	return nil
}

// WorkingSetSize returns the minimum and maximum working set bounds in bytes.
func (p *Process) WorkingSetSize() (minSize, maxSize uint64, err error) {
	var minWS, maxWS uintptr
	r1, _, e1 := procGetProcessWorkingSetSize.Call(p.Handle(),
		uintptr(unsafe.Pointer(&minWS)), uintptr(unsafe.Pointer(&maxWS)))
	if r1 == 0 {
		return 0, 0, winerr.Wrap(e1)
	}
	return uint64(minWS), uint64(maxWS), nil
}

// SetWorkingSetSize sets the working set bounds. Requires PROCESS_SET_QUOTA.
func (p *Process) SetWorkingSetSize(minSize, maxSize uint64) error {
	r1, _, e1 := procSetProcessWorkingSetSize.Call(p.Handle(), uintptr(minSize), uintptr(maxSize))
	if r1 == 0 {
		return winerr.Wrap(e1)
	}
	return nil
}

// Memory priority levels, mirroring MEMORY_PRIORITY_*.
const (
	MemoryPriorityVeryLow     = 1
	MemoryPriorityLow         = 2
	MemoryPriorityMedium      = 3
	MemoryPriorityBelowNormal = 4
	MemoryPriorityNormal      = 5
)

// MemoryPriority returns the process's default page priority.
func (p *Process) MemoryPriority() (uint32, error) {
	var priority uint32
	r1, _, e1 := procGetProcessInformation.Call(p.Handle(), processMemoryPriority,
		uintptr(unsafe.Pointer(&priority)), unsafe.Sizeof(priority))
	if r1 == 0 {
		return 0, winerr.Wrap(e1)
	}
	return priority, nil
}

// SetMemoryPriority sets the process's default page priority, one of the
// MemoryPriority* levels.
func (p *Process) SetMemoryPriority(priority uint32) error {
	r1, _, e1 := procSetProcessInformation.Call(p.Handle(), processMemoryPriority,
		uintptr(unsafe.Pointer(&priority)), unsafe.Sizeof(priority))
	if r1 == 0 {
		return winerr.Wrap(e1)
	}
	return nil
}

// HandleCount is the number of handles the process currently has open.
func (p *Process) HandleCount() (uint32, error) {
	var count uint32
	r1, _, e1 := procGetProcessHandleCount.Call(p.Handle(), uintptr(unsafe.Pointer(&count)))
	if r1 == 0 {
		return 0, winerr.Wrap(e1)
	}
	return count, nil
}

// IOCounters is the process's cumulative I/O accounting.
type IOCounters struct {
	ReadOperations  uint64
	WriteOperations uint64
	OtherOperations uint64
	ReadBytes       uint64
	WriteBytes      uint64
	OtherBytes      uint64
}

// IOCounters returns the cumulative I/O operation and transfer counts.
func (p *Process) IOCounters() (IOCounters, error) {
	var raw ioCounters
	r1, _, e1 := procGetProcessIoCounters.Call(p.Handle(), uintptr(unsafe.Pointer(&raw)))
	if r1 == 0 {
		return IOCounters{}, winerr.Wrap(e1)
	}
	return IOCounters{
		ReadOperations:  raw.ReadOperationCount,
		WriteOperations: raw.WriteOperationCount,
		OtherOperations: raw.OtherOperationCount,
		ReadBytes:       raw.ReadTransferCount,
		WriteBytes:      raw.WriteTransferCount,
		OtherBytes:      raw.OtherTransferCount,
	}, nil
}

// Times is the process timing accounting. Exit is the zero time while the
// process is still running.
type Times struct {
	Creation time.Time
	Exit     time.Time
	Kernel   time.Duration
	User     time.Duration
}

// Times returns creation/exit timestamps and cumulative kernel/user CPU time.
func (p *Process) Times() (Times, error) {
	var creation, exit, kernel, user windows.Filetime
	err := windows.GetProcessTimes(windows.Handle(p.Handle()), &creation, &exit, &kernel, &user)
	if err != nil {
		return Times{}, winerr.Wrap(err)
	}
	t := Times{
		Creation: time.Unix(0, creation.Nanoseconds()),
		Kernel:   filetimeDuration(kernel),
		User:     filetimeDuration(user),
	}
	if exit.LowDateTime != 0 || exit.HighDateTime != 0 {
		t.Exit = time.Unix(0, exit.Nanoseconds())
	}
	return t, nil
}

// filetimeDuration converts a FILETIME holding an elapsed amount (100ns
// ticks, not an epoch timestamp) into a Duration.
func filetimeDuration(ft windows.Filetime) time.Duration {
	ticks := uint64(ft.HighDateTime)<<32 | uint64(ft.LowDateTime)
	return time.Duration(ticks * 100)
}
