//go:build windows

package thread

import "golang.org/x/sys/windows"

// Thread access rights; x/sys does not export these.
const (
	threadTerminate        = 0x0001
	threadSuspendResume    = 0x0002
	threadSetInformation   = 0x0020
	threadQueryInformation = 0x0040
	threadSetLimitedInfo   = 0x0400
	threadQueryLimitedInfo = 0x0800

	stillActive = 259

	// THREAD_PRIORITY_ERROR_RETURN
	priorityErrorReturn = 0x7fffffff
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetExitCodeThread         = modkernel32.NewProc("GetExitCodeThread")
	procSuspendThread             = modkernel32.NewProc("SuspendThread")
	procTerminateThread           = modkernel32.NewProc("TerminateThread")
	procGetThreadPriority         = modkernel32.NewProc("GetThreadPriority")
	procSetThreadPriority         = modkernel32.NewProc("SetThreadPriority")
	procGetThreadPriorityBoost    = modkernel32.NewProc("GetThreadPriorityBoost")
	procSetThreadPriorityBoost    = modkernel32.NewProc("SetThreadPriorityBoost")
	procSetThreadAffinityMask     = modkernel32.NewProc("SetThreadAffinityMask")
	procGetThreadIdealProcessorEx = modkernel32.NewProc("GetThreadIdealProcessorEx")
	procSetThreadIdealProcessorEx = modkernel32.NewProc("SetThreadIdealProcessorEx")
	procGetThreadDescription      = modkernel32.NewProc("GetThreadDescription")
	procSetThreadDescription      = modkernel32.NewProc("SetThreadDescription")
	procGetThreadInformation      = modkernel32.NewProc("GetThreadInformation")
	procSetThreadInformation      = modkernel32.NewProc("SetThreadInformation")
)

// THREAD_INFORMATION_CLASS selector for memory priority.
const threadMemoryPriority = 0

// processorNumber mirrors the kernel32 PROCESSOR_NUMBER layout.
type processorNumber struct {
	Group    uint16
	Number   uint8
	Reserved uint8
}
