//go:build windows

package process

import "golang.org/x/sys/windows"

// Process access rights and query flags not exported by x/sys.
const (
	processSetInformation = 0x0200
	processSetQuota       = 0x0100

	processNameNative = 0x00000001

	stillActive = 259

	waitTimeout = 0x00000102
	infinite    = 0xFFFFFFFF
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")
	moduser32   = windows.NewLazySystemDLL("user32.dll")

	procGetProcessAffinityMask   = modkernel32.NewProc("GetProcessAffinityMask")
	procSetProcessAffinityMask   = modkernel32.NewProc("SetProcessAffinityMask")
	procGetProcessWorkingSetSize = modkernel32.NewProc("GetProcessWorkingSetSize")
	procSetProcessWorkingSetSize = modkernel32.NewProc("SetProcessWorkingSetSize")
	procGetProcessHandleCount    = modkernel32.NewProc("GetProcessHandleCount")
	procGetProcessIoCounters     = modkernel32.NewProc("GetProcessIoCounters")
	procGetProcessPriorityBoost  = modkernel32.NewProc("GetProcessPriorityBoost")
	procSetProcessPriorityBoost  = modkernel32.NewProc("SetProcessPriorityBoost")
	procGetProcessInformation    = modkernel32.NewProc("GetProcessInformation")
	procSetProcessInformation    = modkernel32.NewProc("SetProcessInformation")
	procWaitForInputIdle         = moduser32.NewProc("WaitForInputIdle")
)

// PROCESS_INFORMATION_CLASS selector for memory priority.
const processMemoryPriority = 0

// ioCounters mirrors the kernel32 IO_COUNTERS layout.
type ioCounters struct {
	ReadOperationCount  uint64
	WriteOperationCount uint64
	OtherOperationCount uint64
	ReadTransferCount   uint64
	WriteTransferCount  uint64
	OtherTransferCount  uint64
}
