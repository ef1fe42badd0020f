//go:build windows

package snapshot

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"winproc/pkg/handle"
	"winproc/pkg/winerr"
)

// OpenProcesses creates a point-in-time snapshot of all live processes and
// returns a cursor over it. keep, when non-nil, is applied to each entry
// after retrieval; the boundary's own ordering is preserved either way.
func OpenProcesses(keep func(ProcessEntry) bool) (*Cursor[ProcessEntry], error) {
	guard, err := create(windows.TH32CS_SNAPPROCESS)
	if err != nil {
		return nil, err
	}
	return NewCursor(WithFilter[ProcessEntry](&processSource{guard: guard}, keep)), nil
}

// OpenThreads creates a snapshot of all live threads system-wide. Scope to
// one process by filtering on OwnerPID.
func OpenThreads(keep func(ThreadEntry) bool) (*Cursor[ThreadEntry], error) {
	guard, err := create(windows.TH32CS_SNAPTHREAD)
	if err != nil {
		return nil, err
	}
	return NewCursor(WithFilter[ThreadEntry](&threadSource{guard: guard}, keep)), nil
}

func create(flags uint32) (*handle.Guard, error) {
	snap, err := windows.CreateToolhelp32Snapshot(flags, 0)
	if err != nil {
		translated := winerr.Wrap(err)
		if te, ok := translated.(*winerr.Error); ok {
			return nil, &winerr.Error{Code: te.Code, Kind: winerr.KindSnapshotCreateFailed, Message: te.Message}
		}
		return nil, winerr.New(winerr.KindSnapshotCreateFailed, err.Error())
	}
	return handle.Acquire(uintptr(snap), handle.CloseHandle)
}

// processSource walks a Toolhelp process snapshot. Toolhelp snapshots can be
// re-walked by issuing Process32First again, so Restart is supported.
type processSource struct {
	guard *handle.Guard
}

func (s *processSource) First() (ProcessEntry, bool, error) {
	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	err := windows.Process32First(windows.Handle(s.guard.Borrow()), &entry)
	return convertProcess(entry), err == nil, exhausted(err)
}

func (s *processSource) Next() (ProcessEntry, bool, error) {
	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	err := windows.Process32Next(windows.Handle(s.guard.Borrow()), &entry)
	return convertProcess(entry), err == nil, exhausted(err)
}

func (s *processSource) Restart() error { return nil }
func (s *processSource) Close() error   { return s.guard.Close() }

func convertProcess(entry windows.ProcessEntry32) ProcessEntry {
	return ProcessEntry{
		PID:          entry.ProcessID,
		ParentPID:    entry.ParentProcessID,
		ThreadCount:  entry.Threads,
		BasePriority: entry.PriClassBase,
		Exe:          windows.UTF16ToString(entry.ExeFile[:]),
	}
}

type threadSource struct {
	guard *handle.Guard
}

func (s *threadSource) First() (ThreadEntry, bool, error) {
	var entry windows.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	err := windows.Thread32First(windows.Handle(s.guard.Borrow()), &entry)
	return convertThread(entry), err == nil, exhausted(err)
}

func (s *threadSource) Next() (ThreadEntry, bool, error) {
	var entry windows.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	err := windows.Thread32Next(windows.Handle(s.guard.Borrow()), &entry)
	return convertThread(entry), err == nil, exhausted(err)
}

func (s *threadSource) Restart() error { return nil }
func (s *threadSource) Close() error   { return s.guard.Close() }

func convertThread(entry windows.ThreadEntry32) ThreadEntry {
	return ThreadEntry{
		TID:          entry.ThreadID,
		OwnerPID:     entry.OwnerProcessID,
		BasePriority: entry.BasePri,
	}
}

// exhausted maps the Toolhelp no-more-entries signal to the cursor's
// terminal state; anything else is a real boundary failure.
func exhausted(err error) error {
	if err == nil || err == windows.ERROR_NO_MORE_FILES {
		return nil
	}
	return err
}
