package snapshot

// ProcessEntry is one process row from a process snapshot.
type ProcessEntry struct {
	PID          uint32
	ParentPID    uint32
	ThreadCount  uint32
	BasePriority int32
	Exe          string
}

// ThreadEntry is one thread row from a thread snapshot. Thread snapshots are
// system-wide; filter on OwnerPID to scope them to one process.
type ThreadEntry struct {
	TID          uint32
	OwnerPID     uint32
	BasePriority int32
}
