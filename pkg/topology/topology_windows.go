//go:build windows

package topology

import "golang.org/x/sys/windows"

const allProcessorGroups = 0xffff

// ActiveProcessorCount is the number of active logical processors across all
// groups.
func ActiveProcessorCount() int {
	return int(windows.GetActiveProcessorCount(allProcessorGroups))
}
