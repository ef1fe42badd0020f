//go:build windows

package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sys/windows"

	"winproc/pkg/process"
	"winproc/pkg/topology"
)

var infoCmd = &cobra.Command{
	Use:   "info <pid>",
	Short: "Show details for one process",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePID(args[0])
		if err != nil {
			return err
		}

		p, err := process.Open(pid, windows.PROCESS_QUERY_INFORMATION)
		if err != nil {
			return fmt.Errorf("open pid %d: %w", pid, err)
		}
		defer p.Close()

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintf(w, "pid\t%d\n", p.PID())

		// Individual queries are best-effort: a denied one is logged and
		// skipped, the rest still print.
		if path, err := p.ImagePath(process.PathWin32, cfg.Buffer); err == nil {
			fmt.Fprintf(w, "image\t%s\n", path)
		} else {
			log.Debug().Err(err).Msg("image path query failed")
		}
		if class, err := p.PriorityClass(); err == nil {
			fmt.Fprintf(w, "priority class\t%s\n", priorityClassName(class))
		}
		if boost, err := p.PriorityBoost(); err == nil {
			fmt.Fprintf(w, "priority boost\t%v\n", boost)
		}
		if info, err := p.AffinityMask(); err == nil {
			fmt.Fprintf(w, "affinity\t%#x of %#x (%d of %d processors)\n",
				info.ProcessMask, info.SystemMask, info.Count(), topology.ActiveProcessorCount())
		}
		if minWS, maxWS, err := p.WorkingSetSize(); err == nil {
			fmt.Fprintf(w, "working set\t%d..%d bytes\n", minWS, maxWS)
		}
		if count, err := p.HandleCount(); err == nil {
			fmt.Fprintf(w, "handles\t%d\n", count)
		}
		if times, err := p.Times(); err == nil {
			fmt.Fprintf(w, "started\t%s\n", times.Creation.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "cpu\t%s kernel, %s user\n", times.Kernel, times.User)
		}
		if io, err := p.IOCounters(); err == nil {
			fmt.Fprintf(w, "io\t%d reads (%d B), %d writes (%d B)\n",
				io.ReadOperations, io.ReadBytes, io.WriteOperations, io.WriteBytes)
		}
		if elevated, err := p.IsElevated(); err == nil {
			fmt.Fprintf(w, "elevated\t%v\n", elevated)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func parsePID(arg string) (uint32, error) {
	pid, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad pid %q", arg)
	}
	return uint32(pid), nil
}

func priorityClassName(class uint32) string {
	switch class {
	case windows.IDLE_PRIORITY_CLASS:
		return "idle"
	case windows.BELOW_NORMAL_PRIORITY_CLASS:
		return "below normal"
	case windows.NORMAL_PRIORITY_CLASS:
		return "normal"
	case windows.ABOVE_NORMAL_PRIORITY_CLASS:
		return "above normal"
	case windows.HIGH_PRIORITY_CLASS:
		return "high"
	case windows.REALTIME_PRIORITY_CLASS:
		return "realtime"
	default:
		return fmt.Sprintf("%#x", class)
	}
}
