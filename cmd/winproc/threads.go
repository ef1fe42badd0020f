//go:build windows

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"winproc/pkg/thread"
)

var threadsCmd = &cobra.Command{
	Use:   "threads <pid>",
	Short: "List the threads of a process",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePID(args[0])
		if err != nil {
			return err
		}
		entries, err := thread.List(pid)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no threads found for pid %d", pid)
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TID\tPRI\tDESCRIPTION")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%d\t%s\n", e.TID, e.BasePriority, threadDescription(e.TID))
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(threadsCmd)
}

// threadDescription is best-effort: threads of other processes may deny the
// open, and old systems lack descriptions entirely.
func threadDescription(tid uint32) string {
	th, err := thread.Open(tid, thread.AccessQueryLimited)
	if err != nil {
		return ""
	}
	defer th.Close()
	desc, err := th.Description()
	if err != nil {
		return ""
	}
	return desc
}
