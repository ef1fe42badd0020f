//go:build windows

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"winproc/pkg/process"
	"winproc/pkg/snapshot"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List live processes",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := process.List()
		if err != nil {
			return err
		}
		if listFilter != "" {
			needle := strings.ToLower(listFilter)
			filtered := entries[:0]
			for _, e := range entries {
				if strings.Contains(strings.ToLower(e.Exe), needle) {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}
		printEntries(entries)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "name", "n", "", "only processes whose executable contains this substring")
	rootCmd.AddCommand(listCmd)
}

func printEntries(entries []snapshot.ProcessEntry) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PID\tPPID\tTHREADS\tPRI\tEXE")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\n", e.PID, e.ParentPID, e.ThreadCount, e.BasePriority, e.Exe)
	}
	w.Flush()
}
