//go:build windows

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sys/windows"

	"winproc/pkg/process"
	"winproc/pkg/thread"
)

var killExitCode uint32

var killCmd = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Terminate a process",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePID(args[0])
		if err != nil {
			return err
		}
		p, err := process.Open(pid, windows.PROCESS_TERMINATE)
		if err != nil {
			return fmt.Errorf("open pid %d: %w", pid, err)
		}
		defer p.Close()
		if err := p.Terminate(killExitCode); err != nil {
			return err
		}
		fmt.Printf("terminated %d\n", pid)
		return nil
	},
}

var suspendCmd = &cobra.Command{
	Use:   "suspend <tid>",
	Short: "Suspend a thread",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return suspendResume(args[0], true) },
}

var resumeCmd = &cobra.Command{
	Use:   "resume <tid>",
	Short: "Resume a suspended thread",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return suspendResume(args[0], false) },
}

func suspendResume(arg string, suspend bool) error {
	tid64, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return fmt.Errorf("bad tid %q", arg)
	}
	tid := uint32(tid64)

	th, err := thread.Open(tid, thread.AccessSuspendResume)
	if err != nil {
		return fmt.Errorf("open tid %d: %w", tid, err)
	}
	defer th.Close()

	if suspend {
		count, err := th.Suspend()
		if err != nil {
			return err
		}
		fmt.Printf("suspended %d (previous suspend count %d)\n", tid, count)
		return nil
	}
	count, err := th.Resume()
	if err != nil {
		return err
	}
	fmt.Printf("resumed %d (previous suspend count %d)\n", tid, count)
	return nil
}

var elevatedCmd = &cobra.Command{
	Use:   "elevated",
	Short: "Report whether winproc itself runs elevated",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := process.Current(windows.PROCESS_QUERY_INFORMATION)
		if err != nil {
			return err
		}
		defer p.Close()
		elevated, err := p.IsElevated()
		if err != nil {
			return err
		}
		fmt.Println(elevated)
		return nil
	},
}

func init() {
	killCmd.Flags().Uint32Var(&killExitCode, "exit-code", 1, "exit code handed to the terminated process")
	rootCmd.AddCommand(killCmd, suspendCmd, resumeCmd, elevatedCmd)
}
