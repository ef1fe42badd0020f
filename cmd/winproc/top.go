//go:build windows

package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"winproc/pkg/process"
	"winproc/pkg/snapshot"
)

var uiTheme = struct {
	background tcell.Color
	surface    tcell.Color
	stripe     tcell.Color
	text       tcell.Color
	subtleText tcell.Color
	accent     tcell.Color
	selection  tcell.Color
}{
	background: tcell.NewHexColor(0x0f0f14),
	surface:    tcell.NewHexColor(0x11131a),
	stripe:     tcell.NewHexColor(0x161924),
	text:       tcell.NewHexColor(0xe7e7eb),
	subtleText: tcell.NewHexColor(0x9aa0b2),
	accent:     tcell.NewHexColor(0x2fb4ad),
	selection:  tcell.NewHexColor(0x1f6f78),
}

var topInterval time.Duration

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Interactive process table",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := tview.NewApplication()
		u := newTopUI(app)
		if err := u.refresh(); err != nil {
			return err
		}

		stop := make(chan struct{})
		go func() {
			ticker := time.NewTicker(topInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					app.QueueUpdateDraw(func() { _ = u.refresh() })
				case <-stop:
					return
				}
			}
		}()
		defer close(stop)

		return app.SetRoot(u.layout(), true).Run()
	},
}

func init() {
	topCmd.Flags().DurationVar(&topInterval, "interval", 2*time.Second, "refresh interval")
	rootCmd.AddCommand(topCmd)
}

type topUI struct {
	app    *tview.Application
	table  *tview.Table
	status *tview.TextView
}

func newTopUI(app *tview.Application) *topUI {
	u := &topUI{app: app}

	u.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	u.table.SetBackgroundColor(uiTheme.surface)
	u.table.SetBorderColor(uiTheme.accent)
	u.table.SetTitleColor(uiTheme.accent)
	u.table.SetSelectedStyle(tcell.StyleDefault.Background(uiTheme.selection).Foreground(uiTheme.text))
	u.table.SetTitle(" Processes (r=refresh, q=quit) ").SetBorder(true)

	u.status = tview.NewTextView().SetTextColor(uiTheme.subtleText)
	u.status.SetBackgroundColor(uiTheme.background)

	u.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			u.app.Stop()
			return nil
		case 'r':
			_ = u.refresh()
			return nil
		}
		return event
	})
	return u
}

func (u *topUI) layout() tview.Primitive {
	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.table, 0, 1, true).
		AddItem(u.status, 1, 0, false)
}

func stripeColor(row int) tcell.Color {
	if row%2 == 1 {
		return uiTheme.stripe
	}
	return uiTheme.surface
}

func bodyCell(text string, row int) *tview.TableCell {
	return tview.NewTableCell(text).
		SetTextColor(uiTheme.text).
		SetBackgroundColor(stripeColor(row))
}

func (u *topUI) refresh() error {
	entries, err := process.List()
	if err != nil {
		u.status.SetText(fmt.Sprintf(" snapshot failed: %v", err))
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].PID < entries[j].PID })

	u.table.Clear()
	for col, name := range []string{"PID", "PPID", "THREADS", "PRI", "EXE"} {
		cell := tview.NewTableCell(name).
			SetTextColor(uiTheme.accent).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)
		u.table.SetCell(0, col, cell)
	}
	for i, e := range entries {
		row := i + 1
		u.setRow(row, e)
	}
	u.status.SetText(fmt.Sprintf(" %d processes, refreshed %s", len(entries), time.Now().Format("15:04:05")))
	return nil
}

func (u *topUI) setRow(row int, e snapshot.ProcessEntry) {
	u.table.SetCell(row, 0, bodyCell(fmt.Sprintf("%d", e.PID), row))
	u.table.SetCell(row, 1, bodyCell(fmt.Sprintf("%d", e.ParentPID), row))
	u.table.SetCell(row, 2, bodyCell(fmt.Sprintf("%d", e.ThreadCount), row))
	u.table.SetCell(row, 3, bodyCell(fmt.Sprintf("%d", e.BasePriority), row))
	u.table.SetCell(row, 4, bodyCell(e.Exe, row))
}
