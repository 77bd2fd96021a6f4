package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"batchtest/internal/domain"
	"batchtest/internal/storage"
)

// maxStackLines caps the stack shown in the details pane.
const maxStackLines = 15

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer saving resolved marks through st
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View displays test failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()
	b := newFailureBrowser(results, ev.storage)
	b.onExit = app.Stop
	b.onFocus = func(p tview.Primitive) { app.SetFocus(p) }

	if err := app.SetRoot(b.layout(), true).SetFocus(b.list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// failureBrowser holds the widgets and resolved state of one viewer session.
type failureBrowser struct {
	results *domain.TestResultsOutput
	storage storage.Storage

	list    *tview.List
	header  *tview.TextView
	stats   *tview.TextView
	details *tview.TextView

	onExit  func()
	onFocus func(tview.Primitive)
}

func newFailureBrowser(results *domain.TestResultsOutput, st storage.Storage) *failureBrowser {
	b := &failureBrowser{
		results: results,
		storage: st,
		list:    tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true),
		header:  tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true),
		stats:   tview.NewTextView().SetDynamicColors(true).SetWrap(false),
		details: tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(true),
		onExit:  func() {},
		onFocus: func(tview.Primitive) {},
	}

	b.list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	for i := range results.Details {
		b.list.AddItem(b.itemText(i), "", 0, nil)
	}

	b.list.SetChangedFunc(func(index int, _ string, _ string, _ rune) { b.show(index) })
	b.list.SetInputCapture(b.listKeys)
	b.details.SetInputCapture(b.detailKeys)

	b.refreshHeader()
	b.show(0)
	return b
}

func (b *failureBrowser) layout() tview.Primitive {
	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.stats, 3, 0, false).
		AddItem(tview.NewFlex().AddItem(b.details, 0, 1, false).AddItem(tview.NewBox(), 2, 0, false), 0, 1, false)

	body := tview.NewFlex().
		AddItem(b.list, 0, 1, true).
		AddItem(right, 0, 2, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.header, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)
}

func (b *failureBrowser) itemText(index int) string {
	failure := b.results.Details[index]
	name := tview.Escape(failure.Group + "." + failure.TestName)
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

func (b *failureBrowser) unresolved() int {
	n := 0
	for _, failure := range b.results.Details {
		if !failure.Resolved {
			n++
		}
	}
	return n
}

func (b *failureBrowser) refreshHeader() {
	b.header.SetText(fmt.Sprintf(" Test Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ",
		len(b.results.Details), b.unresolved()))
}

func (b *failureBrowser) show(index int) {
	if index < 0 || index >= len(b.results.Details) {
		return
	}
	failure := b.results.Details[index]
	b.stats.SetText(formatFailureStats(failure, b.results.Meta))
	b.details.SetText(formatFailureDetails(failure)).ScrollToBeginning()
}

// toggle flips the resolved mark of a failure and saves the results file.
func (b *failureBrowser) toggle(index int) error {
	if index < 0 || index >= len(b.results.Details) {
		return nil
	}
	b.results.Details[index].Resolved = !b.results.Details[index].Resolved
	b.list.SetItemText(index, b.itemText(index), "")
	b.refreshHeader()
	return b.storage.SaveOutput(b.results)
}

func (b *failureBrowser) listKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter, tcell.KeyRight:
		b.onFocus(b.details)
		return nil
	case tcell.KeyCtrlC:
		b.onExit()
		return nil
	case tcell.KeyRune:
		if r := event.Rune(); r == 'r' || r == 'R' {
			if err := b.toggle(b.list.GetCurrentItem()); err != nil {
				b.stats.SetText(fmt.Sprintf("[red]saving resolved status: %s[white]", tview.Escape(err.Error())))
			}
			return nil
		}
	}
	return event
}

func (b *failureBrowser) detailKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft, tcell.KeyEsc:
		b.onFocus(b.list)
		return nil
	case tcell.KeyCtrlC:
		b.onExit()
		return nil
	}
	return event
}

// formatFailureDetails formats a test failure for display using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[red]✗ %s[white]\n\n", tview.Escape(failure.TestName))
	fmt.Fprintf(&sb, "[cyan]Failed in:[white] %s\n", failure.Stage)
	fmt.Fprintf(&sb, "[cyan]Duration:[white] %.3fs\n\n", failure.DurationSeconds)

	if failure.Message != "" {
		fmt.Fprintf(&sb, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	if failure.ErrorDetails != "" {
		lines := strings.Split(strings.TrimRight(failure.ErrorDetails, "\n"), "\n")
		sb.WriteString("[yellow]Stack Trace:[white]\n")
		for i, line := range lines {
			if i == maxStackLines {
				fmt.Fprintf(&sb, "  [gray]... and %d more lines[white]\n", len(lines)-maxStackLines)
				break
			}
			fmt.Fprintf(&sb, "  %s\n", tview.Escape(line))
		}
	}
	return sb.String()
}

// formatFailureStats formats the header above the details pane
func formatFailureStats(failure domain.TestFailure, meta domain.TestResultsMeta) string {
	return fmt.Sprintf("[cyan]group:[white] [yellow]%s[white]  [cyan]run:[white] %s  [cyan]at:[white] %s\n",
		tview.Escape(failure.Group), meta.RunID, meta.Timestamp)
}
