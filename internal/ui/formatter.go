package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"batchtest/internal/domain"
	"batchtest/internal/registry"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintSummary displays the statistics of a saved run followed by its
// failures, grouped by test type.
func (f *Formatter) PrintSummary(output *domain.TestResultsOutput) {
	meta := output.Meta

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle("Test Execution Statistics")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.AppendRows([]table.Row{
		{"Total tests", meta.TotalTests},
		{"Passed", meta.PassedTests},
		{"Failed", meta.FailedTests},
		{"Ignored", meta.IgnoredTests},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds)},
		{"Run ID", meta.RunID},
		{"Timestamp", meta.Timestamp},
	})
	switch {
	case meta.Failed:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	case meta.IgnoredTests > 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}
	t.Render()

	fmt.Fprintln(f.out)
	if !meta.Failed {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d of %d test(s) failed\n\n", meta.FailedTests, meta.TotalTests)
	f.PrintFailureTree(output.Details)
}

// PrintFailureTree prints failures as a tree of groups and test names.
func (f *Formatter) PrintFailureTree(failures []domain.TestFailure) {
	byGroup := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		byGroup[failure.Group] = append(byGroup[failure.Group], failure)
	}
	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for i, g := range groups {
		lastGroup := i == len(groups)-1
		cyan.Fprintf(f.out, "%s%s\n", branch(lastGroup), g)
		for j, failure := range byGroup[g] {
			prefix := indent(lastGroup) + branch(j == len(byGroup[g])-1)
			red.Fprintf(f.out, "%s%s ", prefix, failure.TestName)
			yellow.Fprintf(f.out, "[%s] ", failure.Stage)
			fmt.Fprintln(f.out, failure.Message)
		}
	}
}

// PrintTestList prints registered groups and their tests. Tests whose
// "Group.Name" key is in failed are marked with [F] from the last run.
func (f *Formatter) PrintTestList(groups []registry.Group, ignored int, failed map[string]struct{}) {
	total := 0
	for _, g := range groups {
		total += len(g.Tests)
	}
	green.Fprintf(f.out, "Found %d test(s) in %d group(s):\n\n", total, len(groups))

	for i, g := range groups {
		lastGroup := i == len(groups)-1
		cyan.Fprintf(f.out, "%s%s\n", branch(lastGroup), g.Name)
		for j, rec := range g.Tests {
			marker := ""
			if _, ok := failed[g.Name+"."+rec.DisplayName]; ok {
				marker = " " + red.Sprint("[F]")
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent(lastGroup)+branch(j == len(g.Tests)-1), yellow.Sprint(rec.DisplayName), marker)
		}
	}
	if ignored > 0 {
		fmt.Fprintln(f.out)
		yellow.Fprintf(f.out, "%d playmode test(s) will be ignored.\n", ignored)
	}
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func indent(lastParent bool) string {
	if lastParent {
		return "    "
	}
	return "│   "
}
