package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"batchtest/internal/domain"
)

// ProgressBar shows run progress. It implements execution.Observer.
type ProgressBar struct {
	bar       *progressbar.ProgressBar
	succeeded int
	failed    int
}

// NewProgressBar creates a new progress bar for count tests writing to out
func NewProgressBar(count int, out io.Writer) *ProgressBar {
	p := &ProgressBar{}
	p.bar = progressbar.NewOptions(count,
		progressbar.OptionSetDescription(p.description()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return p
}

// TestFinished advances the bar by one test.
func (p *ProgressBar) TestFinished(o domain.Outcome) {
	if o.Passed() {
		p.succeeded++
	} else {
		p.failed++
	}
	p.bar.Describe(p.description())
	_ = p.bar.Set(p.succeeded + p.failed)
}

// Counts returns the number of passed and failed tests seen so far.
func (p *ProgressBar) Counts() (succeeded, failed int) {
	return p.succeeded, p.failed
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

func (p *ProgressBar) description() string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[success: %d", p.succeeded) +
		" | " +
		color.RedString("failed: %d]", p.failed)
}
