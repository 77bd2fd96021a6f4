package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"batchtest/internal/cli"
	"batchtest/internal/config"
	"batchtest/internal/domain"
	"batchtest/internal/exitcodes"
	"batchtest/pkg/testkit"
)

type greenTests struct{}

func (g *greenTests) Passes() {}

type redTests struct{}

func (r *redTests) Fails() error { return errors.New("always red") }

type playmodeTests struct{}

func (p *playmodeTests) Later() {}

type sourcelessTests struct{}

func (s *sourcelessTests) Needs(n int) {}

func catalog(declare ...func(c *testkit.Catalog)) *testkit.Catalog {
	c := testkit.NewCatalog()
	for _, d := range declare {
		d(c)
	}
	return c
}

func green(c *testkit.Catalog) { c.Declare((*greenTests)(nil), testkit.Test("Passes")) }
func red(c *testkit.Catalog)   { c.Declare((*redTests)(nil), testkit.Test("Fails")) }
func playmode(c *testkit.Catalog) {
	c.Declare((*playmodeTests)(nil), testkit.PlaymodeTest("Later"))
}
func sourceless(c *testkit.Catalog) {
	c.Declare((*sourcelessTests)(nil), testkit.TestCaseSource("Needs", "Nowhere"))
}

// execute runs the CLI in a fresh working directory.
func execute(t *testing.T, c *testkit.Catalog, args ...string) (string, error) {
	t.Helper()
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	cfg := config.New()
	var flags cli.Flags
	root := &cobra.Command{Use: "batchtest"}
	NewCommands(cfg, c).Register(root, &flags, cfg)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(args, "--no-color"))
	err := root.Execute()
	return buf.String(), err
}

func loadResults(t *testing.T) domain.TestResultsOutput {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(config.DefaultResultsDir, config.DefaultResultsFile))
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("parsing results: %v", err)
	}
	return output
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		catalog  *testkit.Catalog
		wantCode int
		wantOut  []string
	}{
		{
			name:     "all green",
			catalog:  catalog(green),
			wantCode: exitcodes.Success,
			wantOut:  []string{"Running greenTests (1 test(s))", "1/1 test(s) succeeded.", "All tests passed"},
		},
		{
			name:     "failure",
			catalog:  catalog(green, red),
			wantCode: exitcodes.TestFailure,
			wantOut:  []string{"Fails Failed in body", "always red", "1/2 test(s) succeeded."},
		},
		{
			name:     "ignored",
			catalog:  catalog(green, playmode),
			wantCode: exitcodes.SuccessWithIgnored,
			wantOut:  []string{"1 test(s) ignored."},
		},
		{
			name:     "registration error",
			catalog:  catalog(green, sourceless),
			wantCode: exitcodes.RuntimeError,
			wantOut:  []string{"Test registration failed", "sourcelessTests.Needs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			out, err := execute(t, tt.catalog, "run", "--no-gc")
			if got := ExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err %v)", got, tt.wantCode, err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("output is missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRun_SavesResults(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := execute(t, catalog(green, red, playmode), "run"); ExitCode(err) != exitcodes.TestFailure {
		t.Fatalf("run error = %v, want a test failure", err)
	}

	output := loadResults(t)
	meta := output.Meta
	if meta.TotalTests != 2 || meta.FailedTests != 1 || meta.IgnoredTests != 1 || !meta.Failed || meta.RunID == "" {
		t.Errorf("meta = %+v", meta)
	}
	if len(output.Details) != 1 || output.Details[0].TestName != "Fails" || output.Details[0].Stage != "body" {
		t.Errorf("details = %+v, want the single body failure of Fails", output.Details)
	}
}

func TestRun_NoResults(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := execute(t, catalog(green), "run", "--no-results"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if _, err := os.Stat(config.DefaultResultsDir); !os.IsNotExist(err) {
		t.Errorf("results directory exists after --no-results (stat error %v)", err)
	}
}

func TestRun_JSONLogs(t *testing.T) {
	chdir(t, t.TempDir())
	out, err := execute(t, catalog(green), "run", "--log-format", "json", "--results-dir", "out")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	var sawSummary bool
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("line %q is not JSON: %v", line, err)
		}
		if rec["message"] == "1/1 test(s) succeeded." && rec["level"] == "info" {
			sawSummary = true
		}
	}
	if !sawSummary {
		t.Errorf("no JSON summary record in:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join("out", config.DefaultResultsFile)); err != nil {
		t.Errorf("results not written under --results-dir: %v", err)
	}
}

func TestRun_Progress(t *testing.T) {
	chdir(t, t.TempDir())
	out, err := execute(t, catalog(green, red), "run", "--progress", "--no-results")
	if ExitCode(err) != exitcodes.TestFailure {
		t.Fatalf("run error = %v, want a test failure", err)
	}
	if strings.Contains(out, "Passes passed") {
		t.Errorf("info lines were logged with --progress:\n%s", out)
	}
	if !strings.Contains(out, "always red") {
		t.Errorf("failure was not logged with --progress:\n%s", out)
	}
}

func TestRun_ProgressBuildsOnce(t *testing.T) {
	chdir(t, t.TempDir())
	built := 0
	c := testkit.NewCatalog()
	c.Declare((*greenTests)(nil),
		testkit.Constructor(func() *greenTests { built++; return &greenTests{} }),
		testkit.Test("Passes"),
	)

	if _, err := execute(t, c, "run", "--progress", "--no-results"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if built != 1 {
		t.Errorf("constructor ran %d time(s), want 1", built)
	}
}

func TestRun_RegistrationErrorReplacesResults(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := execute(t, catalog(red), "run"); ExitCode(err) != exitcodes.TestFailure {
		t.Fatalf("run error = %v, want a test failure", err)
	}
	if _, err := execute(t, catalog(red, sourceless), "run"); ExitCode(err) != exitcodes.RuntimeError {
		t.Fatalf("run error = %v, want a runtime error", err)
	}

	meta := loadResults(t).Meta
	if meta.TotalTests != 0 || meta.FailedTests != 0 || !meta.Failed {
		t.Errorf("meta = %+v, want a failed run with no tests", meta)
	}
	out, err := execute(t, catalog(red), "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if strings.Contains(out, "[F]") {
		t.Errorf("failures of an earlier run are still marked:\n%s", out)
	}
}

func TestRun_BadConfig(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, catalog(green), "run", "--log-format", "xml")
	if got := ExitCode(err); got != exitcodes.RuntimeError {
		t.Errorf("exit code = %d, want %d", got, exitcodes.RuntimeError)
	}
}

func TestList(t *testing.T) {
	chdir(t, t.TempDir())
	c := catalog(green, red, playmode)
	if _, err := execute(t, c, "run"); ExitCode(err) != exitcodes.TestFailure {
		t.Fatalf("run error = %v", err)
	}

	out, err := execute(t, c, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, want := range []string{"Found 2 test(s) in 2 group(s)", "greenTests", "Passes", "Fails [F]", "1 playmode test(s) will be ignored."} {
		if !strings.Contains(out, want) {
			t.Errorf("list output is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Passes [F]") {
		t.Errorf("passing test marked as failed:\n%s", out)
	}
}

func TestList_Empty(t *testing.T) {
	chdir(t, t.TempDir())
	out, err := execute(t, catalog(green), "list", "--ignore", "batchtest/")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No tests found") {
		t.Errorf("list output = %q", out)
	}
}

func TestFailures_Plain(t *testing.T) {
	chdir(t, t.TempDir())
	c := catalog(green, red)
	if _, err := execute(t, c, "run"); ExitCode(err) != exitcodes.TestFailure {
		t.Fatalf("run error = %v", err)
	}

	out, err := execute(t, c, "failures", "--plain")
	if err != nil {
		t.Fatalf("failures error = %v", err)
	}
	for _, want := range []string{"1 failure(s) from run", "redTests", "Fails [body] always red"} {
		if !strings.Contains(out, want) {
			t.Errorf("failures output is missing %q:\n%s", want, out)
		}
	}
}

func TestFailures_NoResults(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, catalog(green), "failures", "--plain")
	if got := ExitCode(err); got != exitcodes.RuntimeError {
		t.Errorf("exit code = %d, want %d", got, exitcodes.RuntimeError)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitcodes.Success},
		{&ExitError{Code: exitcodes.SuccessWithIgnored}, exitcodes.SuccessWithIgnored},
		{errors.New("unknown flag"), exitcodes.RuntimeError},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
