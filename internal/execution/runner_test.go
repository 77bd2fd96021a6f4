package execution

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"batchtest/internal/domain"
)

// trace records the order in which test steps run.
type trace struct{ steps []string }

func (tr *trace) step(name string, err error) domain.Callable {
	return func() error {
		tr.steps = append(tr.steps, name)
		return err
	}
}

func (tr *trace) panics(name string) domain.Callable {
	return func() error {
		tr.steps = append(tr.steps, name)
		panic(name + " exploded")
	}
}

func TestRunner_Run(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		build     func(tr *trace) domain.TestRecord
		wantStage domain.Stage
		wantSteps []string
	}{
		{
			name: "passes",
			build: func(tr *trace) domain.TestRecord {
				return domain.TestRecord{
					Invoke:    tr.step("body", nil),
					SetUps:    []domain.Callable{tr.step("setup1", nil), tr.step("setup2", nil)},
					TearDowns: []domain.Callable{tr.step("teardown1", nil), tr.step("teardown2", nil)},
				}
			},
			wantStage: domain.StageNone,
			wantSteps: []string{"setup1", "setup2", "body", "teardown1", "teardown2"},
		},
		{
			name: "body error still tears down",
			build: func(tr *trace) domain.TestRecord {
				return domain.TestRecord{
					Invoke:    tr.step("body", boom),
					TearDowns: []domain.Callable{tr.step("teardown1", nil), tr.step("teardown2", nil)},
				}
			},
			wantStage: domain.StageBody,
			wantSteps: []string{"body", "teardown1", "teardown2"},
		},
		{
			name: "body panic still tears down",
			build: func(tr *trace) domain.TestRecord {
				return domain.TestRecord{
					Invoke:    tr.panics("body"),
					TearDowns: []domain.Callable{tr.step("teardown1", nil)},
				}
			},
			wantStage: domain.StageBody,
			wantSteps: []string{"body", "teardown1"},
		},
		{
			name: "setup failure skips body and later setups",
			build: func(tr *trace) domain.TestRecord {
				return domain.TestRecord{
					Invoke:    tr.step("body", nil),
					SetUps:    []domain.Callable{tr.panics("setup1"), tr.step("setup2", nil)},
					TearDowns: []domain.Callable{tr.step("teardown1", nil), tr.step("teardown2", nil)},
				}
			},
			wantStage: domain.StageSetUp,
			wantSteps: []string{"setup1", "teardown1", "teardown2"},
		},
		{
			name: "teardown failure fails the test and runs the rest",
			build: func(tr *trace) domain.TestRecord {
				return domain.TestRecord{
					Invoke:    tr.step("body", nil),
					TearDowns: []domain.Callable{tr.step("teardown1", boom), tr.step("teardown2", nil)},
				}
			},
			wantStage: domain.StageTearDown,
			wantSteps: []string{"body", "teardown1", "teardown2"},
		},
		{
			name: "first failure wins",
			build: func(tr *trace) domain.TestRecord {
				return domain.TestRecord{
					Invoke:    tr.step("body", boom),
					TearDowns: []domain.Callable{tr.panics("teardown1")},
				}
			},
			wantStage: domain.StageBody,
			wantSteps: []string{"body", "teardown1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &trace{}
			out := NewRunner(true).Run(tt.build(tr))

			if out.Stage != tt.wantStage {
				t.Errorf("expected stage %v, got %v", tt.wantStage, out.Stage)
			}
			if (tt.wantStage == domain.StageNone) != out.Passed() {
				t.Errorf("unexpected pass state %v for err %v", out.Passed(), out.Err)
			}
			if diff := cmp.Diff(tt.wantSteps, tr.steps); diff != "" {
				t.Errorf("steps mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunner_PanicIsCaptured(t *testing.T) {
	out := NewRunner(false).Run(domain.TestRecord{Invoke: func() error { panic("assertion failed") }})

	var panicErr *domain.PanicError
	if !errors.As(out.Err, &panicErr) {
		t.Fatalf("expected a panic error, got %v", out.Err)
	}
	if panicErr.Value != "assertion failed" {
		t.Errorf("unexpected panic value %v", panicErr.Value)
	}
	if len(panicErr.Stack) == 0 {
		t.Error("expected a stack trace")
	}
}
