package discovery

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"batchtest/internal/domain"
	"batchtest/pkg/testkit"
)

func expand(t *testing.T, c *testkit.Catalog, typ *testkit.Type, method string) ([]Case, error) {
	t.Helper()
	m, err := Describe(typ, method)
	if err != nil {
		return nil, err
	}
	return NewExpander(newProvider(c)).Expand(typ, m)
}

func caseNames(cases []Case) []string {
	var names []string
	for _, c := range cases {
		names = append(names, c.Name)
	}
	return names
}

func TestExpander_Expand(t *testing.T) {
	c := testkit.NewCatalog()
	typ := c.Declare((*mathTests)(nil),
		testkit.Test("Simple"),
		testkit.Test("Checked"),
		testkit.TestCase("Add", 1, 2),
		testkit.TestCase("Add", 3, 4),
		testkit.TestCaseSource("Add", "AddCases"),
		testkit.TestCase("Scale", 1.5),
		testkit.TestCase("Greet", "bob", nil),
		testkit.StaticField("AddCases", [][]any{{5, 6}}),
	)

	tests := []struct {
		name     string
		method   string
		expected []string
	}{
		{"void without parameters runs once", "Simple", []string{"Simple"}},
		{"error result counts as void", "Checked", []string{"Checked"}},
		{"inline rows then source rows", "Add", []string{"Add(1, 2)", "Add(3, 4)", "Add(5, 6)"}},
		{"non-void with data", "Scale", []string{"Scale(1.5)"}},
		{"nil argument", "Greet", []string{"Greet(bob, null)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, err := expand(t, c, typ, tt.method)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, caseNames(cases)); diff != "" {
				t.Errorf("case names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpander_Invoke(t *testing.T) {
	c := testkit.NewCatalog()
	typ := c.Declare((*mathTests)(nil), testkit.TestCase("Add", 1, 2), testkit.Test("Simple"))

	inst := &mathTests{}
	for _, method := range []string{"Add", "Simple"} {
		cases, err := expand(t, c, typ, method)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cases[0].Bind(reflect.ValueOf(inst))(); err != nil {
			t.Fatalf("unexpected invoke error: %v", err)
		}
	}
	if diff := cmp.Diff([]string{"Add", "Simple"}, inst.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestExpander_Deterministic(t *testing.T) {
	c := testkit.NewCatalog()
	typ := c.Declare((*mathTests)(nil),
		testkit.TestCaseSource("Add", "Rows"),
		testkit.TestCase("Add", 0, 0),
		testkit.StaticProperty("Rows", func() [][]any { return [][]any{{1, 1}, {2, 2}} }),
	)

	first, err := expand(t, c, typ, "Add")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := expand(t, c, typ, "Add")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Add(0, 0)", "Add(1, 1)", "Add(2, 2)"}
	if diff := cmp.Diff(want, caseNames(first)); diff != "" {
		t.Errorf("first expansion mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(caseNames(first), caseNames(second)); diff != "" {
		t.Errorf("expansions differ (-first +second):\n%s", diff)
	}
}

func TestExpander_UnsupportedSignature(t *testing.T) {
	c := testkit.NewCatalog()
	typ := c.Declare((*mathTests)(nil),
		testkit.Test("Add"),
		testkit.Test("Answer"),
		testkit.TestCase("Scale", "not a number"),
		testkit.TestCase("Simple2", 1),
	)

	for _, method := range []string{"Add", "Answer", "Scale", "Simple2"} {
		t.Run(method, func(t *testing.T) {
			_, err := expand(t, c, typ, method)
			if !domain.IsUnsupportedMethodSignatureError(err) {
				t.Errorf("expected unsupported signature error, got %v", err)
			}
		})
	}
}

func TestExpander_NumericConversion(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		arg     any
		wantErr bool
	}{
		{"non-negative int to uint", "Count", 7, false},
		{"negative int to uint", "Count", -1, true},
		{"negative int8 to uint", "Count", int8(-5), true},
		{"small uint64 to int64", "Offset", uint64(math.MaxInt64), false},
		{"large uint64 to int64", "Offset", uint64(math.MaxInt64) + 1, true},
		{"max uint64 to int64", "Offset", uint64(math.MaxUint64), true},
		{"int out of int8 range", "Small", 300, true},
		{"uint within int8 range", "Small", uint(12), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testkit.NewCatalog()
			typ := c.Declare((*mathTests)(nil), testkit.TestCase(tt.method, tt.arg))

			cases, err := expand(t, c, typ, tt.method)
			if tt.wantErr {
				if !domain.IsUnsupportedMethodSignatureError(err) {
					t.Errorf("expected unsupported signature error, got %v (cases %v)", err, caseNames(cases))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cases) != 1 {
				t.Fatalf("expected 1 case, got %d", len(cases))
			}
		})
	}
}

func TestExpander_Generic(t *testing.T) {
	c := testkit.NewCatalog()
	typ := c.Declare((*mathTests)(nil),
		testkit.Generic("Pair", []string{"T"},
			[]testkit.Param{testkit.TypeParam(0), testkit.TypeParam(0)},
			testkit.Instantiate(pairOf[int], reflect.TypeOf(0)),
			testkit.Instantiate(pairOf[string], reflect.TypeOf("")),
			testkit.Instantiate(pairOf[[]int], reflect.TypeOf([]int(nil))),
		),
		testkit.TestCase("Pair", 1, 2),
		testkit.TestCase("Pair", "a", "b"),
		testkit.TestCase("Pair", nil, []int{1}),
	)

	cases, err := expand(t, c, typ, "Pair")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Pair(1, 2)", "Pair(a, b)", "Pair(null, [1])"}, caseNames(cases)); diff != "" {
		t.Errorf("case names mismatch (-want +got):\n%s", diff)
	}

	// Each row picks its own instantiation.
	wantFuncs := []any{pairOf[int], pairOf[string], pairOf[[]int]}
	for i, cs := range cases {
		if cs.Func.Type() != reflect.TypeOf(wantFuncs[i]) {
			t.Errorf("case %d: wrong instantiation %v", i, cs.Func.Type())
		}
		if err := cs.Bind(reflect.ValueOf(&mathTests{}))(); err != nil {
			t.Errorf("case %d: unexpected invoke error: %v", i, err)
		}
	}

	t.Run("missing instantiation", func(t *testing.T) {
		c := testkit.NewCatalog()
		typ := c.Declare((*mathTests)(nil),
			testkit.Generic("Pair", []string{"T"},
				[]testkit.Param{testkit.TypeParam(0), testkit.TypeParam(0)},
				testkit.Instantiate(pairOf[int], reflect.TypeOf(0)),
			),
			testkit.TestCase("Pair", 1.5, 2.5),
		)
		if _, err := expand(t, c, typ, "Pair"); !domain.IsUnsupportedMethodSignatureError(err) {
			t.Errorf("expected unsupported signature error, got %v", err)
		}
	})

	t.Run("uninferable type parameter", func(t *testing.T) {
		c := testkit.NewCatalog()
		typ := c.Declare((*mathTests)(nil),
			testkit.Generic("Pair", []string{"T"},
				[]testkit.Param{testkit.TypeParam(0), testkit.TypeParam(0)},
				testkit.Instantiate(pairOf[int], reflect.TypeOf(0)),
			),
			testkit.TestCase("Pair", nil, nil),
		)
		if _, err := expand(t, c, typ, "Pair"); !domain.IsUnsupportedMethodSignatureError(err) {
			t.Errorf("expected unsupported signature error, got %v", err)
		}
	})
}
