package discovery

import (
	"testing"

	"batchtest/pkg/testkit"
)

type onlyStatics struct{}

type playmodeOnly struct{}

func TestScanner_Scan(t *testing.T) {
	c := testkit.NewCatalog()
	tests := c.Declare((*mathTests)(nil), testkit.Test("Simple"))
	helper := c.Declare((*onlyStatics)(nil), testkit.StaticField("Rows", [][]any{{1}}))
	playmode := c.Declare((*playmodeOnly)(nil), testkit.PlaymodeTest("Animate"))
	cased := c.Declare((*caseHolder)(nil), testkit.TestCase("Add", 1, 2))

	p := &fakeProvider{
		catalog: c,
		modules: []*testkit.Module{
			{Name: "game/tests", Types: []*testkit.Type{tests, helper}},
			{Name: "runtime/internal", Types: []*testkit.Type{cased}},
			{Name: "game/play", Types: []*testkit.Type{playmode, cased}},
			{Name: "broken", Types: []*testkit.Type{{Name: "NoReflect"}}},
		},
	}

	scanner := NewScanner([]string{"runtime", "Game"})

	t.Run("finds test types in order", func(t *testing.T) {
		results := scanner.Scan(p)

		// helper declares no test methods and runtime/internal is ignored
		var names []string
		for _, r := range results {
			names = append(names, r.Name)
		}
		expected := []string{"mathTests", "playmodeOnly", "caseHolder"}
		if len(names) != len(expected) {
			t.Fatalf("expected %v, got %v", expected, names)
		}
		for i := range expected {
			if names[i] != expected[i] {
				t.Errorf("expected %s at %d, got %s", expected[i], i, names[i])
			}
		}
	})

	t.Run("prefix match is case-sensitive", func(t *testing.T) {
		if scanner.Ignored("game/tests") {
			t.Error("game/tests should not match prefix Game")
		}
		if !scanner.Ignored("GameEngine") {
			t.Error("GameEngine should match prefix Game")
		}
	})

	t.Run("no prefixes scans everything", func(t *testing.T) {
		if got := NewScanner(nil).Scan(p); len(got) != 4 {
			t.Errorf("expected 4 test types, got %d", len(got))
		}
	})
}
