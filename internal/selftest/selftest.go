// Package selftest declares the test types linked into the batchtest binary.
// They exercise the harness's own building blocks through every kind of
// testkit tag, so `batchtest run` has something meaningful to run.
package selftest

import (
	"batchtest/pkg/testkit"
)

func init() {
	testkit.Declare((*NamingTests)(nil),
		testkit.TestCase("Renders", "Add", []any{1, 2}, "Add(1, 2)"),
		testkit.TestCase("Renders", "Greet", []any{nil, "bob"}, "Greet(null, bob)"),
		testkit.TestCase("Renders", "Tag", []any{"<b>"}, "Tag([b])"),
		testkit.TestCaseSource("Sanitizes", "SanitizeCases"),
		testkit.StaticField("SanitizeCases", [][]any{
			{"tab\there", "tab here"},
			{"line\nbreak", "line break"},
			{"<markup>", "[markup]"},
			{"plain", "plain"},
		}),
	)

	testkit.Declare((*ReportTests)(nil),
		testkit.Constructor(NewReportTests),
		testkit.SetUp("Reset"),
		testkit.Test("StartsEmpty"),
		testkit.TestCaseSource("Counts", "Outcomes", 4),
		testkit.Test("RegistrationFailureFailsRun"),
		testkit.TearDown("CheckInvariants"),
		testkit.StaticMethod("Outcomes", outcomeRows),
	)

	testkit.Declare((*SeverityTests)(nil),
		testkit.TestCaseSourceOn("Parses", (*severityNames)(nil), "Names"),
		testkit.TestCase("Orders", "INFO", "ERROR"),
	)
	testkit.Declare((*severityNames)(nil),
		testkit.StaticProperty("Names", severityRows),
	)

	testkit.Declare((*GenericTests)(nil),
		testkit.TestCase("Keeps", 42),
		testkit.TestCase("Keeps", "answer"),
		testkit.TestCase("Keeps", 2.5),
		testkit.Generic("Keeps", []string{"T"}, []testkit.Param{testkit.TypeParam(0)},
			testkit.Instantiate(keeps[int], testkit.TypeOf[int]()),
			testkit.Instantiate(keeps[string], testkit.TypeOf[string]()),
			testkit.Instantiate(keeps[float64], testkit.TypeOf[float64]()),
		),
		testkit.PlaymodeTest("WaitsForFrame"),
	)
}
