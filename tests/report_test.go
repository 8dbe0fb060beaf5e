package tests_test

import (
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/isokin/tests/testutils"
)

const sampleReport = `{"run":"6f1c2a9e-3b7d-4e51-9a0c-2d8e4f7b1c35","file":"a.txt","analysis":{"summary":{"samples":16,"side":"right","repetitions":2},"diagnostics":[{"kind":"MissingMetadataFieldError","message":"missing metadata field: [session] Sex"}]}}
{"run":"6f1c2a9e-3b7d-4e51-9a0c-2d8e4f7b1c35","file":"b.txt","error":"malformed file: no [section] header found","error_kind":"MalformedFileError"}
{"run":"6f1c2a9e-3b7d-4e51-9a0c-2d8e4f7b1c35","file":"c.txt","analysis":{"summary":{"samples":16,"side":"left","repetitions":2}}}
`

func TestReport(t *testing.T) {
	testCase := testutils.SetupReport()

	testCase.SubTests = []*test.Case{
		{
			Description: "folder report records failures per file",
			Setup: func(data test.Data, _ test.Helpers) {
				testutils.SaveExport(data, "left.txt", "2")
				testutils.SaveExport(data, "right.txt", "1")
				testutils.SaveText(data, "broken.txt", "not an export")
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("report", "-j", "2", "--output", data.Temp().Path("report.jsonl"),
					data.Temp().Path())
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output: expectContains(
						"=== Isokin Report Digest ===",
						"Run:           ",
						"Total files:   3",
						"Failed:        1",
						"MalformedFileError",
					),
				}
			},
		},
		{
			Description: "digest lists files by kind",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Labels().Set("report", testutils.SaveText(data, "report.jsonl", sampleReport))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("digest", "--kind", "MissingMetadataFieldError", data.Labels().Get("report"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output: expect.All(
						expectContains("Run:           6f1c2a9e-3b7d-4e51-9a0c-2d8e4f7b1c35", "Parsed:        2", "MissingMetadataFieldError: 1 entries", "a.txt"),
						expectNotContains("  c.txt"),
					),
				}
			},
		},
		{
			Description: "report on a missing folder fails",
			Command:     test.Command("report", "/nonexistent/folder"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}
