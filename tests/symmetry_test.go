package tests_test

import (
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/isokin/tests/testutils"
)

func TestSymmetry(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "identical sides are fully symmetric",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Labels().Set("left", testutils.SaveExport(data, "left.txt", "2\tleft"))
				data.Labels().Set("right", testutils.SaveExport(data, "right.txt", "1\tright"))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("symmetry", data.Labels().Get("left"), data.Labels().Get("right"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   expectContains("100.0%", "112 torquePeak extension (mean)", "300 ratio"),
				}
			},
		},
		{
			Description: "symmetry needs two files",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Labels().Set("left", testutils.SaveExport(data, "left.txt", "2"))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("symmetry", data.Labels().Get("left"))
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}
