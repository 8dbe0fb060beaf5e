package tests_test

import (
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/isokin/tests/testutils"
)

func TestPlot(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "svg of the torque channel names each repetition",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Labels().Set("file", testutils.SaveExport(data, "right.txt", "1"))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("plot", "--as", "svg", data.Labels().Get("file"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   expectContains("<svg", "#0 extension", "#1 flexion"),
				}
			},
		},
		{
			Description: "png is written to a file",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Labels().Set("file", testutils.SaveExport(data, "right.txt", "1"))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("plot", "--channel", "power", "--disable", "1",
					"--out", data.Temp().Path("power.png"), data.Labels().Get("file"))
			},
			Expected: test.Expects(expect.ExitCodeSuccess, nil, nil),
		},
		{
			Description: "unknown channel fails",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Labels().Set("file", testutils.SaveExport(data, "right.txt", "1"))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("plot", "--channel", "emg", data.Labels().Get("file"))
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "unknown image format fails",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Labels().Set("file", testutils.SaveExport(data, "right.txt", "1"))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("plot", "--as", "gif", data.Labels().Get("file"))
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}
