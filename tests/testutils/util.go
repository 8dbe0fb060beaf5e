// Package testutils provides test infrastructure for isokin integration tests.
package testutils

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"
)

// Setup creates a test case configured to run the isokin binary.
func Setup() *test.Case {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	binaryPath := filepath.Join(projectRoot, "bin", "isokin")

	return agar.Setup(binaryPath)
}

// SetupReport creates a test case configured to run the isokin-report binary.
func SetupReport() *test.Case {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	binaryPath := filepath.Join(projectRoot, "bin", "isokin-report")

	return agar.Setup(binaryPath)
}

// twoRepetitions is a right knee at 60 °/s: extension peaks 50 and 54, flexion peaks 30 and 36.
const twoRepetitions = `10	60	90
50	60	70
40	60	50
20	60	30
5	-60	30
30	-60	50
25	-60	70
8	-60	90
12	60	90
54	60	70
44	60	50
22	60	30
6	-60	30
36	-60	50
20	-60	70
9	-60	90`

// Export renders an export file for the given side code (1 right, 2 left).
func Export(side string) string {
	return strings.Join([]string{
		"[session]",
		"Patient\tDoe",
		"Date\t2024-03-01",
		"Sex\t1\tmale",
		"[Measurement]",
		"Side\t" + side,
		"Speed\t60",
		"[Configuration]",
		"SampleRate\t100",
		"[Data]",
		twoRepetitions,
	}, "\r\n")
}

// SaveExport writes an export for side into the test temp directory and returns its path.
func SaveExport(data test.Data, name, side string) string {
	return data.Temp().Save(Export(side), name)
}

// SaveText writes arbitrary content into the test temp directory and returns its path.
func SaveText(data test.Data, name, content string) string {
	return data.Temp().Save(content, name)
}
