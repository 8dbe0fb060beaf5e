package isokin_test

import (
	"strings"
)

// two repetitions at 60 °/s: extension peaks 50 and 54, flexion peaks 30 and 36.
const fixtureData = `10,5	60	90
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

func fixture(side string, extra ...string) string {
	lines := []string{
		"Isokinetic export",
		"[session]",
		"Patient\tDoe, Jane",
		"Date\t2024-03-01",
		"Sex\t2\tfemale",
		"[Measurement]",
		"Side\t" + side,
		"Speed\t60",
		"[Configuration]",
		"SampleRate\t100",
		"[Analysis]",
		"112\t0",
	}

	lines = append(lines, extra...)
	lines = append(lines, "[Data]", fixtureData)

	return strings.Join(lines, "\r\n")
}
