//nolint:tagliatelle
package main

// Record is a single line in the JSONL report file.
type Record struct {
	Run       string         `json:"run"`
	File      string         `json:"file,omitempty"`
	Analysis  map[string]any `json:"analysis,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorKind string         `json:"error_kind,omitempty"`
	Timing    *RecordTiming  `json:"timing,omitempty"`
}

// RecordTiming captures per-file processing durations in milliseconds.
type RecordTiming struct {
	DecodeMs float64 `json:"decode_ms"`
	ParseMs  float64 `json:"parse_ms"`
	TotalMs  float64 `json:"total_ms"`
}

// digestRecord holds the typed fields needed by the digest command.
type digestRecord struct {
	Run       string          `json:"run,omitempty"`
	File      string          `json:"file,omitempty"`
	Analysis  *digestAnalysis `json:"analysis,omitempty"`
	Error     string          `json:"error,omitempty"`
	ErrorKind string          `json:"error_kind,omitempty"`
}

type digestAnalysis struct {
	Summary     digestSummary      `json:"summary"`
	Diagnostics []digestDiagnostic `json:"diagnostics"`
	Quality     digestQuality      `json:"quality"`
}

type digestQuality struct {
	Saturation *struct {
		Events int `json:"events"`
	} `json:"saturation"`
	Dropout *struct {
		Deltas int `json:"deltas"`
		Stalls int `json:"stalls"`
	} `json:"dropout"`
}

type digestSummary struct {
	Samples     int    `json:"samples"`
	Side        string `json:"side"`
	Repetitions int    `json:"repetitions"`
}

type digestDiagnostic struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
