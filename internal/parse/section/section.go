// Package section splits export text into bracketed sections of tab-separated rows.
package section

import (
	"fmt"
	"strings"

	"github.com/farcloser/isokin/internal/types"
)

// Tokenize splits text into sections in file order. Lines before the first header are ignored,
// blank lines are skipped. It fails only when no header is found.
func Tokenize(text string) ([]types.RawSection, error) {
	var (
		sections []types.RawSection
		current  *types.RawSection
	)

	for idx, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		if name, ok := header(line); ok {
			sections = append(sections, types.RawSection{Name: name, Rows: []types.Row{}})
			current = &sections[len(sections)-1]

			continue
		}

		if current == nil || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		current.Rows = append(current.Rows, types.Row{Line: idx + 1, Fields: fields})
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no [section] header found", types.ErrMalformedFile)
	}

	return sections, nil
}

func header(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return "", false
	}

	name := trimmed[1 : len(trimmed)-1]
	if strings.ContainsAny(name, "[]\t") {
		return "", false
	}

	return name, true
}

// Find returns the first section named like any of the candidates. Matching is case-sensitive.
func Find(sections []types.RawSection, names ...string) (types.RawSection, bool) {
	for _, sec := range sections {
		for _, name := range names {
			if sec.Name == name {
				return sec, true
			}
		}
	}

	return types.RawSection{}, false
}
