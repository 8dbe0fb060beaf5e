// Package codepage decodes instrument exports from their 8-bit legacy encoding.
package codepage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/farcloser/primordium/fault"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Default is the encoding the instrument writes.
const Default = "windows-1252"

var errUnknownEncoding = errors.New("unknown encoding")

// Names lists the accepted encoding names.
//
//nolint:gochecknoglobals
var Names = []string{"windows-1252", "iso-8859-1", "iso-8859-15", "utf-8"}

func lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15, nil
	case "utf-8", "utf8":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w %q (valid: %s)", errUnknownEncoding, name, strings.Join(Names, ", "))
	}
}

// Decode converts raw bytes in the named encoding to a string. utf-8 input must be valid.
func Decode(raw []byte, name string) (string, error) {
	enc, err := lookup(name)
	if err != nil {
		return "", err
	}

	if enc == nil {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%w: invalid utf-8", fault.ErrReadFailure)
		}

		return string(raw), nil
	}

	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	return string(out), nil
}

// DecodeReader reads r fully and decodes it.
func DecodeReader(r io.Reader, name string) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	return Decode(raw, name)
}

// DecodeFile reads and decodes the file at path.
func DecodeFile(path, name string) (string, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // CLI tool opens user-specified export files
	if err != nil {
		return "", fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	return Decode(raw, name)
}

// Validate reports whether name is an accepted encoding.
func Validate(name string) error {
	_, err := lookup(name)

	return err
}
