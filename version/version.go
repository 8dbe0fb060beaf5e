// Package version exposes build identification, set with -ldflags at build time.
package version

//nolint:gochecknoglobals // overridden by the linker
var (
	name    = "isokin"
	version = "dev"
	commit  = "unknown"
)

// Name returns the binary name.
func Name() string {
	return name
}

// Version returns the release version.
func Version() string {
	return version
}

// Commit returns the source revision.
func Commit() string {
	return commit
}
