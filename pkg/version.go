package gntol

var (
	// Version of gntol.
	Version = "v0.1.0"

	// Build timestamp is set by the linker.
	Build = "n/a"
)
