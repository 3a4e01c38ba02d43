// Package command implements the command descriptor builder. A descriptor
// is an immutable "command name + ordered argument list" value, validated
// once at construction and then treated as opaque by the rest of the
// client. The package is stateless; descriptors are plain values that are
// safe to copy and share.
package command
