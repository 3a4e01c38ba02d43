package command

import (
	"fmt"

	"github.com/ckv-io/ckv/rpc/common"
)

// Limits enforced by the builder. The core enforces its own limits as well,
// but oversized descriptors are rejected here before any write happens.
const (
	MaxNameLength = 128
	MaxArgLength  = 512 << 20 // 512 MB per argument
	MaxArgCount   = 1 << 20
)

// Command is an immutable descriptor of a single operation: a command name
// plus its ordered argument list. A Command is only obtainable through New
// (or one of the typed factory functions), so a well-formed value can be
// handed to the codec without re-validation.
type Command struct {
	name string
	args []string
}

// New validates a command name and argument list and builds a descriptor.
// It returns an *common.ArgumentError if the name is empty, contains
// whitespace or control characters, or if the argument list exceeds the
// supported limits.
func New(name string, args ...string) (Command, error) {
	if name == "" {
		return Command{}, &common.ArgumentError{Reason: "command name must not be empty"}
	}
	if len(name) > MaxNameLength {
		return Command{}, &common.ArgumentError{Reason: fmt.Sprintf("command name exceeds %d bytes", MaxNameLength)}
	}
	for i := 0; i < len(name); i++ {
		// Command names are sent verbatim on the wire, printable ASCII only
		if name[i] <= ' ' || name[i] > '~' {
			return Command{}, &common.ArgumentError{Reason: fmt.Sprintf("command name contains invalid byte 0x%02x", name[i])}
		}
	}
	if len(args) > MaxArgCount {
		return Command{}, &common.ArgumentError{Reason: fmt.Sprintf("argument count %d exceeds %d", len(args), MaxArgCount)}
	}
	for i, arg := range args {
		if len(arg) > MaxArgLength {
			return Command{}, &common.ArgumentError{Reason: fmt.Sprintf("argument %d exceeds %d bytes", i, MaxArgLength)}
		}
	}

	// Copy the argument list so the descriptor cannot be mutated afterwards
	copied := make([]string, len(args))
	copy(copied, args)

	return Command{name: name, args: copied}, nil
}

// Name returns the command name
func (c Command) Name() string {
	return c.name
}

// Args returns a copy of the ordered argument list
func (c Command) Args() []string {
	args := make([]string, len(c.args))
	copy(args, c.args)
	return args
}

// ArgCount returns the number of arguments
func (c Command) ArgCount() int {
	return len(c.args)
}

// String returns a loggable representation of the descriptor
func (c Command) String() string {
	return fmt.Sprintf("%s(%d args)", c.name, len(c.args))
}

// --------------------------------------------------------------------------
// Command Factory Functions
// --------------------------------------------------------------------------

// NewGet creates a GET command descriptor
func NewGet(key string) (Command, error) {
	return New("GET", key)
}

// NewSet creates a SET command descriptor
func NewSet(key, value string) (Command, error) {
	return New("SET", key, value)
}

// NewDel creates a DEL command descriptor for one or more keys
func NewDel(keys ...string) (Command, error) {
	if len(keys) == 0 {
		return Command{}, &common.ArgumentError{Reason: "DEL requires at least one key"}
	}
	return New("DEL", keys...)
}

// NewExists creates an EXISTS command descriptor for one or more keys
func NewExists(keys ...string) (Command, error) {
	if len(keys) == 0 {
		return Command{}, &common.ArgumentError{Reason: "EXISTS requires at least one key"}
	}
	return New("EXISTS", keys...)
}

// NewPing creates a PING command descriptor
func NewPing() (Command, error) {
	return New("PING")
}
