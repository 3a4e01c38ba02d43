package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/ckv-io/ckv/rpc/common"
)

// TestNewValidCommands tests that well-formed commands build successfully
func TestNewValidCommands(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"GET", []string{"foo"}},
		{"SET", []string{"foo", "bar"}},
		{"PING", nil},
		{"CLIENT", []string{"LIST", "TYPE", "PUBSUB"}},
		{"X", []string{""}}, // empty argument values are legal
	}

	for _, tc := range testCases {
		cmd, err := New(tc.name, tc.args...)
		if err != nil {
			t.Errorf("New(%q, %v) failed: %v", tc.name, tc.args, err)
			continue
		}
		if cmd.Name() != tc.name {
			t.Errorf("Name mismatch: expected %q, got %q", tc.name, cmd.Name())
		}
		if cmd.ArgCount() != len(tc.args) {
			t.Errorf("ArgCount mismatch: expected %d, got %d", len(tc.args), cmd.ArgCount())
		}
	}
}

// TestNewRejectsMalformedNames tests builder validation failures
func TestNewRejectsMalformedNames(t *testing.T) {
	testCases := []struct {
		desc string
		name string
	}{
		{"empty name", ""},
		{"name with space", "GET KEY"},
		{"name with newline", "GET\n"},
		{"name with control byte", "GET\x01"},
		{"name with non-ascii byte", "GÉT"},
		{"overlong name", strings.Repeat("A", MaxNameLength+1)},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := New(tc.name)
			if err == nil {
				t.Fatalf("expected error for name %q", tc.name)
			}

			var argErr *common.ArgumentError
			if !errors.As(err, &argErr) {
				t.Errorf("expected *common.ArgumentError, got %T", err)
			}
		})
	}
}

// TestCommandImmutability tests that a descriptor cannot be mutated after
// construction, neither through the input slice nor through Args
func TestCommandImmutability(t *testing.T) {
	args := []string{"foo", "bar"}
	cmd, err := New("SET", args...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Mutating the input slice must not affect the descriptor
	args[0] = "mutated"
	if cmd.Args()[0] != "foo" {
		t.Errorf("descriptor affected by input mutation: %v", cmd.Args())
	}

	// Mutating the returned slice must not affect the descriptor
	out := cmd.Args()
	out[1] = "mutated"
	if cmd.Args()[1] != "bar" {
		t.Errorf("descriptor affected by output mutation: %v", cmd.Args())
	}
}

// TestFactories tests the typed factory functions
func TestFactories(t *testing.T) {
	if cmd, err := NewGet("k"); err != nil || cmd.Name() != "GET" || cmd.ArgCount() != 1 {
		t.Errorf("NewGet: %v %v", cmd, err)
	}
	if cmd, err := NewSet("k", "v"); err != nil || cmd.Name() != "SET" || cmd.ArgCount() != 2 {
		t.Errorf("NewSet: %v %v", cmd, err)
	}
	if cmd, err := NewPing(); err != nil || cmd.Name() != "PING" || cmd.ArgCount() != 0 {
		t.Errorf("NewPing: %v %v", cmd, err)
	}

	if _, err := NewDel(); err == nil {
		t.Error("NewDel with no keys should fail")
	}
	if _, err := NewExists(); err == nil {
		t.Error("NewExists with no keys should fail")
	}
}
