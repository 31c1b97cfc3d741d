package clialias

import (
	"flag"

	"github.com/mfridman/clialias/cli"
)

// The framework types most applications need are re-exported so a program can be written against
// this package alone.
type (
	// Command is a [cli.Command].
	Command = cli.Command
	// State is a [cli.State].
	State = cli.State
	// RunOptions is a [cli.RunOptions].
	RunOptions = cli.RunOptions
	// FlagMetadata is a [cli.FlagMetadata].
	FlagMetadata = cli.FlagMetadata
)

// FlagsFunc calls [cli.FlagsFunc].
func FlagsFunc(fn func(*flag.FlagSet)) *flag.FlagSet {
	return cli.FlagsFunc(fn)
}

// GetFlag calls [cli.GetFlag].
func GetFlag[T any](s *State, name string) T {
	return cli.GetFlag[T](s, name)
}

// DefaultUsage calls [cli.DefaultUsage].
func DefaultUsage(c *Command) string {
	return cli.DefaultUsage(c)
}

// ErrShowHelp is [cli.ErrShowHelp].
const ErrShowHelp = cli.ErrShowHelp

// NewError calls [cli.NewError].
func NewError(code cli.ErrorCode, err error) error {
	return cli.NewError(code, err)
}
