package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/mfridman/clialias/pkg/suggest"
)

// NoExecError is returned when a command has no execution function.
type NoExecError struct {
	Command *Command

	// path is the full command path, recorded when the error is created.
	path string
}

func (e *NoExecError) Error() string {
	path := e.path
	if path == "" {
		path = e.Command.Name
		if e.Command.state != nil && len(e.Command.state.commandPath) > 0 {
			path = getCommandPath(e.Command.state.commandPath)
		}
	}
	return fmt.Sprintf("command %q has no execution function", path)
}

// Command represents a CLI command or subcommand within the application's command hierarchy.
type Command struct {
	// Name is always a single word representing the command's name. It is used to identify the
	// command in the command hierarchy and in help text.
	Name string

	// Usage provides the command's full usage pattern.
	//
	// Example: "cli todo list [flags]"
	Usage string

	// ShortHelp is a brief description of the command's purpose. It is displayed in the help text
	// when the command is shown.
	ShortHelp string

	// UsageFunc is an optional function that can be used to generate a custom usage string for the
	// command. It receives the current command and should return a string with the full usage
	// pattern.
	UsageFunc func(*Command) string

	// Flags holds the command-specific flag definitions. Each command maintains its own flag set
	// for parsing arguments.
	Flags *flag.FlagSet
	// FlagsMetadata is an optional list of flag information to extend the FlagSet with additional
	// metadata. This is useful for tracking required flags.
	FlagsMetadata []FlagMetadata

	// SubCommands is a list of nested commands that exist under this command.
	SubCommands []*Command

	// Resolver, when set, replaces the native name lookup used to select one of SubCommands from
	// the token typed by the user. See [Resolver].
	Resolver Resolver

	// FormatCommands, when set, rewrites the rows of the "Available Commands" help section before
	// they are rendered. Rows are passed in display order and must be returned in the order they
	// should appear.
	FormatCommands func(rows []HelpRow) []HelpRow

	// Exec defines the command's execution logic. It receives the current application [State] and
	// returns an error if execution fails. This function is called when [Run] is invoked on the
	// command.
	Exec func(ctx context.Context, s *State) error

	state *State
}

// Resolver resolves a token typed on the command line to one of parent's subcommands.
//
// Resolve must return nil when the token does not name a subcommand, never an error; the framework
// then reports an unknown command. Implementations typically try [Command.FindSubCommand] first
// and only fall back to their own lookup when it fails.
type Resolver interface {
	Resolve(parent *Command, token string) *Command
}

// NameLister is an optional capability of a [Resolver]. Names it returns are offered as
// suggestions for an unknown command in addition to the subcommand names.
type NameLister interface {
	Names(parent *Command) []string
}

// HelpRow is a single entry of the "Available Commands" help section.
type HelpRow struct {
	Name      string
	ShortHelp string
}

func (c *Command) terminal() (*Command, *State) {
	if c.state == nil || len(c.state.commandPath) == 0 {
		return c, c.state
	}

	// Get the last command in the path - this is our terminal command
	terminalCmd := c.state.commandPath[len(c.state.commandPath)-1]
	return terminalCmd, c.state
}

// Selected returns the command chosen by the most recent call to [Parse] on this command, or nil if
// it has not been parsed.
func (c *Command) Selected() *Command {
	if c.state == nil || len(c.state.commandPath) == 0 {
		return nil
	}
	cmd, _ := c.terminal()
	return cmd
}

// FlagMetadata holds additional metadata for a flag, such as whether it is required.
type FlagMetadata struct {
	// Name is the flag's name. Must match the flag name in the flag set.
	Name string

	// Required indicates whether the flag is required.
	Required bool
}

// FlagsFunc is a helper function that creates a new [flag.FlagSet] and applies the given function
// to it. Intended for use in command definitions to simplify flag setup. Example usage:
//
//	cmd.Flags = cli.FlagsFunc(func(f *flag.FlagSet) {
//	    f.Bool("verbose", false, "enable verbose output")
//	    f.String("output", "", "output file")
//	    f.Int("count", 0, "number of items")
//	})
func FlagsFunc(fn func(*flag.FlagSet)) *flag.FlagSet {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	fn(fset)
	return fset
}

// FindSubCommand is the native lookup: it searches the direct subcommands for one whose name
// matches, ignoring case. Returns nil if no subcommand with the given name exists.
func (c *Command) FindSubCommand(name string) *Command {
	for _, sub := range c.SubCommands {
		if strings.EqualFold(sub.Name, name) {
			return sub
		}
	}
	return nil
}

func (c *Command) resolveSubCommand(token string) *Command {
	if c.Resolver != nil {
		return c.Resolver.Resolve(c, token)
	}
	return c.FindSubCommand(token)
}

func (c *Command) formatUnknownCommandError(unknownCmd string) error {
	var known []string
	for _, sub := range c.SubCommands {
		known = append(known, sub.Name)
	}
	if lister, ok := c.Resolver.(NameLister); ok {
		known = append(known, lister.Names(c)...)
	}
	suggestions := suggest.FindSimilar(unknownCmd, known, 3)
	if len(suggestions) > 0 {
		return fmt.Errorf("unknown command %q. Did you mean one of these?\n\t%s",
			unknownCmd,
			strings.Join(suggestions, "\n\t"))
	}
	return fmt.Errorf("unknown command %q", unknownCmd)
}

func (c *Command) showHelp() error {
	w := flag.CommandLine.Output()
	if c.Flags != nil {
		w = c.Flags.Output()
	}
	fmt.Fprintln(w, DefaultUsage(c))
	return flag.ErrHelp
}

func formatFlagName(name string) string {
	return "-" + name
}

func getCommandPath(commands []*Command) string {
	var commandPath []string
	for _, c := range commands {
		commandPath = append(commandPath, c.Name)
	}
	return strings.Join(commandPath, " ")
}
