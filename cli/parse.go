package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mfridman/xflag"
)

// Parse traverses the command hierarchy and parses arguments. It returns an error if parsing fails
// at any point.
//
// This function is the main entry point for parsing command-line arguments and should be called
// with the root command and the arguments to parse, typically os.Args[1:]. Once parsing is
// complete, the root command is ready to be executed with the [Run] function. When parsing fails
// the command is left unparsed: [Command.Selected] returns nil and [Run] reports an error.
//
// Subcommands are selected with [Command.FindSubCommand], or with the command's [Resolver] when one
// is set.
func Parse(root *Command, args []string) error {
	if root == nil {
		return errors.New("failed to parse: root command is nil")
	}
	if err := parse(root, args); err != nil {
		clearState(root)
		return err
	}
	return nil
}

func clearState(root *Command) {
	if root.state == nil {
		return
	}
	for _, cmd := range root.state.commandPath {
		cmd.state = nil
	}
	root.state = nil
}

func parse(root *Command, args []string) error {
	if err := validateCommands(root, nil); err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}

	// Reset the state so the same command tree can be parsed more than once.
	state := &State{}
	if root.Flags == nil {
		root.Flags = flag.NewFlagSet(root.Name, flag.ContinueOnError)
	}
	root.state = state
	state.commandPath = []*Command{root}

	// First split args at the -- delimiter if present
	argsToParse := args
	var remainingArgs []string
	for i, arg := range args {
		if arg == "--" {
			argsToParse = args[:i]
			remainingArgs = args[i+1:]
			break
		}
	}

	current := root
	// Tokens consumed while selecting subcommands. These may be aliases rather than names, so they
	// are recorded as typed.
	var consumed []string

	// First pass: process commands and build the command chain. This lets us capture help requests
	// before any flag parsing errors
	for _, arg := range argsToParse {
		if arg == "-h" || arg == "--h" || arg == "-help" || arg == "--help" {
			return current.showHelp()
		}

		// Skip anything that looks like a flag
		if strings.HasPrefix(arg, "-") {
			continue
		}

		// Try to traverse to subcommand
		if len(current.SubCommands) > 0 {
			if sub := current.resolveSubCommand(arg); sub != nil {
				if sub.Flags == nil {
					sub.Flags = flag.NewFlagSet(sub.Name, flag.ContinueOnError)
				}
				sub.state = state
				state.commandPath = append(state.commandPath, sub)
				consumed = append(consumed, arg)
				current = sub
				continue
			}
			return current.formatUnknownCommandError(arg)
		}
		break
	}

	// Create combined flags with all parent flags
	combinedFlags := flag.NewFlagSet(root.Name, flag.ContinueOnError)
	combinedFlags.SetOutput(io.Discard)

	// Add flags in reverse order for proper precedence
	for i := len(state.commandPath) - 1; i >= 0; i-- {
		cmd := state.commandPath[i]
		cmd.Flags.VisitAll(func(f *flag.Flag) {
			if combinedFlags.Lookup(f.Name) == nil {
				combinedFlags.Var(f.Value, f.Name, f.Usage)
			}
		})
	}

	// Let ParseToEnd handle the flag parsing
	if err := xflag.ParseToEnd(combinedFlags, argsToParse); err != nil {
		return fmt.Errorf("command %q: %w", current.Name, err)
	}

	if err := checkRequiredFlags(current, combinedFlags, argsToParse); err != nil {
		return err
	}

	// Skip past the command tokens in remaining args from flag parsing
	parsed := combinedFlags.Args()
	startIdx := 0
	for startIdx < len(parsed) && startIdx < len(consumed) && parsed[startIdx] == consumed[startIdx] {
		startIdx++
	}

	// Combine remaining parsed args and everything after delimiter
	var finalArgs []string
	if startIdx < len(parsed) {
		finalArgs = append(finalArgs, parsed[startIdx:]...)
	}
	if len(remainingArgs) > 0 {
		finalArgs = append(finalArgs, remainingArgs...)
	}
	state.Args = finalArgs

	if current.Exec == nil {
		return fmt.Errorf("failed to parse: %w", &NoExecError{Command: current, path: getCommandPath(state.commandPath)})
	}
	return nil
}

func checkRequiredFlags(current *Command, combinedFlags *flag.FlagSet, args []string) error {
	if len(current.FlagsMetadata) == 0 {
		return nil
	}
	path := getCommandPath(current.state.commandPath)
	var missingFlags []string
	for _, flagMetadata := range current.FlagsMetadata {
		if !flagMetadata.Required {
			continue
		}
		if combinedFlags.Lookup(flagMetadata.Name) == nil {
			return fmt.Errorf("command %q: internal error: required flag %s not found in flag set",
				path, formatFlagName(flagMetadata.Name))
		}
		// Look for the flag in the original args before any delimiter
		found := false
		for _, arg := range args {
			// Match either -flag or --flag
			if arg == "-"+flagMetadata.Name || arg == "--"+flagMetadata.Name ||
				strings.HasPrefix(arg, "-"+flagMetadata.Name+"=") ||
				strings.HasPrefix(arg, "--"+flagMetadata.Name+"=") {
				found = true
				break
			}
		}
		if !found {
			missingFlags = append(missingFlags, formatFlagName(flagMetadata.Name))
		}
	}
	if len(missingFlags) > 0 {
		return fmt.Errorf("command %q: required flags %q not set", path, strings.Join(missingFlags, ", "))
	}
	return nil
}

func validateCommands(root *Command, path []string) error {
	if root.Name == "" {
		if len(path) == 0 {
			return errors.New("root command has no name")
		}
		return fmt.Errorf("subcommand in path %q has no name", strings.Join(path, " "))
	}
	// Ensure name has no spaces
	if strings.ContainsAny(root.Name, " \t\n") {
		return fmt.Errorf("command name %q contains spaces, must be a single word", root.Name)
	}

	// Add current command to path for nested validation
	currentPath := append(slices.Clone(path), root.Name)

	seen := make(map[string]bool, len(root.SubCommands))
	for _, sub := range root.SubCommands {
		if sub == nil {
			return fmt.Errorf("nil subcommand in path %q", strings.Join(currentPath, " "))
		}
		key := strings.ToLower(sub.Name)
		if sub.Name != "" && seen[key] {
			return fmt.Errorf("duplicate command name %q in path %q", sub.Name, strings.Join(currentPath, " "))
		}
		seen[key] = true
	}

	// Recursively validate all subcommands
	for _, sub := range root.SubCommands {
		if err := validateCommands(sub, currentPath); err != nil {
			return err
		}
	}
	return nil
}
