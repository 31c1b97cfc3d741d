// Package cobraalias brings registry-backed command aliases to [cobra] command trees.
//
// Cobra resolves its own Aliases field natively. An [App] adds aliases that are validated, can be
// registered and removed at runtime, may match case-insensitively and are loaded from alias files,
// and shows them next to command names in the "Available Commands" help section:
//
//	root := &cobra.Command{Use: "git"}
//	app := cobraalias.New(root, nil)
//	_ = app.AddCommand(checkoutCmd, "co", "switch")
//	if err := app.ExecuteContext(ctx, os.Args[1:]); err != nil {
//		os.Exit(1)
//	}
//
// Only direct subcommands of the root are aliased.
package cobraalias

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mfridman/clialias"
	"github.com/mfridman/clialias/pkg/alias"
	"github.com/mfridman/clialias/pkg/aliasfile"
	"github.com/mfridman/clialias/pkg/aliasfmt"
)

// Options configures an [App]. It mirrors [clialias.Options].
type Options struct {
	IgnoreCase        bool
	HideAliasesInHelp bool
	Display           *aliasfmt.Options
	Logger            *slog.Logger
}

// App wraps a root cobra command and an alias registry.
type App struct {
	root     *cobra.Command
	registry *alias.Registry
	display  aliasfmt.Options
	hide     bool
	logger   *slog.Logger
}

// New returns an App for root and installs its usage function on root, which subcommands inherit.
// The options parameter may be nil. New panics if root is nil.
func New(root *cobra.Command, opts *Options) *App {
	if root == nil {
		panic("cobraalias: root command is nil")
	}
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	display := aliasfmt.DefaultOptions()
	if opts.Display != nil {
		display = *opts.Display
	}
	a := &App{
		root:     root,
		registry: alias.NewRegistry(&alias.Options{IgnoreCase: opts.IgnoreCase}),
		display:  display,
		hide:     opts.HideAliasesInHelp,
		logger:   logger,
	}
	root.SetUsageFunc(a.usage)
	return a
}

// Root returns the wrapped root command.
func (a *App) Root() *cobra.Command {
	return a.root
}

// Registry returns the alias registry backing the app.
func (a *App) Registry() *alias.Registry {
	return a.registry
}

// AddCommand adds cmd to the root command with the given aliases. Aliases are registered
// atomically before the command is added; on error nothing is changed. An alias that cobra already
// resolves to another command, by name or native alias, fails with
// [clialias.ErrAliasShadowsCommand].
func (a *App) AddCommand(cmd *cobra.Command, aliases ...string) error {
	if cmd == nil {
		return fmt.Errorf("%w: command is nil", clialias.ErrInvalidCommand)
	}
	name := cmd.Name()
	if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
		return fmt.Errorf("%w: command name %q must be a single word", clialias.ErrInvalidCommand, name)
	}
	if a.lookup(name) != nil {
		return fmt.Errorf("command %q: %w", name, clialias.ErrCommandExists)
	}
	for _, native := range append([]string{name}, cmd.Aliases...) {
		if _, ok := a.registry.Resolve(native); ok {
			return fmt.Errorf("command %q: %q is already an alias: %w", name, native, clialias.ErrAliasShadowsCommand)
		}
	}
	for _, aliasName := range aliases {
		if err := a.checkShadow(name, aliasName); err != nil {
			return fmt.Errorf("command %q: %w", name, err)
		}
	}
	if err := a.registry.RegisterAll(name, aliases); err != nil {
		return fmt.Errorf("command %q: %w", name, err)
	}
	a.root.AddCommand(cmd)
	a.logger.Debug("registered command", slog.String("command", name), slog.Any("aliases", aliases))
	return nil
}

// AddAlias registers an additional alias for a direct subcommand of the root. It fails with
// [clialias.ErrUnknownCommand] when no such command exists and with
// [clialias.ErrAliasShadowsCommand] when cobra already resolves the alias to another command.
func (a *App) AddAlias(command, aliasName string) error {
	if a.lookup(command) == nil {
		return fmt.Errorf("cannot add alias %q to command %q: %w", aliasName, command, clialias.ErrUnknownCommand)
	}
	if err := a.checkShadow(command, aliasName); err != nil {
		return err
	}
	if err := a.registry.Register(command, aliasName); err != nil {
		return err
	}
	a.logger.Debug("added alias", slog.String("command", command), slog.String("alias", aliasName))
	return nil
}

// RemoveAlias unregisters an alias and reports whether it was registered.
func (a *App) RemoveAlias(aliasName string) bool {
	return a.registry.Remove(aliasName)
}

// Aliases returns the registered aliases of command in registration order. Aliases set on the
// command's own Aliases field are not included.
func (a *App) Aliases(command string) []string {
	return a.registry.Aliases(command)
}

// LoadAliases registers every alias listed in an alias file, see [aliasfile.Load]. The file is
// applied atomically.
func (a *App) LoadAliases(path string) error {
	entries, err := aliasfile.Load(path)
	if err != nil {
		return err
	}
	var applied []string
	for _, e := range entries {
		for _, name := range e.Aliases {
			if err := a.AddAlias(e.Command, name); err != nil {
				for _, prev := range applied {
					a.registry.Remove(prev)
				}
				return fmt.Errorf("load aliases from %s: %w", path, err)
			}
			applied = append(applied, name)
		}
	}
	return nil
}

// Find resolves token to a direct subcommand of the root. Cobra's own lookup, including names and
// native aliases, is tried first; the registry is consulted only when it finds nothing. Unknown
// tokens return nil.
func (a *App) Find(token string) *cobra.Command {
	if cmd := a.native(token); cmd != nil {
		return cmd
	}
	name, ok := a.registry.Resolve(token)
	if !ok {
		return nil
	}
	a.logger.Debug("resolved alias", slog.String("alias", token), slog.String("command", name))
	return a.lookup(name)
}

// ExecuteContext runs the root command with args. The first positional argument is replaced by
// the canonical command name when it is a registered alias; flags before it and everything after
// it are passed through unchanged. The value of a root flag given as a separate argument, as in
// "--config co", is not taken for the command.
func (a *App) ExecuteContext(ctx context.Context, args []string) error {
	a.root.SetArgs(a.rewrite(args))
	return a.root.ExecuteContext(ctx)
}

func (a *App) rewrite(args []string) []string {
	args = slices.Clone(args)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if strings.HasPrefix(arg, "-") {
			if a.flagTakesValue(arg) {
				i++
			}
			continue
		}
		if cmd := a.Find(arg); cmd != nil {
			args[i] = cmd.Name()
		}
		break
	}
	return args
}

// flagTakesValue reports whether arg is a root flag whose value is the next argument. Unknown
// flags are assumed to take no value.
func (a *App) flagTakesValue(arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		return needsValue(a.rootFlag(name, false))
	}
	// A group of shorthands such as -vc: a value flag consumes the rest of the group, or the next
	// argument when it is last.
	shorthands := arg[1:]
	for i, r := range shorthands {
		if r >= utf8.RuneSelf {
			return false
		}
		f := a.rootFlag(string(r), true)
		if f == nil {
			return false
		}
		if needsValue(f) {
			return i == len(shorthands)-1
		}
	}
	return false
}

func (a *App) rootFlag(name string, shorthand bool) *pflag.Flag {
	for _, fs := range []*pflag.FlagSet{a.root.PersistentFlags(), a.root.Flags()} {
		var f *pflag.Flag
		if shorthand {
			f = fs.ShorthandLookup(name)
		} else {
			f = fs.Lookup(name)
		}
		if f != nil {
			return f
		}
	}
	return nil
}

func needsValue(f *pflag.Flag) bool {
	return f != nil && f.NoOptDefVal == ""
}

func (a *App) native(token string) *cobra.Command {
	if cmd, _, err := a.root.Find([]string{token}); err == nil && cmd != a.root {
		return cmd
	}
	return nil
}

func (a *App) checkShadow(command, aliasName string) error {
	if other := a.native(aliasName); other != nil && other.Name() != command {
		return fmt.Errorf("alias %q matches command %q: %w", aliasName, other.Name(), clialias.ErrAliasShadowsCommand)
	}
	return nil
}

func (a *App) lookup(name string) *cobra.Command {
	for _, cmd := range a.root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}
