package clialias

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/mfridman/clialias/cli"
	"github.com/mfridman/clialias/pkg/alias"
	"github.com/mfridman/clialias/pkg/aliasfile"
	"github.com/mfridman/clialias/pkg/aliasfmt"
)

// Options configures an [Application].
type Options struct {
	// IgnoreCase makes alias matching case-insensitive. Command names are always matched by the
	// framework itself. The zero value is case-sensitive.
	IgnoreCase bool

	// HideAliasesInHelp disables the alias annotations in the "Available Commands" help section.
	// The zero value shows aliases, for example "checkout (co, switch)".
	HideAliasesInHelp bool

	// Display controls how aliases are rendered in help output. If nil, [aliasfmt.DefaultOptions]
	// is used; otherwise every field is used as given.
	Display *aliasfmt.Options

	// Logger receives debug records about alias registration and alias-based dispatch. If nil,
	// nothing is logged.
	Logger *slog.Logger
}

// Application wraps a root [cli.Command] and an alias registry. Commands registered through the
// application can be invoked by name or by any of their aliases; everything else is handled by the
// wrapped command tree unchanged.
//
// Registration is expected to happen during setup, before [Application.Parse]. The registry is safe
// for concurrent use, so late registration does not race with dispatch.
type Application struct {
	root     *cli.Command
	registry *alias.Registry
	display  aliasfmt.Options
	logger   *slog.Logger

	parsed *cli.Command
}

// New returns an application wrapping root. Subcommands already present on root are adopted as
// registered commands without aliases. The options parameter may be nil, in which case default
// values are used. See [Options] for more details.
//
// New installs the alias resolver on root, the help hook unless aliases are hidden, and, when root
// has no Exec function, one that prints the usage of the application. New panics if root is nil.
func New(root *cli.Command, opts *Options) *Application {
	if root == nil {
		panic("clialias: root command is nil")
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
	a := &Application{
		root:     root,
		registry: alias.NewRegistry(&alias.Options{IgnoreCase: opts.IgnoreCase}),
		display:  display,
		logger:   logger,
	}
	root.Resolver = dispatcher{app: a}
	if !opts.HideAliasesInHelp {
		root.FormatCommands = a.FormatCommands
	}
	if root.Exec == nil {
		root.Exec = func(ctx context.Context, s *cli.State) error {
			_, err := fmt.Fprintln(s.Stdout, cli.DefaultUsage(root))
			return err
		}
	}
	return a
}

// Root returns the wrapped root command.
func (a *Application) Root() *cli.Command {
	return a.root
}

// Registry returns the alias registry backing the application.
func (a *Application) Registry() *alias.Registry {
	return a.registry
}

// Command registers cmd as a subcommand of the root command with the given aliases.
//
// The command name must be a single word not yet used by another command or alias. Aliases are
// validated and registered atomically before the command is added: if any alias is rejected,
// neither the command nor any of its aliases are registered. An alias matching the name of another
// command, ignoring case, is rejected with [ErrAliasShadowsCommand].
func (a *Application) Command(cmd *cli.Command, aliases ...string) error {
	if cmd == nil {
		return fmt.Errorf("%w: command is nil", ErrInvalidCommand)
	}
	if cmd.Name == "" {
		return fmt.Errorf("%w: command has no name", ErrInvalidCommand)
	}
	if strings.ContainsFunc(cmd.Name, unicode.IsSpace) {
		return fmt.Errorf("%w: command name %q contains spaces, must be a single word", ErrInvalidCommand, cmd.Name)
	}
	if existing := a.root.FindSubCommand(cmd.Name); existing != nil {
		return fmt.Errorf("command %q: %w", cmd.Name, ErrCommandExists)
	}
	for _, existing := range a.registry.All() {
		if strings.EqualFold(existing, cmd.Name) {
			return fmt.Errorf("command %q is already an alias: %w", cmd.Name, ErrAliasShadowsCommand)
		}
	}
	for _, name := range aliases {
		if err := a.checkShadow(cmd.Name, name); err != nil {
			return fmt.Errorf("command %q: %w", cmd.Name, err)
		}
	}
	if err := a.registry.RegisterAll(cmd.Name, aliases); err != nil {
		return fmt.Errorf("command %q: %w", cmd.Name, err)
	}
	a.root.SubCommands = append(a.root.SubCommands, cmd)
	a.logger.Debug("registered command", slog.String("command", cmd.Name), slog.Any("aliases", aliases))
	return nil
}

// MustCommand is like [Application.Command] but panics if the command cannot be registered. It is
// intended for command trees defined at program start, where a failure is a programming error.
func (a *Application) MustCommand(cmd *cli.Command, aliases ...string) *cli.Command {
	if err := a.Command(cmd, aliases...); err != nil {
		panic(err)
	}
	return cmd
}

// AddAlias registers an additional alias for an already registered command.
//
// It fails with [ErrSingleCommand] when the application has exactly one command, because a single
// command is run without being named, and with [ErrUnknownCommand] when no command is registered
// under the exact name. An alias matching another command name, ignoring case, fails with
// [ErrAliasShadowsCommand]. Other validation errors are those of [alias.Registry.Register].
func (a *Application) AddAlias(command, aliasName string) error {
	if err := a.checkAliasTarget(command, aliasName); err != nil {
		return err
	}
	if err := a.registry.Register(command, aliasName); err != nil {
		return err
	}
	a.logger.Debug("added alias", slog.String("command", command), slog.String("alias", aliasName))
	return nil
}

func (a *Application) checkAliasTarget(command, aliasName string) error {
	if a.singleCommand() {
		return fmt.Errorf("cannot add alias %q: %w", aliasName, ErrSingleCommand)
	}
	if a.lookup(command) == nil {
		return fmt.Errorf("cannot add alias %q to command %q: %w", aliasName, command, ErrUnknownCommand)
	}
	return a.checkShadow(command, aliasName)
}

func (a *Application) checkShadow(command, aliasName string) error {
	if other := a.root.FindSubCommand(aliasName); other != nil && other.Name != command {
		return fmt.Errorf("alias %q matches command %q: %w", aliasName, other.Name, ErrAliasShadowsCommand)
	}
	return nil
}

// RemoveAlias unregisters an alias and reports whether it was registered.
func (a *Application) RemoveAlias(aliasName string) bool {
	removed := a.registry.Remove(aliasName)
	if removed {
		a.logger.Debug("removed alias", slog.String("alias", aliasName))
	}
	return removed
}

// Aliases returns the aliases of command in registration order.
func (a *Application) Aliases(command string) []string {
	return a.registry.Aliases(command)
}

// LoadAliases reads an alias file (see [aliasfile.Load]) and registers every alias it lists with
// the same rules as [Application.AddAlias]. The file is applied atomically: if any alias is
// rejected, aliases added from the file so far are removed again.
func (a *Application) LoadAliases(path string) error {
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

// GetCommand resolves token to one of parent's subcommands. It is the dispatch hook the framework
// calls while parsing, and may be called directly.
//
// Command names always take precedence and are resolved by [cli.Command.FindSubCommand]. Only when
// that fails is the alias registry consulted, and the canonical name it yields is looked up
// natively again. Unknown tokens return nil so the framework reports the unknown command itself.
// A nil parent means the root command.
func (a *Application) GetCommand(parent *cli.Command, token string) *cli.Command {
	if parent == nil {
		parent = a.root
	}
	if cmd := parent.FindSubCommand(token); cmd != nil {
		return cmd
	}
	if parent != a.root || a.singleCommand() {
		return nil
	}
	name, ok := a.registry.Resolve(token)
	if !ok {
		return nil
	}
	a.logger.Debug("resolved alias", slog.String("alias", token), slog.String("command", name))
	return parent.FindSubCommand(name)
}

// FormatCommands annotates the rows of the root's "Available Commands" help section with their
// aliases. It is installed as [cli.Command.FormatCommands] unless [Options.HideAliasesInHelp] is
// set. Row order and help text are preserved.
func (a *Application) FormatCommands(rows []cli.HelpRow) []cli.HelpRow {
	entries := make([]aliasfmt.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, aliasfmt.Entry{Name: row.Name, Help: row.ShortHelp})
	}
	entries = aliasfmt.FormatSection(entries, a.registry.Map(), a.display)
	formatted := make([]cli.HelpRow, 0, len(entries))
	for _, e := range entries {
		formatted = append(formatted, cli.HelpRow{Name: e.Name, ShortHelp: e.Help})
	}
	return formatted
}

// Parse parses args against the application. With exactly one registered command, that command is
// the entry point and is parsed directly; otherwise the root command is parsed and subcommands are
// selected by name or alias. See [cli.Parse].
func (a *Application) Parse(args []string) error {
	entry := a.root
	if a.singleCommand() {
		entry = a.root.SubCommands[0]
	}
	a.parsed = nil
	if err := cli.Parse(entry, args); err != nil {
		return err
	}
	a.parsed = entry
	return nil
}

// Run executes the command selected by the last successful [Application.Parse]. See [cli.Run].
func (a *Application) Run(ctx context.Context, options *cli.RunOptions) error {
	if a.parsed == nil {
		return errors.New("application has not been parsed")
	}
	return cli.Run(ctx, a.parsed, options)
}

// ParseAndRun parses args and runs the selected command. See [Application.Parse] and
// [Application.Run].
func (a *Application) ParseAndRun(ctx context.Context, args []string, options *cli.RunOptions) error {
	if err := a.Parse(args); err != nil {
		return err
	}
	return a.Run(ctx, options)
}

// Selected returns the command chosen by the last successful [Application.Parse], or nil.
func (a *Application) Selected() *cli.Command {
	if a.parsed == nil {
		return nil
	}
	return a.parsed.Selected()
}

func (a *Application) singleCommand() bool {
	return len(a.root.SubCommands) == 1
}

// lookup finds a registered command by its exact name. Aliases are keyed by the exact name, so the
// case-insensitive native lookup is not used here.
func (a *Application) lookup(name string) *cli.Command {
	for _, sub := range a.root.SubCommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// dispatcher adapts an Application to the framework's resolver capabilities.
type dispatcher struct {
	app *Application
}

var (
	_ cli.Resolver   = dispatcher{}
	_ cli.NameLister = dispatcher{}
)

func (d dispatcher) Resolve(parent *cli.Command, token string) *cli.Command {
	return d.app.GetCommand(parent, token)
}

func (d dispatcher) Names(parent *cli.Command) []string {
	if parent != d.app.root || d.app.singleCommand() {
		return nil
	}
	return d.app.registry.All()
}
