package cobraalias

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfridman/clialias/pkg/aliasfmt"
	"github.com/mfridman/clialias/pkg/textutil"
)

// usage renders the same sections as cobra's default usage template. Subcommands of the root are
// listed with their registered aliases.
func (a *App) usage(c *cobra.Command) error {
	var b strings.Builder

	b.WriteString("Usage:")
	if c.Runnable() {
		b.WriteString("\n  " + c.UseLine())
	}
	if c.HasAvailableSubCommands() {
		b.WriteString("\n  " + c.CommandPath() + " [command]")
	}
	b.WriteString("\n")

	if names := a.nameAndAliases(c); len(names) > 1 {
		b.WriteString("\nAliases:\n  " + strings.Join(names, ", ") + "\n")
	}
	if c.HasExample() {
		b.WriteString("\nExamples:\n" + c.Example + "\n")
	}

	if c.HasAvailableSubCommands() {
		b.WriteString("\nAvailable Commands:\n")
		var entries []aliasfmt.Entry
		for _, sub := range c.Commands() {
			if sub.IsAvailableCommand() || sub.Name() == "help" {
				entries = append(entries, aliasfmt.Entry{Name: sub.Name(), Help: sub.Short})
			}
		}
		if c == a.root && !a.hide {
			entries = aliasfmt.FormatSection(entries, a.registry.Map(), a.display)
		}
		width := 0
		for _, e := range entries {
			width = max(width, textutil.Width(e.Name))
		}
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s %s\n", textutil.PadRight(e.Name, width), e.Help)
		}
	}

	if c.HasAvailableLocalFlags() {
		b.WriteString("\nFlags:\n" + strings.TrimRight(c.LocalFlags().FlagUsages(), " \n") + "\n")
	}
	if c.HasAvailableInheritedFlags() {
		b.WriteString("\nGlobal Flags:\n" + strings.TrimRight(c.InheritedFlags().FlagUsages(), " \n") + "\n")
	}

	if c.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "\nUse \"%s [command] --help\" for more information about a command.\n", c.CommandPath())
	}

	_, err := fmt.Fprint(c.OutOrStderr(), b.String())
	return err
}

// nameAndAliases returns the command name followed by its native and registered aliases.
func (a *App) nameAndAliases(c *cobra.Command) []string {
	names := append([]string{c.Name()}, c.Aliases...)
	if c.Parent() == a.root {
		names = append(names, a.registry.Aliases(c.Name())...)
	}
	return names
}
