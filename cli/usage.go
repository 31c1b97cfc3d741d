package cli

import (
	"cmp"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/mfridman/clialias/pkg/textutil"
)

const usageWidth = 80

// DefaultUsage renders the help text of the terminal command selected while parsing c, or of c
// itself when it has not been parsed.
//
// The "Available Commands" section lists subcommands sorted by name. When the command defines
// [Command.FormatCommands] the rows are passed through it before rendering.
func DefaultUsage(c *Command) string {
	if c == nil {
		return ""
	}

	// Get terminal command from state
	terminalCmd, _ := c.terminal()

	var b strings.Builder

	if terminalCmd.UsageFunc != nil {
		return terminalCmd.UsageFunc(terminalCmd)
	}

	if terminalCmd.ShortHelp != "" {
		for _, line := range textutil.Wrap(terminalCmd.ShortHelp, usageWidth) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	commandPath := terminalCmd.Name
	if c.state != nil && len(c.state.commandPath) > 0 {
		commandPath = getCommandPath(c.state.commandPath)
	}

	b.WriteString("Usage:\n")
	if terminalCmd.Usage != "" {
		b.WriteString("  " + terminalCmd.Usage + "\n")
	} else {
		usage := commandPath
		if terminalCmd.Flags != nil {
			usage += " [flags]"
		}
		if len(terminalCmd.SubCommands) > 0 {
			usage += " <command>"
		}
		b.WriteString("  " + usage + "\n")
	}
	b.WriteRune('\n')

	if len(terminalCmd.SubCommands) > 0 {
		b.WriteString("Available Commands:\n")
		writeRows(&b, commandRows(terminalCmd))
		b.WriteRune('\n')
	}

	var flags []flagInfo
	if c.state != nil && len(c.state.commandPath) > 0 {
		for i, cmd := range c.state.commandPath {
			if cmd.Flags == nil {
				continue
			}
			isGlobal := i < len(c.state.commandPath)-1
			cmd.Flags.VisitAll(func(f *flag.Flag) {
				flags = append(flags, flagInfo{
					name:   formatFlagName(f.Name),
					usage:  f.Usage,
					defval: f.DefValue,
					global: isGlobal,
				})
			})
		}
	} else if terminalCmd.Flags != nil {
		terminalCmd.Flags.VisitAll(func(f *flag.Flag) {
			flags = append(flags, flagInfo{
				name:   formatFlagName(f.Name),
				usage:  f.Usage,
				defval: f.DefValue,
			})
		})
	}

	if len(flags) > 0 {
		slices.SortFunc(flags, func(a, b flagInfo) int {
			return cmp.Compare(a.name, b.name)
		})

		maxFlagLen := 0
		for _, f := range flags {
			maxFlagLen = max(maxFlagLen, textutil.Width(f.name))
		}

		hasLocal := false
		hasGlobal := false
		for _, f := range flags {
			if f.global {
				hasGlobal = true
			} else {
				hasLocal = true
			}
		}

		if hasLocal {
			b.WriteString("Flags:\n")
			writeFlagSection(&b, flags, maxFlagLen, false)
			b.WriteRune('\n')
		}

		if hasGlobal {
			b.WriteString("Global Flags:\n")
			writeFlagSection(&b, flags, maxFlagLen, true)
			b.WriteRune('\n')
		}
	}

	if len(terminalCmd.SubCommands) > 0 {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", commandPath)
	}

	return strings.TrimRight(b.String(), "\n")
}

func commandRows(c *Command) []HelpRow {
	sortedCommands := slices.Clone(c.SubCommands)
	slices.SortFunc(sortedCommands, func(a, b *Command) int {
		return cmp.Compare(a.Name, b.Name)
	})
	rows := make([]HelpRow, 0, len(sortedCommands))
	for _, sub := range sortedCommands {
		rows = append(rows, HelpRow{Name: sub.Name, ShortHelp: sub.ShortHelp})
	}
	if c.FormatCommands != nil {
		rows = c.FormatCommands(rows)
	}
	return rows
}

// writeRows renders name/help rows as an aligned two column list. Names are padded by their
// display width so aliases with wide characters stay aligned.
func writeRows(b *strings.Builder, rows []HelpRow) {
	maxNameLen := 0
	for _, row := range rows {
		maxNameLen = max(maxNameLen, textutil.Width(row.Name))
	}
	nameWidth := maxNameLen + 4
	wrapWidth := usageWidth - nameWidth

	for _, row := range rows {
		lines := textutil.Wrap(row.ShortHelp, wrapWidth)
		if len(lines) == 0 {
			fmt.Fprintf(b, "  %s\n", row.Name)
			continue
		}
		fmt.Fprintf(b, "  %s%s\n", textutil.PadRight(row.Name, nameWidth), lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indentPadding, line)
		}
	}
}

// writeFlagSection handles the formatting of flag descriptions
func writeFlagSection(b *strings.Builder, flags []flagInfo, maxLen int, global bool) {
	nameWidth := maxLen + 4
	wrapWidth := usageWidth - nameWidth

	for _, f := range flags {
		if f.global != global {
			continue
		}

		description := f.usage
		if f.defval != "" && f.defval != "false" {
			description += fmt.Sprintf(" (default: %s)", f.defval)
		}

		lines := textutil.Wrap(description, wrapWidth)
		if len(lines) == 0 {
			fmt.Fprintf(b, "  %s\n", f.name)
			continue
		}
		fmt.Fprintf(b, "  %s%s\n", textutil.PadRight(f.name, nameWidth), lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indentPadding, line)
		}
	}
}

type flagInfo struct {
	name   string
	usage  string
	defval string
	global bool
}
