// Package aliasfmt formats command aliases for help output.
//
// The functions are pure: they operate on already resolved command names and alias lists and never
// consult a registry.
package aliasfmt

import (
	"strconv"
	"strings"
)

const (
	// DefaultFormat is the template used to display aliases next to a command name. The
	// placeholder {aliases} is replaced with the joined alias list.
	DefaultFormat = "({aliases})"
	// DefaultMax is the number of aliases shown before the rest are summarized as "+N more".
	DefaultMax = 3
	// DefaultSeparator joins the displayed aliases.
	DefaultSeparator = ", "

	placeholder = "{aliases}"
)

// Options controls how aliases are displayed. Every field is used as given: Max 0 shows only the
// "+N more" summary and an empty Separator joins aliases directly. Use [DefaultOptions] for the
// default display.
type Options struct {
	// Format is the display template, see [DefaultFormat].
	Format string
	// Max is the number of aliases shown before the rest are summarized. Negative values are
	// treated as zero.
	Max int
	// Separator joins the shown aliases, see [DefaultSeparator].
	Separator string
}

// DefaultOptions returns the default display: "(a, b, c, +N more)".
func DefaultOptions() Options {
	return Options{
		Format:    DefaultFormat,
		Max:       DefaultMax,
		Separator: DefaultSeparator,
	}
}

// Truncate joins at most maxCount aliases with sep. When aliases are hidden, "+N more" is appended,
// preceded by sep if at least one alias is shown. A negative maxCount is treated as zero. An empty list
// yields the empty string.
//
//	Truncate([]string{"a", "b", "c", "d"}, 2, ", ") // "a, b, +2 more"
//	Truncate([]string{"a", "b"}, 0, ", ")           // "+2 more"
func Truncate(aliases []string, maxCount int, sep string) string {
	if len(aliases) == 0 {
		return ""
	}
	maxCount = clamp(maxCount)
	if len(aliases) <= maxCount {
		return strings.Join(aliases, sep)
	}

	var b strings.Builder
	b.WriteString(strings.Join(aliases[:maxCount], sep))
	if maxCount > 0 {
		b.WriteString(sep)
	}
	b.WriteString("+")
	b.WriteString(strconv.Itoa(len(aliases) - maxCount))
	b.WriteString(" more")
	return b.String()
}

// FormatCommand returns name followed by a space and the aliases rendered with opts. A command
// without aliases is returned unchanged.
//
//	FormatCommand("list", []string{"ls", "l"}, DefaultOptions())               // "list (ls, l)"
//	FormatCommand("list", []string{"ls", "l"}, Options{Format: "({aliases})"}) // "list (+2 more)"
func FormatCommand(name string, aliases []string, opts Options) string {
	if len(aliases) == 0 {
		return name
	}
	joined := Truncate(aliases, opts.Max, opts.Separator)
	return name + " " + strings.ReplaceAll(opts.Format, placeholder, joined)
}

// Entry is a command listing row: a command name and its help text. An empty Help means the command
// has no help text.
type Entry struct {
	Name string
	Help string
}

// FormatSection formats every entry whose name has an alias list in aliases and passes the others
// through unchanged. The order of entries is preserved and help text is never modified.
func FormatSection(entries []Entry, aliases map[string][]string, opts Options) []Entry {
	formatted := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if list, ok := aliases[e.Name]; ok {
			e.Name = FormatCommand(e.Name, list, opts)
		}
		formatted = append(formatted, e)
	}
	return formatted
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
