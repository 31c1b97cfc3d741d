package clialias

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Echo writes its arguments to the state's Stdout followed by a newline, like [fmt.Fprintln].
func Echo(s *State, a ...any) error {
	_, err := fmt.Fprintln(s.Stdout, a...)
	return err
}

// PromptOptions configures [Prompt].
type PromptOptions struct {
	// Default is returned when the user enters an empty line. It is shown in brackets after the
	// prompt text unless Hide is set.
	Default string
	// Hide disables echoing of the input when Stdin is a terminal, for passwords and tokens.
	Hide bool
}

// Prompt writes text to the state's Stdout and reads a line from its Stdin. Empty input selects
// the default; without a default the prompt is repeated until a value is entered. The options
// parameter may be nil.
func Prompt(s *State, text string, opts *PromptOptions) (string, error) {
	if opts == nil {
		opts = &PromptOptions{}
	}
	label := text
	if opts.Default != "" && !opts.Hide {
		label += " [" + opts.Default + "]"
	}
	for {
		if _, err := fmt.Fprint(s.Stdout, label+": "); err != nil {
			return "", err
		}
		line, err := readInput(s, opts.Hide)
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) && opts.Default != "" {
				return opts.Default, nil
			}
			return "", fmt.Errorf("prompt %q: %w", text, err)
		}
		if line != "" {
			return line, nil
		}
		if opts.Default != "" {
			return opts.Default, nil
		}
	}
}

// Confirm asks a yes/no question and returns the answer. Empty input selects def. Answers are
// matched case-insensitively against y, yes, n and no; anything else repeats the question.
func Confirm(s *State, text string, def bool) (bool, error) {
	choices := "[y/N]"
	if def {
		choices = "[Y/n]"
	}
	for {
		if _, err := fmt.Fprintf(s.Stdout, "%s %s: ", text, choices); err != nil {
			return false, err
		}
		line, err := readInput(s, false)
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return def, nil
			}
			return false, fmt.Errorf("confirm %q: %w", text, err)
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if _, err := fmt.Fprintln(s.Stderr, "Error: invalid input"); err != nil {
			return false, err
		}
	}
}

func readInput(s *State, hide bool) (string, error) {
	if f, ok := s.Stdin.(*os.File); ok && hide && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(s.Stdout)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return readLine(s.Stdin)
}

// readLine reads up to and including the next newline one byte at a time, so input meant for later
// prompts stays in the reader.
func readLine(r io.Reader) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimSpace(b.String()), nil
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			return strings.TrimSpace(b.String()), err
		}
	}
}
