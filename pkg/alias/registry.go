// Package alias keeps track of alternative names for commands.
//
// A [Registry] maps each canonical command name to an ordered list of aliases and keeps an inverse
// index from normalized alias to command name. Aliasing is one-directional: an alias resolves to a
// command, a command name never resolves through the registry.
package alias

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options configures a [Registry].
type Options struct {
	// IgnoreCase makes alias registration and lookup case-insensitive. Aliases are lower-cased
	// before they are indexed or looked up, while the display list keeps the casing supplied at
	// registration. The zero value is case-sensitive.
	IgnoreCase bool
}

// Registry owns alias bookkeeping for one application. The zero value is not usable, use
// [NewRegistry].
//
// A Registry is safe for concurrent use, so aliases may be added while commands are being
// dispatched.
type Registry struct {
	mu               sync.RWMutex
	commandToAliases map[string][]string
	aliasToCommand   map[string]string
	caseSensitive    bool
}

// NewRegistry returns an empty registry. The options parameter may be nil, in which case the
// registry is case-sensitive.
func NewRegistry(opts *Options) *Registry {
	r := &Registry{
		commandToAliases: make(map[string][]string),
		aliasToCommand:   make(map[string]string),
		caseSensitive:    true,
	}
	if opts != nil {
		r.caseSensitive = !opts.IgnoreCase
	}
	return r
}

// CaseSensitive reports whether aliases are matched exactly.
func (r *Registry) CaseSensitive() bool {
	return r.caseSensitive
}

// Normalize returns the form of name used as a lookup key.
func (r *Registry) Normalize(name string) string {
	if r.caseSensitive {
		return name
	}
	return cases.Lower(language.Und).String(name)
}

// Register adds alias for command. The alias must be valid (see [Validate]), must not normalize
// to the command's own name and must not already be registered for any command, including this
// one. On failure the registry is left unchanged.
func (r *Registry) Register(command, alias string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(command, alias)
}

// RegisterAll registers aliases for command in order. A nil or empty list is a no-op and creates
// no entry for the command.
//
// Registration is atomic: if any alias is rejected, the aliases of this call that were already
// applied are removed again and the error is returned.
func (r *Registry) RegisterAll(command string, aliases []string) error {
	if len(aliases) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.commandToAliases[command]
	var applied []string
	for _, a := range aliases {
		if err := r.register(command, a); err != nil {
			for _, key := range applied {
				delete(r.aliasToCommand, key)
			}
			if existed {
				r.commandToAliases[command] = previous
			} else {
				delete(r.commandToAliases, command)
			}
			return err
		}
		applied = append(applied, r.Normalize(a))
	}
	return nil
}

func (r *Registry) register(command, alias string) error {
	if err := Validate(alias); err != nil {
		return &Error{
			Alias:   alias,
			Command: command,
			Kind:    ErrInvalidAlias,
			reason:  err.Error(),
		}
	}
	key := r.Normalize(alias)
	if key == r.Normalize(command) {
		return &Error{
			Alias:   alias,
			Command: command,
			Kind:    ErrSelfAlias,
			reason:  fmt.Sprintf("alias %q cannot be the same as command name %q", alias, command),
		}
	}
	if owner, ok := r.aliasToCommand[key]; ok {
		return &Error{
			Alias:   alias,
			Command: command,
			Kind:    ErrAliasExists,
			reason:  fmt.Sprintf("alias %q is already registered for command %q", alias, owner),
		}
	}
	// Append to a copy so slices handed out earlier, or a rolled back batch, never alias the stored
	// list.
	list := r.commandToAliases[command]
	r.commandToAliases[command] = append(list[:len(list):len(list)], alias)
	r.aliasToCommand[key] = command
	return nil
}

// Resolve returns the command registered for the alias typed by the user. It returns false for
// unknown tokens and for command names, which are resolved by the framework and never through the
// registry.
func (r *Registry) Resolve(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	command, ok := r.aliasToCommand[r.Normalize(token)]
	return command, ok
}

// Remove unregisters alias and reports whether it was registered. The alias is matched after
// normalization, so in case-insensitive mode any casing removes it.
func (r *Registry) Remove(alias string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.Normalize(alias)
	command, ok := r.aliasToCommand[key]
	if !ok {
		return false
	}
	delete(r.aliasToCommand, key)

	list, ok := r.commandToAliases[command]
	if !ok {
		return true
	}
	list = slices.DeleteFunc(slices.Clone(list), func(a string) bool {
		return r.Normalize(a) == key
	})
	if len(list) == 0 {
		delete(r.commandToAliases, command)
	} else {
		r.commandToAliases[command] = list
	}
	return true
}

// RemoveCommand unregisters every alias of command and returns how many were removed.
func (r *Registry) RemoveCommand(command string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.commandToAliases[command]
	for _, a := range list {
		delete(r.aliasToCommand, r.Normalize(a))
	}
	delete(r.commandToAliases, command)
	return len(list)
}

// Aliases returns the aliases of command in registration order, with their original casing.
func (r *Registry) Aliases(command string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.commandToAliases[command])
}

// Map returns a copy of every command's alias list. Commands without aliases are omitted.
func (r *Registry) Map() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := make(map[string][]string, len(r.commandToAliases))
	for command, list := range r.commandToAliases {
		m[command] = slices.Clone(list)
	}
	return m
}

// All returns every registered alias with its original casing, sorted.
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]string, 0, len(r.aliasToCommand))
	for _, list := range r.commandToAliases {
		all = append(all, list...)
	}
	slices.Sort(all)
	return all
}

// Len returns the number of registered aliases.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.aliasToCommand)
}

// Validate checks alias against the naming rules: it must be non-empty, must not contain
// whitespace and may only contain letters, digits, dashes and underscores. Unicode letters are
// allowed.
func Validate(alias string) error {
	if alias == "" {
		return errors.New("alias must be a non-empty string")
	}
	if strings.IndexFunc(alias, unicode.IsSpace) >= 0 {
		return fmt.Errorf("alias %q cannot contain whitespace", alias)
	}
	for _, r := range alias {
		if !isAliasRune(r) {
			return fmt.Errorf("alias %q must only contain alphanumeric characters, dashes, and underscores", alias)
		}
	}
	return nil
}

func isAliasRune(r rune) bool {
	switch {
	case r == '-', r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
		return true
	default:
		return false
	}
}
