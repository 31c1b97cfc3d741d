package alias

import "errors"

var (
	// ErrInvalidAlias is returned when an alias is empty, contains whitespace, or contains a
	// character outside the allowed set.
	ErrInvalidAlias = errors.New("invalid alias")

	// ErrSelfAlias is returned when an alias normalizes to the name of the command it is registered
	// for.
	ErrSelfAlias = errors.New("alias conflicts with its command name")

	// ErrAliasExists is returned when the normalized alias is already registered, for any command.
	ErrAliasExists = errors.New("alias already registered")
)

// Error describes a rejected alias registration. It wraps one of [ErrInvalidAlias],
// [ErrSelfAlias] or [ErrAliasExists], so callers can match the kind with [errors.Is] and inspect the
// details with [errors.As].
type Error struct {
	// Alias is the alias as supplied by the caller.
	Alias string
	// Command is the command the alias was being registered for.
	Command string
	// Kind is the sentinel error describing the violated rule.
	Kind error

	reason string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.reason
}

func (e *Error) Unwrap() error {
	return e.Kind
}
