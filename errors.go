package clialias

import "errors"

var (
	// ErrSingleCommand is returned by [Application.AddAlias] when the application has exactly one
	// command. A single command is the application's entry point and is never selected by name, so
	// aliases for it would never be consulted.
	ErrSingleCommand = errors.New("aliases are not supported in single-command applications")

	// ErrUnknownCommand is returned by [Application.AddAlias] when the target command is not
	// registered.
	ErrUnknownCommand = errors.New("command does not exist")

	// ErrCommandExists is returned by [Application.Command] when a command with the same name is
	// already registered.
	ErrCommandExists = errors.New("command already registered")

	// ErrAliasShadowsCommand is returned when an alias matches the name of another command. Command
	// names are resolved before aliases, so the alias would never be reached.
	ErrAliasShadowsCommand = errors.New("alias matches another command name")

	// ErrInvalidCommand is returned by [Application.Command] for a nil command or an invalid name.
	ErrInvalidCommand = errors.New("invalid command")
)
