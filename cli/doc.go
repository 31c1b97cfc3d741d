// Package cli provides a lightweight framework for building command-line applications. It features
// nested subcommand support and flexible flag parsing.
//
// The package prioritizes simplicity and ease of use, making it an ideal foundation for CLI
// applications that don't require the overhead of larger frameworks. Two hooks allow extensions to
// take part in dispatch and help rendering without replacing either: a [Resolver] selects
// subcommands from the tokens a user typed, and [Command.FormatCommands] rewrites the rows of the
// "Available Commands" help section.
package cli
