// Package clialias adds command aliases to applications built with the lightweight [cli] package.
//
// An [Application] wraps a root [cli.Command]. Commands registered through it may declare any
// number of aliases:
//
//	app := clialias.New(&cli.Command{Name: "git"}, &clialias.Options{IgnoreCase: true})
//	app.MustCommand(checkout, "co", "switch")
//	app.MustCommand(status, "st")
//	err := app.ParseAndRun(ctx, os.Args[1:], nil)
//
// Tokens typed by the user are resolved by the framework first, so command names always win. Only
// when no command matches is the alias registry consulted. Help output lists aliases next to the
// command they belong to, for example "checkout (co, switch)".
//
// Parsing, help rendering and execution are left to the [cli] package. The alias bookkeeping lives
// in package [alias] and the help formatting in package [aliasfmt], so both can be reused with
// other frameworks; see the cobraalias package for a cobra integration.
package clialias
