// Package cli is responsible for building the command-line surface from
// plugin contributions, parsing process arguments exactly once, and handling
// process-level concerns like exit codes. Plugins contribute top-level flags
// and app subcommands through the Builder before parsing occurs; conflicting
// registrations are rejected so that help text and flag resolution stay
// reproducible across runs.
package cli
