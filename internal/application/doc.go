// Package application provides dependency wiring and subcommand dispatch.
// It maps each Subcommand to an action backed by the installer, wraps every
// run in Enter and Exit messages carrying the redacted configuration, and
// keeps the main package focused on CLI parsing and signal handling.
package application
