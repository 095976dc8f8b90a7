// Package installer installs, replaces and deletes the Senzing API package
// under a Senzing directory, and reports installed and packaged versions.
//
// Every sequence is a fixed list of filesystem steps. A failing step is logged
// as a warning and the sequence moves on; there is no rollback. Step failures
// are returned together as a multierr of *StepError values.
package installer
