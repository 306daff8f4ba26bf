// Package cli implements the logtree command line: emitting records through
// a configured logger tree, inspecting which levels a module accepts, and
// validating configuration files.
package cli
