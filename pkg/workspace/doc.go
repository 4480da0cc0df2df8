// Package workspace implements the configuration persistence contract: a
// Document capturing a user's in-progress overrides, selections, and
// notes, behind a Store interface with file and Redis backends.
package workspace
