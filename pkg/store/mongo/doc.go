// Package mongo implements the optional historical-report archive: every
// completed analyze run can be persisted for later diffing between runs.
// Additive and optional, defaulting to NullArchive.
package mongo
