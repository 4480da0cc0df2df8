// Package plan turns merged GlobalAssetStats into an ordered list of
// resize/copy tasks.
package plan
