// Package cache provides a two-tier caching abstraction for analysis
// results: a byte-oriented Cache interface with file-backed and
// Redis-backed implementations, plus a Keyer that derives deterministic
// cache keys from the inputs that produced a value.
//
// Analysis is a pure function of its inputs: the set of ingested skeleton
// documents, the image index contents, and any user overrides. Caching a
// report is therefore just a matter of hashing those inputs and
// storing/retrieving the serialized AnalysisReport under that key. The
// CLI uses a FileCache by default; a server deployment with multiple
// worker instances should use RedisCache so all instances share one
// cache.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with TTL support.
// Implementations: FileCache (CLI), RedisCache (server), NullCache (tests).
type Cache interface {
	// Get retrieves a value. hit is false on a cache miss (not an error).
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache (connections, handles).
	Close() error
}

// Keyer derives cache keys for the artifacts produced by the analysis
// pipeline. Keys are namespaced so unrelated artifact kinds never collide.
type Keyer interface {
	// ReportKey derives a key for a merged AnalysisReport, given a content
	// hash of the ingested skeletons/images and the options that affect
	// analysis (override count, local-override flag).
	ReportKey(inputsHash string, opts ReportKeyOpts) string

	// PlanKey derives a key for an OptimizationPlan given the report hash
	// and the buffer percentage used to compute it.
	PlanKey(reportHash string, opts PlanKeyOpts) string

	// ArtifactKey derives a key for a single resampled/packed output blob.
	ArtifactKey(taskHash string, opts ArtifactKeyOpts) string
}

// ReportKeyOpts are the analysis options that affect a cached report.
type ReportKeyOpts struct {
	OverrideCount int // number of per-image overrides active
	LocalOverride bool
}

// PlanKeyOpts are the planning options that affect a cached plan.
type PlanKeyOpts struct {
	BufferPct float64
}

// ArtifactKeyOpts are the task options that affect a cached output blob.
type ArtifactKeyOpts struct {
	Width, Height int
	Rotated       bool
}

// DefaultKeyer implements Keyer with unprefixed, content-hashed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a Keyer with no namespace prefix.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

func (k *DefaultKeyer) ReportKey(inputsHash string, opts ReportKeyOpts) string {
	return hashKey("report:"+inputsHash, opts)
}

func (k *DefaultKeyer) PlanKey(reportHash string, opts PlanKeyOpts) string {
	return hashKey("plan:"+reportHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(taskHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+taskHash, opts)
}
