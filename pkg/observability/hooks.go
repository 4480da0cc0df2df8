// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline execution and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnAnalyzeStart(ctx, skeletonCount)
//	// ... do analysis ...
//	observability.Pipeline().OnAnalyzeComplete(ctx, skeletonCount, assetCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the resolution-analysis pipeline.
type PipelineHooks interface {
	// Ingest events fire around loading a skeleton document and its atlas
	// into a workspace.
	OnIngestStart(ctx context.Context, skeletonPath string)
	OnIngestComplete(ctx context.Context, skeletonPath string, imageCount int, duration time.Duration, err error)

	// Analyze events fire around building an AnalysisReport from the
	// ingested skeletons and image index.
	OnAnalyzeStart(ctx context.Context, skeletonCount int)
	OnAnalyzeComplete(ctx context.Context, skeletonCount, assetCount int, duration time.Duration, err error)

	// Resample events fire around rewriting a single image to a target
	// resolution.
	OnResampleStart(ctx context.Context, imageKey string, fromW, fromH, toW, toH int)
	OnResampleComplete(ctx context.Context, imageKey string, duration time.Duration, err error)

	// Pack events fire around repacking resampled regions into new atlas
	// pages.
	OnPackStart(ctx context.Context, regionCount int)
	OnPackComplete(ctx context.Context, pageCount int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnIngestStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnIngestComplete(context.Context, string, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnAnalyzeStart(context.Context, int)                                    {}
func (NoopPipelineHooks) OnAnalyzeComplete(context.Context, int, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnResampleStart(context.Context, string, int, int, int, int)             {}
func (NoopPipelineHooks) OnResampleComplete(context.Context, string, time.Duration, error)        {}
func (NoopPipelineHooks) OnPackStart(context.Context, int)                                        {}
func (NoopPipelineHooks) OnPackComplete(context.Context, int, time.Duration, error)                {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
