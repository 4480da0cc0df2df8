// Package pkg provides the core libraries for texrig, a resolution analyzer
// and optimizer for 2D skeletal-animation projects.
//
// # Overview
//
// texrig walks a skeleton's bone hierarchy across every animation and skin
// to find the maximum resolution at which each referenced image is ever
// rendered, then produces a resized, repacked image set at those minima.
// The pkg directory is organized around the four core subsystems plus the
// infrastructure that keeps a long-lived analysis session usable:
//
//  1. [skeleton] - Bone hierarchy, scale propagation, per-animation analysis.
//  2. [atlas] - Texture atlas manifest parsing, region unpacking, MaxRects packing.
//  3. [resample] - Alpha-aware Lanczos-3 image downscaling.
//  4. [report] - Cross-animation and cross-skeleton aggregation.
//  5. [imageindex] - Canonicalized lookup from asset key to image bytes.
//  6. [plan] - Turns a merged report into an ordered optimization task list.
//
// # Architecture
//
// The typical data flow through texrig:
//
//	Skeleton documents + atlas manifests + loose images
//	         ↓
//	    [imageindex] (normalize keys, adopt canonical dimensions)
//	         ↓
//	    [skeleton] (bone graph, scale propagation, per-animation usage)
//	         ↓
//	    [report] (merge into GlobalAssetStat, compute unused assets)
//	         ↓
//	    [plan] (buffer, clamp, order tasks)
//	         ↓
//	    [resample] + [atlas] pack (produce images_optimized/)
//
// # Infrastructure
//
// [cache] - Two-tier caching: an in-process/file-backed Cache for CLI use,
// and a Redis-backed Cache for multi-instance server deployments, both
// keyed by a content hash of the skeleton/image-index inputs that produced
// a report.
//
// [store/mongo] - Durable archive of historical AnalysisReports, bson-tagged
// for direct persistence.
//
// [workspace] - Session/config document persistence (overrides, selections,
// notes) with file and Redis-backed Store implementations.
//
// [observability] - Optional hooks for ingest/analyze/resample/pack events,
// registered by the CLI or server at startup; the core packages never
// depend on a concrete metrics backend.
//
// [errors] - Structured, coded errors matching the failure semantics of the
// analysis pipeline (malformed input, missing asset, cancelled, etc).
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/skeleton/...            # Specific package
//
// [skeleton]: https://pkg.go.dev/github.com/texrig/texrig/pkg/skeleton
// [atlas]: https://pkg.go.dev/github.com/texrig/texrig/pkg/atlas
// [resample]: https://pkg.go.dev/github.com/texrig/texrig/pkg/resample
// [report]: https://pkg.go.dev/github.com/texrig/texrig/pkg/report
// [imageindex]: https://pkg.go.dev/github.com/texrig/texrig/pkg/imageindex
// [plan]: https://pkg.go.dev/github.com/texrig/texrig/pkg/plan
// [cache]: https://pkg.go.dev/github.com/texrig/texrig/pkg/cache
// [store/mongo]: https://pkg.go.dev/github.com/texrig/texrig/pkg/store/mongo
// [workspace]: https://pkg.go.dev/github.com/texrig/texrig/pkg/workspace
// [observability]: https://pkg.go.dev/github.com/texrig/texrig/pkg/observability
// [errors]: https://pkg.go.dev/github.com/texrig/texrig/pkg/errors
package pkg
