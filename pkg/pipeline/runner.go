package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/chai2010/webp"

	"github.com/texrig/texrig/pkg/atlas"
	"github.com/texrig/texrig/pkg/cache"
	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/imageindex"
	"github.com/texrig/texrig/pkg/model"
	"github.com/texrig/texrig/pkg/observability"
	"github.com/texrig/texrig/pkg/plan"
	"github.com/texrig/texrig/pkg/report"
	"github.com/texrig/texrig/pkg/resample"
	"github.com/texrig/texrig/pkg/skeleton"
	"github.com/texrig/texrig/pkg/store/mongo"
)

// TTL constants for cached pipeline artifacts: derived state, safe to
// expire and recompute.
const (
	TTLReport = 10 * time.Minute
	TTLPlan   = 10 * time.Minute
)

// Runner holds one analysis session's accumulated state and executes the
// core ingest/clear/analyze/plan/resample/pack operations. It is the
// orchestration point between the CLI/API and the core packages. The
// image index it wraps is genuinely stateful across calls, so a Runner
// is not safe to treat as a value type.
type Runner struct {
	mu    sync.RWMutex
	Index *imageindex.Index
	Cache cache.Cache
	Keyer cache.Keyer

	Logger *log.Logger

	// Archive persists every freshly computed AnalysisReport for later
	// retrieval and diffing. Defaults to a no-op.
	Archive mongo.Archive

	skeletons []*model.SkeletonDocument
	opts      Options
}

// NewRunner creates a Runner with a fresh, empty image index. A nil cache
// defaults to a no-op NullCache; a nil keyer defaults to DefaultKeyer; a
// nil logger defaults to log.Default(). The archive defaults to
// mongo.NullArchive and can be replaced directly on the returned Runner.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Index:   imageindex.New(),
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Archive: mongo.NullArchive{},
		opts:    Options{OverridePct: map[string]float64{}, LocalOverrides: map[string]bool{}},
	}
}

// SetOptions replaces the session's per-image and per-animation
// overrides, affecting every subsequent Analyze/Plan call.
func (r *Runner) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if opts.OverridePct == nil {
		opts.OverridePct = map[string]float64{}
	}
	if opts.LocalOverrides == nil {
		opts.LocalOverrides = map[string]bool{}
	}
	r.opts = opts
}

// Close releases resources held by the runner: the cache and, if
// configured, the report archive.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Archive != nil {
		if aerr := r.Archive.Close(); aerr != nil && err == nil {
			err = aerr
		}
	}
	return err
}

// Clear resets the session to empty: the image index and every ingested
// skeleton are discarded.
func (r *Runner) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Index.Clear()
	r.skeletons = nil
}

// Ingest merges assets into the current session: skeleton documents are
// parsed and their canonical sizes recorded, atlas manifests are parsed
// and unpacked into standalone region images, and loose images are
// decoded directly. A malformed source is skipped with a warning; the
// rest of the batch still ingests.
func (r *Runner) Ingest(ctx context.Context, assets []FileAsset) (*IngestResult, error) {
	start := time.Now()
	observability.Pipeline().OnIngestStart(ctx, ingestLabel(assets))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.Index.BeginIngest()
	defer r.Index.EndIngest()

	result := &IngestResult{}
	rawImages := make(map[string][]byte) // normalized basename -> bytes, for atlas page lookup

	var skeletonAssets, atlasAssets, imageAssets []FileAsset
	for _, a := range assets {
		switch classify(a.Path) {
		case kindSkeleton:
			skeletonAssets = append(skeletonAssets, a)
		case kindAtlas:
			atlasAssets = append(atlasAssets, a)
		case kindImage:
			imageAssets = append(imageAssets, a)
		default:
			result.Warnings = append(result.Warnings, fmt.Sprintf("unrecognized file %q: skipped", a.Path))
		}
	}

	for _, a := range imageAssets {
		key := model.NormalizeKey(a.Path)
		asset, err := imageindex.DecodeAsset(key, a.Path, model.AssetLoose, a.Data)
		if err != nil {
			result.Warnings = append(result.Warnings, errors.UserMessage(err))
			continue
		}
		r.Index.Put(asset)
		rawImages[model.NormalizeKey(filepath.Base(a.Path))] = a.Data
		result.ImagesLoaded++
	}

	for _, a := range atlasAssets {
		meta, err := atlas.Parse(string(a.Data))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("atlas %q: %s", a.Path, errors.UserMessage(err)))
			continue
		}
		pages := make(map[string]image.Image)
		for _, name := range meta.PageNames() {
			r.Index.AddPageName(name)
			data, ok := rawImages[model.NormalizeKey(name)]
			if !ok {
				continue // resolved as a missing-page warning by Unpack below
			}
			img, _, decErr := image.Decode(bytes.NewReader(data))
			if decErr != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("atlas page %q: %v", name, decErr))
				continue
			}
			pages[name] = img
		}

		regions, warnings := atlas.Unpack(pages, meta)
		result.Warnings = append(result.Warnings, warnings...)

		for _, rgn := range meta.Regions {
			img, ok := regions[rgn.Name]
			if !ok {
				continue
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("region %q: encode failed: %v", rgn.Name, err))
				continue
			}
			key := model.NormalizeKey(rgn.Name)
			r.Index.Put(model.ImageAsset{
				Key:            key,
				SourcePath:     atlas.OutputName(rgn.Name),
				Kind:           model.AssetAtlasExtracted,
				Data:           buf.Bytes(),
				PhysicalWidth:  rgn.Width,
				PhysicalHeight: rgn.Height,
			})
		}
		result.AtlasesLoaded++
	}

	for _, a := range skeletonAssets {
		id := strings.TrimSuffix(filepath.Base(a.Path), filepath.Ext(a.Path))
		doc, err := skeleton.Parse(id, a.Data)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skeleton %q: %s", a.Path, errors.UserMessage(err)))
			continue
		}
		applyCanonicalSizes(doc, r.Index)
		r.skeletons = append(r.skeletons, doc)
		result.SkeletonsLoaded = append(result.SkeletonsLoaded, id)
	}

	sort.Strings(result.SkeletonsLoaded)
	observability.Pipeline().OnIngestComplete(ctx, ingestLabel(assets), r.Index.Len(), time.Since(start), nil)
	return result, nil
}

// applyCanonicalSizes records every region/mesh attachment's declared
// width/height into idx, on the asset that the attachment's image key
// resolves to through FindImage, the same lookup the analyzer uses (so an
// extension-less attachment path reaches an asset indexed with its
// extension).
func applyCanonicalSizes(doc *model.SkeletonDocument, idx *imageindex.Index) {
	for _, skin := range doc.Skins {
		for _, byName := range skin.Slots {
			for _, def := range byName {
				if !def.Kind.IsTextured() || !def.HasCanonicalSize() {
					continue
				}
				key := def.ImageKey()
				if a, ok := idx.FindImage(key); ok {
					key = a.Key
				}
				idx.SetCanonicalSize(key, def.Width, def.Height)
			}
		}
	}
}

func ingestLabel(assets []FileAsset) string {
	if len(assets) == 0 {
		return ""
	}
	return fmt.Sprintf("%d files", len(assets))
}

// Analyze runs the skeleton analyzer over every ingested skeleton and
// merges the results into one AnalysisReport, serving a cached copy when
// the ingested inputs and overrides have not changed since the last
// call.
func (r *Runner) Analyze(ctx context.Context) (model.AnalysisReport, error) {
	start := time.Now()

	r.mu.RLock()
	docs := append([]*model.SkeletonDocument(nil), r.skeletons...)
	opts := r.opts
	r.mu.RUnlock()

	observability.Pipeline().OnAnalyzeStart(ctx, len(docs))

	key := r.Keyer.ReportKey(r.inputsHash(docs, opts), cache.ReportKeyOpts{
		OverrideCount: len(opts.OverridePct),
		LocalOverride: len(opts.LocalOverrides) > 0,
	})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var cached model.AnalysisReport
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "report")
			observability.Pipeline().OnAnalyzeComplete(ctx, len(docs), len(cached.GlobalStats), time.Since(start), nil)
			return cached, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "report")

	analyses := make([]report.SkeletonAnalysis, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return model.AnalysisReport{}, errors.Wrap(errors.ErrCodeCancelled, err, "analyze")
		}
		results, missing, err := skeleton.Analyze(doc, r.Index, skeleton.Options{
			OverridePct:    opts.OverridePct,
			LocalOverrides: opts.LocalOverrides,
		})
		if err != nil {
			observability.Pipeline().OnAnalyzeComplete(ctx, len(docs), 0, time.Since(start), err)
			return model.AnalysisReport{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "skeleton %q", doc.ID)
		}
		analyses = append(analyses, report.SkeletonAnalysis{Document: doc, Animations: results, MissingImages: missing})
	}

	built := report.Build(analyses, r.Index, r.Index)
	for i := range built.GlobalStats {
		if pct, ok := opts.OverridePct[built.GlobalStats[i].ImageKey]; ok {
			built.GlobalStats[i].OverridePct = pct
		}
	}

	if data, err := json.Marshal(built); err == nil {
		_ = r.Cache.Set(ctx, key, data, TTLReport)
		observability.Cache().OnCacheSet(ctx, "report", len(data))
	}

	if r.Archive != nil {
		skeletonIDs := make([]string, len(docs))
		for i, doc := range docs {
			skeletonIDs[i] = doc.ID
		}
		if _, err := r.Archive.Save(ctx, skeletonIDs, built); err != nil {
			r.Logger.Warnf("archive report: %v", err)
		}
	}

	observability.Pipeline().OnAnalyzeComplete(ctx, len(docs), len(built.GlobalStats), time.Since(start), nil)
	return built, nil
}

// inputsHash derives a content hash of everything that determines an
// analysis result: every ingested skeleton's identity and structure size,
// every indexed image's effective dimensions, and the active overrides.
// Analyze is a pure function of these, so this hash alone is a safe and
// sufficient cache key.
func (r *Runner) inputsHash(docs []*model.SkeletonDocument, opts Options) string {
	type imageDigest struct {
		Key            string
		PhysicalW      int
		PhysicalH      int
		CanonicalW     int
		CanonicalH     int
	}
	digests := make([]imageDigest, 0, r.Index.Len())
	for _, key := range r.Index.Keys() {
		a, ok := r.Index.Get(key)
		if !ok {
			continue
		}
		digests = append(digests, imageDigest{key, a.PhysicalWidth, a.PhysicalHeight, a.CanonicalWidth, a.CanonicalHeight})
	}

	docBytes, _ := json.Marshal(docs)
	imgBytes, _ := json.Marshal(digests)
	optBytes, _ := json.Marshal(opts)
	return cache.Hash(append(append(docBytes, imgBytes...), optBytes...))
}

// Plan computes the optimization task list for the current report at the
// given safety-buffer percentage.
func (r *Runner) Plan(ctx context.Context, bufferPct float64) ([]model.OptimizationTask, error) {
	rep, err := r.Analyze(ctx)
	if err != nil {
		return nil, err
	}

	key := r.Keyer.PlanKey(cache.Hash(mustJSON(rep.GlobalStats)), cache.PlanKeyOpts{BufferPct: bufferPct})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var tasks []model.OptimizationTask
		if err := json.Unmarshal(data, &tasks); err == nil {
			observability.Cache().OnCacheHit(ctx, "plan")
			return tasks, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "plan")

	tasks := plan.Plan(rep.GlobalStats, bufferPct)
	if data, err := json.Marshal(tasks); err == nil {
		_ = r.Cache.Set(ctx, key, data, TTLPlan)
		observability.Cache().OnCacheSet(ctx, "plan", len(data))
	}
	return tasks, nil
}

// Resample runs the image resampler for one task. A resampler failure
// never errors the call — it falls back to the source blob unchanged
// and reports the failure on Err.
func (r *Runner) Resample(ctx context.Context, task model.OptimizationTask) ResampleResult {
	start := time.Now()
	observability.Pipeline().OnResampleStart(ctx, task.ImageKey, task.PhysicalWidth, task.PhysicalHeight, task.TargetWidth, task.TargetHeight)

	asset, ok := r.Index.FindImage(task.ImageKey)
	if !ok {
		err := errors.New(errors.ErrCodeAssetMissing, "resample: no indexed asset for %q", task.ImageKey)
		observability.Pipeline().OnResampleComplete(ctx, task.ImageKey, time.Since(start), err)
		return ResampleResult{ImageKey: task.ImageKey, Err: err}
	}

	out, err := resample.ResampleTask(asset.Data, resample.Options{
		TargetWidth:           task.TargetWidth,
		TargetHeight:          task.TargetHeight,
		IsSourcePremultiplied: asset.Kind == model.AssetAtlasExtracted,
	})
	observability.Pipeline().OnResampleComplete(ctx, task.ImageKey, time.Since(start), err)
	return ResampleResult{ImageKey: task.ImageKey, Data: out, Err: err}
}

// ResampleBatch runs Resample over every task, checking ctx between tasks
// (not inside a task's pixel loop). If cancelled, it returns no results,
// discarding the tasks already completed as well.
func (r *Runner) ResampleBatch(ctx context.Context, tasks []model.OptimizationTask) ([]ResampleResult, error) {
	out := make([]ResampleResult, 0, len(tasks))
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCancelled, err, "resample batch")
		}
		out = append(out, r.Resample(ctx, t))
	}
	return out, nil
}

// Pack runs the atlas packer over tasks.
func (r *Runner) Pack(ctx context.Context, tasks []model.OptimizationTask, opts PackOptions) (model.PackResult, error) {
	if err := ctx.Err(); err != nil {
		return model.PackResult{}, errors.Wrap(errors.ErrCodeCancelled, err, "pack")
	}
	start := time.Now()
	observability.Pipeline().OnPackStart(ctx, len(tasks))
	result := atlas.Pack(tasks, opts.PageSize, opts.Padding)
	observability.Pipeline().OnPackComplete(ctx, len(result.Pages), time.Since(start), nil)
	return result, nil
}

func mustJSON(v any) []byte {
	data, _ := json.Marshal(v)
	return data
}
