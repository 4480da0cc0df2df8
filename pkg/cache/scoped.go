package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-workspace isolation.
// This is useful when a single Redis/Mongo deployment backs several
// independent analysis workspaces and their caches must not collide.
//
// Example usage:
//
//	// Workspace-specific keys
//	wsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ws:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ReportKey generates a prefixed key for a cached AnalysisReport.
func (k *ScopedKeyer) ReportKey(inputsHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(inputsHash, opts)
}

// PlanKey generates a prefixed key for a cached OptimizationPlan.
func (k *ScopedKeyer) PlanKey(reportHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(reportHash, opts)
}

// ArtifactKey generates a prefixed key for a cached output blob.
func (k *ScopedKeyer) ArtifactKey(taskHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(taskHash, opts)
}
