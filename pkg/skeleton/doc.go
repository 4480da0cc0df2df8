// Package skeleton implements the skeleton parser and analyzer: Parse
// decodes a textual skeleton document into a model.SkeletonDocument, and
// Analyze walks its bone forest, propagates scale through animation
// timelines, and computes per-attachment maximum render dimensions for
// every animation (plus the synthetic "Setup Pose").
//
// Cycle detection uses white/gray/black DFS coloring over bone parent
// links; timeline sampling and per-usage resolution are this package's
// own domain logic.
package skeleton
