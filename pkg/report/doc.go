// Package report implements the report aggregator: folding per-animation
// analysis results into one GlobalAssetStat per image under a strict
// priority ordering, and assembling the final AnalysisReport including
// unused/missing asset bookkeeping.
package report
