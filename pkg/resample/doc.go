// Package resample implements the seven-stage image resampler: raw
// import, alpha-mode auto-detection, pyramid box-reduction, separable
// Lanczos-3 resizing (via golang.org/x/image/draw's Kernel type), alpha-aware
// post-processing, triangular dithering, and PNG export.
package resample
