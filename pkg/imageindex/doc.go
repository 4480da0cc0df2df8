// Package imageindex maintains the normalized key→ImageAsset map that
// backs asset lookup and canonicalization. It implements
// skeleton.ImageSizer so the analyzer can resolve effective image
// dimensions without importing this package's concrete type.
package imageindex
