// Package atlas implements the atlas codec: parsing the textual manifest
// grammar, unpacking sub-regions into standalone images, and packing
// optimized images back into atlas pages with a MaxRects
// Best-Short-Side-Fit packer.
package atlas
