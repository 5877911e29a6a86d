// Package assets mirrors an asset tree into the build output directory.
//
// Copies are flat: every regular file is written byte-for-byte to the same
// relative path below the destination, directories are created as needed, and
// nothing is transformed, merged, or cached between runs.
package assets
