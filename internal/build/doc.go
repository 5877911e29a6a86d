// Package build implements the static site build.
//
// A build runs a fixed, linear sequence of stages:
//
//	clean → copy → generate → write → verify
//
// clean deletes and recreates the output directory, copy mirrors the asset
// tree (skipped when the source directory does not exist), generate renders
// the key demo page, write stores it in the output directory and verify parses
// the written page back. The first failing stage aborts the build; there is no
// retry and no partial-success result.
package build
