// Package server implements the local preview server used by the serve command.
//
// The preview builds the site once, serves the output directory over HTTP and
// rebuilds whenever the asset source changes. Connected browsers are told to
// reload through a server-sent events stream.
package server
