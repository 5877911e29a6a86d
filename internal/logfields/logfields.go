package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeySource     = "source"
	KeyOutput     = "output"
	KeyFiles      = "files"
	KeyDirs       = "dirs"
	KeyBytes      = "bytes"
	KeyDurationMS = "duration_ms"
	KeyAddr       = "addr"
	KeyOp         = "op"
	KeyError      = "error"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr   { return slog.String(KeySource, p) }
func Output(p string) slog.Attr   { return slog.String(KeyOutput, p) }
func Files(n int) slog.Attr       { return slog.Int(KeyFiles, n) }
func Dirs(n int) slog.Attr        { return slog.Int(KeyDirs, n) }
func Bytes(n int64) slog.Attr     { return slog.Int64(KeyBytes, n) }
func Addr(a string) slog.Attr     { return slog.String(KeyAddr, a) }
func Op(op string) slog.Attr      { return slog.String(KeyOp, op) }
func Method(m string) slog.Attr   { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr   { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr {
	return slog.String(KeyRemoteAddr, a)
}
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
