package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyTarget     = "target"
	KeyFormat     = "format"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyGroup      = "group"
	KeyDirectory  = "directory"
	KeyPages      = "pages"
	KeyEvent      = "event"
	KeySchedule   = "schedule"
	KeyAddr       = "addr"
	KeyURL        = "url"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Format(f string) slog.Attr        { return slog.String(KeyFormat, f) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Group(label string) slog.Attr     { return slog.String(KeyGroup, label) }
func Directory(d string) slog.Attr     { return slog.String(KeyDirectory, d) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Event(op string) slog.Attr        { return slog.String(KeyEvent, op) }
func Schedule(expr string) slog.Attr   { return slog.String(KeySchedule, expr) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
