package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyEnvironment = "environment"
	KeyStatus      = "status"
	KeyEntryID     = "entry_id"
	KeySlug        = "slug"
	KeyAssetID     = "asset_id"
	KeyPath        = "path"
	KeyURL         = "url"
	KeyCount       = "count"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Environment(env string) slog.Attr { return slog.String(KeyEnvironment, env) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func EntryID(id string) slog.Attr      { return slog.String(KeyEntryID, id) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func AssetID(id string) slog.Attr      { return slog.String(KeyAssetID, id) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
