package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRepo       = "repository"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyShape      = "shape"
	KeyOutcome    = "outcome"
	KeyReason     = "reason"
	KeyFilter     = "filter"
	KeyKind       = "kind"
	KeyVisited    = "visited"
	KeyAccepted   = "accepted"
	KeyRewritten  = "rewritten"
	KeyDurationMS = "duration_ms"
	KeyRequestID  = "request_id"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyUserAgent  = "user_agent"
	KeyResponseSz = "response_size"
	KeyAddress    = "address"
	KeyRemote     = "remote"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Shape(s string) slog.Attr        { return slog.String(KeyShape, s) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Filter(name string) slog.Attr    { return slog.String(KeyFilter, name) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Visited(n int) slog.Attr         { return slog.Int(KeyVisited, n) }
func Accepted(n int) slog.Attr        { return slog.Int(KeyAccepted, n) }
func Rewritten(n int) slog.Attr       { return slog.Int(KeyRewritten, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func ResponseSize(n int) slog.Attr    { return slog.Int(KeyResponseSz, n) }
func Address(a string) slog.Attr      { return slog.String(KeyAddress, a) }
func Remote(name string) slog.Attr    { return slog.String(KeyRemote, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
