package kyberkem

import "log/slog"

const redactedPlaceholder = "[redacted]"

// Redacted returns an attribute that stands in for a secret value. Secrets
// are never logged; the attribute records that one was intentionally left
// out.
func Redacted(key string) slog.Attr {
	return slog.String(key, redactedPlaceholder)
}
