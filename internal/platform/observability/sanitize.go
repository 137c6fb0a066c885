package observability

import (
	"unicode"

	"go.uber.org/zap"
)

const defaultStringLimit = 256

// sanitizeString strips control characters and bounds the length of values copied into logs.
func sanitizeString(value string, limit int) string {
	if limit <= 0 {
		limit = defaultStringLimit
	}

	cleaned := make([]rune, 0, len(value))
	for _, r := range value {
		if unicode.IsControl(r) {
			continue
		}
		cleaned = append(cleaned, r)
	}
	if len(cleaned) > limit {
		cleaned = cleaned[:limit]
	}
	return string(cleaned)
}

// SanitizeRoute removes control characters and enforces length constraints on routes.
func SanitizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	return sanitizeString(route, 180)
}

// SanitizeMethod removes control characters in HTTP methods.
func SanitizeMethod(method string) string {
	return sanitizeString(method, 10)
}

// SanitizeSessionID keeps only a short prefix of the storefront session id so full ids never reach logs.
func SanitizeSessionID(id string) string {
	id = sanitizeString(id, 64)
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "…"
}

// SessionField returns a log field carrying the truncated session id.
func SessionField(id string) zap.Field {
	return zap.String("session", SanitizeSessionID(id))
}
