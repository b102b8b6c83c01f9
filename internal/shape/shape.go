// AngelaMos | 2026
// shape.go

// Package shape flattens nested relational query rows into the flat views
// the frontend consumes. A broken relation link (NULL in a joined column)
// becomes the literal fallback string rather than null or empty.
package shape

const Unknown = "Unknown"

// String resolves an optional joined column, substituting the fallback
// when the relation chain was null. Already-flat values pass through
// unchanged, so shaping is idempotent.
func String(s *string) string {
	if s == nil {
		return Unknown
	}
	return *s
}

// ID resolves an optional joined id column without the display fallback;
// internal ids are never surfaced as "Unknown".
func ID(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
