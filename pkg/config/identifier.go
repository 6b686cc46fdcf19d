package config

// ValidIdentifier reports whether s is safe to embed in SQL as an
// identifier: non-empty ASCII letters, digits, and underscore only.
// Identifiers cannot be bound as statement parameters, so this check
// is the sole defense against injection through the configured table
// and column names. Rejecting anything else also rules out quoting
// tricks inside backtick- or double-quoted identifiers.
func ValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}
