package log

import "strings"

// Redacted replaces the value of secret keys in log entries.
const Redacted = "[REDACTED]"

// secretKeys are normalized with normalizeKey.
var secretKeys = map[string]struct{}{
	"privatekey": {},
	"mnemonic":   {},
	"passphrase": {},
	"password":   {},
	"seed":       {},
	"entropy":    {},
	"plaintext":  {},
}

// IsSecretKey reports whether values logged under key are redacted.
// Matching ignores case, '_' and '-'.
func IsSecretKey(key string) bool {
	_, ok := secretKeys[normalizeKey(key)]
	return ok
}

func normalizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return -1
		}
		return r
	}, strings.ToLower(key))
}

// redact returns keysAndValues with secret values replaced. The input is
// copied only when something needs replacing.
func redact(keysAndValues []any) []any {
	var out []any
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok || !IsSecretKey(key) {
			continue
		}
		if out == nil {
			out = append([]any(nil), keysAndValues...)
		}
		out[i+1] = Redacted
	}
	if out == nil {
		return keysAndValues
	}
	return out
}
