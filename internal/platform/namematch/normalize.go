package namematch

import "strings"

// Tokens dropped (or rewritten) during normalization. College basketball feeds
// disagree wildly about institutional suffixes, so a canonical form keeps only
// what distinguishes one program from another.
var tokenRewrites = map[string]string{
	"university": "",
	"college":    "",
	"univ":       "",
	"u":          "",
	"state":      "st",
}

// Normalize canonicalizes a raw team name: lowercase, drop institutional
// filler tokens, rewrite "state" to "st", strip every non-alphanumeric rune.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		token := stripNonAlphanumeric(field)
		if token == "" {
			continue
		}
		if rewrite, ok := tokenRewrites[token]; ok {
			token = rewrite
		}
		if token == "" {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, "")
}

// NormalizeKey produces the alias-store key form: lowercase with runs of
// whitespace collapsed to single hyphens. Unlike Normalize it keeps all
// tokens, since alias keys are user-supplied raw spellings.
func NormalizeKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}

func stripNonAlphanumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
