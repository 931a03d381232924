package namematch

import "strings"

var coreSlugPrefixes = []string{
	"university-of-",
	"college-of-",
	"the-",
}

var coreSlugSuffixes = []string{
	"-university",
	"-college",
}

// Variants generates alternate short forms of a team name, slug-style, to
// bridge naming conventions between the schedule feed and the ratings/alias
// sources. The result always contains the normalized form and the full slug;
// depending on the name it adds a core name with institutional prefixes and
// suffixes stripped, a "<word>-st" abbreviation for two-word names ending in
// state/st, and the single leading word of the core name.
func Variants(name string) []string {
	out := make([]string, 0, 6)
	seen := make(map[string]struct{}, 6)
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	add(Normalize(name))

	slug := NormalizeKey(name)
	add(slug)

	core := coreName(slug)
	add(core)

	parts := strings.Split(core, "-")
	if len(parts) == 2 {
		last := parts[1]
		if last == "state" || last == "st" {
			add(parts[0] + "-st")
		}
	}
	if len(parts) > 0 {
		add(parts[0])
	}

	return out
}

func coreName(slug string) string {
	for _, prefix := range coreSlugPrefixes {
		if strings.HasPrefix(slug, prefix) && len(slug) > len(prefix) {
			slug = slug[len(prefix):]
			break
		}
	}
	for _, suffix := range coreSlugSuffixes {
		if strings.HasSuffix(slug, suffix) && len(slug) > len(suffix) {
			slug = slug[:len(slug)-len(suffix)]
			break
		}
	}
	return slug
}
