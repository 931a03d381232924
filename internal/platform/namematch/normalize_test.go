package namematch

import "testing"

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"University of Arizona",
		"Missouri State",
		"St. John's (NY)",
		"UCONN",
		"gonzaga",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalize_StripsFillerTokens(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Missouri State":        "missourist",
		"missouri-st":           "missourist",
		"Gonzaga University":    "gonzaga",
		"Boston College":        "boston",
		"Miami U":               "miami",
		"Colorado Univ":         "colorado",
		"St. John's":            "stjohns",
		"University of Arizona": "ofarizona",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalize_UniversityPrefixDiffersFromBareName(t *testing.T) {
	t.Parallel()

	// The normalizer alone does not bridge "University of X" and "X";
	// that gap is covered by Variants.
	if Normalize("University of Arizona") == Normalize("Arizona") {
		t.Fatal("expected normalized forms to differ")
	}
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	if got := NormalizeKey("  Missouri   State "); got != "missouri-state" {
		t.Fatalf("NormalizeKey = %q, want missouri-state", got)
	}
}

func TestVariants_BridgesUniversityPrefix(t *testing.T) {
	t.Parallel()

	variants := Variants("University of Arizona")
	if !containsVariant(variants, "arizona") {
		t.Fatalf("variants %v missing core name arizona", variants)
	}
}

func TestVariants_StateAbbreviation(t *testing.T) {
	t.Parallel()

	variants := Variants("Missouri State")
	if !containsVariant(variants, "missouri-st") {
		t.Fatalf("variants %v missing missouri-st", variants)
	}
	if !containsVariant(variants, "missouri") {
		t.Fatalf("variants %v missing leading word missouri", variants)
	}
}

func TestVariants_IncludesNormalizedAndSlugForms(t *testing.T) {
	t.Parallel()

	variants := Variants("Missouri State")
	if !containsVariant(variants, "missourist") {
		t.Fatalf("variants %v missing normalized form", variants)
	}
	if !containsVariant(variants, "missouri-state") {
		t.Fatalf("variants %v missing full slug", variants)
	}
}

func containsVariant(variants []string, want string) bool {
	for _, v := range variants {
		if v == want {
			return true
		}
	}
	return false
}
