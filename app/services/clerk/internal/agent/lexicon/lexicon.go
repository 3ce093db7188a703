package lexicon

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultQuantity = 1
	MaxQuantity     = 10
)

var (
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
	quantityExp = regexp.MustCompile(`\b(\d{1,2})\s*(?:x|qty|quantity|pieces?|pcs)?\b`)
)

// Signals is what a single message says about the shopper's intent.
type Signals struct {
	WantsProducts bool
	Category      string
	ProductTypes  []string
	Vibes         []string
}

// HasIntent reports whether any category, type or vibe was detected.
func (s Signals) HasIntent() bool {
	return s.Category != "" || len(s.ProductTypes) > 0 || len(s.Vibes) > 0
}

// Label is the most specific human-readable name for the detected intent.
func (s Signals) Label() string {
	switch {
	case s.Category != "":
		return s.Category
	case len(s.ProductTypes) > 0:
		return s.ProductTypes[0]
	case len(s.Vibes) > 0:
		return s.Vibes[0]
	}
	return ""
}

// Normalize folds accents, lowercases and collapses every non-alphanumeric
// run into a single space.
func Normalize(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)
	return strings.TrimSpace(nonAlnum.ReplaceAllString(folded, " "))
}

// Tokenize returns the normalized tokens of text that are at least two
// characters long.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Extract detects category, product types and vibes. A category is only
// reported when it exists among categories; the catalog's spelling is
// returned.
func Extract(text string, categories []string) Signals {
	normalized := Normalize(text)
	tokens := Tokenize(normalized)

	var s Signals
	s.Category = resolveCategory(tokens, categories)

	seenTypes := make(map[string]struct{})
	for _, tok := range tokens {
		if typ, ok := typeSynonyms[tok]; ok {
			if _, dup := seenTypes[typ]; !dup {
				seenTypes[typ] = struct{}{}
				s.ProductTypes = append(s.ProductTypes, typ)
			}
		}
	}

	s.Vibes = detectVibes(normalized, tokens)

	for _, tok := range tokens {
		if _, ok := productVerbs[tok]; ok {
			s.WantsProducts = true
			break
		}
	}
	if s.HasIntent() {
		s.WantsProducts = true
	}
	return s
}

func resolveCategory(tokens []string, categories []string) string {
	if len(categories) == 0 {
		return ""
	}
	lookup := make(map[string]string, len(categories))
	for _, c := range categories {
		lookup[strings.ToLower(c)] = c
	}
	for _, tok := range tokens {
		if canonical, ok := categorySynonyms[tok]; ok {
			if c, exists := lookup[strings.ToLower(canonical)]; exists {
				return c
			}
		}
		if c, exists := lookup[tok]; exists {
			return c
		}
		if c, exists := lookup[tok+"s"]; exists {
			return c
		}
	}
	return ""
}

func detectVibes(normalized string, tokens []string) []string {
	padded := " " + normalized + " "
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	var out []string
	for _, v := range vibes {
		hit := false
		for _, kw := range v.keywords {
			if _, ok := tokenSet[kw]; ok {
				hit = true
				break
			}
		}
		if !hit {
			for _, phrase := range v.phrases {
				if strings.Contains(padded, " "+phrase+" ") {
					hit = true
					break
				}
			}
		}
		if hit {
			out = append(out, v.name)
		}
	}
	return out
}

// ExtractColor returns the first known color named in text, or "".
func ExtractColor(text string) string {
	padded := " " + Normalize(text) + " "
	for _, c := range colors {
		if strings.Contains(padded, " "+c+" ") {
			return c
		}
	}
	return ""
}

// ColorMatches compares case-insensitively, accepting a substring in either
// direction ("navy" matches "Navy Blue").
func ColorMatches(productColor, requested string) bool {
	a := strings.ToLower(strings.TrimSpace(productColor))
	b := strings.ToLower(strings.TrimSpace(requested))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ExtractQuantity reads an explicit count such as "3x" or "2 pieces",
// clamped to [1, MaxQuantity].
func ExtractQuantity(text string) int {
	m := quantityExp.FindStringSubmatch(Normalize(text))
	if len(m) < 2 {
		return DefaultQuantity
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return DefaultQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}
