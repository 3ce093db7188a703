package tools

import (
	"strings"
	"unicode/utf8"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"

	"github.com/sahilm/fuzzy"
)

// minPartialName is the shortest name matched by containment or fuzzily.
// Anything shorter only matches a product name exactly.
const minPartialName = 3

type productNames []clerk.Product

func (p productNames) String(i int) string { return p[i].Name }
func (p productNames) Len() int            { return len(p) }

// FindByName resolves a product the model referred to by name: exact match,
// then containment, then the best fuzzy subsequence match.
func FindByName(products []clerk.Product, name string) (clerk.Product, bool) {
	want := lexicon.Normalize(name)
	if want == "" {
		return clerk.Product{}, false
	}
	for _, p := range products {
		if lexicon.Normalize(p.Name) == want {
			return p, true
		}
	}
	if utf8.RuneCountInString(want) < minPartialName {
		return clerk.Product{}, false
	}
	for _, p := range products {
		have := lexicon.Normalize(p.Name)
		if strings.Contains(have, want) {
			return p, true
		}
		if utf8.RuneCountInString(have) >= minPartialName && strings.Contains(want, have) {
			return p, true
		}
	}
	matches := fuzzy.FindFrom(want, productNames(products))
	if len(matches) == 0 {
		return clerk.Product{}, false
	}
	return products[matches[0].Index], true
}
