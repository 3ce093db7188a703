package matcher

import (
	"slices"
	"sort"
	"strings"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"
)

const (
	tokenWeight         = 2.0
	typeWeight          = 2.5
	vibeWeight          = 2.0
	viewedCategoryBonus = 1.5
	recentlyViewedBonus = 2.0
	addedBonus          = 1.0
)

// stopwords never count as keyword hits.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "some": {}, "show": {}, "me": {}, "you": {},
	"can": {}, "any": {}, "something": {}, "need": {}, "want": {}, "find": {}, "looking": {},
	"please": {}, "is": {}, "are": {}, "it": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"my": {}, "an": {}, "do": {}, "have": {}, "got": {}, "get": {}, "what": {}, "good": {},
}

type scoredProduct struct {
	product   clerk.Product
	relevance float64
	score     float64
}

// score is the keyword relevance of p plus its history bonus and rating.
func score(p clerk.Product, tokens []string, h History) (relevance, total float64) {
	relevance = relevanceOf(p, tokens)
	return relevance, relevance + historyBonus(p, h) + p.Rating
}

func rank(products []clerk.Product, query string, h History) []scoredProduct {
	tokens := queryTokens(query)
	scored := make([]scoredProduct, 0, len(products))
	for _, p := range products {
		rel, total := score(p, tokens, h)
		scored = append(scored, scoredProduct{product: p, relevance: rel, score: total})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	return scored
}

func queryTokens(query string) []string {
	var out []string
	for _, tok := range lexicon.Tokenize(query) {
		if _, stop := stopwords[tok]; !stop {
			out = append(out, tok)
		}
	}
	return out
}

func relevanceOf(p clerk.Product, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	hay := lexicon.Normalize(p.Name + " " + p.Description + " " + p.Category)
	types := lexicon.InferProductTypes(p)
	vibes := lexicon.InferVibes(p)

	var s float64
	for _, tok := range tokens {
		if strings.Contains(hay, tok) {
			s += tokenWeight
		}
		if matchesType(tok, types) {
			s += typeWeight
		}
		if matchesVibe(tok, vibes) {
			s += vibeWeight
		}
	}
	return s
}

func historyBonus(p clerk.Product, h History) float64 {
	var s float64
	if slices.ContainsFunc(h.ViewedCategories, func(c string) bool { return strings.EqualFold(c, p.Category) }) {
		s += viewedCategoryBonus
	}
	if slices.Contains(h.RecentlyViewed, p.Id) {
		s += recentlyViewedBonus
	}
	if slices.Contains(h.Added, p.Id) {
		s += addedBonus
	}
	return s
}

func matchesType(tok string, types []string) bool {
	canonical, ok := lexicon.CanonicalType(tok)
	for _, t := range types {
		if tok == t || (ok && canonical == t) {
			return true
		}
	}
	return false
}

func matchesVibe(tok string, vibes []string) bool {
	canonical, ok := lexicon.CanonicalVibe(tok)
	for _, v := range vibes {
		if tok == v || (ok && canonical == v) {
			return true
		}
	}
	return false
}
