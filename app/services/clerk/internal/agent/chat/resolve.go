package chat

import (
	"strings"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"
)

const (
	fullNameScore    = 100
	nameTokenScore   = 8
	categoryScore    = 3
	descriptionScore = 1
	mentionThreshold = 8
	minMentionToken  = 4
)

type Source string

const (
	SourceExplicit Source = "explicit"
	SourceProfile  Source = "profile"
	SourceContext  Source = "context"
	SourceShown    Source = "shown"
	SourceNone     Source = "none"
)

// Resolution is the product a message refers to and where it came from.
type Resolution struct {
	Source  Source
	Product *clerk.Product
}

type mention struct {
	product clerk.Product
	score   int
}

// findMention returns the best directly named product, if any product
// clears the threshold. Ties keep catalog order.
func findMention(t *turn) *mention {
	tokens := make(map[string]struct{}, len(t.tokens))
	for _, tok := range t.tokens {
		tokens[tok] = struct{}{}
	}
	has := func(tok string) bool {
		if _, ok := tokens[tok]; ok {
			return true
		}
		_, ok := tokens[tok+"s"]
		return ok
	}
	categoryNouns := t.signals.Category != "" || len(t.signals.ProductTypes) > 0
	padded := " " + t.norm + " "

	var best *mention
	for _, p := range t.products {
		score := 0
		name := lexicon.Normalize(p.Name)
		if name != "" && strings.Contains(padded, " "+name+" ") {
			score += fullNameScore
		}
		for _, tok := range uniqueFields(name) {
			if len(tok) >= minMentionToken && has(tok) {
				score += nameTokenScore
			}
		}
		if categoryNouns {
			if t.signals.Category != "" && strings.EqualFold(p.Category, t.signals.Category) {
				score += categoryScore
			}
			for _, tok := range uniqueFields(lexicon.Normalize(p.Description)) {
				if len(tok) >= minMentionToken && has(tok) {
					score += descriptionScore
				}
			}
		}
		if score >= mentionThreshold && (best == nil || score > best.score) {
			best = &mention{product: p, score: score}
		}
	}
	return best
}

// resolveProduct picks the product a message refers to: an explicit
// mention, then the profile anchor, then what the storefront last
// suggested, then a single card from the previous turn.
func resolveProduct(t *turn) Resolution {
	if t.mention != nil {
		p := t.mention.product
		return Resolution{Source: SourceExplicit, Product: &p}
	}
	if id := t.profile.LastMentionedProductId; id != nil {
		if p, ok := t.find(*id); ok {
			return Resolution{Source: SourceProfile, Product: &p}
		}
		t.profile.ClearAnchor()
	}
	if id := t.req.Context.LastSuggestedProductId; id != nil {
		if p, ok := t.find(*id); ok {
			return Resolution{Source: SourceContext, Product: &p}
		}
	}
	for _, shown := range [][]int64{t.profile.LastShownProductIds, t.req.Context.LastSuggestedProductIds} {
		if len(shown) == 1 {
			if p, ok := t.find(shown[0]); ok {
				return Resolution{Source: SourceShown, Product: &p}
			}
		}
	}
	return Resolution{Source: SourceNone}
}

func uniqueFields(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, f := range strings.Fields(s) {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
