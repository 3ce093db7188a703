package matcher

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"
	"ClerkAI/app/services/clerk/internal/agent/semantic"

	"github.com/zeromicro/go-zero/core/logx"
)

const DefaultLimit = 4

var (
	ErrNoDelegate = errors.New("semantic delegate unavailable")
	ErrNoMatch    = errors.New("semantic delegate returned no usable products")
)

// Delegate is the model-backed matcher.
type Delegate interface {
	Match(ctx context.Context, in semantic.Request) (*semantic.Result, error)
}

// History is the slice of the shopper profile that biases ranking.
type History struct {
	ViewedCategories []string
	RecentlyViewed   []int64
	Added            []int64
}

type Query struct {
	Text         string
	Category     string
	ProductTypes []string
	Vibes        []string
	Limit        int
	History      History
	// Strict drops keyword-ranked products with no textual relevance when
	// no intent narrowed the candidates.
	Strict bool
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

func (q Query) hasIntent() bool {
	return q.Category != "" || len(q.ProductTypes) > 0 || len(q.Vibes) > 0
}

type Matcher struct {
	delegate Delegate
}

// New builds a matcher; a nil delegate leaves only the keyword path.
func New(delegate Delegate) *Matcher {
	return &Matcher{delegate: delegate}
}

// Find tries the delegate first and falls back to intent filtering plus
// keyword ranking.
func (m *Matcher) Find(ctx context.Context, products []clerk.Product, q Query) []clerk.Product {
	found, err := m.Semantic(ctx, products, q)
	if err == nil {
		return found
	}
	if !errors.Is(err, ErrNoDelegate) {
		logx.WithContext(ctx).Infof("semantic match fell back to keywords: %v", err)
	}
	return m.Keyword(products, q)
}

// Semantic runs only the delegated path.
func (m *Matcher) Semantic(ctx context.Context, products []clerk.Product, q Query) ([]clerk.Product, error) {
	if m.delegate == nil {
		return nil, ErrNoDelegate
	}
	if len(products) == 0 {
		return nil, ErrNoMatch
	}
	res, err := m.delegate.Match(ctx, semantic.Request{
		Query:        q.Text,
		CategoryHint: q.Category,
		TypeHints:    q.ProductTypes,
		VibeHints:    q.Vibes,
		Products:     products,
		Limit:        q.limit(),
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNoMatch
	}
	found := Resolve(products, res, q)
	if len(found) == 0 {
		return nil, ErrNoMatch
	}
	return found, nil
}

// Resolve turns the delegate's ids into catalog products, applying the
// category and intent hints.
func Resolve(products []clerk.Product, res *semantic.Result, q Query) []clerk.Product {
	seen := make(map[int64]struct{}, len(res.ProductIds))
	var resolved []clerk.Product
	for _, id := range res.ProductIds {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		for _, p := range products {
			if p.Id == id {
				resolved = append(resolved, p)
				break
			}
		}
	}

	category := q.Category
	if category == "" && res.Category != "" {
		for _, c := range categoriesOf(products) {
			if strings.EqualFold(c, res.Category) {
				category = c
				break
			}
		}
	}
	if category != "" {
		resolved = filter(resolved, func(p clerk.Product) bool { return strings.EqualFold(p.Category, category) })
	}
	resolved = narrow(resolved, q.ProductTypes, q.Vibes)

	if len(resolved) == 0 && category != "" {
		return TopRated(products, category, q.limit())
	}
	return head(resolved, q.limit())
}

// Keyword is the deterministic path: intent filtering followed by keyword
// ranking.
func (m *Matcher) Keyword(products []clerk.Product, q Query) []clerk.Product {
	candidates := products
	if q.hasIntent() {
		candidates = FilterByIntent(products, q.Category, q.ProductTypes, q.Vibes)
	}
	scored := rank(candidates, q.Text, q.History)
	if q.Strict && !q.hasIntent() {
		scored = slices.DeleteFunc(scored, func(s scoredProduct) bool { return s.relevance <= 0 })
	}
	out := make([]clerk.Product, 0, min(len(scored), q.limit()))
	for _, s := range scored {
		if len(out) == q.limit() {
			break
		}
		out = append(out, s.product)
	}
	return out
}

// FilterByIntent narrows strictly by category, then by type, then by vibe.
// Type and vibe narrowing only apply when they leave something.
func FilterByIntent(products []clerk.Product, category string, types, vibes []string) []clerk.Product {
	set := products
	if category != "" {
		set = filter(products, func(p clerk.Product) bool { return strings.EqualFold(p.Category, category) })
	}
	return narrow(set, types, vibes)
}

func narrow(set []clerk.Product, types, vibes []string) []clerk.Product {
	if len(types) > 0 {
		if n := filter(set, func(p clerk.Product) bool { return overlaps(lexicon.InferProductTypes(p), types) }); len(n) > 0 {
			set = n
		}
	}
	if len(vibes) > 0 {
		if n := filter(set, func(p clerk.Product) bool { return overlaps(lexicon.InferVibes(p), vibes) }); len(n) > 0 {
			set = n
		}
	}
	return set
}

// TopRated returns the best rated products of a category (all categories
// when empty); ties keep catalog order.
func TopRated(products []clerk.Product, category string, limit int) []clerk.Product {
	set := products
	if category != "" {
		set = filter(products, func(p clerk.Product) bool { return strings.EqualFold(p.Category, category) })
	}
	return head(SortProducts(set, clerk.SortRating), limit)
}

// SortProducts returns a sorted copy; unknown orders keep catalog order.
func SortProducts(products []clerk.Product, sortBy string) []clerk.Product {
	out := slices.Clone(products)
	switch sortBy {
	case clerk.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case clerk.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case clerk.SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

func Cheapest(products []clerk.Product, limit int) []clerk.Product {
	return head(SortProducts(products, clerk.SortPriceAsc), limit)
}

func filter(products []clerk.Product, keep func(clerk.Product) bool) []clerk.Product {
	var out []clerk.Product
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func head(products []clerk.Product, limit int) []clerk.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(products) > limit {
		return products[:limit]
	}
	return products
}

func overlaps(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func categoriesOf(products []clerk.Product) []string {
	var out []string
	for _, p := range products {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}
