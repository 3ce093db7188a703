package matcher

import (
	"context"
	"errors"
	"testing"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/semantic"
	"ClerkAI/app/services/clerk/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDelegate struct {
	res   *semantic.Result
	err   error
	calls int
}

func (s *stubDelegate) Match(context.Context, semantic.Request) (*semantic.Result, error) {
	s.calls++
	return s.res, s.err
}

func seed(t *testing.T) []clerk.Product {
	t.Helper()
	products, err := catalog.NewSeedMemory().GetProducts(context.Background())
	require.NoError(t, err)
	return products
}

func ids(products []clerk.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.Id)
	}
	return out
}

func TestKeywordRanksNameHitsFirst(t *testing.T) {
	got := New(nil).Keyword(seed(t), Query{Text: "leather loafer"})
	require.NotEmpty(t, got)
	assert.Equal(t, int64(5), got[0].Id)
	assert.LessOrEqual(t, len(got), DefaultLimit)
}

func TestKeywordHistoryBreaksTies(t *testing.T) {
	products := []clerk.Product{
		{Id: 1, Name: "Plain Cap", Category: "Accessories", Rating: 4},
		{Id: 2, Name: "Plain Hat", Category: "Accessories", Rating: 4},
		{Id: 3, Name: "Plain Belt", Category: "Accessories", Rating: 4},
	}
	got := New(nil).Keyword(products, Query{Text: "plain"})
	assert.Equal(t, []int64{1, 2, 3}, ids(got))

	got = New(nil).Keyword(products, Query{Text: "plain", History: History{RecentlyViewed: []int64{3}}})
	assert.Equal(t, []int64{3, 1, 2}, ids(got))

	got = New(nil).Keyword(products, Query{Text: "plain", History: History{Added: []int64{2}}, Limit: 1})
	assert.Equal(t, []int64{2}, ids(got))
}

func TestScoreWeights(t *testing.T) {
	p := clerk.Product{Id: 9, Name: "Leather Penny Loafer", Category: "Footwear", Rating: 4}
	tokens := queryTokens("leather loafer")
	// leather hit 2, loafer hit 2, loafer type 2.5
	rel, total := score(p, tokens, History{})
	assert.InDelta(t, 6.5, rel, 1e-9)
	assert.InDelta(t, 10.5, total, 1e-9)
	// plus viewed category 1.5, recently viewed 2, added 1
	h := History{ViewedCategories: []string{"footwear"}, RecentlyViewed: []int64{9}, Added: []int64{9}}
	_, total = score(p, tokens, h)
	assert.InDelta(t, 15, total, 1e-9)
}

func TestKeywordStrictDropsIrrelevant(t *testing.T) {
	got := New(nil).Keyword(seed(t), Query{Text: "show me something cheap", Strict: true})
	assert.Empty(t, got)
}

func TestFilterByIntent(t *testing.T) {
	products := seed(t)
	assert.Equal(t, []int64{5}, ids(FilterByIntent(products, "Footwear", []string{"loafers"}, nil)))
	assert.Equal(t, []int64{1, 2, 3, 5}, ids(FilterByIntent(products, "footwear", []string{"watch"}, nil)))
	assert.Empty(t, FilterByIntent(products, "Kitchen", nil, nil))
	for _, p := range FilterByIntent(products, "", []string{"dress"}, nil) {
		assert.Equal(t, "Clothing", p.Category)
	}
}

func TestSemanticResolve(t *testing.T) {
	products := seed(t)
	d := &stubDelegate{res: &semantic.Result{ProductIds: []int64{99, 5, 5, 4}}}
	got, err := New(d).Semantic(context.Background(), products, Query{Text: "office shoes", Category: "Footwear"})
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids(got))

	// nothing survives the category: top rated of the category instead
	d.res = &semantic.Result{ProductIds: []int64{4}, Category: "footwear"}
	got, err = New(d).Semantic(context.Background(), products, Query{Text: "shoes"})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 2, 1, 3}, ids(got))

	d.res = &semantic.Result{ProductIds: []int64{42}}
	_, err = New(d).Semantic(context.Background(), products, Query{Text: "?"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFindFallsBack(t *testing.T) {
	products := seed(t)
	d := &stubDelegate{err: errors.New("timeout")}
	got := New(d).Find(context.Background(), products, Query{Text: "show me footwear", Category: "Footwear"})
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Equal(t, "Footwear", p.Category)
	}
	assert.Equal(t, 1, d.calls)

	again := New(d).Find(context.Background(), products, Query{Text: "show me footwear", Category: "Footwear"})
	assert.Equal(t, ids(got), ids(again))
}

func TestSortProducts(t *testing.T) {
	products := seed(t)
	cheapest := Cheapest(products, 2)
	assert.Equal(t, []int64{12, 13}, ids(cheapest))
	desc := SortProducts(products, clerk.SortPriceDesc)
	assert.Equal(t, int64(6), desc[0].Id)
	assert.Equal(t, []int64{8, 5}, ids(TopRated(products, "", 2)))
}
