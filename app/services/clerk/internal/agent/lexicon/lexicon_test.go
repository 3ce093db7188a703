package lexicon

import (
	"testing"

	"ClerkAI/app/services/clerk/clerk"

	"github.com/stretchr/testify/assert"
)

var catalogCategories = []string{"Footwear", "Clothing", "Accessories"}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "cafe creme shoes", Normalize("  Café   Crème -- SHOES!! "))
	assert.Equal(t, "let s go", Normalize("Let's go"))
	assert.Equal(t, "", Normalize("?!"))
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	assert.Equal(t, []string{"need", "tie", "3x"}, Tokenize("I need a tie, 3x"))
}

func TestExtractCategorySynonyms(t *testing.T) {
	for _, msg := range []string{"any sneakers?", "fotwear please", "show me shoez"} {
		s := Extract(msg, catalogCategories)
		assert.Equal(t, "Footwear", s.Category, msg)
		assert.True(t, s.WantsProducts, msg)
	}
}

func TestExtractCategoryRequiresCatalogCategory(t *testing.T) {
	s := Extract("show me sneakers", []string{"Clothing"})
	assert.Empty(t, s.Category)
	assert.Equal(t, []string{"shoes"}, s.ProductTypes)
}

func TestExtractReturnsCatalogSpelling(t *testing.T) {
	s := Extract("cheap watches", []string{"accessories"})
	assert.Equal(t, "accessories", s.Category)
}

func TestExtractTypesAndVibes(t *testing.T) {
	s := Extract("something smart casual with loafers for a summer wedding", catalogCategories)
	assert.Equal(t, "Footwear", s.Category)
	assert.Equal(t, []string{"loafers"}, s.ProductTypes)
	assert.Equal(t, []string{"casual", "summer", "smart-casual", "occasion"}, s.Vibes)
	assert.Equal(t, "Footwear", s.Label())
}

func TestExtractWantsProductsFromVerbOnly(t *testing.T) {
	s := Extract("can you recommend something", catalogCategories)
	assert.True(t, s.WantsProducts)
	assert.False(t, s.HasIntent())

	s = Extract("hello there", catalogCategories)
	assert.False(t, s.WantsProducts)
}

func TestExtractColor(t *testing.T) {
	assert.Equal(t, "black", ExtractColor("Does it come in BLACK?"))
	assert.Equal(t, "navy", ExtractColor("navy blue please"))
	assert.Empty(t, ExtractColor("I'm interested in this"))
	assert.Empty(t, ExtractColor("hello"))
}

func TestColorMatches(t *testing.T) {
	cases := []struct {
		product, requested string
		want               bool
	}{
		{"Navy Blue", "navy", true},
		{"navy", "Navy Blue", true},
		{"Black", "black", true},
		{"Brown", "black", false},
		{"", "black", false},
		{"Black", "", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ColorMatches(c.product, c.requested), "%q vs %q", c.product, c.requested)
	}
}

func TestExtractQuantity(t *testing.T) {
	assert.Equal(t, 3, ExtractQuantity("add 3x to cart"))
	assert.Equal(t, 1, ExtractQuantity("add to cart"))
	assert.Equal(t, 10, ExtractQuantity("add 99 items"))
	assert.Equal(t, 2, ExtractQuantity("I'll take 2 pieces"))
	assert.Equal(t, 1, ExtractQuantity("add 0 of these"))
}

func TestInferProductTypes(t *testing.T) {
	loafer := clerk.Product{Name: "Leather Penny Loafer", Description: "Italian leather", Category: "Footwear"}
	assert.Equal(t, []string{"loafers"}, InferProductTypes(loafer))

	plain := clerk.Product{Name: "Runner", Description: "Light", Category: "Footwear"}
	assert.Equal(t, []string{"shoes"}, InferProductTypes(plain))

	other := clerk.Product{Name: "Mug", Description: "Ceramic", Category: "Kitchen"}
	assert.Equal(t, []string{"kitchen"}, InferProductTypes(other))
}

func TestInferVibes(t *testing.T) {
	loafer := clerk.Product{Name: "Leather Penny Loafer", Description: "Italian leather", Category: "Footwear"}
	assert.Equal(t, []string{"luxury", "smart-casual"}, InferVibes(loafer))

	plain := clerk.Product{Name: "Scarf", Description: "Wool", Category: "Accessories"}
	assert.Equal(t, []string{"minimal"}, InferVibes(plain))
}
