package tools

import (
	"testing"

	"ClerkAI/app/services/clerk/clerk"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(name, args string) schema.ToolCall {
	return schema.ToolCall{ID: "c1", Function: schema.FunctionCall{Name: name, Arguments: args}}
}

func TestParseTypedArguments(t *testing.T) {
	c := Parse(call("search_products", `{"query":"loafers","category":"Footwear"}`))
	require.NoError(t, c.Malformed)
	require.NotNil(t, c.Search)
	assert.Equal(t, SearchArgs{Query: "loafers", Category: "Footwear"}, *c.Search)
	assert.True(t, c.Known())

	c = Parse(call("add_to_cart", `{"productId":5,"quantity":2}`))
	require.NotNil(t, c.Cart)
	assert.Equal(t, int64(5), c.Cart.ProductId)
	assert.Equal(t, 2, c.Cart.Quantity)

	c = Parse(call("apply_coupon", ""))
	require.NotNil(t, c.Coupon)
	assert.NoError(t, c.Malformed)
}

func TestParseMalformedKeepsZeroArguments(t *testing.T) {
	c := Parse(call("check_inventory", `{"productId": "five"`))
	assert.Error(t, c.Malformed)
	require.NotNil(t, c.Inventory)
	assert.Equal(t, InventoryArgs{}, *c.Inventory)

	c = Parse(call("sort_products", `{"sortBy": 3}`))
	assert.Error(t, c.Malformed)
	assert.Equal(t, SortArgs{}, *c.Sort)
}

func TestParseUnknownTool(t *testing.T) {
	c := Parse(call("delete_everything", `{}`))
	assert.False(t, c.Known())
	assert.Equal(t, "delete_everything", c.Name)
}

func TestBuildToolInfos(t *testing.T) {
	infos := BuildToolInfos()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{SearchProducts, CheckInventory, AddToCart, SortProducts, ApplyCoupon}, names)
}

func TestFindByName(t *testing.T) {
	products := []clerk.Product{
		{Id: 1, Name: "Classic White Sneaker"},
		{Id: 5, Name: "Leather Penny Loafer"},
		{Id: 13, Name: "Silk Knit Tie"},
	}
	p, ok := FindByName(products, "leather penny loafer")
	require.True(t, ok)
	assert.Equal(t, int64(5), p.Id)

	p, ok = FindByName(products, "the Penny Loafer")
	require.True(t, ok)
	assert.Equal(t, int64(5), p.Id)

	p, ok = FindByName(products, "slk tie")
	require.True(t, ok)
	assert.Equal(t, int64(13), p.Id)

	_, ok = FindByName(products, "zzzz")
	assert.False(t, ok)
}

func TestFindByNameIgnoresShortFragments(t *testing.T) {
	products := []clerk.Product{
		{Id: 1, Name: "Classic White Sneaker"},
		{Id: 13, Name: "Silk Knit Tie"},
		{Id: 20, Name: "Go"},
	}
	for _, name := range []string{"a", "k", "ie", "it"} {
		_, ok := FindByName(products, name)
		assert.False(t, ok, name)
	}

	p, ok := FindByName(products, "go")
	require.True(t, ok)
	assert.Equal(t, int64(20), p.Id)

	p, ok = FindByName(products, "tie")
	require.True(t, ok)
	assert.Equal(t, int64(13), p.Id)

	// a short product name is not found inside a longer request
	_, ok = FindByName(products, "gold hoops")
	assert.False(t, ok)
}
