package tools

import "github.com/cloudwego/eino/schema"

const (
	SearchProducts = "search_products"
	CheckInventory = "check_inventory"
	AddToCart      = "add_to_cart"
	SortProducts   = "sort_products"
	ApplyCoupon    = "apply_coupon"
)

func BuildToolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: SearchProducts,
			Desc: "Search the catalog for products matching a free-text query, optionally inside one category",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     schema.String,
					Desc:     "What the shopper is looking for, in their words",
					Required: true,
				},
				"category": {
					Type: schema.String,
					Desc: "Catalog category such as Footwear, Clothing or Accessories",
				},
			}),
		},
		{
			Name: CheckInventory,
			Desc: "Check stock and available colors of one product, by id or by name",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"productId": {
					Type: schema.Integer,
					Desc: "Catalog id of the product",
				},
				"productName": {
					Type: schema.String,
					Desc: "Product name when the id is unknown",
				},
				"color": {
					Type: schema.String,
					Desc: "Color the shopper asked about",
				},
			}),
		},
		{
			Name: AddToCart,
			Desc: "Add a product to the shopper's cart",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"productId": {
					Type: schema.Integer,
					Desc: "Catalog id of the product",
				},
				"productName": {
					Type: schema.String,
					Desc: "Product name when the id is unknown",
				},
				"quantity": {
					Type: schema.Integer,
					Desc: "How many to add, 1 to 10, default 1",
				},
			}),
		},
		{
			Name: SortProducts,
			Desc: "Re-sort the product listing the shopper is looking at",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"sortBy": {
					Type:     schema.String,
					Desc:     "Sort order",
					Enum:     []string{"price_asc", "price_desc", "rating"},
					Required: true,
				},
			}),
		},
		{
			Name: ApplyCoupon,
			Desc: "Negotiate a discount coupon for the shopper's cart",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"reason": {
					Type: schema.String,
					Desc: "Why the shopper asked for a discount, quoted from their message",
				},
			}),
		},
	}
}
