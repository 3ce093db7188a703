package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
)

type SearchArgs struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

type InventoryArgs struct {
	ProductId   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Color       string `json:"color"`
}

type CartArgs struct {
	ProductId   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type SortArgs struct {
	SortBy string `json:"sortBy"`
}

type CouponArgs struct {
	Reason string `json:"reason"`
}

// Call is one parsed tool invocation. Exactly one of the argument pointers
// is set for a known tool; Malformed is non-nil when the raw arguments did
// not decode, in which case the argument value is the zero value.
type Call struct {
	Id        string
	Name      string
	Raw       string
	Malformed error

	Search    *SearchArgs
	Inventory *InventoryArgs
	Cart      *CartArgs
	Sort      *SortArgs
	Coupon    *CouponArgs
}

// Known reports whether the call names one of the offered tools.
func (c Call) Known() bool {
	return c.Search != nil || c.Inventory != nil || c.Cart != nil || c.Sort != nil || c.Coupon != nil
}

// Parse decodes a model tool call into typed arguments.
func Parse(tc schema.ToolCall) Call {
	c := Call{
		Id:   tc.ID,
		Name: strings.TrimSpace(tc.Function.Name),
		Raw:  strings.TrimSpace(tc.Function.Arguments),
	}
	switch strings.ToLower(c.Name) {
	case SearchProducts:
		c.Search = &SearchArgs{}
		c.Malformed = decode(c.Raw, c.Search)
	case CheckInventory:
		c.Inventory = &InventoryArgs{}
		c.Malformed = decode(c.Raw, c.Inventory)
	case AddToCart:
		c.Cart = &CartArgs{}
		c.Malformed = decode(c.Raw, c.Cart)
	case SortProducts:
		c.Sort = &SortArgs{}
		c.Malformed = decode(c.Raw, c.Sort)
	case ApplyCoupon:
		c.Coupon = &CouponArgs{}
		c.Malformed = decode(c.Raw, c.Coupon)
	}
	return c
}

func decode[T any](raw string, into *T) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		var zero T
		*into = zero
		return fmt.Errorf("malformed arguments: %w", err)
	}
	return nil
}
