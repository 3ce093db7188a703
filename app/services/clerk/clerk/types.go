package clerk

import (
	"fmt"
	"math"
)

// Product is a read-only catalog entry.
type Product struct {
	Id          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Category    string   `json:"category" yaml:"category"`
	Colors      []string `json:"colors" yaml:"colors"`
	Stock       int64    `json:"stock" yaml:"stock"`
	Image       string   `json:"image" yaml:"image"`
}

// ProductCard is the projection rendered by the storefront.
type ProductCard struct {
	Id           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Rating       float64  `json:"rating"`
	Category     string   `json:"category"`
	Colors       []string `json:"colors"`
	Stock        int64    `json:"stock"`
	Image        string   `json:"image"`
	ReviewsCount int64    `json:"reviewsCount"`
	Url          string   `json:"url"`
}

const minReviewsCount = 24

func NewProductCard(p Product) ProductCard {
	reviews := int64(math.Floor(p.Rating * 30))
	if reviews < minReviewsCount {
		reviews = minReviewsCount
	}
	colors := make([]string, len(p.Colors))
	copy(colors, p.Colors)
	return ProductCard{
		Id:           p.Id,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Rating:       p.Rating,
		Category:     p.Category,
		Colors:       colors,
		Stock:        p.Stock,
		Image:        p.Image,
		ReviewsCount: reviews,
		Url:          fmt.Sprintf("/products/%d", p.Id),
	}
}

const (
	ActionSearchProducts   = "search_products"
	ActionSortProducts     = "sort_products"
	ActionAddToCart        = "add_to_cart"
	ActionApplyCoupon      = "apply_coupon"
	ActionNavigateCheckout = "navigate_checkout"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortNone      = "none"
)

func ValidSort(sortBy string) bool {
	switch sortBy {
	case SortPriceAsc, SortPriceDesc, SortRating:
		return true
	}
	return false
}

// Action is a tagged UI instruction; Type selects which fields are meaningful.
type Action struct {
	Type           string `json:"type"`
	Query          string `json:"query,omitempty"`
	Category       string `json:"category,omitempty"`
	SortBy         string `json:"sortBy,omitempty"`
	ProductId      int64  `json:"productId,omitempty"`
	Quantity       int    `json:"quantity,omitempty"`
	Code           string `json:"code,omitempty"`
	DiscountAmount *int   `json:"discountAmount,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

func SearchAction(query, category string) Action {
	return Action{Type: ActionSearchProducts, Query: query, Category: category}
}

func SortAction(sortBy string) Action {
	return Action{Type: ActionSortProducts, SortBy: sortBy}
}

func AddToCartAction(productId int64, quantity int) Action {
	return Action{Type: ActionAddToCart, ProductId: productId, Quantity: quantity}
}

// CouponAction keeps discountAmount on the wire even when it is zero.
func CouponAction(code string, discount int, reason string) Action {
	return Action{Type: ActionApplyCoupon, Code: code, DiscountAmount: &discount, Reason: reason}
}

func CheckoutAction() Action {
	return Action{Type: ActionNavigateCheckout}
}

// ChatContext carries what the storefront UI knows about the shopper.
type ChatContext struct {
	CartProductIds           []int64
	CartTotal                float64
	ActiveCategory           string
	PreferredSort            string
	RecentlyViewedProductIds []int64
	LastSuggestedProductId   *int64
	LastSuggestedProductIds  []int64
}

type ChatReq struct {
	SessionId string
	Message   string
	Context   ChatContext
}

type ChatData struct {
	ProductsCount int  `json:"productsCount"`
	Personalized  bool `json:"personalized"`
}

type ChatResp struct {
	Code     int           `json:"code"`
	Message  string        `json:"message"`
	Content  string        `json:"content"`
	Action   *Action       `json:"action"`
	Actions  []Action      `json:"actions"`
	Products []ProductCard `json:"products"`
	Data     ChatData      `json:"data"`
	Role     string        `json:"role"`
}

const RoleAssistant = "assistant"
