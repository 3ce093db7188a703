// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type ChatContext struct {
	CartProductIds           []int64 `json:"cartProductIds,optional"`
	CartTotal                float64 `json:"cartTotal,optional"`
	ActiveCategory           string  `json:"activeCategory,optional"`
	PreferredSort            string  `json:"preferredSort,optional"`
	RecentlyViewedProductIds []int64 `json:"recentlyViewedProductIds,optional"`
	LastSuggestedProductId   *int64  `json:"lastSuggestedProductId,optional"`
	LastSuggestedProductIds  []int64 `json:"lastSuggestedProductIds,optional"`
}

type ChatRequest struct {
	Message string      `json:"message"`
	Context ChatContext `json:"context,optional"`
}
