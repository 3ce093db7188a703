package profile

import (
	"slices"
	"strings"

	"ClerkAI/app/services/clerk/clerk"
)

const (
	MaxRecentlyViewed   = 24
	MaxViewedCategories = 50
	MaxAddedProducts    = 50
)

// Profile is the per-session shopper state the assistant reads and mutates
// on every turn.
type Profile struct {
	ViewedCategories             []string `json:"viewedCategories"`
	AddedProductIds              []int64  `json:"addedProductIds"`
	RecentlyViewedProductIds     []int64  `json:"recentlyViewedProductIds"`
	PreferredSort                string   `json:"preferredSort"`
	LastMentionedProductId       *int64   `json:"lastMentionedProductId,omitempty"`
	LastShownProductIds          []int64  `json:"lastShownProductIds"`
	LastQuery                    string   `json:"lastQuery"`
	AwaitingCheckoutConfirmation bool     `json:"awaitingCheckoutConfirmation"`
	AwaitingSince                int64    `json:"awaitingSince,omitempty"`
	UpdatedAt                    int64    `json:"updatedAt"`
}

func New() *Profile {
	return &Profile{PreferredSort: clerk.SortNone}
}

// Clone returns a deep copy so a turn can mutate state without touching the
// stored value until it commits.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return New()
	}
	c := *p
	c.ViewedCategories = slices.Clone(p.ViewedCategories)
	c.AddedProductIds = slices.Clone(p.AddedProductIds)
	c.RecentlyViewedProductIds = slices.Clone(p.RecentlyViewedProductIds)
	c.LastShownProductIds = slices.Clone(p.LastShownProductIds)
	if p.LastMentionedProductId != nil {
		id := *p.LastMentionedProductId
		c.LastMentionedProductId = &id
	}
	return &c
}

// View records a product view; re-viewing moves the id to the newest slot.
func (p *Profile) View(id int64) {
	if id <= 0 {
		return
	}
	p.RecentlyViewedProductIds = slices.DeleteFunc(p.RecentlyViewedProductIds, func(v int64) bool { return v == id })
	p.RecentlyViewedProductIds = append(p.RecentlyViewedProductIds, id)
	if n := len(p.RecentlyViewedProductIds); n > MaxRecentlyViewed {
		p.RecentlyViewedProductIds = p.RecentlyViewedProductIds[n-MaxRecentlyViewed:]
	}
}

// ViewCategory appends a category unless it is already the most recent one.
func (p *Profile) ViewCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return
	}
	if n := len(p.ViewedCategories); n > 0 && strings.EqualFold(p.ViewedCategories[n-1], category) {
		return
	}
	p.ViewedCategories = append(p.ViewedCategories, category)
	if n := len(p.ViewedCategories); n > MaxViewedCategories {
		p.ViewedCategories = p.ViewedCategories[n-MaxViewedCategories:]
	}
}

func (p *Profile) LastViewedCategory() string {
	if n := len(p.ViewedCategories); n > 0 {
		return p.ViewedCategories[n-1]
	}
	return ""
}

func (p *Profile) Added(id int64) {
	p.AddedProductIds = append(p.AddedProductIds, id)
	if n := len(p.AddedProductIds); n > MaxAddedProducts {
		p.AddedProductIds = p.AddedProductIds[n-MaxAddedProducts:]
	}
}

func (p *Profile) Anchor(id int64) {
	p.LastMentionedProductId = &id
}

func (p *Profile) ClearAnchor() {
	p.LastMentionedProductId = nil
}

// Shown records the ids rendered as cards this turn.
func (p *Profile) Shown(ids []int64) {
	p.LastShownProductIds = slices.Clone(ids)
}

func (p *Profile) ArmCheckout(at int64) {
	p.AwaitingCheckoutConfirmation = true
	p.AwaitingSince = at
}

func (p *Profile) DisarmCheckout() {
	p.AwaitingCheckoutConfirmation = false
	p.AwaitingSince = 0
}
