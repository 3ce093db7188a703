package chat

import (
	"context"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/matcher"
)

const (
	branchSafetySearch   = "safety_search"
	branchSafetyBudget   = "safety_budget"
	branchSafetyCoupon   = "safety_coupon"
	branchSafetyCheckout = "safety_checkout"
	backfillLimit        = 3
)

// safetyNet runs only when the tool pass emitted nothing. Each step is
// tried in order until one produces an action.
func (a *Agent) safetyNet(ctx context.Context, t *turn) {
	if len(t.actions) > 0 {
		return
	}

	if t.signals.WantsProducts {
		found := a.matcher.Find(ctx, t.products, matcher.Query{
			Text:         t.text,
			Category:     t.signals.Category,
			ProductTypes: t.signals.ProductTypes,
			Vibes:        t.signals.Vibes,
			Limit:        a.searchLimit,
			History:      t.history(),
			Strict:       true,
		})
		if len(found) > 0 {
			t.branch = branchSafetySearch
			t.setCards(found...)
			t.addAction(clerk.SearchAction(searchQuery(t), t.signals.Category))
			t.profile.ViewCategory(t.signals.Category)
			t.lead = leadText(t.signals.Label())
			return
		}
	}

	if budgetExp.MatchString(t.norm) {
		scope := t.products
		if t.signals.Category != "" {
			if in := matcher.FilterByIntent(t.products, t.signals.Category, nil, nil); len(in) > 0 {
				scope = in
			}
		}
		t.branch = branchSafetyBudget
		t.profile.PreferredSort = clerk.SortPriceAsc
		t.addAction(clerk.SortAction(clerk.SortPriceAsc))
		t.setCards(matcher.Cheapest(scope, a.searchLimit)...)
		t.reply = sortReply(clerk.SortPriceAsc)
		return
	}

	if discountExp.MatchString(t.norm) {
		c := a.coupons.Build(t.text, t.req.Context.CartTotal)
		t.branch = branchSafetyCoupon
		t.addAction(clerk.CouponAction(c.Code, c.DiscountAmount, c.Reason))
		t.reply = couponReply(c, nil)
		return
	}

	if buyExp.MatchString(t.norm) && t.resolved.Source == SourceProfile && t.resolved.Product != nil {
		t.branch = branchSafetyCheckout
		a.addToCart(t, *t.resolved.Product, 1)
	}
}

// backfill shows a few picks from the last browsed category when the turn
// would otherwise render no cards.
func (a *Agent) backfill(t *turn) {
	if len(t.cards) > 0 || t.reply != "" {
		return
	}
	category := t.profile.LastViewedCategory()
	if category == "" {
		return
	}
	found := a.matcher.Keyword(t.products, matcher.Query{
		Text:     category,
		Category: category,
		Limit:    backfillLimit,
		History:  t.history(),
	})
	if len(found) == 0 {
		return
	}
	t.setCards(found...)
	t.personalized = true
	t.lead = personalizedLead(category)
}

// guardIntent replaces cards that ignore the detected intent with the
// intent-filtered ranking.
func (a *Agent) guardIntent(t *turn) {
	if !t.signals.HasIntent() || len(t.cards) == 0 || t.hasAction(clerk.ActionAddToCart) {
		return
	}
	matching := matcher.FilterByIntent(t.products, t.signals.Category, t.signals.ProductTypes, t.signals.Vibes)
	if len(matching) == 0 {
		return
	}
	for _, c := range t.cards {
		for _, m := range matching {
			if c.Id == m.Id {
				return
			}
		}
	}

	a.log.Infof("cards ignored the %q intent, replacing them", t.signals.Label())
	ranked := a.matcher.Keyword(matching, matcher.Query{
		Text:         t.text,
		ProductTypes: t.signals.ProductTypes,
		Vibes:        t.signals.Vibes,
		Limit:        a.searchLimit,
		History:      t.history(),
	})
	t.setCards(ranked...)
	t.personalized = false
	t.lead = leadText(t.signals.Label())

	search := clerk.SearchAction(searchQuery(t), t.signals.Category)
	for i := range t.actions {
		if t.actions[i].Type == clerk.ActionSearchProducts {
			t.actions[i] = search
			return
		}
	}
	t.addAction(search)
}
