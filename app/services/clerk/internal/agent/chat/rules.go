package chat

import (
	"context"
	"fmt"
	"slices"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"
	"ClerkAI/app/services/clerk/internal/agent/matcher"
)

// rule is one deterministic branch. when is a cheap predicate; then may
// still decline by returning false, letting later rules run.
type rule struct {
	name string
	when func(t *turn) bool
	then func(ctx context.Context, t *turn) bool
}

const (
	ruleCheckout  = "checkout_confirmation"
	ruleAddToCart = "add_to_cart"
	ruleDiscount  = "discount_on_item"
	ruleColor     = "color_check"
	ruleMention   = "direct_mention"
	ruleIntent    = "category_intent"
)

// rules run in order; the first one that handles the turn ends it.
func (a *Agent) rules() []rule {
	return []rule{
		{
			name: ruleCheckout,
			when: func(t *turn) bool { return t.profile.AwaitingCheckoutConfirmation },
			then: a.handleCheckoutConfirmation,
		},
		{
			name: ruleAddToCart,
			when: func(t *turn) bool { return addToCartExp.MatchString(t.norm) && t.resolved.Product != nil },
			then: a.handleAddToCart,
		},
		{
			name: ruleDiscount,
			when: func(t *turn) bool {
				return discountExp.MatchString(t.norm) &&
					t.resolved.Product != nil &&
					t.resolved.Source != SourceExplicit &&
					(pronounExp.MatchString(t.norm) || !browseExp.MatchString(t.norm))
			},
			then: a.handleItemDiscount,
		},
		{
			name: ruleColor,
			when: func(t *turn) bool { return t.color != "" && t.resolved.Product != nil },
			then: a.handleColorCheck,
		},
		{
			name: ruleMention,
			when: func(t *turn) bool { return t.mention != nil },
			then: a.handleMention,
		},
		{
			name: ruleIntent,
			when: func(t *turn) bool { return t.signals.WantsProducts && t.signals.HasIntent() },
			then: a.handleIntent,
		},
	}
}

func (a *Agent) handleCheckoutConfirmation(_ context.Context, t *turn) bool {
	defer t.profile.DisarmCheckout()
	switch {
	case affirmativeExp.MatchString(t.norm):
		t.addAction(clerk.CheckoutAction())
		t.reply = checkoutReply
		return true
	case negativeExp.MatchString(t.norm):
		t.reply = notNowReply
		return true
	}
	return false
}

func (a *Agent) handleAddToCart(_ context.Context, t *turn) bool {
	a.addToCart(t, *t.resolved.Product, lexicon.ExtractQuantity(t.text))
	return true
}

func (a *Agent) addToCart(t *turn, p clerk.Product, qty int) {
	t.addAction(clerk.AddToCartAction(p.Id, qty))
	t.setCards(p)
	t.focus(p)
	t.profile.Added(p.Id)
	t.arm()
	t.reply = addedReply(p, qty)
}

func (a *Agent) handleItemDiscount(_ context.Context, t *turn) bool {
	p := *t.resolved.Product
	basis := t.req.Context.CartTotal
	if !slices.Contains(t.req.Context.CartProductIds, p.Id) {
		basis += p.Price
	}
	c := a.coupons.Build(t.text, basis)
	t.addAction(clerk.CouponAction(c.Code, c.DiscountAmount, fmt.Sprintf("%s on %s", c.Reason, p.Name)))
	t.setCards(p)
	t.reply = couponReply(c, &p)
	return true
}

func (a *Agent) handleColorCheck(_ context.Context, t *turn) bool {
	p := *t.resolved.Product
	t.setCards(p)
	t.reply = colorReply(p, t.color, colorAvailable(p, t.color))
	return true
}

func (a *Agent) handleMention(_ context.Context, t *turn) bool {
	p := t.mention.product
	if purchaseExp.MatchString(t.norm) {
		a.addToCart(t, p, lexicon.ExtractQuantity(t.text))
		return true
	}
	t.setCards(p)
	t.reply = mentionReply(p, t.color)
	return true
}

func (a *Agent) handleIntent(_ context.Context, t *turn) bool {
	found := a.matcher.Keyword(t.products, matcher.Query{
		Text:         t.text,
		Category:     t.signals.Category,
		ProductTypes: t.signals.ProductTypes,
		Vibes:        t.signals.Vibes,
		Limit:        a.searchLimit,
		History:      t.history(),
	})
	if len(found) == 0 {
		return false
	}
	t.setCards(found...)
	t.addAction(clerk.SearchAction(searchQuery(t), t.signals.Category))
	t.profile.ViewCategory(t.signals.Category)
	t.lead = leadText(t.signals.Label())
	return true
}

// searchQuery is the single search term echoed back to the storefront: the
// first product type, else the first vibe, else what the shopper typed.
func searchQuery(t *turn) string {
	switch {
	case len(t.signals.ProductTypes) > 0:
		return t.signals.ProductTypes[0]
	case len(t.signals.Vibes) > 0:
		return t.signals.Vibes[0]
	}
	return t.text
}
