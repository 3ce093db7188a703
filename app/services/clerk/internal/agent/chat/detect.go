package chat

import "regexp"

// All patterns run against lexicon-normalized text.
var (
	affirmativeExp = regexp.MustCompile(`\b(yes|yeah|yep|yup|sure|ok|okay|proceed|go ahead|lets go|let s go|checkout|check out|sounds good|do it|absolutely)\b`)
	negativeExp    = regexp.MustCompile(`\b(no|nope|nah|not yet|not now|later|cancel|wait|keep shopping|continue shopping)\b`)

	addToCartExp = regexp.MustCompile(`\b(add|put|throw)\b.*\b(cart|basket)\b|\badd (this|that|it|them|these|one)\b|\b(buy|purchase) (this|that|it|one)\b|\bi ll take (it|this|that|one)\b`)
	purchaseExp  = regexp.MustCompile(`\b(buy|purchase|order|add|cart|checkout|take it|ll take)\b`)
	buyExp       = regexp.MustCompile(`\b(buy|purchase|checkout|check out|order)\b`)

	discountExp = regexp.MustCompile(`\b(discount|discounts|coupon|coupons|deal|deals|promo|code|cheaper|negotiate|lower price|price drop|sale)\b`)
	pronounExp  = regexp.MustCompile(`\b(this|that|it|these|those|them)\b`)
	browseExp   = regexp.MustCompile(`\b(show|find|search|browse|looking|recommend|suggest|see)\b`)
	budgetExp   = regexp.MustCompile(`\b(cheap|cheaper|cheapest|budget|affordable|inexpensive|low cost|lowest price|under)\b`)
)
