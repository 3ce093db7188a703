package coupon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zeromicro/go-zero/core/stringx"
)

const (
	PrefixNoDeal   = "NODEAL"
	PrefixBirthday = "BDAY"
	PrefixKind     = "KIND"
	PrefixSave     = "SAVE"

	birthdayDiscount = 20
	kindDiscount     = 7
	defaultDiscount  = 5

	suffixLength = 4
)

var (
	rudeExp     = regexp.MustCompile(`(?i)\b(stupid|idiot|idiots|dumb|useless|moron|trash|garbage|shut up|hate you|suck|sucks|wtf|damn|crap|pathetic|loser)\b`)
	politeExp   = regexp.MustCompile(`(?i)\b(please|pls|plz|thank you|thanks|thx|kindly|appreciate|would you|could you|grateful)\b`)
	birthdayExp = regexp.MustCompile(`(?i)\b(birthday|bday|b-day|anniversary)\b`)
)

// RandomSource produces the random suffix of a coupon code.
type RandomSource interface {
	String(n int) string
}

type stringxSource struct{}

func (stringxSource) String(n int) string {
	return strings.ToUpper(stringx.Randn(n))
}

type Coupon struct {
	Code           string `json:"code"`
	DiscountAmount int    `json:"discountAmount"`
	Reason         string `json:"reason"`
}

type Policy struct {
	rand RandomSource
}

// NewPolicy builds a policy; a nil source uses go-zero's stringx.
func NewPolicy(rand RandomSource) *Policy {
	if rand == nil {
		rand = stringxSource{}
	}
	return &Policy{rand: rand}
}

// Ceiling is the maximum discount percentage allowed for a cart total.
func Ceiling(cartTotal float64) int {
	switch {
	case cartTotal >= 300:
		return 20
	case cartTotal >= 150:
		return 15
	default:
		return 10
	}
}

// Build maps the tone and occasion of a negotiation message to a discount
// percentage and a fresh code. Rudeness earns nothing.
func (p *Policy) Build(reason string, cartTotal float64) Coupon {
	ceiling := Ceiling(cartTotal)

	var (
		prefix   string
		discount int
		why      string
	)
	switch {
	case rudeExp.MatchString(reason):
		prefix, discount, why = PrefixNoDeal, 0, "No discount for rude requests"
	case birthdayExp.MatchString(reason):
		prefix, discount, why = PrefixBirthday, min(birthdayDiscount, ceiling), "Celebration discount"
	case politeExp.MatchString(reason):
		prefix, discount, why = PrefixKind, min(kindDiscount, ceiling), "Thanks for asking nicely"
	default:
		prefix, discount, why = PrefixSave, min(defaultDiscount, ceiling), "Standard shopper discount"
	}

	return Coupon{
		Code:           fmt.Sprintf("%s-%d-%s", prefix, abs(discount), p.suffix()),
		DiscountAmount: discount,
		Reason:         why,
	}
}

func (p *Policy) suffix() string {
	s := p.rand.String(suffixLength)
	if len(s) > suffixLength {
		s = s[:suffixLength]
	}
	return strings.ToUpper(s)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
