package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/coupon"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"

	"github.com/cloudwego/eino/schema"
)

const (
	checkoutReply    = "Perfect. Taking you to checkout now."
	notNowReply      = "No problem, your cart is saved. Keep browsing and check out whenever you're ready."
	notFoundReply    = "I couldn't find that product."
	fallbackReply    = "I'm here to help you shop. Tell me what you're looking for and I'll pull up some options."
	freeFormMaxChars = 400
)

func leadText(label string) string {
	if label == "" {
		return "Say less. Here are the best picks right now:"
	}
	return fmt.Sprintf("Say less. Here are the best %s picks right now:", label)
}

func personalizedLead(category string) string {
	return fmt.Sprintf("Picking up where you left off. A few %s picks you might like:", category)
}

func addedReply(p clerk.Product, qty int) string {
	if qty > 1 {
		return fmt.Sprintf("Added %d x %s to your cart. Ready to check out?", qty, p.Name)
	}
	return fmt.Sprintf("Added the %s to your cart. Ready to check out?", p.Name)
}

func couponReply(c coupon.Coupon, p *clerk.Product) string {
	if c.DiscountAmount == 0 {
		return "Let's keep it friendly. No discount this time, but the prices are still great."
	}
	if p != nil {
		return fmt.Sprintf("Good news: %d%% off the %s with code %s.", c.DiscountAmount, p.Name, c.Code)
	}
	return fmt.Sprintf("Good news: %d%% off your order with code %s.", c.DiscountAmount, c.Code)
}

func colorReply(p clerk.Product, color string, available bool) string {
	if available {
		return fmt.Sprintf("Yes, the %s comes in %s.", p.Name, color)
	}
	if len(p.Colors) == 0 {
		return fmt.Sprintf("Sorry, the %s doesn't come in %s.", p.Name, color)
	}
	return fmt.Sprintf("Sorry, the %s doesn't come in %s. It's available in %s.", p.Name, color, strings.Join(p.Colors, ", "))
}

func mentionReply(p clerk.Product, color string) string {
	reply := fmt.Sprintf("Here's the %s for $%.2f. %s", p.Name, p.Price, strings.TrimSpace(p.Description))
	if color != "" {
		reply += " " + colorReply(p, color, colorAvailable(p, color))
	}
	return strings.TrimSpace(reply)
}

func inventoryReply(p clerk.Product, color string) string {
	var stock string
	switch {
	case p.Stock <= 0:
		stock = fmt.Sprintf("The %s is out of stock right now.", p.Name)
	case p.Stock < 10:
		stock = fmt.Sprintf("Only %d left of the %s.", p.Stock, p.Name)
	default:
		stock = fmt.Sprintf("The %s is in stock.", p.Name)
	}
	if color == "" {
		return stock
	}
	return stock + " " + colorReply(p, color, colorAvailable(p, color))
}

func sortReply(sortBy string) string {
	switch sortBy {
	case clerk.SortPriceAsc:
		return "Sorted by price, lowest first."
	case clerk.SortPriceDesc:
		return "Sorted by price, highest first."
	default:
		return "Sorted by rating, best first."
	}
}

func colorAvailable(p clerk.Product, color string) bool {
	for _, c := range p.Colors {
		if lexicon.ColorMatches(c, color) {
			return true
		}
	}
	return false
}

// finalizeReply picks the reply text: forced text, then the category lead
// when cards exist, then whatever the model said, then a short free-form
// generation.
func (a *Agent) finalizeReply(ctx context.Context, t *turn) {
	switch {
	case t.reply != "":
		return
	case len(t.cards) > 0:
		if t.lead != "" {
			t.reply = t.lead
		} else {
			t.reply = leadText(t.signals.Label())
		}
		return
	case t.modelText != "":
		t.reply = t.modelText
		return
	}
	if text := a.freeForm(ctx, t); text != "" {
		t.reply = text
		return
	}
	t.reply = fallbackReply
}

func (a *Agent) freeForm(ctx context.Context, t *turn) string {
	systemPrompt := `You are The Clerk, a warm and witty shopping assistant for a fashion storefront.
Answer the shopper in one or two short sentences. Do not use lists, markdown or JSON.
Do not invent products, prices or discounts. If the shopper seems unsure, invite them to say what they are shopping for.`

	// the tool pass prompt is swapped out, its calls and results stay so the
	// model can speak to what the tools returned
	messages := []*schema.Message{schema.SystemMessage(systemPrompt)}
	if len(t.transcript) > 1 {
		messages = append(messages, t.transcript[1:]...)
	} else {
		messages = append(messages, schema.UserMessage(t.text))
	}

	start := time.Now()
	out, err := a.generate(ctx, a.model, messages)
	a.log.Infof("free-form reply took %s", time.Since(start))
	if err != nil || out == nil {
		a.log.Errorf("free-form reply failed: %v", err)
		return ""
	}
	text := strings.TrimSpace(out.Content)
	if r := []rune(text); len(r) > freeFormMaxChars {
		text = strings.TrimSpace(string(r[:freeFormMaxChars]))
	}
	return text
}
