package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"
	"ClerkAI/app/services/clerk/internal/agent/matcher"
	"ClerkAI/app/services/clerk/internal/agent/tools"
	"ClerkAI/app/services/clerk/internal/config"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

type toolProduct struct {
	Id       int64    `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	Rating   float64  `json:"rating"`
	Colors   []string `json:"colors,omitempty"`
	Stock    *int64   `json:"stock,omitempty"`
}

func compact(p clerk.Product) toolProduct {
	return toolProduct{Id: p.Id, Name: p.Name, Category: p.Category, Price: p.Price, Rating: p.Rating, Colors: p.Colors}
}

// runToolPass offers the five tools to the model once and dispatches every
// call it makes. A failed generation leaves the turn without actions.
func (a *Agent) runToolPass(ctx context.Context, t *turn) {
	start := time.Now()
	defer func() {
		a.log.Infof("tool pass took %s", time.Since(start))
	}()

	toolModel, err := a.model.WithTools(a.toolInfos)
	if err != nil {
		a.log.Errorf("bind clerk tools failed: %v", err)
		return
	}

	t.transcript = []*schema.Message{
		schema.SystemMessage(a.systemPrompt(t)),
		schema.UserMessage(t.text),
	}
	reply, err := a.generate(ctx, toolModel, t.transcript)
	if err != nil {
		a.log.Errorf("tool pass generate failed: %v", err)
		return
	}
	if reply == nil {
		return
	}
	t.transcript = append(t.transcript, reply)

	if len(reply.ToolCalls) == 0 {
		t.modelText = strings.TrimSpace(reply.Content)
		return
	}

	signatures := make(map[string]struct{})
	calls := 0
	for _, tc := range reply.ToolCalls {
		call := tools.Parse(tc)
		callID := call.Id
		if callID == "" {
			callID = "call-" + uuid.NewString()
		}

		var payload string
		signature := strings.ToLower(call.Name) + "|" + call.Raw
		if _, seen := signatures[signature]; seen {
			a.log.Infof("duplicate tool call skipped: %s", signature)
			payload = errorPayload("duplicate tool invocation rejected")
		} else if calls >= config.MaxToolCallsPerTurn {
			a.log.Infof("tool call limit reached (%d), skipping %s", config.MaxToolCallsPerTurn, call.Name)
			payload = errorPayload(fmt.Sprintf("tool call limit reached (%d)", config.MaxToolCallsPerTurn))
		} else {
			signatures[signature] = struct{}{}
			calls++
			payload = a.dispatch(ctx, t, call)
		}
		t.transcript = append(t.transcript, schema.ToolMessage(payload, callID, schema.WithToolName(call.Name)))
	}
}

// dispatch runs one parsed call and returns the JSON handed back to the model.
func (a *Agent) dispatch(ctx context.Context, t *turn, call tools.Call) string {
	if !call.Known() {
		a.log.Errorf("unknown tool %q", call.Name)
		return errorPayload(fmt.Sprintf("unknown tool %q", call.Name))
	}
	if call.Malformed != nil {
		a.log.Errorf("tool %s called with %v, continuing with defaults", call.Name, call.Malformed)
	}
	switch {
	case call.Search != nil:
		return a.toolSearch(ctx, t, *call.Search)
	case call.Inventory != nil:
		return a.toolInventory(t, *call.Inventory)
	case call.Cart != nil:
		return a.toolAddToCart(t, *call.Cart)
	case call.Sort != nil:
		return a.toolSort(t, *call.Sort)
	default:
		return a.toolCoupon(t, *call.Coupon)
	}
}

func (a *Agent) toolSearch(ctx context.Context, t *turn, args tools.SearchArgs) string {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		query = t.text
	}
	category := t.signals.Category
	for _, c := range t.categories {
		if strings.EqualFold(c, strings.TrimSpace(args.Category)) {
			category = c
			break
		}
	}
	found := a.matcher.Find(ctx, t.products, matcher.Query{
		Text:         query,
		Category:     category,
		ProductTypes: t.signals.ProductTypes,
		Vibes:        t.signals.Vibes,
		Limit:        a.searchLimit,
		History:      t.history(),
	})
	if len(found) == 0 {
		return jsonPayload(map[string]any{"products": []toolProduct{}})
	}
	t.addCards(found...)
	t.addAction(clerk.SearchAction(query, category))
	t.profile.ViewCategory(category)
	if category != "" {
		t.lead = leadText(category)
	}

	out := make([]toolProduct, 0, len(found))
	for _, p := range found {
		out = append(out, compact(p))
	}
	return jsonPayload(map[string]any{"products": out})
}

// toolTarget resolves the product a tool call names: the id through the
// catalog, then the name, then whatever the message itself referred to.
func (t *turn) toolTarget(id int64, name string) (clerk.Product, bool) {
	if id > 0 {
		if p, ok := t.find(id); ok {
			return p, true
		}
	}
	if p, ok := tools.FindByName(t.products, name); ok {
		return p, true
	}
	if id == 0 && strings.TrimSpace(name) == "" && t.resolved.Product != nil {
		return *t.resolved.Product, true
	}
	return clerk.Product{}, false
}

func (a *Agent) toolInventory(t *turn, args tools.InventoryArgs) string {
	p, ok := t.toolTarget(args.ProductId, args.ProductName)
	if !ok {
		t.reply = notFoundReply
		return errorPayload("product not found")
	}
	color := strings.TrimSpace(args.Color)
	if color == "" {
		color = t.color
	}
	t.addCards(p)
	t.reply = inventoryReply(p, color)

	out := compact(p)
	stock := p.Stock
	out.Stock = &stock
	res := map[string]any{"product": out}
	if color != "" {
		res["colorAvailable"] = colorAvailable(p, color)
	}
	return jsonPayload(res)
}

func (a *Agent) toolAddToCart(t *turn, args tools.CartArgs) string {
	p, ok := t.toolTarget(args.ProductId, args.ProductName)
	if !ok {
		t.reply = notFoundReply
		return errorPayload("product not found")
	}
	qty := args.Quantity
	if qty <= 0 {
		qty = lexicon.ExtractQuantity(t.text)
	}
	qty = min(max(qty, 1), lexicon.MaxQuantity)
	a.addToCart(t, p, qty)
	return jsonPayload(map[string]any{"added": compact(p), "quantity": qty})
}

func (a *Agent) toolSort(t *turn, args tools.SortArgs) string {
	sortBy := strings.TrimSpace(args.SortBy)
	if !clerk.ValidSort(sortBy) {
		return errorPayload("sortBy must be one of price_asc, price_desc, rating")
	}
	scope := t.signals.Category
	if scope == "" {
		scope = t.req.Context.ActiveCategory
	}
	candidates := t.products
	if scope != "" {
		if in := matcher.FilterByIntent(t.products, scope, nil, nil); len(in) > 0 {
			candidates = in
		}
	}
	sorted := matcher.SortProducts(candidates, sortBy)
	if len(sorted) > a.searchLimit {
		sorted = sorted[:a.searchLimit]
	}

	t.profile.PreferredSort = sortBy
	t.addAction(clerk.SortAction(sortBy))
	t.setCards(sorted...)
	t.reply = sortReply(sortBy)
	return jsonPayload(map[string]any{"sortBy": sortBy, "count": len(sorted)})
}

func (a *Agent) toolCoupon(t *turn, args tools.CouponArgs) string {
	// the shopper's own words decide the tone, the model's reason only adds
	// the occasion
	reason := strings.TrimSpace(t.text + " " + args.Reason)
	c := a.coupons.Build(reason, t.req.Context.CartTotal)
	t.addAction(clerk.CouponAction(c.Code, c.DiscountAmount, c.Reason))
	t.reply = couponReply(c, nil)
	return jsonPayload(c)
}

func (a *Agent) systemPrompt(t *turn) string {
	summary := map[string]any{
		"viewedCategories":         t.profile.ViewedCategories,
		"recentlyViewedProductIds": t.profile.RecentlyViewedProductIds,
		"addedProductIds":          t.profile.AddedProductIds,
		"preferredSort":            t.profile.PreferredSort,
		"lastMentionedProductId":   t.profile.LastMentionedProductId,
		"cartProductIds":           t.req.Context.CartProductIds,
		"cartTotal":                t.req.Context.CartTotal,
		"activeCategory":           t.req.Context.ActiveCategory,
	}
	products := make([]toolProduct, 0, len(t.products))
	for _, p := range t.products {
		products = append(products, compact(p))
	}

	var sb strings.Builder
	sb.WriteString(`You are The Clerk, the shopping assistant of a fashion storefront. You are upbeat, concise and a little playful.
Use the tools to act: search_products to show items, check_inventory for stock and colors, add_to_cart when the shopper wants to buy,
sort_products to reorder listings, apply_coupon when the shopper asks for a deal. Only talk about products from the catalog below.
If no tool fits, reply in one or two sentences.`)
	sb.WriteString("\nShopper profile: ")
	sb.WriteString(jsonPayload(summary))
	sb.WriteString("\nCatalog: ")
	sb.WriteString(jsonPayload(products))
	return sb.String()
}

func (a *Agent) generate(ctx context.Context, m model.BaseChatModel, messages []*schema.Message) (*schema.Message, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return m.Generate(ctx, messages)
}

func jsonPayload(v any) string {
	body, err := json.Marshal(v)
	if err != nil {
		return errorPayload(err.Error())
	}
	return string(body)
}

func errorPayload(msg string) string {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return string(body)
}
