package chat

import (
	"strings"
	"time"

	"ClerkAI/app/common/consts/errno"
	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"
	"ClerkAI/app/services/clerk/internal/agent/matcher"
	"ClerkAI/app/services/clerk/internal/agent/profile"
	"ClerkAI/app/services/clerk/internal/catalog"

	"github.com/cloudwego/eino/schema"
)

// turn accumulates everything one message produces before it is rendered.
type turn struct {
	req        *clerk.ChatReq
	text       string
	norm       string
	tokens     []string
	products   []clerk.Product
	categories []string
	profile    *profile.Profile

	signals  lexicon.Signals
	color    string
	mention  *mention
	resolved Resolution

	branch       string
	actions      []clerk.Action
	cards        []clerk.Product
	reply        string
	lead         string
	modelText    string
	personalized bool
	armedAt      int64
	transcript   []*schema.Message

	// lookup resolves ids against the live catalog, nil means the snapshot
	lookup func(id int64) (clerk.Product, bool)
}

func newTurn(req *clerk.ChatReq, products []clerk.Product, p *profile.Profile) *turn {
	text := strings.TrimSpace(req.Message)
	t := &turn{
		req:        req,
		text:       text,
		norm:       lexicon.Normalize(text),
		tokens:     lexicon.Tokenize(text),
		products:   products,
		categories: catalog.Categories(products),
		profile:    p,
	}
	t.signals = lexicon.Extract(text, t.categories)
	t.color = lexicon.ExtractColor(text)
	return t
}

func (t *turn) find(id int64) (clerk.Product, bool) {
	if t.lookup != nil {
		return t.lookup(id)
	}
	return catalog.Find(t.products, id)
}

// absorbContext folds what the storefront reports into the profile.
func (t *turn) absorbContext() {
	c := t.req.Context
	for _, id := range c.RecentlyViewedProductIds {
		if _, ok := t.find(id); ok {
			t.profile.View(id)
		}
	}
	t.profile.ViewCategory(c.ActiveCategory)
	if clerk.ValidSort(c.PreferredSort) && !clerk.ValidSort(t.profile.PreferredSort) {
		t.profile.PreferredSort = c.PreferredSort
	}
}

func (t *turn) history() matcher.History {
	return matcher.History{
		ViewedCategories: t.profile.ViewedCategories,
		RecentlyViewed:   t.profile.RecentlyViewedProductIds,
		Added:            t.profile.AddedProductIds,
	}
}

func (t *turn) addAction(a clerk.Action) {
	t.actions = append(t.actions, a)
}

func (t *turn) hasAction(typ string) bool {
	for _, a := range t.actions {
		if a.Type == typ {
			return true
		}
	}
	return false
}

// addCards queues products, skipping ones already queued.
func (t *turn) addCards(products ...clerk.Product) {
	for _, p := range products {
		dup := false
		for _, c := range t.cards {
			if c.Id == p.Id {
				dup = true
				break
			}
		}
		if !dup {
			t.cards = append(t.cards, p)
		}
	}
}

func (t *turn) setCards(products ...clerk.Product) {
	t.cards = nil
	t.addCards(products...)
}

// focus makes p the anchor for follow-up pronouns.
func (t *turn) focus(p clerk.Product) {
	t.profile.Anchor(p.Id)
	t.profile.View(p.Id)
	t.profile.ViewCategory(p.Category)
}

func (t *turn) arm() {
	t.armedAt = time.Now().UnixNano()
	t.profile.ArmCheckout(t.armedAt)
}

// commit records what was shown this turn on the profile.
func (t *turn) commit() {
	t.profile.LastQuery = t.text
	t.profile.UpdatedAt = time.Now().UnixNano()
	if len(t.cards) == 0 {
		return
	}
	ids := make([]int64, 0, len(t.cards))
	for _, c := range t.cards {
		ids = append(ids, c.Id)
	}
	t.profile.Shown(ids)
	if len(t.cards) == 1 {
		t.focus(t.cards[0])
		return
	}
	for _, c := range t.cards {
		t.profile.ViewCategory(c.Category)
	}
}

func (t *turn) response() *clerk.ChatResp {
	resp := &clerk.ChatResp{
		Code:     errno.StatusOK,
		Message:  t.reply,
		Content:  t.reply,
		Actions:  make([]clerk.Action, len(t.actions)),
		Products: make([]clerk.ProductCard, 0, len(t.cards)),
		Role:     clerk.RoleAssistant,
	}
	copy(resp.Actions, t.actions)
	if len(resp.Actions) > 0 {
		first := resp.Actions[0]
		resp.Action = &first
	}
	for _, p := range t.cards {
		resp.Products = append(resp.Products, clerk.NewProductCard(p))
	}
	resp.Data = clerk.ChatData{ProductsCount: len(resp.Products), Personalized: t.personalized}
	return resp
}

func unavailable(code int) *clerk.ChatResp {
	msg := "The Clerk is currently unavailable. Please try again in a moment."
	return &clerk.ChatResp{
		Code:     code,
		Message:  msg,
		Content:  msg,
		Actions:  []clerk.Action{},
		Products: []clerk.ProductCard{},
		Role:     clerk.RoleAssistant,
	}
}
