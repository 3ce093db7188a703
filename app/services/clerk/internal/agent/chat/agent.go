package chat

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"ClerkAI/app/common/consts/errno"
	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/coupon"
	"ClerkAI/app/services/clerk/internal/agent/matcher"
	"ClerkAI/app/services/clerk/internal/agent/profile"
	"ClerkAI/app/services/clerk/internal/agent/tools"
	"ClerkAI/app/services/clerk/internal/catalog"
	"ClerkAI/app/services/clerk/internal/svc"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/metric"
)

const (
	defaultSearchLimit = matcher.DefaultLimit
	branchToolPass     = "tool_pass"
	branchFallback     = "fallback"
)

var (
	ErrNotConfigured = errors.New("clerk chat model is not configured")
	ErrEmptyMessage  = errors.New("message is empty")
)

var branchHits = metric.NewCounterVec(&metric.CounterVecOpts{
	Namespace: "clerk",
	Subsystem: "turn",
	Name:      "branch_total",
	Help:      "clerk turns by the branch that produced the reply.",
	Labels:    []string{"branch"},
})

// Reply is a rendered turn plus what the caller needs for side effects.
type Reply struct {
	Resp *clerk.ChatResp
	// CheckoutArmedAt is non-zero when this turn started waiting for a
	// checkout confirmation.
	CheckoutArmedAt int64
	Branch          string
}

type Agent struct {
	log         logx.Logger
	model       model.ToolCallingChatModel
	catalog     catalog.Catalog
	profiles    profile.Store
	locker      profile.Locker
	matcher     *matcher.Matcher
	coupons     *coupon.Policy
	searchLimit int
	timeout     time.Duration
	toolInfos   []*schema.ToolInfo
}

func NewAgent(ctx context.Context, svcCtx *svc.ServiceContext) *Agent {
	limit := svcCtx.Config.Clerk.SearchLimit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	a := &Agent{
		log:         logx.WithContext(ctx),
		model:       svcCtx.ChatModel,
		catalog:     svcCtx.Catalog,
		profiles:    svcCtx.Profiles,
		locker:      svcCtx.Locker,
		matcher:     svcCtx.Matcher,
		coupons:     svcCtx.Coupons,
		searchLimit: limit,
		timeout:     time.Duration(svcCtx.Config.Clerk.ModelTimeout) * time.Millisecond,
		toolInfos:   tools.BuildToolInfos(),
	}
	if a.matcher == nil {
		a.matcher = matcher.New(nil)
	}
	if a.coupons == nil {
		a.coupons = coupon.NewPolicy(nil)
	}
	return a
}

// Chat processes one message of a session. Failures inside the turn come
// back as an unavailable reply; only a missing model or an empty message
// are returned as errors.
func (a *Agent) Chat(ctx context.Context, req *clerk.ChatReq) (reply *Reply, err error) {
	if a.model == nil {
		return nil, ErrNotConfigured
	}
	if req == nil || strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorf("clerk turn panicked: %v\n%s", r, debug.Stack())
			reply, err = a.unavailable(), nil
		}
	}()

	if a.locker != nil {
		unlock, err := a.locker.Lock(ctx, req.SessionId)
		if err != nil {
			a.log.Errorf("lock session %s failed: %v", req.SessionId, err)
			return a.unavailable(), nil
		}
		defer unlock()
	}

	t, err := a.prepare(ctx, req)
	if err != nil {
		a.log.Errorf("prepare clerk turn failed: %v", err)
		return a.unavailable(), nil
	}

	a.run(ctx, t)
	a.finalizeReply(ctx, t)
	t.commit()

	if ctx.Err() != nil {
		a.log.Infof("turn for session %s abandoned: %v", req.SessionId, ctx.Err())
	} else if err := a.profiles.Put(ctx, req.SessionId, t.profile); err != nil {
		a.log.Errorf("save profile of session %s failed: %v", req.SessionId, err)
	}

	branchHits.Inc(t.branch)
	a.log.Infof("clerk turn branch=%s actions=%d cards=%d took %s", t.branch, len(t.actions), len(t.cards), time.Since(start))
	return &Reply{Resp: t.response(), CheckoutArmedAt: t.armedAt, Branch: t.branch}, nil
}

func (a *Agent) prepare(ctx context.Context, req *clerk.ChatReq) (*turn, error) {
	products, err := a.catalog.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	stored, err := profile.Load(ctx, a.profiles, req.SessionId)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	t := newTurn(req, products, stored.Clone())
	t.lookup = a.lookup(ctx, products)
	t.absorbContext()
	t.mention = findMention(t)
	t.resolved = resolveProduct(t)
	return t, nil
}

// lookup resolves ids through the catalog so ids of removed products are
// caught there. A failing catalog falls back to the turn's snapshot.
func (a *Agent) lookup(ctx context.Context, products []clerk.Product) func(int64) (clerk.Product, bool) {
	return func(id int64) (clerk.Product, bool) {
		p, err := a.catalog.GetProduct(ctx, id)
		if err != nil {
			a.log.Errorf("get product %d failed, using snapshot: %v", id, err)
			return catalog.Find(products, id)
		}
		if p == nil {
			return clerk.Product{}, false
		}
		return *p, true
	}
}

// run walks the rules and, when none handles the turn, the model-driven
// steps.
func (a *Agent) run(ctx context.Context, t *turn) {
	for _, r := range a.rules() {
		if !r.when(t) {
			continue
		}
		if r.then(ctx, t) {
			t.branch = r.name
			return
		}
	}

	t.branch = branchToolPass
	a.runToolPass(ctx, t)
	if len(t.actions) == 0 {
		t.branch = branchFallback
		a.safetyNet(ctx, t)
	}
	a.backfill(t)
	a.guardIntent(t)
}

func (a *Agent) unavailable() *Reply {
	branchHits.Inc("unavailable")
	return &Reply{Resp: unavailable(errno.InternalError), Branch: "unavailable"}
}
