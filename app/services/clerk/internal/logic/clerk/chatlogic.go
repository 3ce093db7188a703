package clerk

import (
	"context"
	"errors"
	"time"

	"ClerkAI/app/common/consts/errno"
	"ClerkAI/app/common/util"
	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/chat"
	"ClerkAI/app/services/clerk/internal/mq"
	"ClerkAI/app/services/clerk/internal/svc"
	"ClerkAI/app/services/clerk/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
	xerrors "github.com/zeromicro/x/errors"
)

const publishTimeout = 3 * time.Second

type ChatLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChatLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatLogic {
	return &ChatLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Chat runs one clerk turn for the caller's session.
func (l *ChatLogic) Chat(req *types.ChatRequest) (*clerk.ChatResp, error) {
	sessionId, err := util.SessionIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}

	in := &clerk.ChatReq{
		SessionId: sessionId,
		Message:   req.Message,
		Context: clerk.ChatContext{
			CartProductIds:           req.Context.CartProductIds,
			CartTotal:                req.Context.CartTotal,
			ActiveCategory:           req.Context.ActiveCategory,
			PreferredSort:            req.Context.PreferredSort,
			RecentlyViewedProductIds: req.Context.RecentlyViewedProductIds,
			LastSuggestedProductId:   req.Context.LastSuggestedProductId,
			LastSuggestedProductIds:  req.Context.LastSuggestedProductIds,
		},
	}

	reply, err := chat.NewAgent(l.ctx, l.svcCtx).Chat(l.ctx, in)
	switch {
	case errors.Is(err, chat.ErrNotConfigured):
		return nil, xerrors.New(errno.ClerkNotConfigured, "the clerk is not configured")
	case errors.Is(err, chat.ErrEmptyMessage):
		return nil, xerrors.New(errno.InvalidParam, "message is empty")
	case err != nil:
		l.Errorf("clerk chat failed: %v", err)
		return nil, xerrors.New(errno.ClerkUnavailable, "the clerk is currently unavailable")
	}

	l.afterTurn(in, reply)
	return reply.Resp, nil
}

// afterTurn hands the turn's side effects to background workers; failures
// never reach the shopper.
func (l *ChatLogic) afterTurn(in *clerk.ChatReq, reply *chat.Reply) {
	if reply.CheckoutArmedAt != 0 {
		if err := mq.ScheduleCheckoutExpiry(l.svcCtx, in.SessionId, reply.CheckoutArmedAt); err != nil {
			l.Errorf("schedule checkout expiry failed: %v", err)
		}
	}
	if len(reply.Resp.Actions) == 0 {
		return
	}

	evt := mq.ClerkEvent{
		SessionId: in.SessionId,
		Message:   in.Message,
		Branch:    reply.Branch,
		Actions:   reply.Resp.Actions,
		At:        time.Now().UnixMilli(),
	}
	for _, p := range reply.Resp.Products {
		evt.ProductIds = append(evt.ProductIds, p.Id)
	}
	threading.GoSafe(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := mq.PublishClerkEvent(ctx, l.svcCtx, evt); err != nil {
			logx.Errorw("publish clerk event failed", logx.Field("session", evt.SessionId), logx.Field("err", err))
		}
	})
}
