package clerk

import (
	"context"
	"errors"
	"testing"
	"time"

	"ClerkAI/app/common/consts/biz"
	"ClerkAI/app/common/consts/errno"
	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/profile"
	"ClerkAI/app/services/clerk/internal/catalog"
	"ClerkAI/app/services/clerk/internal/svc"
	"ClerkAI/app/services/clerk/internal/types"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xerrors "github.com/zeromicro/x/errors"
)

type silentModel struct{}

func (silentModel) Generate(context.Context, []*schema.Message, ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage("", nil), nil
}

func (silentModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func (m silentModel) WithTools([]*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func sessionCtx(id int64) context.Context {
	return context.WithValue(context.Background(), biz.SESSION_KEY, id)
}

func codeOf(t *testing.T, err error) int {
	t.Helper()
	var cm *xerrors.CodeMsg
	require.True(t, errors.As(err, &cm), "expected a coded error, got %v", err)
	return cm.Code
}

func newServiceContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	store, err := profile.NewMemoryStore(time.Hour, 0)
	require.NoError(t, err)
	return &svc.ServiceContext{
		ChatModel: silentModel{},
		Catalog:   catalog.NewSeedMemory(),
		Profiles:  store,
		Locker:    store,
	}
}

func TestChatRequiresSession(t *testing.T) {
	_, err := NewChatLogic(context.Background(), newServiceContext(t)).Chat(&types.ChatRequest{Message: "hi"})
	assert.Equal(t, errno.SessionInvalid, codeOf(t, err))
}

func TestChatErrorCodes(t *testing.T) {
	_, err := NewChatLogic(sessionCtx(1), &svc.ServiceContext{}).Chat(&types.ChatRequest{Message: "hi"})
	assert.Equal(t, errno.ClerkNotConfigured, codeOf(t, err))

	_, err = NewChatLogic(sessionCtx(1), newServiceContext(t)).Chat(&types.ChatRequest{Message: " "})
	assert.Equal(t, errno.InvalidParam, codeOf(t, err))
}

func TestChatCarriesContextIntoTurn(t *testing.T) {
	sc := newServiceContext(t)
	suggested := int64(9)
	resp, err := NewChatLogic(sessionCtx(42), sc).Chat(&types.ChatRequest{
		Message: "add it to my cart",
		Context: types.ChatContext{LastSuggestedProductId: &suggested, CartTotal: 20},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Action)
	assert.Equal(t, clerk.ActionAddToCart, resp.Action.Type)
	assert.Equal(t, int64(9), resp.Action.ProductId)

	p, err := sc.Profiles.Get(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, p.AwaitingCheckoutConfirmation)
}
