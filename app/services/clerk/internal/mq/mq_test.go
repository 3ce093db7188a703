package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/profile"
	"ClerkAI/app/services/clerk/internal/catalog"
	"ClerkAI/app/services/clerk/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canalUpdateMessage = `{
  "data": [{"id": "1", "name": "Classic White Sneaker", "description": "Clean leather low-top",
            "picture": "/img/1.png", "price": "79.5", "rating": "4.2", "category": "Footwear",
            "colors": "White, Black", "stock": "3", "created_at": "2025-10-29 12:52:34",
            "updated_at": "2025-10-30 08:00:00"}],
  "database": "clerk", "isDdl": false, "table": "products", "type": "UPDATE", "ts": 1761800000000
}`

func TestHandleCanalProductMessage(t *testing.T) {
	ctx := context.Background()
	mem := catalog.NewSeedMemory()

	var msg CanalMessageProducts
	require.NoError(t, json.Unmarshal([]byte(canalUpdateMessage), &msg))
	require.NoError(t, HandleCanalProductMessage(ctx, mem, msg))

	p, err := mem.GetProduct(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 79.5, p.Price)
	assert.Equal(t, int64(3), p.Stock)
	assert.Equal(t, []string{"White", "Black"}, p.Colors)

	msg.Type = "DELETE"
	require.NoError(t, HandleCanalProductMessage(ctx, mem, msg))
	p, err = mem.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestHandleCanalProductMessageIgnoresOtherTables(t *testing.T) {
	ctx := context.Background()
	mem := catalog.NewMemory([]clerk.Product{{Id: 1, Name: "Old", Category: "Footwear"}})

	var msg CanalMessageProducts
	require.NoError(t, json.Unmarshal([]byte(canalUpdateMessage), &msg))
	msg.Table = "orders"
	require.NoError(t, HandleCanalProductMessage(ctx, mem, msg))

	p, err := mem.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Old", p.Name)
}

func TestExpireCheckout(t *testing.T) {
	ctx := context.Background()
	store, err := profile.NewMemoryStore(time.Hour, 0)
	require.NoError(t, err)

	p := profile.New()
	p.ArmCheckout(200)
	require.NoError(t, store.Put(ctx, "s1", p))

	// an older task must not clear a newer confirmation
	require.NoError(t, ExpireCheckout(ctx, store, store, CheckoutExpirePayload{SessionId: "s1", ArmedAt: 100}))
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.AwaitingCheckoutConfirmation)

	require.NoError(t, ExpireCheckout(ctx, store, store, CheckoutExpirePayload{SessionId: "s1", ArmedAt: 200}))
	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, got.AwaitingCheckoutConfirmation)
	assert.Zero(t, got.AwaitingSince)

	assert.NoError(t, ExpireCheckout(ctx, store, store, CheckoutExpirePayload{SessionId: "missing", ArmedAt: 1}))
}

func TestAsynqMuxRejectsBadPayload(t *testing.T) {
	store, err := profile.NewMemoryStore(time.Hour, 0)
	require.NoError(t, err)
	mux := NewAsynqMux(&svc.ServiceContext{Profiles: store, Locker: store})

	err = mux.ProcessTask(context.Background(), asynq.NewTask(TaskCheckoutExpire, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestPublishWithoutWriterIsNoop(t *testing.T) {
	err := PublishClerkEvent(context.Background(), &svc.ServiceContext{}, ClerkEvent{
		SessionId: "s1",
		Actions:   []clerk.Action{clerk.SortAction(clerk.SortRating)},
	})
	assert.NoError(t, err)
	assert.NoError(t, ScheduleCheckoutExpiry(&svc.ServiceContext{}, "s1", 1))
}
