package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ClerkAI/app/services/clerk/internal/agent/profile"
	"ClerkAI/app/services/clerk/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

const defaultCheckoutConfirmTTL = 10 * time.Minute

// ScheduleCheckoutExpiry enqueues the task that drops a confirmation nobody
// answered.
func ScheduleCheckoutExpiry(sc *svc.ServiceContext, sessionId string, armedAt int64) error {
	if sc.AsynqClient == nil || armedAt == 0 {
		return nil
	}
	delay := time.Duration(sc.Config.Clerk.CheckoutConfirmTTL) * time.Second
	if delay <= 0 {
		delay = defaultCheckoutConfirmTTL
	}
	payload, err := json.Marshal(CheckoutExpirePayload{SessionId: sessionId, ArmedAt: armedAt})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TaskCheckoutExpire, payload)
	_, err = sc.AsynqClient.Enqueue(task, asynq.ProcessIn(delay), asynq.Queue("default"))
	return err
}

// NewAsynqMux registers handlers for delayed tasks.
func NewAsynqMux(sc *svc.ServiceContext) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskCheckoutExpire, func(ctx context.Context, t *asynq.Task) error {
		var p CheckoutExpirePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("decode %s payload: %v: %w", TaskCheckoutExpire, err, asynq.SkipRetry)
		}
		return ExpireCheckout(ctx, sc.Profiles, sc.Locker, p)
	})
	return mux
}

// ExpireCheckout clears the pending confirmation only when it is still the
// one the task was scheduled for.
func ExpireCheckout(ctx context.Context, store profile.Store, locker profile.Locker, p CheckoutExpirePayload) error {
	if locker != nil {
		unlock, err := locker.Lock(ctx, p.SessionId)
		if err != nil {
			return err
		}
		defer unlock()
	}

	prof, err := store.Get(ctx, p.SessionId)
	if errors.Is(err, profile.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !prof.AwaitingCheckoutConfirmation || prof.AwaitingSince != p.ArmedAt {
		return nil
	}

	prof.DisarmCheckout()
	logx.WithContext(ctx).Infof("checkout confirmation of session %s expired", p.SessionId)
	return store.Put(ctx, p.SessionId, prof)
}
