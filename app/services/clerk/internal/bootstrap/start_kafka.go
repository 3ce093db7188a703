package bootstrap

import (
	"context"
	"time"

	"ClerkAI/app/services/clerk/internal/mq"
	"ClerkAI/app/services/clerk/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

// StartKafka starts the product change consumer; returns a stop func.
func StartKafka(sc *svc.ServiceContext) func() {
	if len(sc.Config.KafkaConf.Broker) == 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	threading.GoSafe(func() {
		if err := mq.StartCanalProductConsumer(ctx, sc); err != nil {
			logx.Errorw("product change consumer stopped", logx.Field("err", err))
		}
	})
	return func() {
		cancel()
		if sc.KafkaWriter != nil {
			_ = sc.KafkaWriter.Close()
		}
	}
}

// StartAsynq runs the delayed task server; returns a stop func.
func StartAsynq(sc *svc.ServiceContext) func() {
	addr := sc.Config.AsynqConf.Addr
	if addr == "" {
		addr = sc.Config.RedisConf.Host
	}
	if addr == "" {
		return nil
	}
	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: addr}, asynq.Config{
		Concurrency: sc.Config.AsynqServerConf.Concurrency,
		Queues:      sc.Config.AsynqServerConf.Queues,
	})
	mux := mq.NewAsynqMux(sc)
	threading.GoSafe(func() {
		if err := srv.Run(mux); err != nil {
			logx.Errorw("asynq server stopped", logx.Field("err", err))
		}
	})

	return func() {
		srv.Shutdown()
		if sc.AsynqClient != nil {
			_ = sc.AsynqClient.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
}
