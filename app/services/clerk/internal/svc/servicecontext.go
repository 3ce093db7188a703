package svc

import (
	"context"
	"fmt"
	"time"

	"ClerkAI/app/common/snowflake"
	productdal "ClerkAI/app/dal/product"
	"ClerkAI/app/services/clerk/internal/agent/coupon"
	"ClerkAI/app/services/clerk/internal/agent/matcher"
	"ClerkAI/app/services/clerk/internal/agent/profile"
	"ClerkAI/app/services/clerk/internal/agent/semantic"
	"ClerkAI/app/services/clerk/internal/catalog"
	"ClerkAI/app/services/clerk/internal/config"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/bloom"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type ServiceContext struct {
	Config config.Config

	// ChatModel stays nil when no credential is configured.
	ChatModel model.ToolCallingChatModel
	Matcher   *matcher.Matcher
	Coupons   *coupon.Policy

	Catalog       catalog.Catalog
	CatalogSyncer catalog.Syncer

	Profiles profile.Store
	Locker   profile.Locker

	Redis       *redis.Redis
	AsynqClient *asynq.Client
	KafkaWriter *kafka.Writer
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)
	logx.Must(c.Session.Validate())
	if c.Session.NodeId >= 0 {
		logx.Must(snowflake.SetNodeID(c.Session.NodeId))
	}
	ctx := context.Background()
	sc := &ServiceContext{Config: c, Coupons: coupon.NewPolicy(nil)}

	if c.RedisConf.Host != "" {
		sc.Redis = redis.MustNewRedis(c.RedisConf)
	}

	sc.initModels(ctx)

	if err := sc.initCatalog(ctx); err != nil {
		logx.Must(err)
	}
	if err := sc.initProfiles(); err != nil {
		logx.Must(err)
	}

	addr := c.AsynqConf.Addr
	if addr == "" {
		addr = c.RedisConf.Host
	}
	if addr != "" {
		sc.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: addr})
	}

	// Reusable Kafka writer to reduce per-send overhead and latency
	if len(c.KafkaConf.Broker) > 0 && c.KafkaConf.ActionsTopic != "" {
		sc.KafkaWriter = &kafka.Writer{
			Addr:                   kafka.TCP(c.KafkaConf.Broker...),
			Topic:                  c.KafkaConf.ActionsTopic,
			RequiredAcks:           kafka.RequireOne,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           5 * time.Millisecond,
		}
	}

	return sc
}

func (sc *ServiceContext) initModels(ctx context.Context) {
	c := sc.Config
	if c.ChatModel.APIKey == "" {
		logx.Infow("ark api key missing, clerk chat disabled")
		sc.Matcher = matcher.New(nil)
		return
	}

	cm, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL: c.ChatModel.BaseUrl,
		APIKey:  c.ChatModel.APIKey,
		Model:   c.ChatModel.Model,
	})
	if err != nil {
		logx.Errorw("init ark chat model failed", logx.Field("err", err))
		sc.Matcher = matcher.New(nil)
		return
	}
	sc.ChatModel = cm
	logx.Infow("ark chat model initialized", logx.Field("model", c.ChatModel.Model))

	timeout := time.Duration(c.Clerk.ModelTimeout) * time.Millisecond
	sm, err := semantic.NewMatcher(ctx, cm, timeout)
	if err != nil {
		logx.Errorw("init semantic matcher failed, keyword ranking only", logx.Field("err", err))
		sc.Matcher = matcher.New(nil)
		return
	}
	sc.Matcher = matcher.New(sm)
}

func (sc *ServiceContext) initCatalog(ctx context.Context) error {
	c := sc.Config
	switch c.Catalog.Source {
	case config.CatalogFile:
		mem, err := catalog.LoadFile(c.Catalog.File)
		if err != nil {
			return fmt.Errorf("load catalog file: %w", err)
		}
		sc.Catalog, sc.CatalogSyncer = mem, mem
	case config.CatalogMysql:
		if sc.Redis == nil {
			return fmt.Errorf("mysql catalog needs RedisConf for its bloom filter")
		}
		conn := sqlx.NewMysql(c.MysqlConf.DataSource)
		model := productdal.NewProductsModel(conn, c.CacheConf)
		bf := bloom.New(sc.Redis, c.Catalog.BloomKey, c.Catalog.BloomBits)
		store, err := catalog.NewSQL(model, bf, time.Duration(c.Catalog.SnapshotTTL)*time.Second)
		if err != nil {
			return err
		}
		if err := store.Preheat(ctx); err != nil {
			logx.Errorw("preheat product bloom filter failed", logx.Field("err", err))
		}
		sc.Catalog, sc.CatalogSyncer = store, store
	default:
		mem := catalog.NewSeedMemory()
		sc.Catalog, sc.CatalogSyncer = mem, mem
	}
	return nil
}

func (sc *ServiceContext) initProfiles() error {
	c := sc.Config
	ttl := time.Duration(c.Clerk.ProfileTTL) * time.Second
	if c.ProfileStore == config.ProfileRedis {
		if sc.Redis == nil {
			return fmt.Errorf("redis profile store needs RedisConf")
		}
		store := profile.NewRedisStore(sc.Redis, ttl, c.Clerk.TurnBudget())
		sc.Profiles, sc.Locker = store, store
		return nil
	}

	store, err := profile.NewMemoryStore(ttl, c.Clerk.ProfileLimit)
	if err != nil {
		return err
	}
	sc.Profiles, sc.Locker = store, store
	return nil
}
