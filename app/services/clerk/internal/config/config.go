package config

import (
	"errors"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

const (
	CatalogSeed  = "seed"
	CatalogFile  = "file"
	CatalogMysql = "mysql"

	ProfileMemory = "memory"
	ProfileRedis  = "redis"

	// MaxToolCallsPerTurn caps the tool calls dispatched from one model reply.
	MaxToolCallsPerTurn = 4

	turnSlack = 5 * time.Second
)

var ErrEmptySessionSecret = errors.New("session secret (CLERK_SESSION_SECRET) must be set")

type Config struct {
	rest.RestConf

	LogConf logx.LogConf

	ChatModel ModelConf `json:",optional"`

	Clerk   ClerkConf
	Session SessionConf
	Catalog CatalogConf

	ProfileStore string `json:",default=memory,options=memory|redis"`

	RedisConf redis.RedisConf `json:",optional"`
	MysqlConf sqlx.SqlConf    `json:",optional"`
	CacheConf cache.CacheConf `json:",optional"`

	// Use lightweight config structs to avoid mapstructure errors on func fields
	AsynqConf       AsynqRedisConf  `json:",optional"`
	AsynqServerConf AsynqServerConf `json:",optional"`

	KafkaConf KafkaConf `json:",optional"`
}

type ModelConf struct {
	BaseUrl string `json:",optional"`
	APIKey  string `json:",optional,env=ARK_API_KEY"`
	Model   string `json:",optional"`
}

type ClerkConf struct {
	SearchLimit int `json:",default=4"`
	// milliseconds
	ModelTimeout int `json:",default=15000"`
	// seconds
	ProfileTTL   int `json:",default=86400"`
	ProfileLimit int `json:",default=100000"`
	// seconds a pending checkout confirmation stays armed
	CheckoutConfirmTTL int `json:",default=600"`
}

// TurnBudget is the longest one turn may hold its session: the tool pass,
// every dispatched call that may consult the model, the safety net search
// and the free-form reply.
func (c ClerkConf) TurnBudget() time.Duration {
	per := time.Duration(c.ModelTimeout) * time.Millisecond
	return per*time.Duration(MaxToolCallsPerTurn+3) + turnSlack
}

type SessionConf struct {
	Secret string `json:",env=CLERK_SESSION_SECRET"`
	// seconds
	Expire int64 `json:",default=2592000"`
	// snowflake node of this replica, -1 derives one from the hostname
	NodeId int64 `json:",default=-1,range=[-1:1023]"`
}

// Validate rejects a config that could not sign session cookies.
func (c SessionConf) Validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return ErrEmptySessionSecret
	}
	return nil
}

type CatalogConf struct {
	Source string `json:",default=seed,options=seed|file|mysql"`
	File   string `json:",optional"`
	// seconds the mysql snapshot is cached
	SnapshotTTL int    `json:",default=60"`
	BloomKey    string `json:",default=clerk:bloom:products"`
	BloomBits   uint   `json:",default=1048576"`
}

// Minimal redis client config for Asynq
type AsynqRedisConf struct {
	Addr string `json:",optional"`
}

// Minimal asynq server config
type AsynqServerConf struct {
	Concurrency int            `json:",default=4"`
	Queues      map[string]int `json:",optional"`
}

type KafkaConf struct {
	Broker        []string `json:",optional"`
	Group         string   `json:",optional"`
	ProductsTopic string   `json:",optional"`
	ActionsTopic  string   `json:",optional"`
}
