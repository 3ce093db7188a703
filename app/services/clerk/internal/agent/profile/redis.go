package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	profileKeyPrefix = "clerk:profile:"
	lockKeyPrefix    = "clerk:profile:lock:"

	defaultLockExpire = 30 * time.Second
	lockRetryInterval = 20 * time.Millisecond
)

// RedisStore shares profiles across replicas and expires them by TTL.
type RedisStore struct {
	rds *redis.Redis
	ttl time.Duration
	// lockExpire must outlive the slowest turn or a second replica may
	// enter the same session
	lockExpire time.Duration
}

func NewRedisStore(rds *redis.Redis, ttl, lockExpire time.Duration) *RedisStore {
	if lockExpire <= 0 {
		lockExpire = defaultLockExpire
	}
	return &RedisStore{rds: rds, ttl: ttl, lockExpire: lockExpire}
}

func (s *RedisStore) Get(ctx context.Context, sessionId string) (*Profile, error) {
	val, err := s.rds.GetCtx(ctx, profileKeyPrefix+sessionId)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if val == "" {
		return nil, ErrNotFound
	}
	var p Profile
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		logx.WithContext(ctx).Errorf("drop corrupt profile %s: %v", sessionId, err)
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *RedisStore) Create(ctx context.Context, sessionId string) (*Profile, error) {
	p := New()
	p.UpdatedAt = time.Now().UnixNano()
	if err := s.Put(ctx, sessionId, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionId string, p *Profile) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.rds.SetexCtx(ctx, profileKeyPrefix+sessionId, string(body), s.ttlSeconds()); err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// Lock takes a distributed lock on the session, polling until it is free or
// ctx is done.
func (s *RedisStore) Lock(ctx context.Context, sessionId string) (func(), error) {
	lock := redis.NewRedisLock(s.rds, lockKeyPrefix+sessionId)
	lock.SetExpire(s.lockExpireSeconds())

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()
	for {
		ok, err := lock.AcquireCtx(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire profile lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return func() {
		if _, err := lock.ReleaseCtx(context.Background()); err != nil {
			logx.Errorf("release profile lock %s: %v", sessionId, err)
		}
	}, nil
}

func (s *RedisStore) ttlSeconds() int {
	secs := int(s.ttl / time.Second)
	if secs <= 0 {
		return int((24 * time.Hour) / time.Second)
	}
	return secs
}

func (s *RedisStore) lockExpireSeconds() int {
	return int((s.lockExpire + time.Second - 1) / time.Second)
}
