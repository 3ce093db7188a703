package profile

import (
	"context"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
)

const defaultMemoryLimit = 100000

// MemoryStore keeps profiles in a process-local TTL cache.
type MemoryStore struct {
	cache *collection.Cache

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	ch   chan struct{}
	refs int
}

func NewMemoryStore(ttl time.Duration, limit int) (*MemoryStore, error) {
	if limit <= 0 {
		limit = defaultMemoryLimit
	}
	c, err := collection.NewCache(ttl, collection.WithName("clerk-profiles"), collection.WithLimit(limit))
	if err != nil {
		return nil, err
	}
	return &MemoryStore{
		cache: c,
		locks: make(map[string]*sessionLock),
	}, nil
}

func (s *MemoryStore) Get(_ context.Context, sessionId string) (*Profile, error) {
	v, ok := s.cache.Get(sessionId)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*Profile).Clone(), nil
}

func (s *MemoryStore) Create(_ context.Context, sessionId string) (*Profile, error) {
	p := New()
	p.UpdatedAt = time.Now().UnixNano()
	s.cache.Set(sessionId, p.Clone())
	return p, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionId string, p *Profile) error {
	s.cache.Set(sessionId, p.Clone())
	return nil
}

// Lock blocks until the session is free or ctx is done.
func (s *MemoryStore) Lock(ctx context.Context, sessionId string) (func(), error) {
	s.mu.Lock()
	l, ok := s.locks[sessionId]
	if !ok {
		l = &sessionLock{ch: make(chan struct{}, 1)}
		s.locks[sessionId] = l
	}
	l.refs++
	s.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		s.release(sessionId, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			s.release(sessionId, l)
		})
	}, nil
}

func (s *MemoryStore) release(sessionId string, l *sessionLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, sessionId)
	}
}
