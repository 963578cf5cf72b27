package logic

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dotapulse/imp-api/internal/models"
)

// mockProvider implements provider.Client with overridable function fields.
type mockProvider struct {
	FetchMatchFunc      func(ctx context.Context, matchID int64) (*models.MatchRecord, error)
	FetchBenchmarksFunc func(ctx context.Context, heroID int) (*models.BenchmarkSet, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockProvider) record(op string) {
	m.mu.Lock()
	m.calls = append(m.calls, op)
	m.mu.Unlock()
}

func (m *mockProvider) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) FetchMatch(ctx context.Context, matchID int64) (*models.MatchRecord, error) {
	m.record("fetch_match")
	if m.FetchMatchFunc != nil {
		return m.FetchMatchFunc(ctx, matchID)
	}
	return &models.MatchRecord{MatchID: matchID}, nil
}

func (m *mockProvider) FetchPlayer(ctx context.Context, accountID int64) (*models.PlayerProfile, error) {
	m.record("fetch_player")
	return &models.PlayerProfile{AccountID: accountID}, nil
}

func (m *mockProvider) FetchRecentMatches(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error) {
	m.record("fetch_recent_matches")
	return nil, nil
}

func (m *mockProvider) FetchPeers(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error) {
	m.record("fetch_peers")
	return nil, nil
}

func (m *mockProvider) FetchWinLoss(ctx context.Context, accountID int64) (*models.WinLoss, error) {
	m.record("fetch_win_loss")
	return &models.WinLoss{}, nil
}

func (m *mockProvider) FetchBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error) {
	m.record("fetch_benchmarks")
	if m.FetchBenchmarksFunc != nil {
		return m.FetchBenchmarksFunc(ctx, heroID)
	}
	return &models.BenchmarkSet{HeroID: heroID}, nil
}

// mockRedis is an in-memory stand-in for the narrow RedisClient interface.
type mockRedis struct {
	mu   sync.Mutex
	data map[string]string

	getErr error
	setErr error
}

func newMockRedis() *mockRedis {
	return &mockRedis{data: map[string]string{}}
}

func (m *mockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	switch v := value.(type) {
	case string:
		m.data[key] = v
	case []byte:
		m.data[key] = string(v)
	case int64:
		m.data[key] = strconv.FormatInt(v, 10)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
