package provider

import (
	"context"

	"github.com/dotapulse/imp-api/internal/models"
)

// MockClient implements Client with overridable function fields.
type MockClient struct {
	NameValue              string
	FetchMatchFunc         func(ctx context.Context, matchID int64) (*models.MatchRecord, error)
	FetchPlayerFunc        func(ctx context.Context, accountID int64) (*models.PlayerProfile, error)
	FetchRecentMatchesFunc func(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error)
	FetchPeersFunc         func(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error)
	FetchWinLossFunc       func(ctx context.Context, accountID int64) (*models.WinLoss, error)
	FetchBenchmarksFunc    func(ctx context.Context, heroID int) (*models.BenchmarkSet, error)

	Calls []string
}

func (m *MockClient) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *MockClient) FetchMatch(ctx context.Context, matchID int64) (*models.MatchRecord, error) {
	m.Calls = append(m.Calls, "fetch_match")
	if m.FetchMatchFunc != nil {
		return m.FetchMatchFunc(ctx, matchID)
	}
	return &models.MatchRecord{MatchID: matchID}, nil
}

func (m *MockClient) FetchPlayer(ctx context.Context, accountID int64) (*models.PlayerProfile, error) {
	m.Calls = append(m.Calls, "fetch_player")
	if m.FetchPlayerFunc != nil {
		return m.FetchPlayerFunc(ctx, accountID)
	}
	return &models.PlayerProfile{AccountID: accountID}, nil
}

func (m *MockClient) FetchRecentMatches(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error) {
	m.Calls = append(m.Calls, "fetch_recent_matches")
	if m.FetchRecentMatchesFunc != nil {
		return m.FetchRecentMatchesFunc(ctx, accountID, limit, beforeMatchID)
	}
	return nil, nil
}

func (m *MockClient) FetchPeers(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error) {
	m.Calls = append(m.Calls, "fetch_peers")
	if m.FetchPeersFunc != nil {
		return m.FetchPeersFunc(ctx, accountID, limit)
	}
	return nil, nil
}

func (m *MockClient) FetchWinLoss(ctx context.Context, accountID int64) (*models.WinLoss, error) {
	m.Calls = append(m.Calls, "fetch_win_loss")
	if m.FetchWinLossFunc != nil {
		return m.FetchWinLossFunc(ctx, accountID)
	}
	return &models.WinLoss{}, nil
}

func (m *MockClient) FetchBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error) {
	m.Calls = append(m.Calls, "fetch_benchmarks")
	if m.FetchBenchmarksFunc != nil {
		return m.FetchBenchmarksFunc(ctx, heroID)
	}
	return &models.BenchmarkSet{HeroID: heroID}, nil
}
