package worker

import (
	"context"
	"sync"

	"github.com/dotapulse/imp-api/internal/models"
)

type mockProvider struct {
	RecentMatchesFunc func(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error)
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) FetchMatch(ctx context.Context, matchID int64) (*models.MatchRecord, error) {
	return &models.MatchRecord{MatchID: matchID}, nil
}

func (m *mockProvider) FetchPlayer(ctx context.Context, accountID int64) (*models.PlayerProfile, error) {
	return &models.PlayerProfile{AccountID: accountID}, nil
}

func (m *mockProvider) FetchRecentMatches(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error) {
	if m.RecentMatchesFunc != nil {
		return m.RecentMatchesFunc(ctx, accountID, limit, beforeMatchID)
	}
	return nil, nil
}

func (m *mockProvider) FetchPeers(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error) {
	return nil, nil
}

func (m *mockProvider) FetchWinLoss(ctx context.Context, accountID int64) (*models.WinLoss, error) {
	return &models.WinLoss{}, nil
}

func (m *mockProvider) FetchBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error) {
	return &models.BenchmarkSet{HeroID: heroID}, nil
}

type mockScores struct {
	ScoreMatchFunc func(ctx context.Context, matchID int64) (*models.MatchScorecard, error)

	mu         sync.Mutex
	matchCalls []int64
}

func (m *mockScores) ScoreRequest(ctx context.Context, req *models.ScoreRequest) (*models.ScoreData, error) {
	return &models.ScoreData{MatchID: req.MatchID}, nil
}

func (m *mockScores) ScoreMatch(ctx context.Context, matchID int64) (*models.MatchScorecard, error) {
	m.mu.Lock()
	m.matchCalls = append(m.matchCalls, matchID)
	m.mu.Unlock()
	if m.ScoreMatchFunc != nil {
		return m.ScoreMatchFunc(ctx, matchID)
	}
	return &models.MatchScorecard{MatchID: matchID}, nil
}

type mockHistory struct {
	mu       sync.Mutex
	inserted []models.ScoreHistoryRow
	err      error
}

func (m *mockHistory) InsertScore(ctx context.Context, row models.ScoreHistoryRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.inserted = append(m.inserted, row)
	return nil
}

func (m *mockHistory) PlayerScores(ctx context.Context, accountID int64, limit int) ([]models.ScoreHistoryRow, error) {
	return nil, nil
}

type mockTracking struct {
	mu      sync.Mutex
	players []models.TrackedPlayer
	markers map[int64]int64
	listErr error
}

func newMockTracking(players ...models.TrackedPlayer) *mockTracking {
	return &mockTracking{players: players, markers: map[int64]int64{}}
}

func (m *mockTracking) ListTracked(ctx context.Context) ([]models.TrackedPlayer, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.players, nil
}

func (m *mockTracking) AddTracked(ctx context.Context, accountID int64, label string) error {
	m.players = append(m.players, models.TrackedPlayer{AccountID: accountID, Label: label})
	return nil
}

func (m *mockTracking) RemoveTracked(ctx context.Context, accountID int64) error {
	return nil
}

func (m *mockTracking) LastScoredMatch(ctx context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markers[accountID], nil
}

func (m *mockTracking) SetLastScoredMatch(ctx context.Context, accountID, matchID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers[accountID] = matchID
	return nil
}
