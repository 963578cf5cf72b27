package handlers

import (
	"context"

	"github.com/dotapulse/imp-api/internal/models"
)

type mockProvider struct {
	FetchPlayerFunc        func(ctx context.Context, accountID int64) (*models.PlayerProfile, error)
	FetchRecentMatchesFunc func(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error)
	FetchWinLossFunc       func(ctx context.Context, accountID int64) (*models.WinLoss, error)
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) FetchMatch(ctx context.Context, matchID int64) (*models.MatchRecord, error) {
	return &models.MatchRecord{MatchID: matchID}, nil
}

func (m *mockProvider) FetchPlayer(ctx context.Context, accountID int64) (*models.PlayerProfile, error) {
	if m.FetchPlayerFunc != nil {
		return m.FetchPlayerFunc(ctx, accountID)
	}
	return &models.PlayerProfile{AccountID: accountID, PersonaName: "tester"}, nil
}

func (m *mockProvider) FetchRecentMatches(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error) {
	if m.FetchRecentMatchesFunc != nil {
		return m.FetchRecentMatchesFunc(ctx, accountID, limit, beforeMatchID)
	}
	return []models.RecentMatch{}, nil
}

func (m *mockProvider) FetchPeers(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error) {
	return []models.PeerAggregate{}, nil
}

func (m *mockProvider) FetchWinLoss(ctx context.Context, accountID int64) (*models.WinLoss, error) {
	if m.FetchWinLossFunc != nil {
		return m.FetchWinLossFunc(ctx, accountID)
	}
	return &models.WinLoss{Wins: 10, Losses: 8}, nil
}

func (m *mockProvider) FetchBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error) {
	return &models.BenchmarkSet{HeroID: heroID}, nil
}

type mockScoreService struct {
	ScoreRequestFunc func(ctx context.Context, req *models.ScoreRequest) (*models.ScoreData, error)
	ScoreMatchFunc   func(ctx context.Context, matchID int64) (*models.MatchScorecard, error)
}

func (m *mockScoreService) ScoreRequest(ctx context.Context, req *models.ScoreRequest) (*models.ScoreData, error) {
	if m.ScoreRequestFunc != nil {
		return m.ScoreRequestFunc(ctx, req)
	}
	return &models.ScoreData{
		MatchID:  req.MatchID,
		HeroName: models.HeroName(req.HeroID),
		ScoreResult: models.ScoreResult{
			Score: 21.4, Grade: "B", Percentile: 66, Summary: "ok",
		},
	}, nil
}

func (m *mockScoreService) ScoreMatch(ctx context.Context, matchID int64) (*models.MatchScorecard, error) {
	if m.ScoreMatchFunc != nil {
		return m.ScoreMatchFunc(ctx, matchID)
	}
	return &models.MatchScorecard{MatchID: matchID}, nil
}

type mockHistoryService struct {
	rows []models.ScoreHistoryRow
	err  error
}

func (m *mockHistoryService) InsertScore(ctx context.Context, row models.ScoreHistoryRow) error {
	m.rows = append(m.rows, row)
	return m.err
}

func (m *mockHistoryService) PlayerScores(ctx context.Context, accountID int64, limit int) ([]models.ScoreHistoryRow, error) {
	return m.rows, m.err
}

type mockTrackingService struct {
	players   []models.TrackedPlayer
	addErr    error
	removeErr error
}

func (m *mockTrackingService) ListTracked(ctx context.Context) ([]models.TrackedPlayer, error) {
	return m.players, nil
}

func (m *mockTrackingService) AddTracked(ctx context.Context, accountID int64, label string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.players = append(m.players, models.TrackedPlayer{AccountID: accountID, Label: label})
	return nil
}

func (m *mockTrackingService) RemoveTracked(ctx context.Context, accountID int64) error {
	return m.removeErr
}

func (m *mockTrackingService) LastScoredMatch(ctx context.Context, accountID int64) (int64, error) {
	return 0, nil
}

func (m *mockTrackingService) SetLastScoredMatch(ctx context.Context, accountID, matchID int64) error {
	return nil
}

type mockFallbacks struct {
	count int64
}

func (m *mockFallbacks) Fallbacks() int64 { return m.count }
func (m *mockFallbacks) ResetFallbacks()  { m.count = 0 }
