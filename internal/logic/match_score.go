package logic

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dotapulse/imp-api/internal/models"
	"github.com/dotapulse/imp-api/internal/provider"
)

type scoreService struct {
	providers  provider.Client
	benchmarks *BenchmarkService
	engine     *Engine
	logger     *zap.SugaredLogger
}

func NewScoreService(providers provider.Client, benchmarks *BenchmarkService, engine *Engine, logger *zap.Logger) ScoreService {
	return &scoreService{
		providers:  providers,
		benchmarks: benchmarks,
		engine:     engine,
		logger:     logger.Sugar(),
	}
}

// ScoreRequest evaluates one participant from caller-supplied stats. When
// the caller did not precompute benchmark percentiles, the hero's
// distributions are fetched and normalized here; an upstream benchmark
// failure degrades the score rather than failing the request.
func (s *scoreService) ScoreRequest(ctx context.Context, req *models.ScoreRequest) (*models.ScoreData, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	percentiles := req.Benchmarks
	if percentiles == nil {
		set, err := s.benchmarks.HeroBenchmarks(ctx, req.HeroID)
		if err != nil {
			s.logger.Warnw("Scoring without benchmarks",
				"match_id", req.MatchID, "hero_id", req.HeroID, "error", err)
		} else {
			percentiles = NormalizeStats(req.Stats, req.DurationSeconds, set)
		}
	}

	result, err := s.engine.Score(ScoreInput{
		Stats:           req.Stats,
		DurationSeconds: req.DurationSeconds,
		Role:            role,
		Won:             req.Context.TeamResult == "win",
		Percentiles:     percentiles,
	})
	if err != nil {
		return nil, err
	}

	return &models.ScoreData{
		MatchID:     req.MatchID,
		HeroName:    models.HeroName(req.HeroID),
		ScoreResult: *result,
	}, nil
}

// ScoreMatch fetches one match and scores all ten participants. Benchmark
// sets are fetched concurrently per unique hero, then every participant is
// scored in parallel; results correlate back to the participant index, and
// one participant's failure never blocks the other nine.
func (s *scoreService) ScoreMatch(ctx context.Context, matchID int64) (*models.MatchScorecard, error) {
	match, err := s.providers.FetchMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := match.Validate(); err != nil {
		return nil, err
	}

	roles, err := AssignRoles(match.Players)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", matchID, err)
	}

	sets, err := s.fetchBenchmarkSets(ctx, match.Players)
	if err != nil {
		return nil, err
	}

	card := &models.MatchScorecard{
		MatchID:         match.MatchID,
		DurationSeconds: match.DurationSeconds,
		RadiantWin:      match.RadiantWin,
		Participants:    make([]models.ParticipantScore, len(match.Players)),
	}

	g, _ := errgroup.WithContext(ctx)
	for i := range match.Players {
		g.Go(func() error {
			p := &match.Players[i]
			entry := models.ParticipantScore{
				Index:     i,
				AccountID: p.AccountID,
				IsRadiant: p.IsRadiant,
				HeroID:    p.HeroID,
				HeroName:  models.HeroName(p.HeroID),
				Role:      roles[i],
			}

			var percentiles map[string]float64
			if set := sets[p.HeroID]; set != nil {
				percentiles = NormalizeStats(participantStats(p), match.DurationSeconds, set)
			}

			result, err := s.engine.Score(ScoreInput{
				Stats:           participantStats(p),
				DurationSeconds: match.DurationSeconds,
				Role:            roles[i],
				Won:             p.Won(match.RadiantWin),
				Percentiles:     percentiles,
			})
			if err != nil {
				entry.Error = err.Error()
			} else {
				entry.Result = result
			}

			card.Participants[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return card, nil
}

// fetchBenchmarkSets resolves distributions for every unique hero in the
// match concurrently. A hero whose fetch fails maps to nil, which scores
// that hero's participant as degraded.
func (s *scoreService) fetchBenchmarkSets(ctx context.Context, players []models.ParticipantRecord) (map[int]*models.BenchmarkSet, error) {
	unique := make(map[int]struct{}, len(players))
	for i := range players {
		unique[players[i].HeroID] = struct{}{}
	}

	sets := make(map[int]*models.BenchmarkSet, len(unique))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for heroID := range unique {
		g.Go(func() error {
			set, err := s.benchmarks.HeroBenchmarks(ctx, heroID)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warnw("Benchmarks unavailable for hero", "hero_id", heroID, "error", err)
				return nil
			}
			mu.Lock()
			sets[heroID] = set
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

func participantStats(p *models.ParticipantRecord) models.MatchStats {
	return models.MatchStats{
		Kills:       p.Kills,
		Deaths:      p.Deaths,
		Assists:     p.Assists,
		LastHits:    p.LastHits,
		Denies:      p.Denies,
		GPM:         p.GPM,
		XPM:         p.XPM,
		HeroDamage:  p.HeroDamage,
		TowerDamage: p.TowerDamage,
		HeroHealing: p.HeroHealing,
		NetWorth:    p.NetWorth,
		Level:       p.Level,
	}
}
