// Package worker implements the tracked-player polling loop. It
// periodically scores the newest match of every registered player so score
// history accumulates without anyone asking for it.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/dotapulse/imp-api/internal/logic"
	"github.com/dotapulse/imp-api/internal/models"
	"github.com/dotapulse/imp-api/internal/provider"
)

// Prometheus metrics
var (
	trackerSweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "imp_tracker_sweeps_total",
		Help: "Total number of tracker polling sweeps",
	})

	trackerMatchesScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "imp_tracker_matches_scored_total",
		Help: "Total number of matches scored by the tracker",
	})

	trackerPlayersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "imp_tracker_players_failed_total",
		Help: "Total number of per-player tracker failures",
	})

	trackerSweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "imp_tracker_sweep_duration_seconds",
		Help:    "Duration of tracker polling sweeps",
		Buckets: prometheus.DefBuckets,
	})
)

// TrackerConfig configures the polling loop.
type TrackerConfig struct {
	Interval  time.Duration
	Providers provider.Client
	Scores    logic.ScoreService
	History   logic.HistoryService
	Tracking  logic.TrackingService
	Logger    *zap.Logger
}

// Tracker polls the tracked-player registry and scores matches that
// appeared since the last sweep.
type Tracker struct {
	config TrackerConfig
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	return &Tracker{
		config: cfg,
		logger: cfg.Logger.Sugar(),
	}
}

// Start launches the polling goroutine.
func (t *Tracker) Start(ctx context.Context) {
	t.ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(1)
	go t.run()

	t.logger.Infow("Tracker started", "interval", t.config.Interval)
}

// Stop shuts the loop down and waits for an in-flight sweep to finish.
func (t *Tracker) Stop() {
	t.logger.Info("Stopping tracker...")
	t.cancel()
	t.wg.Wait()
	t.logger.Info("Tracker stopped")
}

func (t *Tracker) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.Interval)
	defer ticker.Stop()

	// First sweep right away so a fresh deployment does not sit idle for
	// a full interval.
	t.Sweep(t.ctx)

	for {
		select {
		case <-ticker.C:
			t.Sweep(t.ctx)
		case <-t.ctx.Done():
			return
		}
	}
}

// Sweep runs one polling pass over every tracked player. Exported so a
// deployment can trigger an immediate pass.
func (t *Tracker) Sweep(ctx context.Context) {
	start := time.Now()
	trackerSweeps.Inc()

	players, err := t.config.Tracking.ListTracked(ctx)
	if err != nil {
		t.logger.Errorw("Tracker cannot list tracked players", "error", err)
		return
	}

	scored := 0
	for _, player := range players {
		if ctx.Err() != nil {
			return
		}
		n, err := t.sweepPlayer(ctx, player)
		if err != nil {
			trackerPlayersFailed.Inc()
			t.logger.Warnw("Tracker sweep failed for player",
				"account_id", player.AccountID, "label", player.Label, "error", err)
			continue
		}
		scored += n
	}

	trackerSweepDuration.Observe(time.Since(start).Seconds())
	t.logger.Infow("Tracker sweep complete",
		"players", len(players), "scored", scored, "duration", time.Since(start))
}

// sweepPlayer scores the player's newest match if it has not been scored
// yet, then advances the last-scored marker.
func (t *Tracker) sweepPlayer(ctx context.Context, player models.TrackedPlayer) (int, error) {
	recent, err := t.config.Providers.FetchRecentMatches(ctx, player.AccountID, 1, 0)
	if err != nil {
		return 0, err
	}
	if len(recent) == 0 {
		return 0, nil
	}
	latest := recent[0]

	lastScored, err := t.config.Tracking.LastScoredMatch(ctx, player.AccountID)
	if err != nil {
		return 0, err
	}
	if latest.MatchID == lastScored {
		return 0, nil
	}

	card, err := t.config.Scores.ScoreMatch(ctx, latest.MatchID)
	if err != nil {
		return 0, err
	}

	scored := 0
	for _, entry := range card.Participants {
		if entry.Result == nil || entry.AccountID == nil {
			continue
		}
		// Persist only the tracked player's row; the other nine are
		// computed anyway but nobody asked to keep them.
		if *entry.AccountID != player.AccountID {
			continue
		}
		row := models.ScoreHistoryRow{
			MatchID:    card.MatchID,
			AccountID:  *entry.AccountID,
			HeroID:     entry.HeroID,
			Role:       string(entry.Role),
			Score:      entry.Result.Score,
			Grade:      entry.Result.Grade,
			Percentile: entry.Result.Percentile,
			Won:        entry.IsRadiant == card.RadiantWin,
		}
		if err := t.config.History.InsertScore(ctx, row); err != nil {
			return scored, err
		}
		scored++
		trackerMatchesScored.Inc()
	}

	if err := t.config.Tracking.SetLastScoredMatch(ctx, player.AccountID, latest.MatchID); err != nil {
		return scored, err
	}
	return scored, nil
}
