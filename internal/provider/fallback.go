package provider

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dotapulse/imp-api/internal/models"
)

// Orchestrator exposes the Client operation set over a primary and a
// secondary provider. Every operation goes to the primary; the secondary is
// tried if and only if the primary fails with a rate-limit classification.
// Any other failure class reaches the caller unchanged — falling back on
// e.g. a not-found would mask structurally different error conditions with
// a provider that may not even implement the operation. When the secondary
// also fails, the *original* primary error is surfaced so callers reason
// about a single upstream semantics.
type Orchestrator struct {
	primary   Client
	secondary Client
	logger    *zap.SugaredLogger
	fallbacks atomic.Int64
}

func NewOrchestrator(primary, secondary Client, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		primary:   primary,
		secondary: secondary,
		logger:    logger.Sugar(),
	}
}

func (o *Orchestrator) Name() string {
	return o.primary.Name() + "+" + o.secondary.Name()
}

// Fallbacks returns the process-wide count of fallback invocations.
func (o *Orchestrator) Fallbacks() int64 { return o.fallbacks.Load() }

// ResetFallbacks zeroes the counter. Explicit-request only; nothing resets
// it implicitly.
func (o *Orchestrator) ResetFallbacks() { o.fallbacks.Store(0) }

// orchestrate runs op against the primary and retries on the secondary
// only for rate-limit failures.
func orchestrate[T any](o *Orchestrator, op string, fn func(Client) (T, error)) (T, error) {
	res, err := fn(o.primary)
	if err == nil || !IsRateLimited(err) {
		return res, err
	}

	o.fallbacks.Add(1)
	fallbackInvocations.Inc()
	o.logger.Warnw("Primary provider rate limited, retrying on secondary",
		"op", op,
		"primary", o.primary.Name(),
		"secondary", o.secondary.Name(),
	)

	res2, err2 := fn(o.secondary)
	if err2 != nil {
		o.logger.Warnw("Secondary provider failed, surfacing primary error",
			"op", op,
			"secondary", o.secondary.Name(),
			"error", err2,
		)
		var zero T
		return zero, err
	}
	return res2, nil
}

func (o *Orchestrator) FetchMatch(ctx context.Context, matchID int64) (*models.MatchRecord, error) {
	return orchestrate(o, "fetch_match", func(c Client) (*models.MatchRecord, error) {
		return c.FetchMatch(ctx, matchID)
	})
}

func (o *Orchestrator) FetchPlayer(ctx context.Context, accountID int64) (*models.PlayerProfile, error) {
	return orchestrate(o, "fetch_player", func(c Client) (*models.PlayerProfile, error) {
		return c.FetchPlayer(ctx, accountID)
	})
}

func (o *Orchestrator) FetchRecentMatches(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error) {
	return orchestrate(o, "fetch_recent_matches", func(c Client) ([]models.RecentMatch, error) {
		return c.FetchRecentMatches(ctx, accountID, limit, beforeMatchID)
	})
}

func (o *Orchestrator) FetchPeers(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error) {
	return orchestrate(o, "fetch_peers", func(c Client) ([]models.PeerAggregate, error) {
		return c.FetchPeers(ctx, accountID, limit)
	})
}

func (o *Orchestrator) FetchWinLoss(ctx context.Context, accountID int64) (*models.WinLoss, error) {
	return orchestrate(o, "fetch_win_loss", func(c Client) (*models.WinLoss, error) {
		return c.FetchWinLoss(ctx, accountID)
	})
}

func (o *Orchestrator) FetchBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error) {
	return orchestrate(o, "fetch_benchmarks", func(c Client) (*models.BenchmarkSet, error) {
		return c.FetchBenchmarks(ctx, heroID)
	})
}
