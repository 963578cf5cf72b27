// Package provider implements clients for upstream match-data services and
// the rate-limit fallback orchestration between them. All operations are
// read-only and idempotent against upstream state.
package provider

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dotapulse/imp-api/internal/models"
)

// Client is the operation set every upstream source implements. Each client
// translates its provider-specific wire shapes into the shared data model,
// normalizing the team flag to "true = Radiant" and defaulting missing
// optional counters to zero. Player identity stays optional: private
// profiles legitimately have no account ID.
type Client interface {
	Name() string
	FetchMatch(ctx context.Context, matchID int64) (*models.MatchRecord, error)
	FetchPlayer(ctx context.Context, accountID int64) (*models.PlayerProfile, error)
	FetchRecentMatches(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error)
	FetchPeers(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error)
	FetchWinLoss(ctx context.Context, accountID int64) (*models.WinLoss, error)
	FetchBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error)
}

// Prometheus metrics
var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imp_provider_requests_total",
		Help: "Total upstream provider requests by source, operation and outcome",
	}, []string{"source", "op", "outcome"})

	fallbackInvocations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "imp_provider_fallbacks_total",
		Help: "Total operations retried on the secondary provider after a rate limit",
	})
)

func observe(source, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if IsRateLimited(err) {
			outcome = "rate_limited"
		}
	}
	providerRequests.WithLabelValues(source, op, outcome).Inc()
}
