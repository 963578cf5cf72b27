package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dotapulse/imp-api/internal/models"
	"github.com/dotapulse/imp-api/internal/provider"
)

// neutralPercentile substitutes for any stat the upstream has no
// distribution for. Missing benchmark data must never fail a score.
const neutralPercentile = 0.5

var benchmarkCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "imp_benchmark_cache_lookups_total",
	Help: "Benchmark cache lookups by outcome",
}, []string{"outcome"})

// Percentile estimates where value falls in a population distribution.
// Buckets are sorted by value ascending; values outside the sampled range
// clamp to the extreme buckets' percentiles, values between two buckets
// interpolate linearly. An empty distribution returns the median.
func Percentile(value float64, buckets []models.PercentileBucket) float64 {
	if len(buckets) == 0 {
		return neutralPercentile
	}

	sorted := make([]models.PercentileBucket, len(buckets))
	copy(sorted, buckets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	if value <= sorted[0].Value {
		return sorted[0].Percentile
	}
	last := sorted[len(sorted)-1]
	if value >= last.Value {
		return last.Percentile
	}

	for i := 1; i < len(sorted); i++ {
		lo, hi := sorted[i-1], sorted[i]
		if value > hi.Value {
			continue
		}
		if hi.Value == lo.Value {
			return hi.Percentile
		}
		frac := (value - lo.Value) / (hi.Value - lo.Value)
		return lo.Percentile + frac*(hi.Percentile-lo.Percentile)
	}
	return last.Percentile
}

// NormalizeStats converts one participant's counters into benchmark
// percentiles keyed by benchmark stat name. Cumulative counters (kills,
// last hits, hero damage, healing) are divided by duration minutes before
// lookup; gold/xp per minute and tower damage are looked up as-is.
func NormalizeStats(stats models.MatchStats, durationSeconds int, set *models.BenchmarkSet) map[string]float64 {
	minutes := float64(durationSeconds) / 60.0
	if minutes <= 0 {
		minutes = 1
	}

	inputs := map[string]float64{
		models.BenchGoldPerMin:       float64(stats.GPM),
		models.BenchXPPerMin:         float64(stats.XPM),
		models.BenchKillsPerMin:      float64(stats.Kills) / minutes,
		models.BenchLastHitsPerMin:   float64(stats.LastHits) / minutes,
		models.BenchHeroDamagePerMin: float64(stats.HeroDamage) / minutes,
		models.BenchHealingPerMin:    float64(stats.HeroHealing) / minutes,
		models.BenchTowerDamage:      float64(stats.TowerDamage),
	}

	out := make(map[string]float64, len(inputs))
	for stat, value := range inputs {
		out[stat] = Percentile(value, set.Buckets(stat))
	}
	return out
}

// BenchmarkService fetches per-hero benchmark distributions through the
// provider layer, with a Redis cache in front. Distributions drift slowly,
// so a long TTL trades staleness for a large cut in upstream traffic.
type BenchmarkService struct {
	providers provider.Client
	redis     RedisClient
	ttl       time.Duration
	logger    *zap.SugaredLogger
}

func NewBenchmarkService(providers provider.Client, rdb RedisClient, ttl time.Duration, logger *zap.Logger) *BenchmarkService {
	return &BenchmarkService{
		providers: providers,
		redis:     rdb,
		ttl:       ttl,
		logger:    logger.Sugar(),
	}
}

func benchmarkCacheKey(heroID int) string {
	return fmt.Sprintf("imp:benchmarks:%d", heroID)
}

// HeroBenchmarks returns the distribution set for one hero. Cache failures
// degrade to an upstream fetch; upstream failures with no cached copy
// propagate to the caller.
func (s *BenchmarkService) HeroBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error) {
	key := benchmarkCacheKey(heroID)

	if s.redis != nil {
		raw, err := s.redis.Get(ctx, key).Result()
		if err == nil {
			var set models.BenchmarkSet
			if err := json.Unmarshal([]byte(raw), &set); err == nil {
				benchmarkCacheLookups.WithLabelValues("hit").Inc()
				return &set, nil
			}
			s.logger.Warnw("Dropping undecodable benchmark cache entry", "hero_id", heroID, "error", err)
			s.redis.Del(ctx, key)
		} else if err != redis.Nil {
			s.logger.Warnw("Benchmark cache read failed", "hero_id", heroID, "error", err)
		}
	}
	benchmarkCacheLookups.WithLabelValues("miss").Inc()

	set, err := s.providers.FetchBenchmarks(ctx, heroID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if raw, err := json.Marshal(set); err == nil {
			if err := s.redis.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				s.logger.Warnw("Benchmark cache write failed", "hero_id", heroID, "error", err)
			}
		}
	}
	return set, nil
}
