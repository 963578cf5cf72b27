package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/dotapulse/imp-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ScoreService evaluates performance scores for single participants and
// whole matches.
type ScoreService interface {
	ScoreRequest(ctx context.Context, req *models.ScoreRequest) (*models.ScoreData, error)
	ScoreMatch(ctx context.Context, matchID int64) (*models.MatchScorecard, error)
}

// HistoryService persists and reads computed scores.
type HistoryService interface {
	InsertScore(ctx context.Context, row models.ScoreHistoryRow) error
	PlayerScores(ctx context.Context, accountID int64, limit int) ([]models.ScoreHistoryRow, error)
}

// TrackingService manages the tracked-player registry and the last-scored
// match markers consumed by the tracker worker.
type TrackingService interface {
	ListTracked(ctx context.Context) ([]models.TrackedPlayer, error)
	AddTracked(ctx context.Context, accountID int64, label string) error
	RemoveTracked(ctx context.Context, accountID int64) error
	LastScoredMatch(ctx context.Context, accountID int64) (int64, error)
	SetLastScoredMatch(ctx context.Context, accountID, matchID int64) error
}
