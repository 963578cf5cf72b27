package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dotapulse/imp-api/internal/logic"
	"github.com/dotapulse/imp-api/internal/provider"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// FallbackCounter exposes the orchestrator's fallback observability.
type FallbackCounter interface {
	Fallbacks() int64
	ResetFallbacks()
}

type Config struct {
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Providers provider.Client
	Fallbacks FallbackCounter
	Scores    logic.ScoreService
	History   logic.HistoryService
	Tracking  logic.TrackingService
}

type Handler struct {
	pg        *pgxpool.Pool
	ch        driver.Conn
	redis     *redis.Client
	logger    *zap.SugaredLogger
	validator *validator.Validate
	providers provider.Client
	fallbacks FallbackCounter
	scores    logic.ScoreService
	history   logic.HistoryService
	tracking  logic.TrackingService
}

func New(cfg Config) *Handler {
	return &Handler{
		pg:        cfg.Postgres,
		ch:        cfg.ClickHouse,
		redis:     cfg.Redis,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
		providers: cfg.Providers,
		fallbacks: cfg.Fallbacks,
		scores:    cfg.Scores,
		history:   cfg.History,
		tracking:  cfg.Tracking,
	}
}
