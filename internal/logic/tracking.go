package logic

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/dotapulse/imp-api/internal/models"
)

type trackingService struct {
	pg  PgPool
	rdb RedisClient
}

func NewTrackingService(pg PgPool, rdb RedisClient) TrackingService {
	return &trackingService{pg: pg, rdb: rdb}
}

func (s *trackingService) ListTracked(ctx context.Context) ([]models.TrackedPlayer, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT account_id, label, to_char(added_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM tracked_players
		ORDER BY added_at
	`)
	if err != nil {
		return nil, fmt.Errorf("listing tracked players: %w", err)
	}
	defer rows.Close()

	players := []models.TrackedPlayer{}
	for rows.Next() {
		var p models.TrackedPlayer
		if err := rows.Scan(&p.AccountID, &p.Label, &p.AddedAt); err != nil {
			return nil, fmt.Errorf("scanning tracked player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *trackingService) AddTracked(ctx context.Context, accountID int64, label string) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO tracked_players (account_id, label, added_at)
		VALUES ($1, $2, now())
		ON CONFLICT (account_id) DO UPDATE SET label = EXCLUDED.label
	`, accountID, label)
	if err != nil {
		return fmt.Errorf("adding tracked player %d: %w", accountID, err)
	}
	return nil
}

func (s *trackingService) RemoveTracked(ctx context.Context, accountID int64) error {
	tag, err := s.pg.Exec(ctx, `DELETE FROM tracked_players WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("removing tracked player %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("player %d is not tracked", accountID)
	}
	s.rdb.Del(ctx, lastScoredKey(accountID))
	return nil
}

func lastScoredKey(accountID int64) string {
	return fmt.Sprintf("imp:last_scored:%d", accountID)
}

// LastScoredMatch returns the id of the newest match already scored for a
// player, or 0 when none has been recorded.
func (s *trackingService) LastScoredMatch(ctx context.Context, accountID int64) (int64, error) {
	raw, err := s.rdb.Get(ctx, lastScoredKey(accountID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading last-scored marker for %d: %w", accountID, err)
	}
	matchID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt last-scored marker for %d: %w", accountID, err)
	}
	return matchID, nil
}

func (s *trackingService) SetLastScoredMatch(ctx context.Context, accountID, matchID int64) error {
	// Markers have no TTL: losing one only causes a redundant re-score.
	if err := s.rdb.Set(ctx, lastScoredKey(accountID), matchID, 0).Err(); err != nil {
		return fmt.Errorf("writing last-scored marker for %d: %w", accountID, err)
	}
	return nil
}
