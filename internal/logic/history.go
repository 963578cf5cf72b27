package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/dotapulse/imp-api/internal/models"
)

type historyService struct {
	ch driver.Conn
}

func NewHistoryService(ch driver.Conn) HistoryService {
	return &historyService{ch: ch}
}

func (s *historyService) InsertScore(ctx context.Context, row models.ScoreHistoryRow) error {
	query := `
		INSERT INTO imp.score_history
			(match_id, account_id, hero_id, role, score, grade, percentile, won, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if err := s.ch.Exec(ctx, query,
		row.MatchID, row.AccountID, row.HeroID, row.Role,
		row.Score, row.Grade, row.Percentile, row.Won, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("inserting score for match %d: %w", row.MatchID, err)
	}
	return nil
}

func (s *historyService) PlayerScores(ctx context.Context, accountID int64, limit int) ([]models.ScoreHistoryRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `
		SELECT match_id, account_id, hero_id, role, score, grade, percentile, won, toString(created_at)
		FROM imp.score_history
		WHERE account_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := s.ch.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying score history for %d: %w", accountID, err)
	}
	defer rows.Close()

	history := []models.ScoreHistoryRow{}
	for rows.Next() {
		var r models.ScoreHistoryRow
		if err := rows.Scan(&r.MatchID, &r.AccountID, &r.HeroID, &r.Role,
			&r.Score, &r.Grade, &r.Percentile, &r.Won, &r.CreatedAt); err != nil {
			continue
		}
		history = append(history, r)
	}
	return history, nil
}
