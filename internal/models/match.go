package models

import "fmt"

// MatchRecord is one completed match as reported by an upstream provider,
// normalized to the canonical shape regardless of source.
type MatchRecord struct {
	MatchID         int64               `json:"match_id"`
	DurationSeconds int                 `json:"duration_seconds"`
	RadiantWin      bool                `json:"radiant_win"`
	GameMode        int                 `json:"game_mode"`
	AvgRankTier     *int                `json:"avg_rank_tier,omitempty"`
	Players         []ParticipantRecord `json:"players"`
}

// ParticipantRecord is one player's performance in one match.
// AccountID is nil when the upstream profile is private; every numeric
// counter defaults to zero rather than carrying upstream nulls.
type ParticipantRecord struct {
	AccountID  *int64 `json:"account_id,omitempty"`
	IsRadiant  bool   `json:"is_radiant"`
	HeroID     int    `json:"hero_id"`
	Kills      int    `json:"kills"`
	Deaths     int    `json:"deaths"`
	Assists    int    `json:"assists"`
	LastHits   int    `json:"last_hits"`
	Denies     int    `json:"denies"`
	GPM        int    `json:"gold_per_min"`
	XPM        int    `json:"xp_per_min"`
	HeroDamage int    `json:"hero_damage"`
	TowerDamage int   `json:"tower_damage"`
	HeroHealing int   `json:"hero_healing"`
	NetWorth   int    `json:"net_worth"`
	Level      int    `json:"level"`
	Items      [6]int `json:"items"`
	NeutralItem int   `json:"neutral_item"`
	Name       string `json:"name,omitempty"`
	RankTier   *int   `json:"rank_tier,omitempty"`
}

// Won reports whether this participant's team won the match.
func (p *ParticipantRecord) Won(radiantWin bool) bool {
	return p.IsRadiant == radiantWin
}

// Validate checks the team-size invariant: exactly five players per side,
// determined by the team flag rather than list position. Role ranking is
// undefined for anything else, so malformed matches are rejected up front.
func (m *MatchRecord) Validate() error {
	if len(m.Players) != 10 {
		return fmt.Errorf("match %d: expected 10 participants, got %d", m.MatchID, len(m.Players))
	}
	radiant := 0
	for i := range m.Players {
		if m.Players[i].IsRadiant {
			radiant++
		}
	}
	if radiant != 5 {
		return fmt.Errorf("match %d: expected 5 radiant participants, got %d", m.MatchID, radiant)
	}
	return nil
}

// PlayerProfile is the public profile of a player.
type PlayerProfile struct {
	AccountID   int64  `json:"account_id"`
	PersonaName string `json:"persona_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	RankTier    *int   `json:"rank_tier,omitempty"`
	Private     bool   `json:"private"`
}

// RecentMatch is a single row of a player's recent-match listing.
type RecentMatch struct {
	MatchID         int64 `json:"match_id"`
	HeroID          int   `json:"hero_id"`
	Kills           int   `json:"kills"`
	Deaths          int   `json:"deaths"`
	Assists         int   `json:"assists"`
	DurationSeconds int   `json:"duration_seconds"`
	IsRadiant       bool  `json:"is_radiant"`
	RadiantWin      bool  `json:"radiant_win"`
	StartTime       int64 `json:"start_time"`
}

// PeerAggregate summarizes matches played together with one teammate.
type PeerAggregate struct {
	AccountID   int64  `json:"account_id"`
	PersonaName string `json:"persona_name"`
	Games       int    `json:"games"`
	Wins        int    `json:"wins"`
}

// WinLoss is a player's lifetime win/loss totals.
type WinLoss struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}
