package models

// MatchStats carries the raw counters of one participant, as submitted by
// the presentation layer or extracted from a fetched match.
type MatchStats struct {
	Kills       int `json:"kills" validate:"min=0"`
	Deaths      int `json:"deaths" validate:"min=0"`
	Assists     int `json:"assists" validate:"min=0"`
	LastHits    int `json:"last_hits" validate:"min=0"`
	Denies      int `json:"denies" validate:"min=0"`
	GPM         int `json:"gpm" validate:"min=0"`
	XPM         int `json:"xpm" validate:"min=0"`
	HeroDamage  int `json:"hero_damage" validate:"min=0"`
	TowerDamage int `json:"tower_damage" validate:"min=0"`
	HeroHealing int `json:"hero_healing" validate:"min=0"`
	NetWorth    int `json:"net_worth" validate:"min=0"`
	Level       int `json:"level" validate:"min=1,max=30"`
}

// MatchContext carries the game context needed for outcome adjustment.
type MatchContext struct {
	TeamResult string `json:"team_result" validate:"oneof=win loss"`
	GameMode   string `json:"game_mode" validate:"required"`
	AvgRank    int    `json:"avg_rank" validate:"min=0,max=100"`
	IsRadiant  bool   `json:"is_radiant"`
}

// ScoreRequest is the scoring request consumed from the presentation layer.
// Benchmarks is an optional map of precomputed percentiles (0..1) keyed by
// benchmark stat name; missing entries are substituted with the median.
type ScoreRequest struct {
	MatchID         int64              `json:"match_id" validate:"required"`
	PlayerSlot      int                `json:"player_slot" validate:"min=0,max=255"`
	HeroID          int                `json:"hero_id" validate:"min=1"`
	Role            string             `json:"role" validate:"oneof=carry mid offlane support hard_support"`
	DurationSeconds int                `json:"duration_seconds" validate:"min=1"`
	Stats           MatchStats         `json:"stats" validate:"required"`
	Context         MatchContext       `json:"context" validate:"required"`
	Benchmarks      map[string]float64 `json:"benchmarks,omitempty"`
}

// Impact classification of a contributing factor.
const (
	ImpactPositive = "positive"
	ImpactNeutral  = "neutral"
	ImpactNegative = "negative"
)

// ContributingFactor is one stat's labeled contribution to the final score.
type ContributingFactor struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Deviation string  `json:"deviation"` // signed percentage vs baseline, e.g. "+23.4%"
	Impact    string  `json:"impact"`
	Weight    float64 `json:"weight"`
}

// ScoreResult is the engine's output for one participant.
type ScoreResult struct {
	Score      float64              `json:"score"`
	Grade      string               `json:"grade"`
	Percentile int                  `json:"percentile"`
	Factors    []ContributingFactor `json:"contributing_factors"`
	Summary    string               `json:"summary"`
	// Degraded marks a score computed without any benchmark data; the
	// number is still valid but normalized features fell back to median.
	Degraded bool `json:"degraded"`
}

// ScoreData is the data object of a scoring response.
type ScoreData struct {
	MatchID  int64  `json:"match_id"`
	HeroName string `json:"hero_name"`
	ScoreResult
}

// ScoreMeta describes the engine run that produced a response.
type ScoreMeta struct {
	EngineVersion string `json:"engine_version"`
	RequestID     string `json:"request_id"`
	CalculatedAt  string `json:"calculated_at"` // ISO8601
}

// ScoreResponse is the envelope returned to callers.
type ScoreResponse struct {
	Success bool      `json:"success"`
	Data    ScoreData `json:"data"`
	Meta    ScoreMeta `json:"meta"`
}

// ParticipantScore correlates one scorecard entry back to its originating
// participant index. Err is set when that single participant could not be
// scored; the rest of the match still completes.
type ParticipantScore struct {
	Index     int          `json:"index"`
	AccountID *int64       `json:"account_id,omitempty"`
	IsRadiant bool         `json:"is_radiant"`
	HeroID    int          `json:"hero_id"`
	HeroName  string       `json:"hero_name"`
	Role      Role         `json:"role"`
	Result    *ScoreResult `json:"result,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// MatchScorecard holds the scores of all ten participants of one match.
type MatchScorecard struct {
	MatchID         int64              `json:"match_id"`
	DurationSeconds int                `json:"duration_seconds"`
	RadiantWin      bool               `json:"radiant_win"`
	Participants    []ParticipantScore `json:"participants"`
}

// ScoreHistoryRow is one persisted score, as stored in ClickHouse.
type ScoreHistoryRow struct {
	MatchID    int64   `json:"match_id"`
	AccountID  int64   `json:"account_id"`
	HeroID     int     `json:"hero_id"`
	Role       string  `json:"role"`
	Score      float64 `json:"score"`
	Grade      string  `json:"grade"`
	Percentile int     `json:"percentile"`
	Won        bool    `json:"won"`
	CreatedAt  string  `json:"created_at"`
}

// TrackedPlayer is one registry entry polled by the tracker worker.
type TrackedPlayer struct {
	AccountID int64  `json:"account_id"`
	Label     string `json:"label"`
	AddedAt   string `json:"added_at"`
}
