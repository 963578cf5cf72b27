package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/dotapulse/imp-api/internal/models"
)

const opendotaName = "opendota"

// direSlotBase is the first Dire player_slot; OpenDota encodes the team in
// the slot number rather than an explicit flag.
const direSlotBase = 128

// OpenDota is the REST client for api.opendota.com, the primary upstream.
type OpenDota struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

// NewOpenDota builds an OpenDota client. timeout bounds every request;
// unauthenticated third-party APIs have highly variable latency.
func NewOpenDota(baseURL string, timeout time.Duration, logger *zap.Logger) *OpenDota {
	return &OpenDota{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Sugar(),
	}
}

func (c *OpenDota) Name() string { return opendotaName }

// get performs a GET against the API and decodes the body into out.
func (c *OpenDota) get(ctx context.Context, op, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Source: opendotaName, Op: op, Kind: KindUnavailable, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts and transport failures are not rate limits; they must
		// never trigger fallback.
		observe(opendotaName, op, err)
		return &Error{Source: opendotaName, Op: op, Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		perr := &Error{
			Source:     opendotaName,
			Op:         op,
			StatusCode: resp.StatusCode,
			Kind:       classifyStatus(resp.StatusCode),
		}
		observe(opendotaName, op, perr)
		c.logger.Warnw("OpenDota request failed", "op", op, "status", resp.StatusCode)
		return perr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		observe(opendotaName, op, err)
		return &Error{Source: opendotaName, Op: op, Kind: KindUnavailable, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		perr := &Error{Source: opendotaName, Op: op, StatusCode: resp.StatusCode, Kind: KindMalformed, Err: err}
		observe(opendotaName, op, perr)
		return perr
	}

	observe(opendotaName, op, nil)
	return nil
}

// odMatch is the subset of the OpenDota match payload we consume. Players
// are decoded flexibly field-by-field afterwards.
type odMatch struct {
	MatchID     int64             `json:"match_id"`
	Duration    int               `json:"duration"`
	RadiantWin  bool              `json:"radiant_win"`
	GameMode    int               `json:"game_mode"`
	AvgRankTier *int              `json:"avg_rank_tier"`
	Players     []json.RawMessage `json:"players"`
}

type odPlayer struct {
	AccountID   *int64 `json:"account_id"`
	PlayerSlot  int    `json:"player_slot"`
	HeroID      int    `json:"hero_id"`
	Kills       int    `json:"kills"`
	Deaths      int    `json:"deaths"`
	Assists     int    `json:"assists"`
	LastHits    int    `json:"last_hits"`
	Denies      int    `json:"denies"`
	GPM         int    `json:"gold_per_min"`
	XPM         int    `json:"xp_per_min"`
	HeroDamage  int    `json:"hero_damage"`
	TowerDamage int    `json:"tower_damage"`
	HeroHealing int    `json:"hero_healing"`
	NetWorth    int    `json:"net_worth"`
	Level       int    `json:"level"`
	Item0       int    `json:"item_0"`
	Item1       int    `json:"item_1"`
	Item2       int    `json:"item_2"`
	Item3       int    `json:"item_3"`
	Item4       int    `json:"item_4"`
	Item5       int    `json:"item_5"`
	ItemNeutral int    `json:"item_neutral"`
	Personaname string `json:"personaname"`
	RankTier    *int   `json:"rank_tier"`
}

// FetchMatch fetches full match details and maps them to the shared model.
func (c *OpenDota) FetchMatch(ctx context.Context, matchID int64) (*models.MatchRecord, error) {
	var raw odMatch
	if err := c.get(ctx, "fetch_match", fmt.Sprintf("/matches/%d", matchID), nil, &raw); err != nil {
		return nil, err
	}
	if raw.MatchID == 0 {
		// An unparsed match comes back as an empty object with 200.
		return nil, &Error{Source: opendotaName, Op: "fetch_match", Kind: KindMalformed,
			Msg: fmt.Sprintf("match %d payload missing match_id", matchID)}
	}

	match := &models.MatchRecord{
		MatchID:         raw.MatchID,
		DurationSeconds: raw.Duration,
		RadiantWin:      raw.RadiantWin,
		GameMode:        raw.GameMode,
		AvgRankTier:     raw.AvgRankTier,
		Players:         make([]models.ParticipantRecord, 0, len(raw.Players)),
	}

	for i, rawPlayer := range raw.Players {
		var p odPlayer
		if err := models.DecodeFlexible(rawPlayer, &p); err != nil {
			return nil, &Error{Source: opendotaName, Op: "fetch_match", Kind: KindMalformed,
				Msg: fmt.Sprintf("match %d player %d: %v", matchID, i, err)}
		}
		match.Players = append(match.Players, mapODPlayer(&p))
	}

	return match, nil
}

func mapODPlayer(p *odPlayer) models.ParticipantRecord {
	rec := models.ParticipantRecord{
		AccountID:   p.AccountID,
		IsRadiant:   p.PlayerSlot < direSlotBase,
		HeroID:      p.HeroID,
		Kills:       p.Kills,
		Deaths:      p.Deaths,
		Assists:     p.Assists,
		LastHits:    p.LastHits,
		Denies:      p.Denies,
		GPM:         p.GPM,
		XPM:         p.XPM,
		HeroDamage:  p.HeroDamage,
		TowerDamage: p.TowerDamage,
		HeroHealing: p.HeroHealing,
		NetWorth:    p.NetWorth,
		Level:       p.Level,
		Items:       [6]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5},
		NeutralItem: p.ItemNeutral,
		Name:        p.Personaname,
		RankTier:    p.RankTier,
	}
	// Net worth drives role ranking and must never be negative.
	if rec.NetWorth < 0 {
		rec.NetWorth = 0
	}
	return rec
}

// FetchPlayer fetches a player profile. A missing profile object means the
// account is private, not an error.
func (c *OpenDota) FetchPlayer(ctx context.Context, accountID int64) (*models.PlayerProfile, error) {
	var raw struct {
		Profile *struct {
			AccountID   int64  `json:"account_id"`
			Personaname string `json:"personaname"`
			Avatarfull  string `json:"avatarfull"`
		} `json:"profile"`
		RankTier *int `json:"rank_tier"`
	}
	if err := c.get(ctx, "fetch_player", fmt.Sprintf("/players/%d", accountID), nil, &raw); err != nil {
		return nil, err
	}

	profile := &models.PlayerProfile{AccountID: accountID, RankTier: raw.RankTier}
	if raw.Profile == nil {
		profile.Private = true
		return profile, nil
	}
	profile.PersonaName = raw.Profile.Personaname
	profile.AvatarURL = raw.Profile.Avatarfull
	return profile, nil
}

// FetchRecentMatches lists a player's most recent matches. beforeMatchID is
// an optional exclusive cursor; the upstream endpoint has no cursor
// parameter, so it is applied to the fetched page.
func (c *OpenDota) FetchRecentMatches(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error) {
	var raw []struct {
		MatchID    int64 `json:"match_id"`
		PlayerSlot int   `json:"player_slot"`
		RadiantWin bool  `json:"radiant_win"`
		Duration   int   `json:"duration"`
		HeroID     int   `json:"hero_id"`
		StartTime  int64 `json:"start_time"`
		Kills      int   `json:"kills"`
		Deaths     int   `json:"deaths"`
		Assists    int   `json:"assists"`
	}
	if err := c.get(ctx, "fetch_recent_matches", fmt.Sprintf("/players/%d/recentMatches", accountID), nil, &raw); err != nil {
		return nil, err
	}

	matches := make([]models.RecentMatch, 0, limit)
	for _, m := range raw {
		if beforeMatchID > 0 && m.MatchID >= beforeMatchID {
			continue
		}
		matches = append(matches, models.RecentMatch{
			MatchID:         m.MatchID,
			HeroID:          m.HeroID,
			Kills:           m.Kills,
			Deaths:          m.Deaths,
			Assists:         m.Assists,
			DurationSeconds: m.Duration,
			IsRadiant:       m.PlayerSlot < direSlotBase,
			RadiantWin:      m.RadiantWin,
			StartTime:       m.StartTime,
		})
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

// FetchPeers returns aggregates for the teammates a player queues with most.
func (c *OpenDota) FetchPeers(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error) {
	var raw []struct {
		AccountID   int64  `json:"account_id"`
		Personaname string `json:"personaname"`
		WithGames   int    `json:"with_games"`
		WithWin     int    `json:"with_win"`
	}
	if err := c.get(ctx, "fetch_peers", fmt.Sprintf("/players/%d/peers", accountID), nil, &raw); err != nil {
		return nil, err
	}

	peers := make([]models.PeerAggregate, 0, limit)
	for _, p := range raw {
		peers = append(peers, models.PeerAggregate{
			AccountID:   p.AccountID,
			PersonaName: p.Personaname,
			Games:       p.WithGames,
			Wins:        p.WithWin,
		})
		if limit > 0 && len(peers) >= limit {
			break
		}
	}
	return peers, nil
}

// FetchWinLoss returns lifetime win/loss totals.
func (c *OpenDota) FetchWinLoss(ctx context.Context, accountID int64) (*models.WinLoss, error) {
	var raw struct {
		Win  int `json:"win"`
		Lose int `json:"lose"`
	}
	if err := c.get(ctx, "fetch_win_loss", fmt.Sprintf("/players/%d/wl", accountID), nil, &raw); err != nil {
		return nil, err
	}
	return &models.WinLoss{Wins: raw.Win, Losses: raw.Lose}, nil
}

// FetchBenchmarks fetches per-hero population percentile buckets.
func (c *OpenDota) FetchBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error) {
	var raw struct {
		HeroID int                                  `json:"hero_id"`
		Result map[string][]models.PercentileBucket `json:"result"`
	}
	query := url.Values{"hero_id": {fmt.Sprint(heroID)}}
	if err := c.get(ctx, "fetch_benchmarks", "/benchmarks", query, &raw); err != nil {
		return nil, err
	}
	return &models.BenchmarkSet{HeroID: heroID, Stats: raw.Result}, nil
}
