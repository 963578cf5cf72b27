package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dotapulse/imp-api/internal/models"
)

const stratzName = "stratz"

// Stratz is the GraphQL client for api.stratz.com, used as the secondary
// source when OpenDota rate-limits. It requires a bearer token; without one
// every call fails as unauthenticated rather than silently hitting the API.
type Stratz struct {
	url    string
	token  string
	http   *http.Client
	logger *zap.SugaredLogger
}

func NewStratz(url, token string, timeout time.Duration, logger *zap.Logger) *Stratz {
	return &Stratz{
		url:    url,
		token:  token,
		http:   &http.Client{Timeout: timeout},
		logger: logger.Sugar(),
	}
}

func (c *Stratz) Name() string { return stratzName }

// query executes one GraphQL request and decodes the data object into out.
func (c *Stratz) query(ctx context.Context, op, query string, variables map[string]any, out any) error {
	if c.token == "" {
		return &Error{Source: stratzName, Op: op, Kind: KindUnauthenticated, Msg: "no API token configured"}
	}

	payload, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	if err != nil {
		return &Error{Source: stratzName, Op: op, Kind: KindMalformed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return &Error{Source: stratzName, Op: op, Kind: KindUnavailable, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", "STRATZ_API")

	resp, err := c.http.Do(req)
	if err != nil {
		observe(stratzName, op, err)
		return &Error{Source: stratzName, Op: op, Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		perr := &Error{
			Source:     stratzName,
			Op:         op,
			StatusCode: resp.StatusCode,
			Kind:       classifyStatus(resp.StatusCode),
		}
		observe(stratzName, op, perr)
		c.logger.Warnw("Stratz request failed", "op", op, "status", resp.StatusCode)
		return perr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		observe(stratzName, op, err)
		return &Error{Source: stratzName, Op: op, Kind: KindUnavailable, Err: err}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		perr := &Error{Source: stratzName, Op: op, Kind: KindMalformed, Err: err}
		observe(stratzName, op, perr)
		return perr
	}
	if len(envelope.Errors) > 0 {
		perr := &Error{Source: stratzName, Op: op, Kind: KindMalformed, Msg: envelope.Errors[0].Message}
		observe(stratzName, op, perr)
		return perr
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		perr := &Error{Source: stratzName, Op: op, Kind: KindMalformed, Err: err}
		observe(stratzName, op, perr)
		return perr
	}

	observe(stratzName, op, nil)
	return nil
}

type stratzMatchPlayer struct {
	SteamAccountID *int64 `json:"steamAccountId"`
	IsRadiant      bool   `json:"isRadiant"`
	HeroID         int    `json:"heroId"`
	Kills          int    `json:"kills"`
	Deaths         int    `json:"deaths"`
	Assists        int    `json:"assists"`
	NumLastHits    int    `json:"numLastHits"`
	NumDenies      int    `json:"numDenies"`
	GoldPerMinute  int    `json:"goldPerMinute"`
	ExpPerMinute   int    `json:"experiencePerMinute"`
	HeroDamage     int    `json:"heroDamage"`
	TowerDamage    int    `json:"towerDamage"`
	HeroHealing    int    `json:"heroHealing"`
	Networth       int    `json:"networth"`
	Level          int    `json:"level"`
	SteamAccount   *struct {
		Name string `json:"name"`
	} `json:"steamAccount"`
}

const stratzMatchQuery = `
query GetMatch($matchId: Long!) {
	match(id: $matchId) {
		id
		didRadiantWin
		durationSeconds
		gameMode
		rank
		players {
			steamAccountId
			isRadiant
			heroId
			kills
			deaths
			assists
			numLastHits
			numDenies
			goldPerMinute
			experiencePerMinute
			heroDamage
			towerDamage
			heroHealing
			networth
			level
			steamAccount { name }
		}
	}
}`

// FetchMatch fetches full match details via GraphQL.
func (c *Stratz) FetchMatch(ctx context.Context, matchID int64) (*models.MatchRecord, error) {
	var data struct {
		Match *struct {
			ID              int64               `json:"id"`
			DidRadiantWin   bool                `json:"didRadiantWin"`
			DurationSeconds int                 `json:"durationSeconds"`
			GameMode        int                 `json:"gameMode"`
			Rank            *int                `json:"rank"`
			Players         []stratzMatchPlayer `json:"players"`
		} `json:"match"`
	}
	if err := c.query(ctx, "fetch_match", stratzMatchQuery, map[string]any{"matchId": matchID}, &data); err != nil {
		return nil, err
	}
	if data.Match == nil {
		return nil, &Error{Source: stratzName, Op: "fetch_match", Kind: KindNotFound,
			Msg: fmt.Sprintf("match %d not found", matchID)}
	}

	match := &models.MatchRecord{
		MatchID:         data.Match.ID,
		DurationSeconds: data.Match.DurationSeconds,
		RadiantWin:      data.Match.DidRadiantWin,
		GameMode:        data.Match.GameMode,
		AvgRankTier:     data.Match.Rank,
		Players:         make([]models.ParticipantRecord, 0, len(data.Match.Players)),
	}

	for i := range data.Match.Players {
		p := &data.Match.Players[i]
		rec := models.ParticipantRecord{
			AccountID:   p.SteamAccountID,
			IsRadiant:   p.IsRadiant,
			HeroID:      p.HeroID,
			Kills:       p.Kills,
			Deaths:      p.Deaths,
			Assists:     p.Assists,
			LastHits:    p.NumLastHits,
			Denies:      p.NumDenies,
			GPM:         p.GoldPerMinute,
			XPM:         p.ExpPerMinute,
			HeroDamage:  p.HeroDamage,
			TowerDamage: p.TowerDamage,
			HeroHealing: p.HeroHealing,
			NetWorth:    p.Networth,
			Level:       p.Level,
		}
		if p.SteamAccount != nil {
			rec.Name = p.SteamAccount.Name
		}
		if rec.NetWorth < 0 {
			rec.NetWorth = 0
		}
		match.Players = append(match.Players, rec)
	}

	return match, nil
}

// FetchPlayer fetches a player profile.
func (c *Stratz) FetchPlayer(ctx context.Context, accountID int64) (*models.PlayerProfile, error) {
	const q = `
	query GetPlayer($steamAccountId: Long!) {
		player(steamAccountId: $steamAccountId) {
			steamAccount { id name avatar seasonRank }
		}
	}`
	var data struct {
		Player *struct {
			SteamAccount *struct {
				ID         int64  `json:"id"`
				Name       string `json:"name"`
				Avatar     string `json:"avatar"`
				SeasonRank *int   `json:"seasonRank"`
			} `json:"steamAccount"`
		} `json:"player"`
	}
	if err := c.query(ctx, "fetch_player", q, map[string]any{"steamAccountId": accountID}, &data); err != nil {
		return nil, err
	}
	if data.Player == nil || data.Player.SteamAccount == nil {
		return &models.PlayerProfile{AccountID: accountID, Private: true}, nil
	}
	return &models.PlayerProfile{
		AccountID:   accountID,
		PersonaName: data.Player.SteamAccount.Name,
		AvatarURL:   data.Player.SteamAccount.Avatar,
		RankTier:    data.Player.SteamAccount.SeasonRank,
	}, nil
}

// FetchRecentMatches lists a player's most recent matches.
func (c *Stratz) FetchRecentMatches(ctx context.Context, accountID int64, limit int, beforeMatchID int64) ([]models.RecentMatch, error) {
	const q = `
	query GetRecentMatches($steamAccountId: Long!, $take: Int!) {
		player(steamAccountId: $steamAccountId) {
			matches(request: { take: $take }) {
				id
				didRadiantWin
				durationSeconds
				startDateTime
				players(steamAccountId: $steamAccountId) {
					heroId
					isRadiant
					kills
					deaths
					assists
				}
			}
		}
	}`
	take := limit
	if take <= 0 {
		take = 20
	}
	var data struct {
		Player *struct {
			Matches []struct {
				ID              int64 `json:"id"`
				DidRadiantWin   bool  `json:"didRadiantWin"`
				DurationSeconds int   `json:"durationSeconds"`
				StartDateTime   int64 `json:"startDateTime"`
				Players         []struct {
					HeroID    int  `json:"heroId"`
					IsRadiant bool `json:"isRadiant"`
					Kills     int  `json:"kills"`
					Deaths    int  `json:"deaths"`
					Assists   int  `json:"assists"`
				} `json:"players"`
			} `json:"matches"`
		} `json:"player"`
	}
	if err := c.query(ctx, "fetch_recent_matches", q, map[string]any{"steamAccountId": accountID, "take": take}, &data); err != nil {
		return nil, err
	}
	if data.Player == nil {
		return nil, &Error{Source: stratzName, Op: "fetch_recent_matches", Kind: KindNotFound,
			Msg: fmt.Sprintf("player %d not found", accountID)}
	}

	matches := make([]models.RecentMatch, 0, take)
	for _, m := range data.Player.Matches {
		if beforeMatchID > 0 && m.ID >= beforeMatchID {
			continue
		}
		rm := models.RecentMatch{
			MatchID:         m.ID,
			DurationSeconds: m.DurationSeconds,
			RadiantWin:      m.DidRadiantWin,
			StartTime:       m.StartDateTime,
		}
		if len(m.Players) > 0 {
			rm.HeroID = m.Players[0].HeroID
			rm.IsRadiant = m.Players[0].IsRadiant
			rm.Kills = m.Players[0].Kills
			rm.Deaths = m.Players[0].Deaths
			rm.Assists = m.Players[0].Assists
		}
		matches = append(matches, rm)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

// FetchPeers is not implemented by Stratz's public schema in a shape
// compatible with the peer-aggregate contract. Returned as a typed
// not-found so the orchestrator never masks a primary failure with it.
func (c *Stratz) FetchPeers(ctx context.Context, accountID int64, limit int) ([]models.PeerAggregate, error) {
	return nil, &Error{Source: stratzName, Op: "fetch_peers", Kind: KindNotFound,
		Msg: "peer aggregates not supported"}
}

// FetchWinLoss returns lifetime win/loss totals.
func (c *Stratz) FetchWinLoss(ctx context.Context, accountID int64) (*models.WinLoss, error) {
	const q = `
	query GetWinLoss($steamAccountId: Long!) {
		player(steamAccountId: $steamAccountId) {
			winCount
			matchCount
		}
	}`
	var data struct {
		Player *struct {
			WinCount   int `json:"winCount"`
			MatchCount int `json:"matchCount"`
		} `json:"player"`
	}
	if err := c.query(ctx, "fetch_win_loss", q, map[string]any{"steamAccountId": accountID}, &data); err != nil {
		return nil, err
	}
	if data.Player == nil {
		return nil, &Error{Source: stratzName, Op: "fetch_win_loss", Kind: KindNotFound,
			Msg: fmt.Sprintf("player %d not found", accountID)}
	}
	return &models.WinLoss{
		Wins:   data.Player.WinCount,
		Losses: data.Player.MatchCount - data.Player.WinCount,
	}, nil
}

// FetchBenchmarks is not available from Stratz; population percentile
// buckets are an OpenDota-specific dataset.
func (c *Stratz) FetchBenchmarks(ctx context.Context, heroID int) (*models.BenchmarkSet, error) {
	return nil, &Error{Source: stratzName, Op: "fetch_benchmarks", Kind: KindNotFound,
		Msg: "hero benchmarks not supported"}
}
