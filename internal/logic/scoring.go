package logic

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dotapulse/imp-api/internal/models"
)

const (
	// deadZonePct is the symmetric band around zero deviation inside which
	// a factor is labeled neutral instead of positive/negative, so noise
	// does not read as signal.
	deadZonePct = 5.0

	// maxFactors caps the contributing-factor list at the most influential
	// entries.
	maxFactors = 8
)

// ScoreInput is everything the engine needs to evaluate one participant.
// Percentiles carries benchmark percentiles keyed by benchmark stat name;
// nil or partial maps are valid, missing entries substitute the median.
type ScoreInput struct {
	Stats           models.MatchStats
	DurationSeconds int
	Role            models.Role
	Won             bool
	Percentiles     map[string]float64
}

// Engine evaluates the role-specific linear model. It holds only the
// immutable coefficient book and is safe for concurrent use.
type Engine struct {
	book *CoefficientBook
}

func NewEngine(book *CoefficientBook) *Engine {
	return &Engine{book: book}
}

// Score computes a bounded score, grade, and contributing-factor breakdown
// for one participant. An unrecognized role is a configuration error.
func (e *Engine) Score(in ScoreInput) (*models.ScoreResult, error) {
	model, err := e.book.Model(in.Role)
	if err != nil {
		return nil, err
	}

	features := featureValues(in.Stats, in.DurationSeconds)

	raw := model.Intercept
	factors := make([]models.ContributingFactor, 0, len(model.Weights))
	for name, weight := range model.Weights {
		value, ok := e.featureValue(name, features, in.Percentiles)
		if !ok {
			continue
		}
		raw += value * weight
		factors = append(factors, e.factor(name, value, weight))
	}

	if in.Won {
		raw += e.book.WinBonus
	} else {
		raw -= e.book.LossPenalty
	}

	score := raw * e.book.Scale
	bound := e.book.Bound
	score = math.Max(-bound, math.Min(bound, score))

	display := (score + bound) / (2 * bound) * 100
	percentile := int(math.Round(display))

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Weight > factors[j].Weight
	})
	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}

	return &models.ScoreResult{
		Score:      math.Round(score*100) / 100,
		Grade:      gradeFor(display),
		Percentile: percentile,
		Factors:    factors,
		Summary:    summarize(in.Won, factors),
		Degraded:   len(in.Percentiles) == 0,
	}, nil
}

// featureValue resolves a model feature name to its observed value.
// Benchmark features read from the percentile map with median substitution;
// everything else reads from the derived feature table. A name the table
// does not know is skipped so a typo in an override document degrades one
// weight rather than the whole score.
func (e *Engine) featureValue(name string, features map[string]float64, percentiles map[string]float64) (float64, bool) {
	if stat, ok := strings.CutPrefix(name, benchFeaturePrefix); ok {
		if p, ok := percentiles[stat]; ok {
			return p, true
		}
		return neutralPercentile, true
	}
	v, ok := features[name]
	return v, ok
}

func (e *Engine) factor(name string, value, weight float64) models.ContributingFactor {
	deviation := 0.0
	if baseline, ok := e.book.Baselines[name]; ok && baseline != 0 {
		deviation = (value - baseline) / baseline * 100
	}

	impact := models.ImpactNeutral
	if math.Abs(deviation) > deadZonePct {
		if deviation*weight > 0 {
			impact = models.ImpactPositive
		} else {
			impact = models.ImpactNegative
		}
	}

	return models.ContributingFactor{
		Name:      featureLabel(name),
		Value:     math.Round(value*100) / 100,
		Deviation: fmt.Sprintf("%+.1f%%", deviation),
		Impact:    impact,
		Weight:    math.Abs(weight),
	}
}

// featureValues derives the engine's raw and per-minute feature table from
// one participant's counters.
func featureValues(stats models.MatchStats, durationSeconds int) map[string]float64 {
	minutes := float64(durationSeconds) / 60.0
	if minutes <= 0 {
		minutes = 1
	}

	return map[string]float64{
		FeatKills:             float64(stats.Kills),
		FeatDeaths:            float64(stats.Deaths),
		FeatAssists:           float64(stats.Assists),
		FeatLastHits:          float64(stats.LastHits),
		FeatDenies:            float64(stats.Denies),
		FeatGPM:               float64(stats.GPM),
		FeatXPM:               float64(stats.XPM),
		FeatHeroDamage:        float64(stats.HeroDamage),
		FeatTowerDamage:       float64(stats.TowerDamage),
		FeatHeroHealing:       float64(stats.HeroHealing),
		FeatNetWorth:          float64(stats.NetWorth),
		FeatLevel:             float64(stats.Level),
		FeatKillsPerMin:       float64(stats.Kills) / minutes,
		FeatAssistsPerMin:     float64(stats.Assists) / minutes,
		FeatTowerDmgPerMin:    float64(stats.TowerDamage) / minutes,
		FeatHeroDmgPerMin:     float64(stats.HeroDamage) / minutes,
		FeatHeroHealingPerMin: float64(stats.HeroHealing) / minutes,
	}
}

// gradeFor maps a 0-100 display score to a letter grade. The bands are
// contiguous and partition the full range.
func gradeFor(display float64) string {
	switch {
	case display >= 90:
		return "S"
	case display >= 75:
		return "A"
	case display >= 60:
		return "B"
	case display >= 45:
		return "C"
	case display >= 30:
		return "D"
	default:
		return "F"
	}
}

var featureLabels = map[string]string{
	FeatKills:             "Kills",
	FeatDeaths:            "Deaths",
	FeatAssists:           "Assists",
	FeatLastHits:          "Last Hits",
	FeatDenies:            "Denies",
	FeatGPM:               "Gold/Min",
	FeatXPM:               "XP/Min",
	FeatHeroDamage:        "Hero Damage",
	FeatTowerDamage:       "Tower Damage",
	FeatHeroHealing:       "Healing",
	FeatNetWorth:          "Net Worth",
	FeatLevel:             "Level",
	FeatKillsPerMin:       "Kills/Min",
	FeatAssistsPerMin:     "Assists/Min",
	FeatTowerDmgPerMin:    "Tower Damage/Min",
	FeatHeroDmgPerMin:     "Hero Damage/Min",
	FeatHeroHealingPerMin: "Healing/Min",

	benchFeaturePrefix + models.BenchGoldPerMin:       "Farm Percentile",
	benchFeaturePrefix + models.BenchXPPerMin:         "XP Percentile",
	benchFeaturePrefix + models.BenchKillsPerMin:      "Kill Rate Percentile",
	benchFeaturePrefix + models.BenchLastHitsPerMin:   "Last Hit Percentile",
	benchFeaturePrefix + models.BenchHeroDamagePerMin: "Damage Percentile",
	benchFeaturePrefix + models.BenchHealingPerMin:    "Healing Percentile",
	benchFeaturePrefix + models.BenchTowerDamage:      "Push Percentile",
}

func featureLabel(name string) string {
	if label, ok := featureLabels[name]; ok {
		return label
	}
	return name
}

// summarize builds the one-line explanation from the outcome and the
// highest-weighted positive and negative factors.
func summarize(won bool, factors []models.ContributingFactor) string {
	var pos, neg string
	for _, f := range factors {
		if pos == "" && f.Impact == models.ImpactPositive {
			pos = f.Name
		}
		if neg == "" && f.Impact == models.ImpactNegative {
			neg = f.Name
		}
		if pos != "" && neg != "" {
			break
		}
	}

	switch {
	case won && pos != "" && neg != "":
		return fmt.Sprintf("Victory with standout %s, held back by %s.", pos, neg)
	case won && pos != "":
		return fmt.Sprintf("Victory with standout %s.", pos)
	case won && neg != "":
		return fmt.Sprintf("Victory despite weak %s.", neg)
	case won:
		return "Victory with an even performance across the board."
	case pos != "" && neg != "":
		return fmt.Sprintf("Defeat dragged down by %s, despite solid %s.", neg, pos)
	case neg != "":
		return fmt.Sprintf("Defeat dragged down by %s.", neg)
	case pos != "":
		return fmt.Sprintf("Defeat despite solid %s.", pos)
	default:
		return "Defeat with an even performance across the board."
	}
}
