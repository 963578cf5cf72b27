package logic

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dotapulse/imp-api/internal/models"
)

// EngineVersion identifies the coefficient model generation reported in
// response metadata.
const EngineVersion = "0.6.0"

// Feature names understood by the engine. A feature is either a raw stat
// counter, a per-minute rate derived from one, or a "bench_"-prefixed
// benchmark percentile in [0,1].
const (
	FeatKills             = "kills"
	FeatDeaths            = "deaths"
	FeatAssists           = "assists"
	FeatLastHits          = "last_hits"
	FeatDenies            = "denies"
	FeatGPM               = "gpm"
	FeatXPM               = "xpm"
	FeatHeroDamage        = "hero_damage"
	FeatTowerDamage       = "tower_damage"
	FeatHeroHealing       = "hero_healing"
	FeatNetWorth          = "net_worth"
	FeatLevel             = "level"
	FeatKillsPerMin       = "kills_per_min"
	FeatAssistsPerMin     = "assists_per_min"
	FeatTowerDmgPerMin    = "tower_damage_per_min"
	FeatHeroDmgPerMin     = "hero_damage_per_min"
	FeatHeroHealingPerMin = "hero_healing_per_min"

	benchFeaturePrefix = "bench_"
)

// RoleModel is the linear model for one role: an intercept plus a signed
// weight per feature.
type RoleModel struct {
	Intercept float64            `koanf:"intercept" json:"intercept"`
	Weights   map[string]float64 `koanf:"weights" json:"weights"`
}

// CoefficientBook is the full model configuration. Loaded once at process
// start and treated as immutable; concurrent readers need no locking.
type CoefficientBook struct {
	Roles       map[string]RoleModel `koanf:"roles" json:"roles"`
	WinBonus    float64              `koanf:"win_bonus" json:"win_bonus"`
	LossPenalty float64              `koanf:"loss_penalty" json:"loss_penalty"`
	Scale       float64              `koanf:"scale" json:"scale"`
	Bound       float64              `koanf:"bound" json:"bound"`
	// Baselines are the neutral reference values used for deviation text
	// in contributing factors. A feature without a baseline reports a
	// neutral deviation.
	Baselines map[string]float64 `koanf:"baselines" json:"baselines"`
}

// Model returns the coefficient set for a role, or a configuration error
// when the role has no model. There is deliberately no default model: an
// unknown role indicates a deployment defect, not a scoring condition.
func (b *CoefficientBook) Model(role models.Role) (RoleModel, error) {
	m, ok := b.Roles[string(role)]
	if !ok {
		return RoleModel{}, fmt.Errorf("no coefficient set configured for role %q", role)
	}
	return m, nil
}

// Validate rejects books that would make every score degenerate.
func (b *CoefficientBook) Validate() error {
	if b.Bound <= 0 {
		return fmt.Errorf("score bound must be positive, got %v", b.Bound)
	}
	if b.Scale <= 0 {
		return fmt.Errorf("score scale must be positive, got %v", b.Scale)
	}
	for _, role := range models.RolesByFarmPriority {
		m, ok := b.Roles[string(role)]
		if !ok {
			return fmt.Errorf("missing coefficient set for role %q", role)
		}
		if len(m.Weights) == 0 {
			return fmt.Errorf("empty weight set for role %q", role)
		}
	}
	return nil
}

// coreModel fits farming roles: individual resource conversion dominates.
func coreModel() RoleModel {
	return RoleModel{
		Intercept: -5.79,
		Weights: map[string]float64{
			FeatDeaths:         -3.36,
			FeatTowerDamage:    0.0015,
			FeatKillsPerMin:    32.31,
			FeatAssists:        1.02,
			FeatGPM:            0.017,
			FeatNetWorth:       0.0005,
			FeatKills:          0.50,
			FeatLevel:          0.20,
			FeatXPM:            -0.008,
			FeatTowerDmgPerMin: -0.05,
			FeatHeroDmgPerMin:  -0.03,

			benchFeaturePrefix + models.BenchGoldPerMin:      4.0,
			benchFeaturePrefix + models.BenchHeroDamagePerMin: 3.0,
		},
	}
}

// supportModel weighs teamplay counters over farm.
func supportModel() RoleModel {
	return RoleModel{
		Intercept: -2.41,
		Weights: map[string]float64{
			FeatDeaths:        -3.01,
			FeatAssists:       1.06,
			FeatTowerDamage:   0.005,
			FeatKillsPerMin:   44.42,
			FeatLevel:         0.84,
			FeatAssistsPerMin: 18.49,
			FeatKills:         0.30,
			FeatGPM:           0.010,
			FeatXPM:           -0.008,

			benchFeaturePrefix + models.BenchHealingPerMin: 4.0,
			benchFeaturePrefix + models.BenchXPPerMin:      2.0,
		},
	}
}

// DefaultCoefficients returns the built-in model generation.
func DefaultCoefficients() *CoefficientBook {
	return &CoefficientBook{
		Roles: map[string]RoleModel{
			string(models.RoleCarry):       coreModel(),
			string(models.RoleMid):         coreModel(),
			string(models.RoleOfflane):     coreModel(),
			string(models.RoleSupport):     supportModel(),
			string(models.RoleHardSupport): supportModel(),
		},
		WinBonus:    8.0,
		LossPenalty: 30.0,
		Scale:       0.5,
		Bound:       65.0,
		Baselines: map[string]float64{
			FeatKills:          8,
			FeatDeaths:         6,
			FeatAssists:        12,
			FeatLastHits:       180,
			FeatDenies:         8,
			FeatGPM:            450,
			FeatXPM:            520,
			FeatHeroDamage:     18000,
			FeatTowerDamage:    1500,
			FeatHeroHealing:    500,
			FeatNetWorth:       15000,
			FeatLevel:          22,
			FeatKillsPerMin:    0.2,
			FeatAssistsPerMin:  0.3,
			FeatTowerDmgPerMin: 40,
			FeatHeroDmgPerMin:  450,

			benchFeaturePrefix + models.BenchGoldPerMin:       0.5,
			benchFeaturePrefix + models.BenchXPPerMin:         0.5,
			benchFeaturePrefix + models.BenchKillsPerMin:      0.5,
			benchFeaturePrefix + models.BenchLastHitsPerMin:   0.5,
			benchFeaturePrefix + models.BenchHeroDamagePerMin: 0.5,
			benchFeaturePrefix + models.BenchHealingPerMin:    0.5,
			benchFeaturePrefix + models.BenchTowerDamage:      0.5,
		},
	}
}

// LoadCoefficients reads a coefficient document from a YAML file, layered
// over the built-in defaults so a deployment may override only parts of the
// book. An empty path returns the defaults unchanged.
func LoadCoefficients(path string) (*CoefficientBook, error) {
	book := DefaultCoefficients()
	if path == "" {
		return book, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading coefficients from %s: %w", path, err)
	}
	if err := k.Unmarshal("", book); err != nil {
		return nil, fmt.Errorf("parsing coefficients from %s: %w", path, err)
	}

	if err := book.Validate(); err != nil {
		return nil, fmt.Errorf("invalid coefficient book %s: %w", path, err)
	}
	return book, nil
}
