package models

// Benchmark stat keys, matching the upstream benchmark payload.
const (
	BenchGoldPerMin    = "gold_per_min"
	BenchXPPerMin      = "xp_per_min"
	BenchKillsPerMin   = "kills_per_min"
	BenchLastHitsPerMin = "last_hits_per_min"
	BenchHeroDamagePerMin = "hero_damage_per_min"
	BenchHealingPerMin = "hero_healing_per_min"
	BenchTowerDamage   = "tower_damage"
)

// PercentileBucket is one point of a population distribution: the stat
// value at a given percentile for a specific hero.
type PercentileBucket struct {
	Percentile float64 `json:"percentile"`
	Value      float64 `json:"value"`
}

// BenchmarkSet holds the population distributions for one hero, keyed by
// stat name. Buckets are not guaranteed sorted by the upstream; the
// normalizer sorts before interpolating.
type BenchmarkSet struct {
	HeroID int                           `json:"hero_id"`
	Stats  map[string][]PercentileBucket `json:"stats"`
}

// Buckets returns the distribution for one stat, or nil when the upstream
// did not provide it. Missing distributions are recoverable: the normalizer
// substitutes the median.
func (b *BenchmarkSet) Buckets(stat string) []PercentileBucket {
	if b == nil || b.Stats == nil {
		return nil
	}
	return b.Stats[stat]
}
