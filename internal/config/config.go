// Package config provides configuration loading and validation for the matching engine.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/damien/match-engine/internal/types"
)

// GeoConfig configures the geocoding/travel-time provider and its cache.
type GeoConfig struct {
	ProviderURL   string        `mapstructure:"provider-url"`
	APIKey        string        `mapstructure:"api-key"`
	LookupTimeout time.Duration `mapstructure:"lookup-timeout"`
	RetryAttempts uint          `mapstructure:"retry-attempts"`
	CacheTTL      time.Duration `mapstructure:"cache-ttl"`
	CacheSize     int           `mapstructure:"cache-size"`
	DatabaseURL   string        `mapstructure:"database-url"` // optional external KV store
}

// SemanticConfig configures the semantic skill matcher.
type SemanticConfig struct {
	APIKey              string  `mapstructure:"api-key"`
	EmbeddingModel      string  `mapstructure:"embedding-model"`
	SimilarityThreshold float64 `mapstructure:"similarity-threshold"`
	TaxonomyBoost       float64 `mapstructure:"taxonomy-boost"`
	TaxonomyPath        string  `mapstructure:"taxonomy-path"`
	ExpertiseFloor      float64 `mapstructure:"expertise-floor"`
	EmbedCacheSize      int     `mapstructure:"embed-cache-size"`
}

// ScoringConfig holds scorer thresholds shared across criteria.
type ScoringConfig struct {
	DefaultMaxCommuteMinutes float64 `mapstructure:"default-max-commute-minutes"`
	NeutralScore             float64 `mapstructure:"neutral-score"`
	SkillBonusCap            float64 `mapstructure:"skill-bonus-cap"`
}

// Config is the immutable engine configuration, built once at startup.
type Config struct {
	BaseWeights    map[string]float64 `mapstructure:"base-weights"`
	MaxConcurrency int                `mapstructure:"max-concurrency"`
	BatchTimeout   time.Duration      `mapstructure:"batch-timeout"`
	Geo            GeoConfig          `mapstructure:"geo"`
	Semantic       SemanticConfig     `mapstructure:"semantic"`
	Scoring        ScoringConfig      `mapstructure:"scoring"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		BaseWeights: map[string]float64{
			types.CriterionSkills:      0.25,
			types.CriterionContract:    0.10,
			types.CriterionLocation:    0.10,
			types.CriterionTravelTime:  0.15,
			types.CriterionDate:        0.05,
			types.CriterionSalary:      0.15,
			types.CriterionExperience:  0.05,
			types.CriterionFlexibility: 0.15,
		},
		MaxConcurrency: 10,
		BatchTimeout:   30 * time.Second,
		Geo: GeoConfig{
			LookupTimeout: 4 * time.Second,
			RetryAttempts: 3,
			CacheTTL:      7 * 24 * time.Hour,
			CacheSize:     50_000,
		},
		Semantic: SemanticConfig{
			EmbeddingModel:      "text-embedding-004",
			SimilarityThreshold: 0.6,
			TaxonomyBoost:       0.7,
			ExpertiseFloor:      0.3,
			EmbedCacheSize:      4096,
		},
		Scoring: ScoringConfig{
			DefaultMaxCommuteMinutes: 60,
			NeutralScore:             0.5,
			SkillBonusCap:            0.2,
		},
	}
}

// Load reads configuration from an optional file plus MATCH_* environment
// variables, layered over the defaults. The result is validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	for name, w := range d.BaseWeights {
		v.SetDefault("base-weights."+name, w)
	}
	v.SetDefault("max-concurrency", d.MaxConcurrency)
	v.SetDefault("batch-timeout", d.BatchTimeout)
	v.SetDefault("geo.lookup-timeout", d.Geo.LookupTimeout)
	v.SetDefault("geo.retry-attempts", d.Geo.RetryAttempts)
	v.SetDefault("geo.cache-ttl", d.Geo.CacheTTL)
	v.SetDefault("geo.cache-size", d.Geo.CacheSize)
	v.SetDefault("semantic.embedding-model", d.Semantic.EmbeddingModel)
	v.SetDefault("semantic.similarity-threshold", d.Semantic.SimilarityThreshold)
	v.SetDefault("semantic.taxonomy-boost", d.Semantic.TaxonomyBoost)
	v.SetDefault("semantic.expertise-floor", d.Semantic.ExpertiseFloor)
	v.SetDefault("semantic.embed-cache-size", d.Semantic.EmbedCacheSize)
	v.SetDefault("scoring.default-max-commute-minutes", d.Scoring.DefaultMaxCommuteMinutes)
	v.SetDefault("scoring.neutral-score", d.Scoring.NeutralScore)
	v.SetDefault("scoring.skill-bonus-cap", d.Scoring.SkillBonusCap)
}

// Validate checks structural invariants. Violations are fatal at startup.
func (c *Config) Validate() error {
	if len(c.BaseWeights) == 0 {
		return &ConfigurationError{Field: "base-weights", Message: "no criteria configured"}
	}
	for _, criterion := range types.AllCriteria() {
		if _, ok := c.BaseWeights[criterion]; !ok {
			return &ConfigurationError{
				Field:   "base-weights",
				Message: fmt.Sprintf("missing required criterion %q", criterion),
			}
		}
	}
	sum := 0.0
	for name, w := range c.BaseWeights {
		if w < 0 || w > 1 {
			return &ConfigurationError{
				Field:   "base-weights." + name,
				Message: fmt.Sprintf("weight %.4f out of range [0,1]", w),
			}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > types.WeightEpsilon {
		return &ConfigurationError{
			Field:   "base-weights",
			Message: fmt.Sprintf("weights sum to %.6f, want 1.0", sum),
		}
	}
	if c.MaxConcurrency <= 0 {
		return &ConfigurationError{Field: "max-concurrency", Message: "must be positive"}
	}
	if c.BatchTimeout <= 0 {
		return &ConfigurationError{Field: "batch-timeout", Message: "must be positive"}
	}
	if c.Geo.LookupTimeout <= 0 {
		return &ConfigurationError{Field: "geo.lookup-timeout", Message: "must be positive"}
	}
	if c.Semantic.SimilarityThreshold <= 0 || c.Semantic.SimilarityThreshold >= 1 {
		return &ConfigurationError{Field: "semantic.similarity-threshold", Message: "must be in (0,1)"}
	}
	if c.Scoring.NeutralScore < 0 || c.Scoring.NeutralScore > 1 {
		return &ConfigurationError{Field: "scoring.neutral-score", Message: "must be in [0,1]"}
	}
	return nil
}

// BaseWeightVector returns the configured base weights as a WeightVector.
func (c *Config) BaseWeightVector() types.WeightVector {
	return types.WeightVector(c.BaseWeights).Clone()
}
