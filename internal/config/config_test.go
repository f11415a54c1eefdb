package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damien/match-engine/internal/types"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	// Every criterion has a weight and the table sums to one.
	for _, criterion := range types.AllCriteria() {
		assert.Contains(t, cfg.BaseWeights, criterion)
	}
	assert.True(t, cfg.BaseWeightVector().Valid())
}

func TestValidate_MissingCriterion(t *testing.T) {
	cfg := Default()
	delete(cfg.BaseWeights, types.CriterionSalary)

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "base-weights", cfgErr.Field)
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := Default()
	cfg.BaseWeights[types.CriterionSkills] = 0.5 // breaks the sum

	var cfgErr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
}

func TestValidate_WeightOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.BaseWeights[types.CriterionSkills] = -0.1

	var cfgErr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Contains(t, cfgErr.Field, types.CriterionSkills)
}

func TestValidate_NonPositiveDurations(t *testing.T) {
	cfg := Default()
	cfg.BatchTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Geo.LookupTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxConcurrency = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_NoFileYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.MaxConcurrency, cfg.MaxConcurrency)
	assert.Equal(t, def.BatchTimeout, cfg.BatchTimeout)
	assert.Equal(t, def.Semantic.EmbeddingModel, cfg.Semantic.EmbeddingModel)
	assert.InDelta(t, 1.0, cfg.BaseWeightVector().Sum(), types.WeightEpsilon)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/match.yaml")
	assert.Error(t, err)
}

func TestBaseWeightVector_IsACopy(t *testing.T) {
	cfg := Default()
	w := cfg.BaseWeightVector()
	w[types.CriterionSkills] = 0.99

	assert.Equal(t, 0.25, cfg.BaseWeights[types.CriterionSkills])
}
