package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damien/match-engine/internal/types"
)

func evenWeights(criteria ...string) types.WeightVector {
	w := make(types.WeightVector, len(criteria))
	for _, c := range criteria {
		w[c] = 1.0 / float64(len(criteria))
	}
	return w
}

func TestAggregate_WeightedSum(t *testing.T) {
	weights := types.WeightVector{
		types.CriterionSkills: 0.6,
		types.CriterionSalary: 0.4,
	}
	scores := []types.CriterionScore{
		{Criterion: types.CriterionSkills, Value: 1.0, Rationale: "all skills matched"},
		{Criterion: types.CriterionSalary, Value: 0.5, Rationale: "salary slightly below target"},
	}

	result, err := Aggregate("job-1", scores, weights)
	require.NoError(t, err)

	// 1.0*0.6 + 0.5*0.4 = 0.8 -> 80
	assert.Equal(t, 80, result.OverallScore)
	assert.Equal(t, "job-1", result.JobID)
	assert.Len(t, result.Breakdown, 2)
}

func TestAggregate_MissingCriterionIsInvariantViolation(t *testing.T) {
	weights := evenWeights(types.CriterionSkills, types.CriterionSalary)
	scores := []types.CriterionScore{
		{Criterion: types.CriterionSkills, Value: 0.9, Rationale: "ok"},
	}

	_, err := Aggregate("job-1", scores, weights)
	require.Error(t, err)

	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, types.CriterionSalary, invErr.Criterion)
}

func TestAggregate_UnknownCriterionIsInvariantViolation(t *testing.T) {
	weights := evenWeights(types.CriterionSkills)
	scores := []types.CriterionScore{
		{Criterion: types.CriterionSkills, Value: 0.9, Rationale: "ok"},
		{Criterion: "astrology", Value: 1.0, Rationale: "stars aligned"},
	}

	var invErr *InvariantError
	_, err := Aggregate("job-1", scores, weights)
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "astrology", invErr.Criterion)
}

func TestAggregate_DuplicateCriterionIsInvariantViolation(t *testing.T) {
	weights := evenWeights(types.CriterionSkills, types.CriterionSalary)
	scores := []types.CriterionScore{
		{Criterion: types.CriterionSkills, Value: 0.9, Rationale: "ok"},
		{Criterion: types.CriterionSkills, Value: 0.1, Rationale: "again"},
	}

	var invErr *InvariantError
	_, err := Aggregate("job-1", scores, weights)
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, types.CriterionSkills, invErr.Criterion)
}

func TestAggregate_BreakdownSortedByCriterion(t *testing.T) {
	weights := evenWeights(types.CriterionSalary, types.CriterionContract, types.CriterionSkills)
	scores := []types.CriterionScore{
		{Criterion: types.CriterionSkills, Value: 0.5, Rationale: "r"},
		{Criterion: types.CriterionSalary, Value: 0.5, Rationale: "r"},
		{Criterion: types.CriterionContract, Value: 0.5, Rationale: "r"},
	}

	result, err := Aggregate("job-1", scores, weights)
	require.NoError(t, err)

	var names []string
	for _, s := range result.Breakdown {
		names = append(names, s.Criterion)
	}
	assert.Equal(t, []string{types.CriterionContract, types.CriterionSalary, types.CriterionSkills}, names)
}

func TestAggregate_MonotoneInCriterionValue(t *testing.T) {
	weights := evenWeights(types.CriterionSkills, types.CriterionSalary)
	low := []types.CriterionScore{
		{Criterion: types.CriterionSkills, Value: 0.3, Rationale: "r"},
		{Criterion: types.CriterionSalary, Value: 0.5, Rationale: "r"},
	}
	high := []types.CriterionScore{
		{Criterion: types.CriterionSkills, Value: 0.9, Rationale: "r"},
		{Criterion: types.CriterionSalary, Value: 0.5, Rationale: "r"},
	}

	lowResult, err := Aggregate("job-1", low, weights)
	require.NoError(t, err)
	highResult, err := Aggregate("job-1", high, weights)
	require.NoError(t, err)

	assert.Greater(t, highResult.OverallScore, lowResult.OverallScore)
}

func TestAggregate_InsightClassification(t *testing.T) {
	weights := evenWeights(types.CriterionSkills, types.CriterionSalary, types.CriterionContract)
	scores := []types.CriterionScore{
		{Criterion: types.CriterionSkills, Value: 0.95, Rationale: "excellent skill fit"},
		{Criterion: types.CriterionSalary, Value: 0.2, Rationale: "salary well below target"},
		{Criterion: types.CriterionContract, Value: 0.6, Rationale: "acceptable contract"},
	}

	result, err := Aggregate("job-1", scores, weights)
	require.NoError(t, err)
	require.Len(t, result.Insights, 3)

	byTitle := map[string]types.Insight{}
	for _, ins := range result.Insights {
		byTitle[ins.Title] = ins
	}
	assert.Equal(t, types.InsightStrength, byTitle["Skills match"].Type)
	assert.Equal(t, types.InsightWeakness, byTitle["Salary"].Type)
	assert.Equal(t, types.InsightNeutral, byTitle["Contract type"].Type)

	// Insight messages reuse the scorer rationale verbatim.
	assert.Equal(t, "salary well below target", byTitle["Salary"].Message)
}

func TestAggregate_InsightsCappedAtMostDecisive(t *testing.T) {
	criteria := types.AllCriteria()
	weights := evenWeights(criteria...)

	// Distinct distances from neutral so the cut is unambiguous.
	values := []float64{0.0, 0.1, 0.2, 0.3, 0.45, 0.55, 0.9, 1.0}
	scores := make([]types.CriterionScore, 0, len(criteria))
	for i, c := range criteria {
		scores = append(scores, types.CriterionScore{Criterion: c, Value: values[i], Rationale: "r"})
	}

	result, err := Aggregate("job-1", scores, weights)
	require.NoError(t, err)

	assert.Len(t, result.Insights, maxInsights)
	// The near-neutral 0.5-ish scores are the ones dropped.
	for _, ins := range result.Insights {
		assert.NotEqual(t, types.InsightNeutral, ins.Type)
	}
}

func TestSort_ScoreDescendingThenJobID(t *testing.T) {
	results := []types.MatchResult{
		{JobID: "job-c", OverallScore: 70},
		{JobID: "job-a", OverallScore: 90},
		{JobID: "job-b", OverallScore: 90},
		{JobID: "job-d", OverallScore: 10},
	}

	Sort(results)

	var ids []string
	for _, r := range results {
		ids = append(ids, r.JobID)
	}
	assert.Equal(t, []string{"job-a", "job-b", "job-c", "job-d"}, ids)
}

func TestAggregate_WeightsUsedIsACopy(t *testing.T) {
	weights := evenWeights(types.CriterionSkills)
	scores := []types.CriterionScore{{Criterion: types.CriterionSkills, Value: 1, Rationale: "r"}}

	result, err := Aggregate("job-1", scores, weights)
	require.NoError(t, err)

	result.WeightsUsed[types.CriterionSkills] = 0.0
	assert.Equal(t, 1.0, weights[types.CriterionSkills])
}
