// Package aggregate combines per-criterion scores into ranked, explained
// match results.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/damien/match-engine/internal/types"
)

// maxInsights caps the insights surfaced per result; the most decisive
// criteria (furthest from neutral) win.
const maxInsights = 5

// InvariantError reports a structural mismatch between scores and weights.
// It is fatal: the batch aborts rather than silently skipping a criterion.
type InvariantError struct {
	Criterion string
	Message   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation on criterion %q: %s", e.Criterion, e.Message)
}

// insightTitles maps criterion names to user-facing titles.
var insightTitles = map[string]string{
	types.CriterionSkills:      "Skills match",
	types.CriterionContract:    "Contract type",
	types.CriterionLocation:    "Location",
	types.CriterionTravelTime:  "Commute",
	types.CriterionDate:        "Availability",
	types.CriterionSalary:      "Salary",
	types.CriterionExperience:  "Experience",
	types.CriterionFlexibility: "Flexibility",
}

// Aggregate combines criterion scores under the given weights into a match
// result for one job. Every criterion in weights must appear exactly once in
// scores, and no score may reference an unknown criterion.
func Aggregate(jobID string, scores []types.CriterionScore, weights types.WeightVector) (*types.MatchResult, error) {
	seen := make(map[string]bool, len(scores))
	for _, score := range scores {
		if _, ok := weights[score.Criterion]; !ok {
			return nil, &InvariantError{
				Criterion: score.Criterion,
				Message:   "scorer returned a criterion not present in the weight vector",
			}
		}
		if seen[score.Criterion] {
			return nil, &InvariantError{
				Criterion: score.Criterion,
				Message:   "criterion scored more than once",
			}
		}
		seen[score.Criterion] = true
	}
	for criterion := range weights {
		if !seen[criterion] {
			return nil, &InvariantError{
				Criterion: criterion,
				Message:   "weighted criterion has no score",
			}
		}
	}

	overall := 0.0
	for _, score := range scores {
		overall += score.Value * weights[score.Criterion]
	}

	breakdown := make([]types.CriterionScore, len(scores))
	copy(breakdown, scores)
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Criterion < breakdown[j].Criterion
	})

	return &types.MatchResult{
		JobID:        jobID,
		OverallScore: int(math.Round(overall * 100)),
		Breakdown:    breakdown,
		WeightsUsed:  weights.Clone(),
		Insights:     buildInsights(breakdown),
	}, nil
}

// buildInsights classifies each criterion and keeps the most decisive ones.
func buildInsights(scores []types.CriterionScore) []types.Insight {
	ranked := make([]types.CriterionScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		di := math.Abs(ranked[i].Value - 0.5)
		dj := math.Abs(ranked[j].Value - 0.5)
		if di != dj {
			return di > dj
		}
		return ranked[i].Criterion < ranked[j].Criterion
	})
	if len(ranked) > maxInsights {
		ranked = ranked[:maxInsights]
	}

	insights := make([]types.Insight, 0, len(ranked))
	for _, score := range ranked {
		insights = append(insights, types.Insight{
			Type:    classify(score.Value),
			Title:   title(score.Criterion),
			Message: score.Rationale,
		})
	}
	return insights
}

func classify(value float64) types.InsightType {
	switch {
	case value >= 0.8:
		return types.InsightStrength
	case value < 0.5:
		return types.InsightWeakness
	default:
		return types.InsightNeutral
	}
}

func title(criterion string) string {
	if t, ok := insightTitles[criterion]; ok {
		return t
	}
	return criterion
}

// Sort orders results by overall score descending, ties broken by job ID
// ascending, so batch output is stable and deterministic.
func Sort(results []types.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].OverallScore != results[j].OverallScore {
			return results[i].OverallScore > results[j].OverallScore
		}
		return results[i].JobID < results[j].JobID
	})
}
